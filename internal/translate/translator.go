package translate

import (
	"context"
	"log/slog"
	"strings"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/subtitles"
)

// TextTranslator is the capability the transcript translator needs from the
// remote service.
type TextTranslator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Translator rewrites transcript segments into a target language. Segment
// failures are recoverable: a segment whose translation fails keeps its
// original text, and the run carries on.
type Translator struct {
	client TextTranslator
	target string
	logger *slog.Logger
}

// NewTranslator constructs a transcript translator from configuration.
func NewTranslator(cfg *config.Config, client TextTranslator, logger *slog.Logger) *Translator {
	return &Translator{
		client: client,
		target: cfg.Translation.TargetLanguage,
		logger: logging.NewComponentLogger(logger, "translate"),
	}
}

// Target returns the configured target language code.
func (t *Translator) Target() string {
	return t.target
}

// TranslateTranscript translates every segment in place and returns the new
// transcript plus the count of segments left untranslated. Timing and
// ordering are untouched. Context cancellation aborts the remaining work.
func (t *Translator) TranslateTranscript(ctx context.Context, transcript subtitles.Transcript) (subtitles.Transcript, int, error) {
	source := strings.TrimSpace(transcript.Language)
	if source == "" {
		source = "auto"
	}

	out := transcript
	out.Segments = make([]subtitles.Segment, len(transcript.Segments))
	copy(out.Segments, transcript.Segments)

	failed := 0
	for i, seg := range out.Segments {
		if err := ctx.Err(); err != nil {
			return subtitles.Transcript{}, 0, err
		}
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		translated, err := t.client.Translate(ctx, seg.Text, source, t.target)
		if err != nil {
			failed++
			t.logger.Warn("segment translation failed, keeping original text",
				logging.Int("segment", seg.Index),
				logging.Error(err),
			)
			continue
		}
		out.Segments[i].Text = translated
	}

	out.Language = t.target
	if failed > 0 {
		t.logger.Warn("transcript partially translated",
			logging.Int("failed", failed),
			logging.Int("total", len(out.Segments)),
		)
	}
	return out, failed, nil
}
