package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scribe/internal/config"
	"scribe/internal/ffmpeg"
	"scribe/internal/fileutil"
	"scribe/internal/language"
	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/runstore"
	"scribe/internal/services"
	"scribe/internal/subtitles"
	"scribe/internal/transcribe"
	"scribe/internal/translate"
)

// Options selects per-run behavior on top of the configuration.
type Options struct {
	// OutputPath names the subtitle file. Empty means a sibling of the
	// input video with an .srt extension.
	OutputPath string
	// Language hints the spoken language to the backend. Empty means the
	// configured language, falling back to auto detection.
	Language string
	// KeepAudio retains the intermediate audio file after the run.
	KeepAudio bool
	// AddToVideo muxes the subtitles back into a copy of the video.
	AddToVideo bool
}

// Report summarizes a finished run.
type Report struct {
	SubtitlePath        string
	AudioPath           string
	AudioRetained       bool
	MuxedVideoPath      string
	VideoDuration       time.Duration
	VideoCodec          string
	Language            string
	Segments            int
	TranslationFailures int
	Elapsed             time.Duration
}

// Pipeline drives a video through extraction, transcription, formatting,
// and the optional translation and muxing stages.
type Pipeline struct {
	cfg        *config.Config
	logger     *slog.Logger
	extractor  *ffmpeg.Extractor
	muxer      *ffmpeg.Muxer
	backend    transcribe.Backend
	translator *translate.Translator
	store      *runstore.Store
	probe      func(ctx context.Context, binary, path string) (media.ProbeResult, error)
}

// New constructs a pipeline around the given transcription backend.
func New(cfg *config.Config, backend transcribe.Backend, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		extractor: ffmpeg.NewExtractor("", logger),
		muxer:     ffmpeg.NewMuxer("", logger),
		backend:   backend,
		probe:     media.Probe,
	}
}

// WithExtractor replaces the audio extractor.
func (p *Pipeline) WithExtractor(e *ffmpeg.Extractor) {
	if p != nil && e != nil {
		p.extractor = e
	}
}

// WithMuxer replaces the subtitle muxer.
func (p *Pipeline) WithMuxer(m *ffmpeg.Muxer) {
	if p != nil && m != nil {
		p.muxer = m
	}
}

// WithTranslator enables the translation stage.
func (p *Pipeline) WithTranslator(t *translate.Translator) {
	if p != nil {
		p.translator = t
	}
}

// WithProber replaces how input videos are inspected.
func (p *Pipeline) WithProber(probe func(ctx context.Context, binary, path string) (media.ProbeResult, error)) {
	if p != nil && probe != nil {
		p.probe = probe
	}
}

// WithStore enables run history recording.
func (p *Pipeline) WithStore(s *runstore.Store) {
	if p != nil {
		p.store = s
	}
}

// Run executes the full pipeline for one video. The intermediate audio file
// is removed on every exit path unless Options.KeepAudio is set.
func (p *Pipeline) Run(ctx context.Context, videoPath string, opts Options) (Report, error) {
	started := time.Now()
	report, err := p.run(ctx, videoPath, opts)
	report.Elapsed = time.Since(started)
	// Recording must survive a canceled run context.
	p.record(context.WithoutCancel(ctx), videoPath, started, report, err)
	return report, err
}

func (p *Pipeline) run(ctx context.Context, videoPath string, opts Options) (Report, error) {
	var report Report

	video, err := media.NewAsset(videoPath, 0)
	if err != nil {
		return report, err
	}

	// A probe failure is not fatal; the run proceeds without duration data.
	if probed, err := p.probe(ctx, p.cfg.FFprobeBinary(), video.Path); err != nil {
		p.logger.Warn("failed to probe input video",
			logging.String("source_file", video.Path),
			logging.Error(err),
		)
	} else {
		video.Duration = probed.DurationSeconds()
		report.VideoDuration = time.Duration(video.Duration * float64(time.Second))
		if stream, ok := probed.VideoStream(); ok {
			report.VideoCodec = stream.CodecName
		}
	}

	audioPath := p.audioPath(videoPath)
	audio, err := p.extractor.Extract(ctx, video, p.audioSpec(), audioPath)
	if err != nil {
		return report, err
	}
	report.AudioPath = audio.Path
	report.AudioRetained = opts.KeepAudio
	if !opts.KeepAudio {
		defer func() {
			if removeErr := os.Remove(audio.Path); removeErr != nil && !os.IsNotExist(removeErr) {
				p.logger.Warn("failed to remove intermediate audio",
					logging.String("audio_path", audio.Path),
					logging.Error(removeErr),
				)
			}
		}()
	}

	transcript, err := p.backend.Transcribe(ctx, audio, p.languageHint(opts))
	if err != nil {
		return report, err
	}
	report.Language = transcript.Language
	report.Segments = len(transcript.Segments)

	if p.translator != nil {
		translated, failed, err := p.translator.TranslateTranscript(ctx, transcript)
		if err != nil {
			return report, err
		}
		transcript = translated
		report.Language = transcript.Language
		report.TranslationFailures = failed
	}

	subtitlePath := strings.TrimSpace(opts.OutputPath)
	if subtitlePath == "" {
		subtitlePath = fileutil.ReplaceExt(videoPath, ".srt")
	}
	if err := writeSubtitles(subtitlePath, subtitles.FormatSRT(transcript)); err != nil {
		return report, err
	}
	report.SubtitlePath = subtitlePath
	p.logger.Info("subtitles written",
		logging.String("subtitle_path", subtitlePath),
		logging.Int("segments", report.Segments),
		logging.String("language", report.Language),
	)

	if opts.AddToVideo {
		subtitled, err := p.muxer.Mux(ctx, ffmpeg.MuxRequest{
			Video:         video,
			Subtitles:     media.Asset{Path: subtitlePath},
			SubtitleCodec: p.cfg.Mux.SubtitleCodec,
			Language:      language.ToISO3(report.Language),
		})
		if err != nil {
			return report, err
		}
		report.MuxedVideoPath = subtitled.Path
	}

	return report, nil
}

func (p *Pipeline) audioSpec() ffmpeg.AudioSpec {
	return ffmpeg.AudioSpec{
		SampleRate: p.cfg.Audio.SampleRate,
		Channels:   p.cfg.Audio.Channels,
		Bitrate:    p.cfg.Audio.Bitrate,
		Codec:      p.cfg.Audio.Codec,
		Format:     p.cfg.Audio.Format,
	}
}

// audioPath places the intermediate audio in the work directory when one is
// configured, otherwise next to the video.
func (p *Pipeline) audioPath(videoPath string) string {
	workDir := strings.TrimSpace(p.cfg.Paths.WorkDir)
	if workDir == "" {
		return ""
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return ""
	}
	name := fileutil.ReplaceExt(filepath.Base(videoPath), p.cfg.Audio.Format)
	return filepath.Join(workDir, name)
}

// languageHint resolves the spoken-language hint to ISO 639-1. Inputs the
// table does not know pass through untouched so backend-specific codes
// still work.
func (p *Pipeline) languageHint(opts Options) string {
	hint := strings.TrimSpace(opts.Language)
	if hint == "" {
		hint = strings.TrimSpace(p.cfg.Whisper.Language)
	}
	if normalized := language.ToISO2(hint); normalized != "" {
		return normalized
	}
	return hint
}

func (p *Pipeline) record(ctx context.Context, videoPath string, started time.Time, report Report, runErr error) {
	if p.store == nil {
		return
	}
	run := runstore.Run{
		StartedAt:    started,
		FinishedAt:   time.Now(),
		VideoPath:    videoPath,
		SubtitlePath: report.SubtitlePath,
		MuxedPath:    report.MuxedVideoPath,
		Backend:      p.backendName(),
		Language:     report.Language,
		Segments:     report.Segments,
		Status:       runstore.StatusCompleted,
	}
	if runErr != nil {
		run.Status = runstore.StatusFailed
		run.Error = runErr.Error()
	}
	if _, err := p.store.Record(ctx, run); err != nil {
		p.logger.Warn("failed to record run history", logging.Error(err))
	}
}

func (p *Pipeline) backendName() string {
	if p.cfg.Cloud.Enabled {
		return "cloud"
	}
	return "whisper"
}

func writeSubtitles(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return services.Wrap(services.ErrValidation, "pipeline", "write subtitles",
			fmt.Sprintf("cannot write %s", path), err)
	}
	return nil
}
