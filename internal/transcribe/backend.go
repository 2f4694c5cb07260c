package transcribe

import (
	"context"
	"log/slog"

	"scribe/internal/config"
	"scribe/internal/media"
	"scribe/internal/subtitles"
)

// Backend converts an audio asset into a transcript. Implementations must
// return transcripts that satisfy the segment ordering invariant; raw output
// that violates it is either repaired or rejected depending on the variant's
// documented policy.
type Backend interface {
	Transcribe(ctx context.Context, audio media.Asset, languageHint string) (subtitles.Transcript, error)
}

// Select returns the backend the configuration names: the cloud job variant
// when [cloud] is enabled, the local whisper variant otherwise.
func Select(cfg *config.Config, logger *slog.Logger) Backend {
	if cfg.Cloud.Enabled {
		return NewCloudBackend(cfg, NewClient(ClientConfig{
			BaseURL:        cfg.Cloud.BaseURL,
			APIKey:         cfg.Cloud.APIKey,
			TimeoutSeconds: cfg.Cloud.TimeoutSeconds,
		}), logger)
	}
	return NewWhisperBackend(cfg, logger)
}
