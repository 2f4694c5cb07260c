package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/services"
	"scribe/internal/subtitles"
)

// WhisperBackend runs a local speech model through the whisper command line
// tool. A call blocks until the model finishes.
//
// The model is resolved once per backend instance and the outcome is sticky:
// a failed load poisons this instance, while a fresh instance may still
// succeed. Inference calls are serialized through a mutex because the
// external runner rewrites its output directory in place.
type WhisperBackend struct {
	model    string
	device   string
	command  string
	cacheDir string
	logger   *slog.Logger

	loadOnce sync.Once
	loadErr  error

	inference sync.Mutex
	run       CommandRunner
}

// CommandRunner executes the external model runner. Injectable for tests.
type CommandRunner func(ctx context.Context, name string, args ...string) error

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// NewWhisperBackend constructs the local transcription backend.
func NewWhisperBackend(cfg *config.Config, logger *slog.Logger) *WhisperBackend {
	return &WhisperBackend{
		model:    cfg.Whisper.Model,
		device:   cfg.Whisper.Device,
		command:  cfg.Whisper.Command,
		cacheDir: cfg.Paths.ModelCacheDir,
		logger:   logging.NewComponentLogger(logger, "whisper"),
		run:      defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (b *WhisperBackend) WithCommandRunner(r CommandRunner) {
	if b != nil && r != nil {
		b.run = r
	}
}

// load resolves the model once per instance. The model cache directory is
// guarded by a file lock so two concurrent processes do not race on the
// first download.
func (b *WhisperBackend) load(ctx context.Context) error {
	b.loadOnce.Do(func() {
		model := strings.TrimSpace(b.model)
		known := false
		for _, name := range config.WhisperModels {
			if name == model {
				known = true
				break
			}
		}
		if !known {
			b.loadErr = services.Wrap(services.ErrModelLoad, "transcribe", "load model",
				fmt.Sprintf("unknown model %q", model), nil)
			return
		}
		if _, err := exec.LookPath(b.command); err != nil {
			b.loadErr = services.Wrap(services.ErrModelLoad, "transcribe", "load model",
				fmt.Sprintf("model runner %q not found", b.command), err)
			return
		}
		if b.cacheDir != "" {
			if err := os.MkdirAll(b.cacheDir, 0o755); err != nil {
				b.loadErr = services.Wrap(services.ErrModelLoad, "transcribe", "load model",
					"create model cache directory", err)
				return
			}
		}
		b.logger.Info("model resolved",
			logging.String("model", model),
			logging.String("device", b.device),
		)
	})
	return b.loadErr
}

// Transcribe runs the model over the audio asset and returns one segment per
// recognized utterance. Out-of-order model output is rejected with
// ErrMalformedTranscript rather than repaired.
func (b *WhisperBackend) Transcribe(ctx context.Context, audio media.Asset, languageHint string) (subtitles.Transcript, error) {
	if !audio.Exists() {
		return subtitles.Transcript{}, services.Wrap(services.ErrMediaNotFound, "transcribe", "check input",
			fmt.Sprintf("audio file not found: %s", audio.Path), nil)
	}
	if err := b.load(ctx); err != nil {
		return subtitles.Transcript{}, err
	}

	b.inference.Lock()
	defer b.inference.Unlock()

	outputDir, err := os.MkdirTemp("", "scribe-whisper-*")
	if err != nil {
		return subtitles.Transcript{}, fmt.Errorf("create output directory: %w", err)
	}
	defer os.RemoveAll(outputDir)

	unlock, err := b.lockModelCache()
	if err != nil {
		return subtitles.Transcript{}, err
	}

	args := b.buildArgs(audio.Path, outputDir, languageHint)
	b.logger.Debug("running model",
		logging.String("source_file", audio.Path),
		logging.String("model", b.model),
	)
	start := time.Now()
	runErr := b.run(ctx, b.command, args...)
	unlock()
	if runErr != nil {
		return subtitles.Transcript{}, services.Wrap(services.ErrModelRun, "transcribe", "run model",
			"model execution failed", runErr)
	}

	payload, err := loadWhisperOutput(whisperOutputPath(outputDir, audio.Path))
	if err != nil {
		return subtitles.Transcript{}, services.Wrap(services.ErrMalformedTranscript, "transcribe", "parse output",
			"model produced unreadable output", err)
	}

	segments := make([]subtitles.Segment, 0, len(payload.Segments))
	for _, seg := range payload.Segments {
		segments = append(segments, subtitles.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	normalized, _, err := subtitles.Normalize(segments, subtitles.Strict)
	if err != nil {
		return subtitles.Transcript{}, err
	}

	language := strings.TrimSpace(payload.Language)
	if language == "" {
		language = strings.TrimSpace(languageHint)
	}
	b.logger.Info("transcription complete",
		logging.Int("segments", len(normalized)),
		logging.String("language", language),
		logging.Duration("elapsed", time.Since(start)),
	)
	return subtitles.Transcript{Segments: normalized, Language: language, Source: audio.Path}, nil
}

func (b *WhisperBackend) lockModelCache() (func(), error) {
	if b.cacheDir == "" {
		return func() {}, nil
	}
	lock := flock.New(filepath.Join(b.cacheDir, ".scribe.lock"))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock model cache: %w", err)
	}
	return func() { _ = lock.Unlock() }, nil
}

func (b *WhisperBackend) buildArgs(source, outputDir, languageHint string) []string {
	args := []string{
		source,
		"--model", b.model,
		"--output_dir", outputDir,
		"--output_format", "json",
		"--verbose", "False",
	}
	if b.device != "" {
		args = append(args, "--device", b.device)
	}
	if b.cacheDir != "" {
		args = append(args, "--model_dir", b.cacheDir)
	}
	if lang := strings.TrimSpace(languageHint); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

func whisperOutputPath(outputDir, audioPath string) string {
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(outputDir, stem+".json")
}
