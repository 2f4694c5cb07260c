package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/services"
	"scribe/internal/subtitles"
)

func whisperConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Whisper.Model = "base"
	cfg.Whisper.Device = "cpu"
	// The default runner is replaced in tests, but the load step still
	// resolves the command on PATH.
	cfg.Whisper.Command = "sh"
	cfg.Paths.ModelCacheDir = t.TempDir()
	return &cfg
}

// stubWhisperRunner writes the given payload where the real runner would:
// <output_dir>/<audio stem>.json.
func stubWhisperRunner(t *testing.T, payload whisperPayload) CommandRunner {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) error {
		source := args[0]
		var outputDir string
		for i, arg := range args {
			if arg == "--output_dir" && i+1 < len(args) {
				outputDir = args[i+1]
			}
		}
		if outputDir == "" {
			t.Fatal("runner invoked without --output_dir")
		}
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		return os.WriteFile(whisperOutputPath(outputDir, source), data, 0o644)
	}
}

func TestWhisperTranscribeParsesModelOutput(t *testing.T) {
	backend := NewWhisperBackend(whisperConfig(t), logging.NewNop())
	backend.WithCommandRunner(stubWhisperRunner(t, whisperPayload{
		Text:     "hello world",
		Language: "en",
		Segments: []whisperSegment{
			{Start: 0, End: 2.5, Text: " hello "},
			{Start: 2.5, End: 4, Text: "world"},
		},
	}))

	transcript, err := backend.Transcribe(context.Background(), testAudio(t), "")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	want := []subtitles.Segment{
		{Index: 1, Start: 0, End: 2.5, Text: "hello"},
		{Index: 2, Start: 2.5, End: 4, Text: "world"},
	}
	if len(transcript.Segments) != len(want) {
		t.Fatalf("expected %d segments, got %+v", len(want), transcript.Segments)
	}
	for i, seg := range transcript.Segments {
		if seg != want[i] {
			t.Fatalf("segment %d: got %+v want %+v", i, seg, want[i])
		}
	}
	if transcript.Language != "en" {
		t.Fatalf("unexpected language %q", transcript.Language)
	}
}

func TestWhisperPassesLanguageHint(t *testing.T) {
	cfg := whisperConfig(t)
	backend := NewWhisperBackend(cfg, logging.NewNop())

	var captured []string
	backend.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		captured = args
		return stubWhisperRunner(t, whisperPayload{
			Segments: []whisperSegment{{Start: 0, End: 1, Text: "hola"}},
		})(ctx, name, args...)
	})

	transcript, err := backend.Transcribe(context.Background(), testAudio(t), "es")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if !hasFlagValue(captured, "--language", "es") {
		t.Fatalf("expected --language es in args, got %v", captured)
	}
	if !hasFlagValue(captured, "--model", "base") {
		t.Fatalf("expected --model base in args, got %v", captured)
	}
	if !hasFlagValue(captured, "--model_dir", cfg.Paths.ModelCacheDir) {
		t.Fatalf("expected --model_dir in args, got %v", captured)
	}
	// Payload carries no detected language; the hint fills in.
	if transcript.Language != "es" {
		t.Fatalf("expected hint as fallback language, got %q", transcript.Language)
	}
}

func hasFlagValue(args []string, flag, value string) bool {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestWhisperUnknownModelPoisonsInstance(t *testing.T) {
	cfg := whisperConfig(t)
	cfg.Whisper.Model = "gigantic"
	backend := NewWhisperBackend(cfg, logging.NewNop())

	runs := 0
	backend.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		runs++
		return nil
	})

	audio := testAudio(t)
	for range 2 {
		_, err := backend.Transcribe(context.Background(), audio, "")
		if !errors.Is(err, services.ErrModelLoad) {
			t.Fatalf("expected ErrModelLoad, got %v", err)
		}
	}
	if runs != 0 {
		t.Fatalf("runner must not execute after failed load, ran %d times", runs)
	}

	// A fresh instance with a valid model is unaffected.
	cfg.Whisper.Model = "base"
	fresh := NewWhisperBackend(cfg, logging.NewNop())
	fresh.WithCommandRunner(stubWhisperRunner(t, whisperPayload{
		Segments: []whisperSegment{{Start: 0, End: 1, Text: "ok"}},
	}))
	if _, err := fresh.Transcribe(context.Background(), audio, ""); err != nil {
		t.Fatalf("fresh instance failed: %v", err)
	}
}

func TestWhisperRejectsOutOfOrderOutput(t *testing.T) {
	backend := NewWhisperBackend(whisperConfig(t), logging.NewNop())
	backend.WithCommandRunner(stubWhisperRunner(t, whisperPayload{
		Segments: []whisperSegment{
			{Start: 2, End: 4, Text: "second"},
			{Start: 0, End: 2, Text: "first"},
		},
	}))

	_, err := backend.Transcribe(context.Background(), testAudio(t), "")
	if !errors.Is(err, services.ErrMalformedTranscript) {
		t.Fatalf("expected ErrMalformedTranscript, got %v", err)
	}
}

func TestWhisperMissingAudio(t *testing.T) {
	backend := NewWhisperBackend(whisperConfig(t), logging.NewNop())
	backend.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		t.Fatal("runner must not execute for missing input")
		return nil
	})

	missing := filepath.Join(t.TempDir(), "gone.wav")
	_, err := backend.Transcribe(context.Background(), media.Asset{Path: missing}, "")
	if !errors.Is(err, services.ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestWhisperRunnerFailureWrapped(t *testing.T) {
	backend := NewWhisperBackend(whisperConfig(t), logging.NewNop())
	backend.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("CUDA out of memory")
	})

	_, err := backend.Transcribe(context.Background(), testAudio(t), "")
	if !errors.Is(err, services.ErrModelRun) {
		t.Fatalf("expected ErrModelRun, got %v", err)
	}
	if errors.Is(err, services.ErrTranscode) || errors.Is(err, services.ErrModelLoad) {
		t.Fatalf("model run failure must carry its own marker, got %v", err)
	}
}
