package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantWork := filepath.Join(tempHome, ".local", "share", "scribe", "work")
	if cfg.Paths.WorkDir != wantWork {
		t.Fatalf("unexpected work dir: got %q want %q", cfg.Paths.WorkDir, wantWork)
	}
	if cfg.Whisper.Model != "base" {
		t.Fatalf("unexpected whisper model: %q", cfg.Whisper.Model)
	}
	if cfg.Cloud.Enabled {
		t.Fatal("expected cloud backend disabled by default")
	}
	if cfg.Cloud.PollInterval != 5 {
		t.Fatalf("unexpected poll interval: %d", cfg.Cloud.PollInterval)
	}
	if cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 {
		t.Fatalf("unexpected audio defaults: %+v", cfg.Audio)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[whisper]
model = "small"
device = "CUDA"

[cloud]
enabled = true
base_url = "https://transcribe.example.com/"
bucket = "subtitles"

[translation]
enabled = true
url = "http://translate.local:5000/"
target_language = "es"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Whisper.Model != "small" {
		t.Fatalf("unexpected model: %q", cfg.Whisper.Model)
	}
	if cfg.Whisper.Device != "cuda" {
		t.Fatalf("expected lowercased device, got %q", cfg.Whisper.Device)
	}
	if cfg.Cloud.BaseURL != "https://transcribe.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Cloud.BaseURL)
	}
	if cfg.Translation.URL != "http://translate.local:5000" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Translation.URL)
	}
}

func TestLoadValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bad model",
			content: "[whisper]\nmodel = \"enormous\"\n",
			want:    "whisper.model",
		},
		{
			name:    "cloud missing bucket",
			content: "[cloud]\nenabled = true\nbase_url = \"https://svc\"\n",
			want:    "cloud.bucket",
		},
		{
			name:    "translation missing target",
			content: "[translation]\nenabled = true\n",
			want:    "translation.target_language",
		},
		{
			name:    "bad log level",
			content: "[logging]\nlevel = \"verbose\"\n",
			want:    "logging.level",
		},
		{
			name:    "poll timeout below interval",
			content: "[cloud]\nenabled = true\nbase_url = \"https://svc\"\nbucket = \"b\"\npoll_interval = 10\npoll_timeout = 5\n",
			want:    "poll_timeout",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error %q", tc.want, err.Error())
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Whisper.Model != config.Default().Whisper.Model {
		t.Fatalf("sample config diverges from defaults: %q", cfg.Whisper.Model)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ModelCacheDir = filepath.Join(base, "models")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.WorkDir, cfg.Paths.LogDir, cfg.Paths.ModelCacheDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist", dir)
		}
	}
}
