package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkDir       string `toml:"work_dir"`
	LogDir        string `toml:"log_dir"`
	ModelCacheDir string `toml:"model_cache_dir"`
}

// Whisper contains configuration for the local transcription backend.
type Whisper struct {
	Model    string `toml:"model"`
	Device   string `toml:"device"`
	Language string `toml:"language"`
	Command  string `toml:"command"`
}

// Cloud contains configuration for the remote transcription backend.
type Cloud struct {
	Enabled          bool   `toml:"enabled"`
	BaseURL          string `toml:"base_url"`
	Bucket           string `toml:"bucket"`
	APIKey           string `toml:"api_key"`
	MediaFormat      string `toml:"media_format"`
	PollInterval     int    `toml:"poll_interval"`
	PollTimeout      int    `toml:"poll_timeout"`
	SentenceGrouping bool   `toml:"sentence_grouping"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
}

// Translation contains configuration for the LibreTranslate-compatible
// translation service.
type Translation struct {
	Enabled        bool   `toml:"enabled"`
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	TargetLanguage string `toml:"target_language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Audio contains the extraction target spec handed to ffmpeg.
type Audio struct {
	SampleRate int    `toml:"sample_rate"`
	Channels   int    `toml:"channels"`
	Bitrate    string `toml:"bitrate"`
	Codec      string `toml:"codec"`
	Format     string `toml:"format"`
}

// Mux contains configuration for embedding subtitles into video containers.
type Mux struct {
	SubtitleCodec string `toml:"subtitle_codec"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for scribe.
//
// Configuration sections by subsystem:
//   - Paths: working, log, and model cache directories
//   - Whisper: local transcription model settings
//   - Cloud: remote transcription job settings
//   - Translation: LibreTranslate connection settings
//   - Audio: extraction target spec
//   - Mux: subtitle embedding settings
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Whisper     Whisper     `toml:"whisper"`
	Cloud       Cloud       `toml:"cloud"`
	Translation Translation `toml:"translation"`
	Audio       Audio       `toml:"audio"`
	Mux         Mux         `toml:"mux"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scribe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.LogDir, c.Paths.ModelCacheDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for extraction and muxing.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.ModelCacheDir, err = expandPath(c.Paths.ModelCacheDir); err != nil {
		return err
	}

	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	c.Whisper.Device = strings.ToLower(strings.TrimSpace(c.Whisper.Device))
	c.Whisper.Language = strings.TrimSpace(c.Whisper.Language)
	c.Whisper.Command = strings.TrimSpace(c.Whisper.Command)

	c.Cloud.BaseURL = strings.TrimRight(strings.TrimSpace(c.Cloud.BaseURL), "/")
	c.Cloud.Bucket = strings.TrimSpace(c.Cloud.Bucket)
	c.Cloud.MediaFormat = strings.ToLower(strings.TrimSpace(c.Cloud.MediaFormat))

	c.Translation.URL = strings.TrimRight(strings.TrimSpace(c.Translation.URL), "/")
	c.Translation.TargetLanguage = strings.TrimSpace(c.Translation.TargetLanguage)

	c.Audio.Codec = strings.TrimSpace(c.Audio.Codec)
	c.Audio.Format = strings.ToLower(strings.TrimSpace(c.Audio.Format))
	c.Mux.SubtitleCodec = strings.TrimSpace(c.Mux.SubtitleCodec)

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
