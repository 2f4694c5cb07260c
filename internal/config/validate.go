package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateCloud(); err != nil {
		return err
	}
	if err := c.validateTranslation(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWhisper() error {
	if c.Whisper.Model == "" {
		return errors.New("whisper.model must be set")
	}
	if !slices.Contains(WhisperModels, c.Whisper.Model) {
		return fmt.Errorf("whisper.model must be one of %s", strings.Join(WhisperModels, ", "))
	}
	switch c.Whisper.Device {
	case "", "cpu", "cuda":
	default:
		return fmt.Errorf("whisper.device must be cpu or cuda, got %q", c.Whisper.Device)
	}
	return nil
}

func (c *Config) validateCloud() error {
	if !c.Cloud.Enabled {
		return nil
	}
	if c.Cloud.BaseURL == "" {
		return errors.New("cloud.base_url is required when cloud transcription is enabled")
	}
	if c.Cloud.Bucket == "" {
		return errors.New("cloud.bucket is required when cloud transcription is enabled")
	}
	if c.Cloud.PollInterval <= 0 {
		return errors.New("cloud.poll_interval must be positive")
	}
	if c.Cloud.PollTimeout <= 0 {
		return errors.New("cloud.poll_timeout must be positive")
	}
	if c.Cloud.PollTimeout < c.Cloud.PollInterval {
		return errors.New("cloud.poll_timeout must be at least cloud.poll_interval")
	}
	return nil
}

func (c *Config) validateTranslation() error {
	if !c.Translation.Enabled {
		return nil
	}
	if c.Translation.URL == "" {
		return errors.New("translation.url is required when translation is enabled")
	}
	if c.Translation.TargetLanguage == "" {
		return errors.New("translation.target_language is required when translation is enabled")
	}
	if c.Translation.TimeoutSeconds <= 0 {
		return errors.New("translation.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	if c.Audio.Channels <= 0 {
		return errors.New("audio.channels must be positive")
	}
	if c.Audio.Format == "" {
		return errors.New("audio.format must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
