package main

import (
	"log/slog"
	"strings"
	"sync"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/pipeline"
	"scribe/internal/runstore"
	"scribe/internal/transcribe"
	"scribe/internal/translate"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) translationClient(cfg *config.Config) *translate.Client {
	return translate.NewClient(translate.ClientConfig{
		URL:            cfg.Translation.URL,
		APIKey:         cfg.Translation.APIKey,
		TimeoutSeconds: cfg.Translation.TimeoutSeconds,
	})
}

// newPipeline assembles the full pipeline, wiring translation and run
// history when they are configured.
func (c *commandContext) newPipeline(cfg *config.Config, logger *slog.Logger, translateOverride bool) (*pipeline.Pipeline, func(), error) {
	p := pipeline.New(cfg, transcribe.Select(cfg, logger), logger)

	if cfg.Translation.Enabled || translateOverride {
		p.WithTranslator(translate.NewTranslator(cfg, c.translationClient(cfg), logger))
	}

	cleanup := func() {}
	store, err := runstore.Open(cfg)
	if err != nil {
		logger.Warn("run history unavailable", logging.Error(err))
	} else {
		p.WithStore(store)
		cleanup = func() { store.Close() }
	}
	return p, cleanup, nil
}
