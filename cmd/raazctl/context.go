package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/naddyballia/Raaz-Music/internal/adapter/catalog/sqlite"
	"github.com/naddyballia/Raaz-Music/internal/config"
	"github.com/naddyballia/Raaz-Music/internal/logger"
)

// commandContext lazily loads the configuration and opens the catalog
// database, sharing both across subcommands.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	storeOnce sync.Once
	store     *sqlite.Store
	storeErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
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

func (c *commandContext) ensureStore() (*sqlite.Store, error) {
	c.storeOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.storeErr = err
			return
		}
		store, err := sqlite.Open(cfg.DatabaseFile())
		if err != nil {
			c.storeErr = err
			return
		}
		c.store = store
	})
	return c.store, c.storeErr
}

// logger returns a logger configured from the loaded config, or a default
// one when the config failed to load.
func (c *commandContext) logger() *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return logger.NewLogger(logger.DefaultConfig())
	}
	return logger.NewLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
}

func (c *commandContext) close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
