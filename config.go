package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds run settings. Environment variables provide the defaults and
// command-line flags override them.
type Config struct {
	Verbose  int    `env:"BDRSYNC_VERBOSE"   envDefault:"0"`
	UI       bool   `env:"BDRSYNC_UI"`
	DryRun   bool   `env:"BDRSYNC_DRY_RUN"`
	Force    bool   `env:"BDRSYNC_FORCE"`
	LogLevel string `env:"BDRSYNC_LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, errors.Wrap(err, "environment")
	}
	return cfg, nil
}

// logLevel raises the configured level to debug at -vv unless a level was
// chosen explicitly.
func (c Config) logLevel(explicit bool) string {
	if !explicit && c.Verbose >= 2 {
		return "debug"
	}
	return c.LogLevel
}
