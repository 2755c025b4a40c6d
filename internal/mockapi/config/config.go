// Package config handles configuration for the mock users API, including
// defaults, the environment (with an optional .env file) and command-line
// flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the mock users API.
//
// Fields:
//   - Addr: bind address of the HTTP endpoint.
//   - Seed: start with the sample users instead of an empty list.
//   - LogLevel / LogFormat: see logging.New.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	Addr            string
	Seed            bool
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8081"
	c.Seed = true
	c.LogLevel = "info"
	c.LogFormat = "logrus"
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment and finally from command-line flags.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
