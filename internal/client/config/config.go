package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the user-management CLI.
//
// Fields:
//   - APIBaseURL: base URL of the remote user service; /users is appended.
//   - RequestTimeout: per-call timeout of remote requests.
//   - UsernamePrefix: prefix of usernames derived for new users.
//   - LogLevel / LogFormat: see logging.New.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	UsernamePrefix string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://jsonplaceholder.typicode.com"
	c.RequestTimeout = 10 * time.Second
	c.UsernamePrefix = "USER-"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and an optional .env file), JSON (if present) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, args)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
