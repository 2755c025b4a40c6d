package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/usermanager/internal/flagx"
)

const defaultEnvFile = ".env"

// Environment variable names.
const (
	EnvAPIURL         = "USERMGR_API_URL"
	EnvRequestTimeout = "USERMGR_REQUEST_TIMEOUT"
	EnvUsernamePrefix = "USERMGR_USERNAME_PREFIX"
	EnvLogLevel       = "USERMGR_LOG_LEVEL"
	EnvLogFormat      = "USERMGR_LOG_FORMAT"
)

// parseEnv loads the dotenv file into the process environment (variables
// already set win) and overlays the USERMGR_* variables onto cfg.
//
// A missing default .env is ignored; a missing file named explicitly with
// -e/-env, a broken file or an unparsable timeout panics.
func parseEnv(cfg *Config, args []string) {
	envFile := flagx.EnvFileFlag(args)
	explicit := envFile != ""
	if !explicit {
		envFile = defaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(EnvUsernamePrefix); v != "" {
		cfg.UsernamePrefix = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
}
