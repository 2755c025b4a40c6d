package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/usermanager/internal/flagx"
)

const defaultEnvFile = ".env"

const (
	EnvAddr      = "MOCKAPI_ADDR"
	EnvSeed      = "MOCKAPI_SEED"
	EnvLogLevel  = "MOCKAPI_LOG_LEVEL"
	EnvLogFormat = "MOCKAPI_LOG_FORMAT"
)

// parseEnv loads the dotenv file (-e/-env, default .env) and overlays the
// MOCKAPI_* variables onto cfg. A missing default file is ignored; every
// other failure panics.
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

	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
}
