// Package config loads runtime configuration for the user-management CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally read from a dotenv file (.env by
//     default, or the path given with -e / -env).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Environment variables
//
//	USERMGR_API_URL          base URL of the remote user service
//	USERMGR_REQUEST_TIMEOUT  request timeout, e.g. "5s"
//	USERMGR_USERNAME_PREFIX  prefix of derived usernames
//	USERMGR_LOG_LEVEL        debug | info | warn | error
//	USERMGR_LOG_FORMAT       text | json | logrus
//
// Supported flags
//
//	-a string   base URL of the remote user service
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8081",
//	  "request_timeout": "5s",
//	  "username_prefix": "USER-",
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
package config
