package config

import (
	"os"

	"github.com/nibzard/taskmgr/internal/utils"
)

// Environment variable names.
const (
	EnvTaskFile      = "TASKMGR_TASK_FILE"
	EnvSchema        = "TASKMGR_SCHEMA"
	EnvIDScheme      = "TASKMGR_ID_SCHEME"
	EnvLogLevel      = "TASKMGR_LOG_LEVEL"
	EnvLogFormat     = "TASKMGR_LOG_FORMAT"
	EnvLogTimestamps = "TASKMGR_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKMGR_LOG_CALLER"
	EnvLogFile       = "TASKMGR_LOG_FILE"
)

// loadFromEnv overrides config from environment variables and records
// each override in sources. Empty variables are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = utils.BoolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString(EnvTaskFile, "task_file", &cfg.TaskFile)
	setString(EnvSchema, "schema_file", &cfg.SchemaFile)
	setString(EnvIDScheme, "id_scheme", &cfg.IDScheme)
	setString(EnvLogLevel, "log_level", &cfg.LogLevel)
	setString(EnvLogFormat, "log_format", &cfg.LogFormat)
	setBool(EnvLogTimestamps, "log_timestamps", &cfg.LogTimestamps)
	setBool(EnvLogCaller, "log_caller", &cfg.LogCaller)
	setString(EnvLogFile, "log_file", &cfg.LogFile)
}
