package config

import (
	"github.com/nibzard/taskmgr/internal/appdir"
	"github.com/nibzard/taskmgr/internal/logging"
	"github.com/nibzard/taskmgr/internal/todo"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// UserFile and ProjectFile are the config files that were read, if any.
	UserFile    string
	ProjectFile string

	// UnknownKeys lists keys present in a config file that no field uses.
	UnknownKeys []string
}

// Default values.
const (
	DefaultTaskFile  = appdir.DefaultTaskFile
	DefaultIDScheme  = string(todo.IDSchemeLength)
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for taskmgr.
type Config struct {
	// Paths
	TaskFile   string `toml:"task_file"`
	SchemaFile string `toml:"schema_file"` // optional JSON Schema replacing the embedded one

	// ID assignment for new tasks: "length" or "max"
	IDScheme string `toml:"id_scheme"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogFile       string `toml:"log_file"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// Scheme returns the configured ID scheme. Invalid values were rejected at load.
func (c *Config) Scheme() todo.IDScheme {
	scheme, err := todo.ParseIDScheme(c.IDScheme)
	if err != nil {
		return todo.IDSchemeLength
	}
	return scheme
}

// LoggingOptions returns the logger options described by the config.
func (c *Config) LoggingOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.LogLevel
	opts.Format = c.LogFormat
	opts.Timestamps = c.LogTimestamps
	opts.Caller = c.LogCaller
	opts.File = c.LogFile
	return opts
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"schema_file",
		"id_scheme",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_file",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// Value returns the display value of a configurable field.
func (c *Config) Value(field string) string {
	switch field {
	case "task_file":
		return c.TaskFile
	case "schema_file":
		return c.SchemaFile
	case "id_scheme":
		return c.IDScheme
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return boolString(c.LogTimestamps)
	case "log_caller":
		return boolString(c.LogCaller)
	case "log_file":
		return c.LogFile
	}
	return ""
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
