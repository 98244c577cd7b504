package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskmgr configuration file
# Values can be overridden by TASKMGR_* environment variables or CLI flags

# Task file (relative to the working directory)
task_file = "tasks.json"

# Optional JSON Schema replacing the built-in task file schema
# schema_file = "tasks.schema.json"

# ID assigned to new tasks: "length" (task count + 1) or "max" (highest ID + 1)
id_scheme = "length"

# Logging
log_level = "info"     # debug, info, warn, error
log_format = "text"    # text, json, logfmt
log_timestamps = false
log_caller = false
# log_file = "~/.taskmgr/taskmgr.log"
`
}
