package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// isolate points HOME and XDG_CONFIG_HOME at empty temp dirs, clears
// TASKMGR_* variables and changes into a fresh working directory.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home = t.TempDir()
	wd = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, env := range []string{
		EnvTaskFile, EnvSchema, EnvIDScheme, EnvLogLevel,
		EnvLogFormat, EnvLogTimestamps, EnvLogCaller, EnvLogFile,
	} {
		t.Setenv(env, "")
	}
	t.Chdir(wd)
	return home, wd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.TaskFile != DefaultTaskFile {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, DefaultTaskFile)
	}
	if cfg.IDScheme != "length" {
		t.Errorf("IDScheme: got %q, want length", cfg.IDScheme)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: got %q, want text", cfg.LogFormat)
	}
	if cfg.SchemaFile != "" {
		t.Errorf("SchemaFile: got %q, want empty", cfg.SchemaFile)
	}
}

func TestLoad_Defaults(t *testing.T) {
	_, wd := isolate(t)

	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	cfg := cws.Config

	wantTask := filepath.Join(wd, "tasks.json")
	if cfg.TaskFile != wantTask {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, wantTask)
	}
	for _, field := range Fields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if cws.GetConfigFile() != "" {
		t.Errorf("GetConfigFile: got %q, want empty", cws.GetConfigFile())
	}
}

func TestLoad_Precedence(t *testing.T) {
	home, wd := isolate(t)

	writeFile(t, filepath.Join(home, ".taskmgr", "taskmgr.toml"), `
task_file = "user.json"
id_scheme = "max"
log_level = "debug"
log_format = "json"
`)
	writeFile(t, filepath.Join(wd, "taskmgr.toml"), `
task_file = "project.json"
log_level = "warn"
`)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogCaller, "yes")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"-log-format", "logfmt", "menu"})
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	cfg := cws.Config

	tests := []struct {
		field  string
		value  string
		source ConfigSource
	}{
		{"task_file", filepath.Join(wd, "project.json"), SourceProjFile},
		{"id_scheme", "max", SourceUserFile},
		{"log_level", "error", SourceEnv},
		{"log_caller", "true", SourceEnv},
		{"log_format", "logfmt", SourceFlag},
		{"log_timestamps", "false", SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := cfg.Value(tt.field); got != tt.value {
				t.Errorf("value: got %q, want %q", got, tt.value)
			}
			if got := cws.Sources[tt.field]; got != tt.source {
				t.Errorf("source: got %q, want %q", got, tt.source)
			}
		})
	}

	if got := fs.Args(); len(got) != 1 || got[0] != "menu" {
		t.Errorf("remaining args: got %v, want [menu]", got)
	}
	if cws.GetConfigFile() != "taskmgr.toml" {
		t.Errorf("GetConfigFile: got %q, want taskmgr.toml", cws.GetConfigFile())
	}
	if cws.UserFile == "" {
		t.Error("UserFile should be recorded")
	}
}

func TestLoad_HiddenProjectFile(t *testing.T) {
	_, wd := isolate(t)
	writeFile(t, filepath.Join(wd, ".taskmgr.toml"), `task_file = "hidden.json"`)

	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	cfg := cws.Config
	if want := filepath.Join(wd, "hidden.json"); cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}
}

func TestLoad_XDGUserFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is linux-specific")
	}
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "taskmgr", "taskmgr.toml"), `id_scheme = "max"`)

	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	if cws.Config.IDScheme != "max" || cws.Sources["id_scheme"] != SourceUserFile {
		t.Errorf("id_scheme: got %q from %q", cws.Config.IDScheme, cws.Sources["id_scheme"])
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		project string
		args    []string
		wantErr string
	}{
		{"bad toml", `task_file = `, nil, "loading project config file"},
		{"bad id scheme", `id_scheme = "random"`, nil, "invalid id scheme"},
		{"bad log level", "", []string{"-log-level", "loud"}, "invalid log_level"},
		{"bad log format", `log_format = "xml"`, nil, "invalid log_format"},
		{"unknown flag", "", []string{"-nope"}, "parsing flags"},
		{"empty task file", "", []string{"-file", ""}, "task_file must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, wd := isolate(t)
			if tt.project != "" {
				writeFile(t, filepath.Join(wd, "taskmgr.toml"), tt.project)
			}
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(&strings.Builder{})

			_, err := LoadWithSources(fs, tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_UnknownKeys(t *testing.T) {
	_, wd := isolate(t)
	writeFile(t, filepath.Join(wd, "taskmgr.toml"), "todo_file = \"old.json\"\n")

	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	if len(cws.UnknownKeys) != 1 || !strings.HasPrefix(cws.UnknownKeys[0], "todo_file") {
		t.Errorf("UnknownKeys: got %v", cws.UnknownKeys)
	}
}

func TestLoad_PathExpansion(t *testing.T) {
	home, _ := isolate(t)
	t.Setenv(EnvTaskFile, "~/lists/tasks.json")
	t.Setenv("TASKMGR_TEST_DIR", "logs")
	t.Setenv(EnvLogFile, "~/$TASKMGR_TEST_DIR/taskmgr.log")

	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	cfg := cws.Config
	if want := filepath.Join(home, "lists", "tasks.json"); cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}
	if want := filepath.Join(home, "logs", "taskmgr.log"); cfg.LogFile != want {
		t.Errorf("LogFile: got %q, want %q", cfg.LogFile, want)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKMGR_TEST_VAR", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/tasks.json", filepath.Join(home, "tasks.json")},
		{"$TASKMGR_TEST_VAR/tasks.json", "value/tasks.json"},
		{"relative/tasks.json", "relative/tasks.json"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := expandPath(tt.in); got != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	var cfg Config
	md, err := toml.Decode(ExampleConfig(), &cfg)
	if err != nil {
		t.Fatalf("example config does not decode: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		t.Errorf("example config has unknown keys: %v", undecoded)
	}

	var defaults Config
	setDefaults(&defaults)
	if cfg != defaults {
		t.Errorf("example config = %+v, want defaults %+v", cfg, defaults)
	}
}

func TestLoggingOptions(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json", LogCaller: true, LogFile: "/tmp/x.log"}
	opts := cfg.LoggingOptions()
	if opts.Level != "debug" || opts.Format != "json" || !opts.Caller || opts.File != "/tmp/x.log" {
		t.Errorf("LoggingOptions() = %+v", opts)
	}
	if opts.Prefix != "taskmgr" {
		t.Errorf("Prefix: got %q, want taskmgr", opts.Prefix)
	}
}
