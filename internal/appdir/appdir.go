// Package appdir provides names and locations for taskmgr's files.
package appdir

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// Name is the application name used in directory and file names.
	Name = "taskmgr"

	// Dir is the name of the per-user state directory under $HOME.
	Dir = ".taskmgr"

	// DefaultTaskFile is the default task file name.
	DefaultTaskFile = "tasks.json"

	// DefaultConfigFile is the config file name.
	DefaultConfigFile = "taskmgr.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".taskmgr.toml"
)

// ProjectConfigNames returns project config file names in lookup order.
func ProjectConfigNames() []string {
	return []string{DefaultConfigFile, HiddenConfigFile}
}

// UserConfigCandidates returns user config file paths in lookup order:
// ~/.taskmgr/taskmgr.toml, then the OS-specific config directory.
func UserConfigCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, Dir, DefaultConfigFile))
	}
	if cfgDir := OSConfigDir(); cfgDir != "" {
		paths = append(paths, filepath.Join(cfgDir, Name, DefaultConfigFile))
	}
	return paths
}

// OSConfigDir returns the OS-specific user config directory,
// or "" if it cannot be determined.
func OSConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}
