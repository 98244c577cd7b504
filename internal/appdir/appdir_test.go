package appdir

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestProjectConfigNames(t *testing.T) {
	names := ProjectConfigNames()
	if len(names) != 2 || names[0] != "taskmgr.toml" || names[1] != ".taskmgr.toml" {
		t.Errorf("ProjectConfigNames() = %v", names)
	}
}

func TestUserConfigCandidates(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is linux-specific")
	}
	home := t.TempDir()
	xdg := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", xdg)

	got := UserConfigCandidates()
	want := []string{
		filepath.Join(home, ".taskmgr", "taskmgr.toml"),
		filepath.Join(xdg, "taskmgr", "taskmgr.toml"),
	}
	if len(got) != len(want) {
		t.Fatalf("UserConfigCandidates() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOSConfigDir_XDGFallback(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is linux-specific")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	if got, want := OSConfigDir(), filepath.Join(home, ".config"); got != want {
		t.Errorf("OSConfigDir() = %q, want %q", got, want)
	}
}
