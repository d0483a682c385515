package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func quietRemove(t *testing.T) {
	t.Helper()
	old := removeQuiet
	removeQuiet = true
	t.Cleanup(func() { removeQuiet = old })
}

func TestRemoveCommand(t *testing.T) {
	if removeCmd == nil {
		t.Fatal("removeCmd is nil")
	}
	if removeCmd.Use != "remove <executable-or-directory>" {
		t.Errorf("removeCmd.Use = %q, want %q", removeCmd.Use, "remove <executable-or-directory>")
	}
	if removeCmd.Short == "" {
		t.Error("removeCmd.Short is empty")
	}
	if removeCmd.RunE == nil {
		t.Error("removeCmd.RunE is nil")
	}
}

func TestRemoveFlags(t *testing.T) {
	flag := removeCmd.Flags().Lookup("quiet")
	if flag == nil {
		t.Fatal("flag \"quiet\" not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("flag \"quiet\" default = %q, want %q", flag.DefValue, "false")
	}
}

func TestRunRemove_Directory(t *testing.T) {
	setTestPaths(t)
	quietRemove(t)

	gameDir := t.TempDir()
	for _, name := range []string{"d3d11.dll", "dxgi.dll", "game.exe", "data.pak"} {
		if err := os.WriteFile(filepath.Join(gameDir, name), []byte(name), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	if err := runRemove(removeCmd, []string{gameDir}); err != nil {
		t.Fatalf("runRemove() failed: %v", err)
	}

	for _, name := range []string{"d3d11.dll", "dxgi.dll"} {
		if _, err := os.Stat(filepath.Join(gameDir, name)); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s still present after remove", name)
		}
	}
	for _, name := range []string{"game.exe", "data.pak"} {
		if _, err := os.Stat(filepath.Join(gameDir, name)); err != nil {
			t.Errorf("unrelated file %s was deleted", name)
		}
	}
}

func TestRunRemove_ExecutableArgument(t *testing.T) {
	setTestPaths(t)
	quietRemove(t)

	gameDir := t.TempDir()
	exe := filepath.Join(gameDir, "game.exe")
	if err := os.WriteFile(exe, []byte("exe"), 0644); err != nil {
		t.Fatalf("failed to write exe: %v", err)
	}
	if err := os.WriteFile(filepath.Join(gameDir, "d3d9.dll"), []byte("dll"), 0644); err != nil {
		t.Fatalf("failed to write dll: %v", err)
	}

	// Passing the executable cleans its directory.
	if err := runRemove(removeCmd, []string{exe}); err != nil {
		t.Fatalf("runRemove() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(gameDir, "d3d9.dll")); !errors.Is(err, os.ErrNotExist) {
		t.Error("d3d9.dll still present after remove")
	}
	if _, err := os.Stat(exe); err != nil {
		t.Error("executable was deleted by remove")
	}
}

func TestRunRemove_MissingTarget(t *testing.T) {
	setTestPaths(t)
	quietRemove(t)

	err := runRemove(removeCmd, []string{filepath.Join(t.TempDir(), "gone")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("runRemove() for missing target = %v, want os.ErrNotExist", err)
	}
}
