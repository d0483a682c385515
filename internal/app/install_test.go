package app

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/candlewick-labs/dxvkctl/internal/dxvk"
	"github.com/candlewick-labs/dxvkctl/internal/store"
)

// setTestPaths points the global --db and --package-root values at a temp
// directory for the duration of the test.
func setTestPaths(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	oldDB, oldRoot := dbPath, packageRoot
	dbPath = filepath.Join(dir, "dxvkctl.db")
	packageRoot = filepath.Join(dir, "packages")
	if err := os.MkdirAll(packageRoot, 0755); err != nil {
		t.Fatalf("failed to create package root: %v", err)
	}
	t.Cleanup(func() {
		dbPath, packageRoot = oldDB, oldRoot
	})
	return dir
}

// writeTestExe writes a minimal executable with the given optional header
// magic and embedded DLL name references.
func writeTestExe(t *testing.T, path string, magic uint16, refs ...string) {
	t.Helper()
	buf := make([]byte, 0x40+4+20+2)
	buf[0] = 'M'
	buf[1] = 'Z'
	binary.LittleEndian.PutUint32(buf[0x3c:], 0x40)
	copy(buf[0x40:], []byte{'P', 'E', 0, 0})
	binary.LittleEndian.PutUint16(buf[0x40+4+20:], magic)
	for _, r := range refs {
		buf = append(buf, 0x00)
		buf = append(buf, []byte(r)...)
		buf = append(buf, 0x00)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("failed to write exe: %v", err)
	}
}

// makePackage creates a dxvk-<version> directory with the given files, each
// holding its own name as content.
func makePackage(t *testing.T, version string, files ...string) string {
	t.Helper()
	pkgDir := filepath.Join(packageRoot, "dxvk-"+version)
	for _, f := range files {
		path := filepath.Join(pkgDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create package dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(f), 0644); err != nil {
			t.Fatalf("failed to write package file: %v", err)
		}
	}
	return pkgDir
}

func quietInstall(t *testing.T) {
	t.Helper()
	oldQuiet, oldDry, oldAPI := installQuiet, installDryRun, installAPI
	installQuiet = true
	t.Cleanup(func() {
		installQuiet, installDryRun, installAPI = oldQuiet, oldDry, oldAPI
	})
}

func TestInstallCommand(t *testing.T) {
	if installCmd == nil {
		t.Fatal("installCmd is nil")
	}
	if installCmd.Use != "install <executable>" {
		t.Errorf("installCmd.Use = %q, want %q", installCmd.Use, "install <executable>")
	}
	if installCmd.Short == "" {
		t.Error("installCmd.Short is empty")
	}
	if installCmd.RunE == nil {
		t.Error("installCmd.RunE is nil")
	}
}

func TestInstallFlags(t *testing.T) {
	tests := []struct {
		flagName string
		defValue string
	}{
		{"dry-run", "false"},
		{"api", "0"},
		{"quiet", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := installCmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("flag %q not found", tt.flagName)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("flag %q default = %q, want %q", tt.flagName, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestRunInstall_DX11(t *testing.T) {
	dir := setTestPaths(t)
	quietInstall(t)
	makePackage(t, "2.5.3",
		"x64/d3d11.dll", "x64/d3d10core.dll", "x64/dxgi.dll")

	gameDir := filepath.Join(dir, "game")
	if err := os.MkdirAll(gameDir, 0755); err != nil {
		t.Fatalf("failed to create game dir: %v", err)
	}
	exe := filepath.Join(gameDir, "game.exe")
	writeTestExe(t, exe, 0x20b, "d3d11.dll")

	if err := runInstall(installCmd, []string{exe}); err != nil {
		t.Fatalf("runInstall() failed: %v", err)
	}

	for _, name := range []string{"d3d11.dll", "d3d10core.dll", "dxgi.dll"} {
		if _, err := os.Stat(filepath.Join(gameDir, name)); err != nil {
			t.Errorf("%s not installed: %v", name, err)
		}
	}

	// The deployment must be recorded in the ledger.
	db, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer db.Close()

	d, err := db.GetDeployment(exe)
	if err != nil {
		t.Fatalf("GetDeployment() failed: %v", err)
	}
	if d.Arch != 64 || d.APIVersion != 11 || d.DXVKVersion != "2.5.3" {
		t.Errorf("deployment = arch %d api %d version %s, want 64/11/2.5.3",
			d.Arch, d.APIVersion, d.DXVKVersion)
	}
	if len(d.Files) != 3 {
		t.Errorf("deployment recorded %d files, want 3", len(d.Files))
	}
}

func TestRunInstall_DryRunWritesNothing(t *testing.T) {
	dir := setTestPaths(t)
	quietInstall(t)
	installDryRun = true
	makePackage(t, "2.5.3", "x32/d3d9.dll")

	gameDir := filepath.Join(dir, "game")
	if err := os.MkdirAll(gameDir, 0755); err != nil {
		t.Fatalf("failed to create game dir: %v", err)
	}
	exe := filepath.Join(gameDir, "game.exe")
	writeTestExe(t, exe, 0x10b, "d3d9.dll")

	if err := runInstall(installCmd, []string{exe}); err != nil {
		t.Fatalf("runInstall() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(gameDir, "d3d9.dll")); !errors.Is(err, os.ErrNotExist) {
		t.Error("dry-run wrote d3d9.dll into the game directory")
	}
}

func TestRunInstall_APIOverride(t *testing.T) {
	dir := setTestPaths(t)
	quietInstall(t)
	makePackage(t, "2.5.3", "x64/d3d9.dll")

	gameDir := filepath.Join(dir, "game")
	if err := os.MkdirAll(gameDir, 0755); err != nil {
		t.Fatalf("failed to create game dir: %v", err)
	}
	// No DLL references at all; only the override makes this installable.
	exe := filepath.Join(gameDir, "game.exe")
	writeTestExe(t, exe, 0x20b)

	installAPI = 9
	if err := runInstall(installCmd, []string{exe}); err != nil {
		t.Fatalf("runInstall() with --api 9 failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(gameDir, "d3d9.dll")); err != nil {
		t.Errorf("d3d9.dll not installed: %v", err)
	}
}

func TestRunInstall_InvalidAPIOverride(t *testing.T) {
	dir := setTestPaths(t)
	quietInstall(t)

	exe := filepath.Join(dir, "game.exe")
	writeTestExe(t, exe, 0x20b, "d3d11.dll")

	installAPI = 12
	err := runInstall(installCmd, []string{exe})
	if !errors.Is(err, dxvk.ErrUnsupportedVersion) {
		t.Errorf("runInstall() with --api 12 = %v, want ErrUnsupportedVersion", err)
	}
}

func TestRunInstall_D3D12Detected(t *testing.T) {
	dir := setTestPaths(t)
	quietInstall(t)
	makePackage(t, "2.5.3", "x64/d3d11.dll")

	gameDir := filepath.Join(dir, "game")
	if err := os.MkdirAll(gameDir, 0755); err != nil {
		t.Fatalf("failed to create game dir: %v", err)
	}
	exe := filepath.Join(gameDir, "game.exe")
	writeTestExe(t, exe, 0x20b, "d3d12.dll")

	err := runInstall(installCmd, []string{exe})
	if !errors.Is(err, dxvk.ErrUnsupportedVersion) {
		t.Errorf("runInstall() for d3d12 binary = %v, want ErrUnsupportedVersion", err)
	}

	// Nothing may be written for an unsupported version.
	entries, readErr := os.ReadDir(gameDir)
	if readErr != nil {
		t.Fatalf("failed to read game dir: %v", readErr)
	}
	if len(entries) != 1 {
		t.Errorf("game dir has %d entries after failed install, want 1", len(entries))
	}
}

func TestRunInstall_NoPackage(t *testing.T) {
	dir := setTestPaths(t)
	quietInstall(t)

	exe := filepath.Join(dir, "game.exe")
	writeTestExe(t, exe, 0x20b, "d3d11.dll")

	err := runInstall(installCmd, []string{exe})
	if !errors.Is(err, dxvk.ErrPackageNotFound) {
		t.Errorf("runInstall() with empty package root = %v, want ErrPackageNotFound", err)
	}
}

func TestRunInstall_MissingExecutable(t *testing.T) {
	dir := setTestPaths(t)
	quietInstall(t)

	err := runInstall(installCmd, []string{filepath.Join(dir, "gone.exe")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("runInstall() for missing file = %v, want os.ErrNotExist", err)
	}
}
