package dxvk

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	version "github.com/hashicorp/go-version"
)

// packageDirPattern matches dxvk-2, dxvk-2.5, dxvk-2.5.3 and so on.
// Anything else (dxvk-beta, dxvk-2.5rc1) is not a package directory.
var packageDirPattern = regexp.MustCompile(`^dxvk-(\d+(?:\.\d+)*)$`)

// ResolvePackageDir picks the replacement package directory under searchRoot.
// When several dxvk-<version> directories exist side by side the newest
// version wins, compared numerically (so dxvk-2.10 beats dxvk-2.9); equal
// versions fall back to the lexicographically smaller directory name. The
// choice never depends on filesystem enumeration order.
func ResolvePackageDir(searchRoot string) (string, error) {
	entries, err := os.ReadDir(searchRoot)
	if err != nil {
		return "", fmt.Errorf("read package root %s: %w", searchRoot, err)
	}

	var bestName string
	var bestVer *version.Version
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := packageDirPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		v, err := version.NewVersion(m[1])
		if err != nil {
			continue
		}
		switch {
		case bestVer == nil,
			v.GreaterThan(bestVer),
			v.Equal(bestVer) && e.Name() < bestName:
			bestName, bestVer = e.Name(), v
		}
	}

	if bestVer == nil {
		return "", fmt.Errorf("%s: %w", searchRoot, ErrPackageNotFound)
	}
	return filepath.Join(searchRoot, bestName), nil
}

// PackageVersion extracts the version string from a package directory path,
// e.g. "/opt/pkgs/dxvk-2.5.3" yields "2.5.3". Returns "" if the directory
// name does not match the package naming convention.
func PackageVersion(packageDir string) string {
	m := packageDirPattern.FindStringSubmatch(filepath.Base(packageDir))
	if m == nil {
		return ""
	}
	return m[1]
}
