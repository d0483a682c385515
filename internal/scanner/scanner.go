// Package scanner discovers candidate game executables under a root
// directory. It is the discovery collaborator for the install core: it walks
// the tree, filters out obvious non-game binaries, and inspects each
// candidate best-effort.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/candlewick-labs/dxvkctl/internal/dxvk"
	"github.com/candlewick-labs/dxvkctl/internal/pe"
)

// Candidate is one discovered executable. Arch and API are zero when
// inspection failed; Err holds the reason.
type Candidate struct {
	Path string
	Arch int
	API  dxvk.APIVersion
	Err  error
}

// ignoredPrefixes are executable basenames (lower-cased, .exe stripped) that
// are never the game itself: uninstallers, redistributable installers, crash
// reporters. Matching is prefix-based so unins000.exe and vcredist_x64.exe
// are both caught.
var ignoredPrefixes = []string{
	"unins",
	"setup",
	"install",
	"vcredist",
	"vc_redist",
	"dxsetup",
	"dotnetfx",
	"oalinst",
	"crashhandler",
	"crashreport",
	"ueprereqsetup",
	"touchup",
}

// IsCandidate reports whether the basename looks like a game executable
// worth inspecting. The replacement DLL names themselves never qualify.
func IsCandidate(name string) bool {
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".exe") {
		return false
	}
	base := strings.TrimSuffix(lower, ".exe")
	for _, prefix := range ignoredPrefixes {
		if strings.HasPrefix(base, prefix) {
			return false
		}
	}
	return true
}

// Discover walks root and returns every candidate executable, each inspected
// for architecture and API version. Inspection failures are recorded on the
// candidate and never abort the walk; only a failure to read the tree itself
// is returned as an error.
func Discover(root string) ([]Candidate, error) {
	var candidates []Candidate

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable root is the caller's mistake; an unreadable
			// subdirectory is skipped and the walk continues.
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsCandidate(d.Name()) {
			return nil
		}
		candidates = append(candidates, Inspect(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return candidates, nil
}

// Inspect runs the format inspector and API detector over one executable.
func Inspect(path string) Candidate {
	c := Candidate{Path: path}

	arch, err := pe.InspectArchitecture(path)
	if err != nil {
		c.Err = err
		return c
	}
	c.Arch = arch

	api, err := dxvk.DetectAPIVersion(path)
	if err != nil {
		c.Err = err
		return c
	}
	c.API = api
	return c
}
