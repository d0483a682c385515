package dxvk

import (
	"fmt"
	"path/filepath"
)

// replacementFiles maps each supported API version to the DLLs that must be
// dropped next to the game executable. DX11 needs the DXGI stack as well.
var replacementFiles = map[APIVersion][]string{
	D3D8:  {"d3d8.dll"},
	D3D9:  {"d3d9.dll"},
	D3D10: {"d3d10.dll"},
	D3D11: {"d3d10core.dll", "d3d11.dll", "dxgi.dll"},
}

// FilePair is one planned copy: a file inside the package's architecture
// subdirectory and its destination next to the executable.
type FilePair struct {
	Source string
	Dest   string
}

// Plan is the full set of copies for one install, computed up front so the
// caller can preview it (dry-run) before any filesystem write happens.
type Plan struct {
	Arch       int
	Version    APIVersion
	PackageDir string
	DestDir    string
	Files      []FilePair
}

// BuildPlan maps (architecture width, API version) to concrete source and
// destination paths. Versions without a replacement set (d3d12 or anything
// unmapped) fail with ErrUnsupportedVersion before any side effect.
func BuildPlan(arch int, api APIVersion, packageDir, destDir string) (*Plan, error) {
	names, ok := replacementFiles[api]
	if !ok {
		return nil, fmt.Errorf("%s: %w", api, ErrUnsupportedVersion)
	}

	sub := "x32"
	if arch == 64 {
		sub = "x64"
	}

	plan := &Plan{
		Arch:       arch,
		Version:    api,
		PackageDir: packageDir,
		DestDir:    destDir,
	}
	for _, name := range names {
		plan.Files = append(plan.Files, FilePair{
			Source: filepath.Join(packageDir, sub, name),
			Dest:   filepath.Join(destDir, name),
		})
	}
	return plan, nil
}
