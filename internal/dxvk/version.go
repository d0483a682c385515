// Package dxvk resolves which replacement Direct3D DLLs a Windows game
// binary needs and installs or removes them. Detection works on the raw
// bytes of the executable; installation is a deterministic mapping from
// (architecture, API version) to files under a versioned package directory.
package dxvk

import (
	"errors"
	"fmt"
)

// APIVersion is the Direct3D version a binary links against.
type APIVersion int

const (
	D3D8  APIVersion = 8
	D3D9  APIVersion = 9
	D3D10 APIVersion = 10
	D3D11 APIVersion = 11

	// D3D12 is detected only to be rejected: the replacement package does
	// not ship d3d12.dll, so every code path that would write files must
	// refuse it with ErrUnsupportedVersion.
	D3D12 APIVersion = 12
)

func (v APIVersion) String() string {
	return fmt.Sprintf("d3d%d", int(v))
}

// Supported reports whether a replacement DLL set exists for this version.
func (v APIVersion) Supported() bool {
	_, ok := replacementFiles[v]
	return ok
}

var (
	// ErrNoAPIDependency means none of the known Direct3D DLL names occur
	// in the binary. Common for titles that load their renderer through a
	// middleware layer instead of linking the DLL by name; callers should
	// treat it as an expected outcome, not a parse failure.
	ErrNoAPIDependency = errors.New("no Direct3D DLL reference found in binary")

	// ErrUnsupportedVersion means the detected version has no replacement
	// DLL set (d3d12). Nothing is written when this is returned.
	ErrUnsupportedVersion = errors.New("no replacement DLLs for this Direct3D version")

	// ErrPackageNotFound means no dxvk-<version> directory exists under
	// the package search root.
	ErrPackageNotFound = errors.New("no dxvk-<version> package directory found")
)
