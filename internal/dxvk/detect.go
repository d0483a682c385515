package dxvk

import (
	"fmt"
	"os"
)

// Detection runs over raw bytes, never a decoded string, so arbitrary binary
// content can't break it. Needles must be lower-case ASCII.
var searchOrder = []struct {
	version APIVersion
	needle  []byte
}{
	// Strict priority: a binary referencing several of these resolves to
	// the highest version, regardless of position or frequency in the file.
	{D3D11, []byte("d3d11.dll")},
	{D3D10, []byte("d3d10.dll")},
	{D3D9, []byte("d3d9.dll")},
	{D3D8, []byte("d3d8.dll")},
}

var d3d12Needle = []byte("d3d12.dll")

// DetectAPIVersion scans the binary at path for known Direct3D DLL name
// references and returns the highest-priority version found. A binary that
// references only d3d12.dll yields D3D12, which installation later rejects;
// a binary referencing none of the known names yields ErrNoAPIDependency.
func DetectAPIVersion(path string) (APIVersion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read executable: %w", err)
	}

	for _, c := range searchOrder {
		if containsFold(data, c.needle) {
			return c.version, nil
		}
	}

	// Checked after the supported versions so a DX11 title that also
	// mentions d3d12.dll still resolves to D3D11.
	if containsFold(data, d3d12Needle) {
		return D3D12, nil
	}

	return 0, fmt.Errorf("%s: %w", path, ErrNoAPIDependency)
}

// containsFold reports whether needle occurs in data, ignoring ASCII case.
// needle must already be lower-case.
func containsFold(data, needle []byte) bool {
	if len(needle) == 0 || len(data) < len(needle) {
		return false
	}
	for i := 0; i+len(needle) <= len(data); i++ {
		if lowerASCII(data[i]) != needle[0] {
			continue
		}
		j := 1
		for ; j < len(needle); j++ {
			if lowerASCII(data[i+j]) != needle[j] {
				break
			}
		}
		if j == len(needle) {
			return true
		}
	}
	return false
}

func lowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
