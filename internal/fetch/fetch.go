// Package fetch acquires replacement DLL packages: it downloads a release
// tarball and unpacks it under the package root in the dxvk-<version>/
// {x32,x64} layout the resolver consumes.
package fetch

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// releaseURL is the upstream release asset location. Version strings are the
// bare number, e.g. "2.5.3".
const releaseURL = "https://github.com/doitsujin/dxvk/releases/download/v%s/dxvk-%s.tar.gz"

// Download fetches the release tarball for the given version and extracts it
// under packageRoot. Returns the extracted package directory. The tarball's
// top-level dxvk-<version>/ directory is preserved so the resolver finds the
// layout it expects. A progress bar is drawn on w; pass io.Discard to
// silence it.
func Download(ctx context.Context, version, packageRoot string, w io.Writer) (string, error) {
	url := fmt.Sprintf(releaseURL, version, version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetDescription(fmt.Sprintf("dxvk-%s", version)),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)

	if err := Extract(io.TeeReader(resp.Body, bar), packageRoot); err != nil {
		return "", err
	}

	pkgDir := filepath.Join(packageRoot, "dxvk-"+version)
	if _, err := os.Stat(pkgDir); err != nil {
		return "", fmt.Errorf("archive did not contain dxvk-%s/: %w", version, err)
	}
	return pkgDir, nil
}

// Extract unpacks a gzipped tarball into packageRoot. Only regular files and
// directories are materialized; entries that would escape packageRoot are
// rejected outright.
func Extract(r io.Reader, packageRoot string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}

		target, err := safeJoin(packageRoot, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create %s: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("create parent of %s: %w", hdr.Name, err)
			}
			if err := writeFile(target, tr); err != nil {
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
		default:
			// Symlinks and special files have no business in a DLL package.
			continue
		}
	}
}

// safeJoin joins name onto root and rejects path traversal.
func safeJoin(root, name string) (string, error) {
	target := filepath.Join(root, filepath.Clean(name))
	if !strings.HasPrefix(target, filepath.Clean(root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes package root", name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader) error {
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
