package dxvk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileStatus is the per-file outcome of an install or removal.
type FileStatus int

const (
	StatusCopied FileStatus = iota
	StatusSourceMissing
	StatusCopyError
	StatusDeleted
	StatusAlreadyAbsent
	StatusDeleteError
)

func (s FileStatus) String() string {
	switch s {
	case StatusCopied:
		return "copied"
	case StatusSourceMissing:
		return "source missing"
	case StatusCopyError:
		return "copy error"
	case StatusDeleted:
		return "deleted"
	case StatusAlreadyAbsent:
		return "already absent"
	case StatusDeleteError:
		return "delete error"
	default:
		return "unknown"
	}
}

// Failed reports whether this status is an actual failure. Absence during
// removal is a normal outcome, not a failure.
func (s FileStatus) Failed() bool {
	return s == StatusSourceMissing || s == StatusCopyError || s == StatusDeleteError
}

// FileOutcome records what happened to one file.
type FileOutcome struct {
	Name   string
	Status FileStatus
	Err    error
}

// Report enumerates every file's outcome for one install or removal. A
// multi-file DX11 install can partially succeed, so a single pass/fail flag
// would lose information the caller needs to render.
type Report struct {
	DestDir string
	Files   []FileOutcome
}

// Succeeded counts files that were copied or deleted.
func (r *Report) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == StatusCopied || f.Status == StatusDeleted {
			n++
		}
	}
	return n
}

// Failures counts per-file failures.
func (r *Report) Failures() int {
	n := 0
	for _, f := range r.Files {
		if f.Status.Failed() {
			n++
		}
	}
	return n
}

// Install copies every planned file into the destination directory,
// overwriting existing files unconditionally. A missing or unreadable source
// is recorded per-file and does not abort the remaining copies: a partially
// available package installs what it can and reports the rest.
func Install(plan *Plan) *Report {
	report := &Report{DestDir: plan.DestDir}
	for _, pair := range plan.Files {
		name := filepath.Base(pair.Dest)
		if _, err := os.Stat(pair.Source); os.IsNotExist(err) {
			report.Files = append(report.Files, FileOutcome{
				Name:   name,
				Status: StatusSourceMissing,
				Err:    fmt.Errorf("missing from package: %s", pair.Source),
			})
			continue
		}
		if err := copyFile(pair.Source, pair.Dest); err != nil {
			report.Files = append(report.Files, FileOutcome{
				Name:   name,
				Status: StatusCopyError,
				Err:    err,
			})
			continue
		}
		report.Files = append(report.Files, FileOutcome{Name: name, Status: StatusCopied})
	}
	return report
}

// RemovalSet is every replacement filename any version could have installed.
// Removal is version-agnostic: it always tries the full set so a directory
// is left clean even when the ledger does not know what was installed.
var RemovalSet = []string{
	"d3d8.dll",
	"d3d9.dll",
	"d3d10.dll",
	"d3d10core.dll",
	"d3d11.dll",
	"d3d12.dll",
	"dxgi.dll",
}

// Remove deletes the fixed replacement file set from destDir. Files that are
// already absent are reported as such, not as failures; a locked or
// permission-protected file is recorded per-file and the remaining deletions
// still run.
func Remove(destDir string) *Report {
	report := &Report{DestDir: destDir}
	for _, name := range RemovalSet {
		target := filepath.Join(destDir, name)
		err := os.Remove(target)
		switch {
		case err == nil:
			report.Files = append(report.Files, FileOutcome{Name: name, Status: StatusDeleted})
		case os.IsNotExist(err):
			report.Files = append(report.Files, FileOutcome{Name: name, Status: StatusAlreadyAbsent})
		default:
			report.Files = append(report.Files, FileOutcome{Name: name, Status: StatusDeleteError, Err: err})
		}
	}
	return report
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(dst), err)
	}
	return out.Close()
}
