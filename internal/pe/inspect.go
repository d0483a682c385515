// Package pe classifies Windows executables as 32-bit or 64-bit.
//
// Only the two header fields needed for that decision are read: the MZ/PE
// signatures that locate the optional header, and the optional header magic
// that distinguishes the PE32 and PE32+ layouts. This is deliberately not a
// general PE parser; a packed or otherwise unusual executable that still
// carries valid signatures inspects fine.
package pe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// Offset of the little-endian uint32 that points at the PE header.
	peOffsetField = 0x3c

	// Size of the COFF file header that sits between the PE signature and
	// the optional header.
	coffHeaderSize = 20

	magicPE32     = 0x10b // 32-bit optional header layout
	magicPE32Plus = 0x20b // 64-bit optional header layout
)

var (
	// ErrInvalidFormat means the file is not a PE executable: a signature
	// did not match or the header region is truncated.
	ErrInvalidFormat = errors.New("not a valid Windows executable")

	// ErrTruncated means the file ended before the header fields could be
	// read. It matches ErrInvalidFormat under errors.Is.
	ErrTruncated = fmt.Errorf("executable header truncated: %w", ErrInvalidFormat)

	// ErrUnknownFormat means the signatures checked out but the optional
	// header magic is neither the 32-bit nor the 64-bit value.
	ErrUnknownFormat = errors.New("unrecognized optional header magic")
)

// InspectArchitecture reads the executable at path and returns its
// architecture width, 32 or 64. The file is opened read-only and closed on
// every exit path. A file that is too short to contain the fields being read
// fails with ErrTruncated rather than returning a guessed width.
func InspectArchitecture(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open executable: %w", err)
	}
	defer f.Close()

	var mz [2]byte
	if _, err := io.ReadFull(f, mz[:]); err != nil {
		return 0, readErr(path, err)
	}
	if mz[0] != 'M' || mz[1] != 'Z' {
		return 0, fmt.Errorf("%s: missing MZ signature: %w", path, ErrInvalidFormat)
	}

	if _, err := f.Seek(peOffsetField, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%s: seek to PE offset field: %w", path, err)
	}
	var peOffset uint32
	if err := binary.Read(f, binary.LittleEndian, &peOffset); err != nil {
		return 0, readErr(path, err)
	}

	// Seeking past EOF succeeds; the signature read below catches it.
	if _, err := f.Seek(int64(peOffset), io.SeekStart); err != nil {
		return 0, fmt.Errorf("%s: seek to PE header: %w", path, err)
	}
	var sig [4]byte
	if _, err := io.ReadFull(f, sig[:]); err != nil {
		return 0, readErr(path, err)
	}
	if sig != [4]byte{'P', 'E', 0, 0} {
		return 0, fmt.Errorf("%s: missing PE signature: %w", path, ErrInvalidFormat)
	}

	if _, err := f.Seek(coffHeaderSize, io.SeekCurrent); err != nil {
		return 0, fmt.Errorf("%s: seek past file header: %w", path, err)
	}
	var magic uint16
	if err := binary.Read(f, binary.LittleEndian, &magic); err != nil {
		return 0, readErr(path, err)
	}

	switch magic {
	case magicPE32:
		return 32, nil
	case magicPE32Plus:
		return 64, nil
	default:
		return 0, fmt.Errorf("%s: optional header magic 0x%x: %w", path, magic, ErrUnknownFormat)
	}
}

// readErr maps end-of-file conditions to ErrTruncated and passes other I/O
// errors through with the path attached.
func readErr(path string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s: %w", path, ErrTruncated)
	}
	return fmt.Errorf("%s: read header: %w", path, err)
}
