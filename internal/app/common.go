package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/candlewick-labs/dxvkctl/internal/dxvk"
	"github.com/candlewick-labs/dxvkctl/internal/pe"
	"github.com/candlewick-labs/dxvkctl/internal/store"
)

// Exit codes for the standalone invocation modes. Scripts drive dxvkctl per
// executable and branch on the failure kind.
const (
	exitGeneric            = 1
	exitNotFound           = 2
	exitInvalidFormat      = 3
	exitUnknownFormat      = 4
	exitNoAPIDependency    = 5
	exitUnsupportedVersion = 6
	exitPackageNotFound    = 7
)

// ExitCode maps an error from any command to its process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, os.ErrNotExist):
		return exitNotFound
	case errors.Is(err, pe.ErrInvalidFormat):
		return exitInvalidFormat
	case errors.Is(err, pe.ErrUnknownFormat):
		return exitUnknownFormat
	case errors.Is(err, dxvk.ErrNoAPIDependency):
		return exitNoAPIDependency
	case errors.Is(err, dxvk.ErrUnsupportedVersion):
		return exitUnsupportedVersion
	case errors.Is(err, dxvk.ErrPackageNotFound):
		return exitPackageNotFound
	default:
		return exitGeneric
	}
}

// openStore opens the ledger database and ensures the schema exists.
// Callers own the returned store and must Close it.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}
	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}
	return db, nil
}
