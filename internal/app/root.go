package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath      string
	packageRoot string

	// RootCmd is the root command for dxvkctl
	RootCmd = &cobra.Command{
		Use:   "dxvkctl",
		Short: "Deploy DXVK replacement DLLs into Windows game directories",
		Long: `dxvkctl inspects a Windows game executable, works out which Direct3D
version it uses and whether it is 32- or 64-bit, and drops the matching
DXVK replacement DLLs next to it (or removes them again).

Typical workflow:
  1. dxvkctl fetch 2.5.3            # download a DXVK package
  2. dxvkctl scan ~/Games           # find candidate executables
  3. dxvkctl install ~/Games/Title/game.exe
  4. dxvkctl status                 # see what is deployed where

Examples:
  # What would be installed, without writing anything
  dxvkctl install --dry-run ~/Games/Title/game.exe

  # Inspect a single binary (exit code reports the failure kind)
  dxvkctl inspect ~/Games/Title/game.exe

  # Put the directory back to stock DLLs
  dxvkctl remove ~/Games/Title

  # Watch a storefront library for freshly installed titles
  dxvkctl watch ~/Games`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("dxvkctl: DXVK deployment for Windows game binaries")
			fmt.Println()
			fmt.Println("Run 'dxvkctl scan <games-root>' to find candidate executables.")
			fmt.Println("Run 'dxvkctl --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.dxvkctl/dxvkctl.db)")
	RootCmd.PersistentFlags().StringVar(&packageRoot, "package-root", "", "directory holding dxvk-<version> packages (default: ~/.dxvkctl/packages)")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// appDir returns ~/.dxvkctl, creating it if needed.
func appDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".dxvkctl")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create dxvkctl directory: %w", err)
	}
	return dir, nil
}

// getDBPath returns the database path, using the flag value or default.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dxvkctl.db"), nil
}

// getPackageRoot returns the package search root, using the flag value or
// default.
func getPackageRoot() (string, error) {
	if packageRoot != "" {
		return packageRoot, nil
	}
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	pkgRoot := filepath.Join(dir, "packages")
	if err := os.MkdirAll(pkgRoot, 0755); err != nil {
		return "", fmt.Errorf("failed to create package root: %w", err)
	}
	return pkgRoot, nil
}
