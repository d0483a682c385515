package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/candlewick-labs/dxvkctl/internal/dxvk"
	"github.com/candlewick-labs/dxvkctl/internal/output"
)

var (
	removeQuiet bool

	removeCmd = &cobra.Command{
		Use:   "remove <executable-or-directory>",
		Short: "Remove replacement DLLs from a game directory",
		Long: `Delete every known replacement DLL from the directory, regardless of
which ones an earlier install actually put there. Filenames that are not
present are reported as already absent, not as failures.

Accepts either the game executable (its directory is cleaned) or the
directory itself.`,
		Example: `  dxvkctl remove ~/Games/Title/game.exe
  dxvkctl remove ~/Games/Title`,
		Args: cobra.ExactArgs(1),
		RunE: runRemove,
	}
)

func init() {
	removeCmd.Flags().BoolVar(&removeQuiet, "quiet", false, "suppress output")

	RootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	target, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	destDir := target
	if !info.IsDir() {
		destDir = filepath.Dir(target)
	}

	report := dxvk.Remove(destDir)
	if !removeQuiet {
		fmt.Print(output.RenderReport(report))
	}

	// Drop ledger rows for this directory; the ledger tracks directories
	// that still hold replacement DLLs.
	if db, dbErr := openStore(); dbErr == nil {
		defer db.Close()
		if _, err := db.DeleteDeploymentsInDir(destDir); err != nil && !removeQuiet {
			fmt.Printf("⚠ ledger not updated: %v\n", err)
		}
	} else if !removeQuiet {
		fmt.Printf("⚠ ledger not updated: %v\n", dbErr)
	}

	if n := report.Failures(); n > 0 {
		return fmt.Errorf("%d files could not be deleted", n)
	}

	if !removeQuiet {
		fmt.Printf("\n✓ Removed %d files from %s\n", report.Succeeded(), destDir)
	}
	return nil
}
