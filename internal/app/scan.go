package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/candlewick-labs/dxvkctl/internal/output"
	"github.com/candlewick-labs/dxvkctl/internal/scanner"
	"github.com/candlewick-labs/dxvkctl/internal/store"
)

var (
	scanQuiet bool

	scanCmd = &cobra.Command{
		Use:   "scan <games-root>",
		Short: "Find and inspect candidate game executables",
		Long: `Walk the games root, collect every executable that looks like a game
binary (uninstallers, redistributable installers and crash handlers are
filtered out), and inspect each one for architecture and Direct3D version.

Discovered candidates are stored so 'dxvkctl status' and the watch command
can refer back to them. Binaries that fail inspection are listed with the
reason; they never abort the scan.`,
		Example: `  # Scan a storefront library
  dxvkctl scan ~/Games

  # Scan quietly (suppress the table)
  dxvkctl scan --quiet ~/Games`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}
)

func init() {
	scanCmd.Flags().BoolVar(&scanQuiet, "quiet", false, "suppress output")

	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	isTTY := isatty.IsTerminal(os.Stdout.Fd())
	var spinner *output.Spinner
	if !scanQuiet && isTTY {
		spinner = output.NewSpinner("Scanning for executables...")
		spinner.Start()
	} else if !scanQuiet {
		fmt.Println("Scanning for executables...")
	}

	candidates, err := scanner.Discover(root)
	if !scanQuiet && isTTY {
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	rows := make([]output.CandidateRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, output.CandidateRow{Path: c.Path, Arch: c.Arch, API: c.API, Err: c.Err})

		rec := &store.Candidate{
			ExePath:      c.Path,
			Root:         root,
			Arch:         c.Arch,
			APIVersion:   int(c.API),
			DiscoveredAt: time.Now(),
		}
		if c.Err != nil {
			rec.Note = c.Err.Error()
		}
		if err := db.InsertCandidate(rec); err != nil {
			return fmt.Errorf("failed to record candidate %s: %w", c.Path, err)
		}
	}

	if scanQuiet {
		return nil
	}

	fmt.Print(output.RenderCandidateTable(rows))

	installable := 0
	for _, c := range candidates {
		if c.Err == nil && c.API.Supported() {
			installable++
		}
	}
	fmt.Printf("\nScan complete: %d candidates, %d installable\n", len(candidates), installable)
	if installable > 0 {
		fmt.Println("\nNext: dxvkctl install <executable>")
	}
	return nil
}
