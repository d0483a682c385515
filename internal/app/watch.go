package app

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/candlewick-labs/dxvkctl/internal/scanner"
	"github.com/candlewick-labs/dxvkctl/internal/store"
	"github.com/candlewick-labs/dxvkctl/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <games-root>",
	Short: "Watch a games root for newly installed executables",
	Long: `Monitor the games root with filesystem events and report each new
executable as it appears, already inspected for architecture and Direct3D
version. New game directories created under the root are picked up
automatically.

Runs in the foreground; stop with Ctrl+C. Candidates are recorded in the
same ledger 'dxvkctl scan' fills, so a later 'dxvkctl install' can act on
them.`,
	Example: `  dxvkctl watch ~/Games`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWatch,
}

func init() {
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	w, err := watcher.New(root, func(c scanner.Candidate) {
		rec := &store.Candidate{
			ExePath:      c.Path,
			Root:         root,
			Arch:         c.Arch,
			APIVersion:   int(c.API),
			DiscoveredAt: time.Now(),
		}
		if c.Err != nil {
			rec.Note = c.Err.Error()
			fmt.Printf("• %s: %v\n", c.Path, c.Err)
		} else {
			fmt.Printf("• %s: %d-bit, %s (install with 'dxvkctl install %s')\n",
				c.Path, c.Arch, c.API, c.Path)
		}
		if err := db.InsertCandidate(rec); err != nil {
			fmt.Fprintf(os.Stderr, "watch: failed to record candidate: %v\n", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Printf("Watching %s for new executables (press Ctrl+C to stop)...\n\n", root)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigCh
	fmt.Printf("\nReceived signal %v, shutting down...\n", sig)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}
	return nil
}
