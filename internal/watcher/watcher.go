// Package watcher reports new candidate executables as they appear under a
// games root, typically while a storefront client is installing a title.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/candlewick-labs/dxvkctl/internal/scanner"
)

// settleDelay is how long a newly created file gets to finish being written
// before it is inspected. Installers write executables incrementally; an
// immediate inspect would see a truncated header. Variable so tests can
// shorten it.
var settleDelay = 2 * time.Second

// Watcher monitors a root directory tree for new executables. Directories
// created under the root are added to the watch as they appear, since
// installers create the game directory and its contents in one go.
type Watcher struct {
	root        string
	fsw         *fsnotify.Watcher
	onCandidate func(scanner.Candidate)
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

// New creates a Watcher over root. onCandidate is invoked for every new
// executable that passes the scanner's candidate filter, after inspection.
func New(root string, onCandidate func(scanner.Candidate)) (*Watcher, error) {
	if onCandidate == nil {
		return nil, fmt.Errorf("candidate callback cannot be nil")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	return &Watcher{
		root:        root,
		fsw:         fsw,
		onCandidate: onCandidate,
		stopCh:      make(chan struct{}),
	}, nil
}

// Start registers the root and its existing subdirectories, then begins
// processing events.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree: watch what we can
		}
		if d.IsDir() {
			if werr := w.fsw.Add(path); werr != nil {
				fmt.Fprintf(os.Stderr, "watcher: cannot watch %s: %v\n", path, werr)
			}
		}
		return nil
	})
	if err != nil {
		w.fsw.Close()
		return fmt.Errorf("failed to register watch tree %s: %w", w.root, err)
	}

	w.wg.Add(1)
	go w.run()
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: %v\n", err)

		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return // already gone
	}

	if info.IsDir() {
		// New game directory: watch it so the executables written into it
		// are seen too.
		if err := w.fsw.Add(event.Name); err != nil {
			fmt.Fprintf(os.Stderr, "watcher: cannot watch %s: %v\n", event.Name, err)
		}
		return
	}

	if !scanner.IsCandidate(filepath.Base(event.Name)) {
		return
	}

	// Give the installer time to finish writing before inspecting.
	w.wg.Add(1)
	go func(path string) {
		defer w.wg.Done()
		select {
		case <-time.After(settleDelay):
		case <-w.stopCh:
			return
		}
		w.onCandidate(scanner.Inspect(path))
	}(event.Name)
}

// Stop halts event processing and releases the underlying watcher.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
