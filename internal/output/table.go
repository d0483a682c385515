// Package output renders tables, reports, and progress indicators for the
// terminal. Tables are plain ASCII with optional ANSI color; nothing here
// holds state between calls, the core hands over report values and this
// package only formats them.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/candlewick-labs/dxvkctl/internal/dxvk"
	"github.com/candlewick-labs/dxvkctl/internal/store"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderReport formats a per-file install or removal report.
func RenderReport(r *dxvk.Report) string {
	var sb strings.Builder
	for _, f := range r.Files {
		marker := "✓"
		color := colorGreen
		switch f.Status {
		case dxvk.StatusAlreadyAbsent:
			marker = "-"
			color = ""
		case dxvk.StatusSourceMissing, dxvk.StatusCopyError, dxvk.StatusDeleteError:
			marker = "✗"
			color = colorRed
		}

		line := fmt.Sprintf("  %s %-16s %s", marker, f.Name, f.Status)
		if f.Err != nil {
			line += fmt.Sprintf(" (%v)", f.Err)
		}
		if color != "" {
			line = colorize(color, line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// CandidateRow mirrors scanner.Candidate without importing it, keeping
// output free of a dependency on the discovery layer.
type CandidateRow struct {
	Path string
	Arch int
	API  dxvk.APIVersion
	Err  error
}

// RenderCandidateTable formats discovered executables with their inspection
// results. Candidates whose inspection failed show the reason instead of an
// architecture/API pair.
func RenderCandidateTable(candidates []CandidateRow) string {
	if len(candidates) == 0 {
		return "No candidate executables found.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-40s %-6s %-8s %s\n", "Executable", "Arch", "API", "Status"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for _, c := range candidates {
		if c.Err != nil {
			sb.WriteString(fmt.Sprintf("%-40s %-6s %-8s %s\n",
				truncate(c.Path, 40), "-", "-", colorize(colorYellow, shortReason(c.Err))))
			continue
		}
		sb.WriteString(fmt.Sprintf("%-40s %-6d %-8s %s\n",
			truncate(c.Path, 40), c.Arch, c.API, colorize(colorGreen, "ok")))
	}
	return sb.String()
}

// RenderDeploymentTable formats the deployment ledger.
func RenderDeploymentTable(deployments []*store.Deployment) string {
	if len(deployments) == 0 {
		return "No deployments recorded.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-28s %-6s %-6s %-9s %-6s %s\n",
		"Executable", "Arch", "API", "DXVK", "Files", "Deployed"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for _, d := range deployments {
		name := filepath.Base(d.ExePath)
		ver := d.DXVKVersion
		if ver == "" {
			ver = "?"
		}
		sb.WriteString(fmt.Sprintf("%-28s %-6d d3d%-3d %-9s %-6d %s\n",
			truncate(name, 28),
			d.Arch,
			d.APIVersion,
			ver,
			len(d.Files),
			formatRelativeTime(d.DeployedAt)))
	}
	return sb.String()
}

// shortReason trims a wrapped error chain down to its last segment for
// single-line table display.
func shortReason(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	return msg
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return "…" + s[len(s)-max+1:]
}

// formatRelativeTime renders a timestamp as a short age like "3d ago".
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
