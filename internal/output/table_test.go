package output

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/candlewick-labs/dxvkctl/internal/dxvk"
	"github.com/candlewick-labs/dxvkctl/internal/store"
)

func TestRenderReport(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	r := &dxvk.Report{
		DestDir: "/games/title",
		Files: []dxvk.FileOutcome{
			{Name: "d3d11.dll", Status: dxvk.StatusCopied},
			{Name: "dxgi.dll", Status: dxvk.StatusSourceMissing, Err: errors.New("missing from package")},
			{Name: "d3d12.dll", Status: dxvk.StatusAlreadyAbsent},
		},
	}

	got := RenderReport(r)
	if !strings.Contains(got, "d3d11.dll") || !strings.Contains(got, "copied") {
		t.Errorf("RenderReport() missing copied line:\n%s", got)
	}
	if !strings.Contains(got, "source missing") || !strings.Contains(got, "missing from package") {
		t.Errorf("RenderReport() missing failure detail:\n%s", got)
	}
	if !strings.Contains(got, "already absent") {
		t.Errorf("RenderReport() missing already-absent line:\n%s", got)
	}
	if strings.Contains(got, "\033[") {
		t.Errorf("RenderReport() emitted color codes with NO_COLOR set:\n%q", got)
	}
}

func TestRenderCandidateTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	rows := []CandidateRow{
		{Path: "/games/a/game.exe", Arch: 64, API: dxvk.D3D11},
		{Path: "/games/b/old.exe", Err: errors.New("x: not a valid Windows executable")},
	}

	got := RenderCandidateTable(rows)
	if !strings.Contains(got, "game.exe") || !strings.Contains(got, "d3d11") {
		t.Errorf("RenderCandidateTable() missing candidate row:\n%s", got)
	}
	if !strings.Contains(got, "not a valid Windows executable") {
		t.Errorf("RenderCandidateTable() missing failure reason:\n%s", got)
	}
}

func TestRenderCandidateTable_Empty(t *testing.T) {
	got := RenderCandidateTable(nil)
	if !strings.Contains(got, "No candidate executables") {
		t.Errorf("RenderCandidateTable(nil) = %q", got)
	}
}

func TestRenderDeploymentTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	deployments := []*store.Deployment{
		{
			ExePath:     "/games/title/game.exe",
			Arch:        64,
			APIVersion:  11,
			DXVKVersion: "2.5.3",
			Files:       []string{"d3d10core.dll", "d3d11.dll", "dxgi.dll"},
			DeployedAt:  time.Now().Add(-48 * time.Hour),
		},
	}

	got := RenderDeploymentTable(deployments)
	if !strings.Contains(got, "game.exe") || !strings.Contains(got, "2.5.3") {
		t.Errorf("RenderDeploymentTable() missing row:\n%s", got)
	}
	if !strings.Contains(got, "2d ago") {
		t.Errorf("RenderDeploymentTable() missing relative time:\n%s", got)
	}
}

func TestRenderDeploymentTable_Empty(t *testing.T) {
	got := RenderDeploymentTable(nil)
	if !strings.Contains(got, "No deployments") {
		t.Errorf("RenderDeploymentTable(nil) = %q", got)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, "never"},
		{"seconds ago", time.Now().Add(-30 * time.Second), "just now"},
		{"minutes ago", time.Now().Add(-5 * time.Minute), "5m ago"},
		{"hours ago", time.Now().Add(-3 * time.Hour), "3h ago"},
		{"days ago", time.Now().Add(-72 * time.Hour), "3d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeTime(tt.t); got != tt.want {
				t.Errorf("formatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate() = %q, want unchanged", got)
	}
	got := truncate("/very/long/path/to/some/game/executable.exe", 20)
	if len([]rune(got)) != 20 {
		t.Errorf("truncate() length = %d, want 20", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "executable.exe") {
		t.Errorf("truncate() should keep the path tail, got %q", got)
	}
}
