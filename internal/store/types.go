package store

import "time"

// Deployment records one install of replacement DLLs next to an executable.
type Deployment struct {
	ExePath     string
	ExeDir      string
	Arch        int
	APIVersion  int
	DXVKVersion string
	PackageDir  string
	Files       []string
	DeployedAt  time.Time
}

// Candidate is an executable the scanner or watcher found under a games
// root. Arch and APIVersion are zero when inspection failed; Note carries
// the reason.
type Candidate struct {
	ExePath      string
	Root         string
	Arch         int
	APIVersion   int
	Note         string
	DiscoveredAt time.Time
}
