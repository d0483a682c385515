package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/candlewick-labs/dxvkctl/internal/dxvk"
	"github.com/candlewick-labs/dxvkctl/internal/output"
	"github.com/candlewick-labs/dxvkctl/internal/pe"
	"github.com/candlewick-labs/dxvkctl/internal/store"
)

var (
	installDryRun bool
	installAPI    int
	installQuiet  bool

	installCmd = &cobra.Command{
		Use:   "install <executable>",
		Short: "Install replacement DLLs next to a game executable",
		Long: `Inspect the executable, detect its Direct3D version, and copy the
matching DXVK DLLs from the newest package under the package root into the
executable's directory.

Existing DLLs in the directory are overwritten unconditionally. Files
missing from a partially extracted package are reported individually; the
rest still install.

Detection can be overridden with --api for binaries that load their
renderer indirectly (plugin or middleware layers) and therefore carry no
DLL name reference.`,
		Example: `  # Detect everything automatically
  dxvkctl install ~/Games/Title/game.exe

  # Preview the copy plan without writing
  dxvkctl install --dry-run ~/Games/Title/game.exe

  # Force d3d9 for a middleware-wrapped binary
  dxvkctl install --api 9 ~/Games/Title/game.exe`,
		Args: cobra.ExactArgs(1),
		RunE: runInstall,
	}
)

func init() {
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "show the copy plan without writing")
	installCmd.Flags().IntVar(&installAPI, "api", 0, "override detection: 8, 9, 10 or 11")
	installCmd.Flags().BoolVar(&installQuiet, "quiet", false, "suppress output")

	RootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	exePath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	arch, err := pe.InspectArchitecture(exePath)
	if err != nil {
		return err
	}

	var api dxvk.APIVersion
	if installAPI != 0 {
		api = dxvk.APIVersion(installAPI)
		if !api.Supported() {
			return fmt.Errorf("--api %d: %w", installAPI, dxvk.ErrUnsupportedVersion)
		}
	} else {
		api, err = dxvk.DetectAPIVersion(exePath)
		if err != nil {
			return err
		}
	}

	// Detected-but-unsupported (d3d12) is a clear terminal outcome: report
	// it before any package lookup, and write nothing.
	if !api.Supported() {
		return fmt.Errorf("%s links against %s: %w", filepath.Base(exePath), api, dxvk.ErrUnsupportedVersion)
	}

	searchRoot, err := getPackageRoot()
	if err != nil {
		return err
	}
	pkgDir, err := dxvk.ResolvePackageDir(searchRoot)
	if err != nil {
		return fmt.Errorf("%w\n\nRun 'dxvkctl fetch <version>' to download a package", err)
	}

	destDir := filepath.Dir(exePath)
	plan, err := dxvk.BuildPlan(arch, api, pkgDir, destDir)
	if err != nil {
		return err
	}

	if !installQuiet {
		fmt.Printf("%s: %d-bit, %s → %s\n\n", filepath.Base(exePath), arch, api, filepath.Base(pkgDir))
	}

	if installDryRun {
		for _, pair := range plan.Files {
			fmt.Printf("  %s → %s\n", pair.Source, pair.Dest)
		}
		fmt.Println("\nDry-run mode: no files were written.")
		return nil
	}

	report := dxvk.Install(plan)
	if !installQuiet {
		fmt.Print(output.RenderReport(report))
	}

	if report.Succeeded() > 0 {
		db, dbErr := openStore()
		if dbErr != nil {
			// The install itself succeeded; a broken ledger is a warning.
			fmt.Printf("⚠ install done but ledger not updated: %v\n", dbErr)
		} else {
			defer db.Close()
			var copied []string
			for _, f := range report.Files {
				if f.Status == dxvk.StatusCopied {
					copied = append(copied, f.Name)
				}
			}
			d := &store.Deployment{
				ExePath:     exePath,
				ExeDir:      destDir,
				Arch:        arch,
				APIVersion:  int(api),
				DXVKVersion: dxvk.PackageVersion(pkgDir),
				PackageDir:  pkgDir,
				Files:       copied,
				DeployedAt:  time.Now(),
			}
			if err := db.InsertDeployment(d); err != nil {
				fmt.Printf("⚠ install done but ledger not updated: %v\n", err)
			}
		}
	}

	if n := report.Failures(); n > 0 {
		return fmt.Errorf("%d of %d files failed to install", n, len(report.Files))
	}

	if !installQuiet {
		fmt.Printf("\n✓ Installed %d files into %s\n", report.Succeeded(), destDir)
	}
	return nil
}
