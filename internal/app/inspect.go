package app

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/candlewick-labs/dxvkctl/internal/dxvk"
	"github.com/candlewick-labs/dxvkctl/internal/pe"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <executable>",
	Short: "Report a binary's architecture and Direct3D version",
	Long: `Read the executable header to classify the binary as 32- or 64-bit and
scan it for Direct3D DLL references. Nothing is written.

The exit status distinguishes each failure kind, for scripting:
  0  inspected successfully
  2  file not found
  3  not a valid executable (bad signature or truncated)
  4  unrecognized optional header magic
  5  no Direct3D DLL reference found
  6  links against an unsupported Direct3D version (d3d12)`,
	Example: `  dxvkctl inspect ~/Games/Title/game.exe`,
	Args:    cobra.ExactArgs(1),
	RunE:    runInspect,
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	exePath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	arch, err := pe.InspectArchitecture(exePath)
	if err != nil {
		return err
	}

	api, err := dxvk.DetectAPIVersion(exePath)
	if err != nil {
		// Architecture is still worth printing when only detection failed.
		fmt.Printf("%s: %d-bit, no Direct3D dependency detected\n", filepath.Base(exePath), arch)
		return err
	}

	fmt.Printf("%s: %d-bit, %s\n", filepath.Base(exePath), arch, api)

	if !api.Supported() {
		return fmt.Errorf("%s: %w", api, dxvk.ErrUnsupportedVersion)
	}
	return nil
}
