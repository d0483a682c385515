package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/candlewick-labs/dxvkctl/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <version>",
	Short: "Download and unpack a DXVK release package",
	Long: `Download the release tarball for the given DXVK version and unpack it
under the package root as dxvk-<version>/{x32,x64}. The newest unpacked
package is the one installs draw from; older ones can stay side by side.`,
	Example: `  dxvkctl fetch 2.5.3
  dxvkctl fetch --package-root /opt/dxvk 2.5.3`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	RootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	version := args[0]

	root, err := getPackageRoot()
	if err != nil {
		return err
	}

	pkgDir, err := fetch.Download(cmd.Context(), version, root, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Unpacked %s\n", pkgDir)
	fmt.Println("\nNext: dxvkctl install <executable>")
	return nil
}
