package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/candlewick-labs/dxvkctl/internal/dxvk"
	"github.com/candlewick-labs/dxvkctl/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recorded deployments and the active package",
	Long: `Display the deployment ledger: every directory that currently has
replacement DLLs installed, with the architecture, Direct3D version and
package version used. Also shows which package directory the next install
would draw from.`,
	Example: `  dxvkctl status`,
	RunE:    runStatus,
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	deployments, err := db.ListDeployments()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderDeploymentTable(deployments))

	searchRoot, err := getPackageRoot()
	if err != nil {
		return err
	}
	pkgDir, err := dxvk.ResolvePackageDir(searchRoot)
	if err != nil {
		fmt.Println("\nActive package: none (run 'dxvkctl fetch <version>')")
		return nil
	}
	fmt.Printf("\nActive package: %s\n", pkgDir)
	return nil
}
