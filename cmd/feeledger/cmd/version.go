package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guildxyz/feeledger/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version of current fee ledger binary.",
	Run:   runVersion,
}

func init() {
	RootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Println(version.String())
}
