package query

import (
	"github.com/spf13/cobra"

	"github.com/guildxyz/feeledger/rpc"
)

// statusCmd represents the status command.
// Example:
//
//	feecli query status
var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Get the status of the node",
	Example: `feecli query status`,
	Run: func(cmd *cobra.Command, args []string) {
		callAndPrint("GetStatus", rpc.GetStatusArgs{})
	},
}

// configCmd represents the config command.
// Example:
//
//	feecli query config
var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Get the fee distribution config",
	Example: `feecli query config`,
	Run: func(cmd *cobra.Command, args []string) {
		callAndPrint("GetDistributionConfig", rpc.GetDistributionConfigArgs{})
	},
}
