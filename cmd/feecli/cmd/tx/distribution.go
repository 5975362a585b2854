package tx

import (
	"github.com/spf13/cobra"

	"github.com/guildxyz/feeledger/ledger/types"
)

// setGuildCollectorCmd represents the set_guild_collector command
var setGuildCollectorCmd = &cobra.Command{
	Use:     "set_guild_collector",
	Short:   "Hand the guild collector role to another address",
	Example: `feecli tx set_guild_collector --from=<guild collector> --collector=0x9F1233798E905E173560071255140b4A8aBd3Ec6`,
	Run: func(cmd *cobra.Command, args []string) {
		collector := parseAddress("collector", collectorFlag)
		signAndBroadcast(cmd, func(input types.TxInput) types.Tx {
			return &types.SetGuildFeeCollectorTx{From: input, NewCollector: collector}
		})
	},
}

// setGuildShareCmd represents the set_guild_share command
var setGuildShareCmd = &cobra.Command{
	Use:     "set_guild_share",
	Short:   "Set the guild share in basis points",
	Example: `feecli tx set_guild_share --from=<guild collector> --share=469`,
	Run: func(cmd *cobra.Command, args []string) {
		signAndBroadcast(cmd, func(input types.TxInput) types.Tx {
			return &types.SetGuildShareTx{From: input, NewShare: shareFlag}
		})
	},
}

// setPoapCollectorCmd represents the set_poap_collector command
var setPoapCollectorCmd = &cobra.Command{
	Use:     "set_poap_collector",
	Short:   "Hand the poap collector role to another address",
	Example: `feecli tx set_poap_collector --from=<poap collector> --collector=0x9F1233798E905E173560071255140b4A8aBd3Ec6`,
	Run: func(cmd *cobra.Command, args []string) {
		collector := parseAddress("collector", collectorFlag)
		signAndBroadcast(cmd, func(input types.TxInput) types.Tx {
			return &types.SetPoapFeeCollectorTx{From: input, NewCollector: collector}
		})
	},
}

// setPoapShareCmd represents the set_poap_share command
var setPoapShareCmd = &cobra.Command{
	Use:     "set_poap_share",
	Short:   "Set the poap share in basis points",
	Example: `feecli tx set_poap_share --from=<poap collector> --share=500`,
	Run: func(cmd *cobra.Command, args []string) {
		signAndBroadcast(cmd, func(input types.TxInput) types.Tx {
			return &types.SetPoapShareTx{From: input, NewShare: shareFlag}
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{setGuildCollectorCmd, setPoapCollectorCmd} {
		addCommonFlags(cmd)
		cmd.Flags().StringVar(&collectorFlag, "collector", "", "Address of the new collector")
		cmd.MarkFlagRequired("collector")
	}
	for _, cmd := range []*cobra.Command{setGuildShareCmd, setPoapShareCmd} {
		addCommonFlags(cmd)
		cmd.Flags().Uint64Var(&shareFlag, "share", 0, "Share in basis points (10000 = 100%)")
		cmd.MarkFlagRequired("share")
	}
}
