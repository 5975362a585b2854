package query

import (
	"github.com/spf13/cobra"

	"github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/rpc"
)

// balanceCmd represents the balance command.
// Example:
//
//	feecli query balance --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --asset=native
var balanceCmd = &cobra.Command{
	Use:     "balance",
	Short:   "Get the balance of an address",
	Example: `feecli query balance --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --asset=native`,
	Run: func(cmd *cobra.Command, args []string) {
		callAndPrint("GetBalance", rpc.GetBalanceArgs{Asset: assetFlag, Address: addressFlag})
	},
}

// allowanceCmd represents the allowance command.
// Example:
//
//	feecli query allowance --asset=0x... --owner=0x... --spender=0x...
var allowanceCmd = &cobra.Command{
	Use:     "allowance",
	Short:   "Get the token allowance an owner granted a spender",
	Example: `feecli query allowance --asset=0x... --owner=0x... --spender=0x...`,
	Run: func(cmd *cobra.Command, args []string) {
		callAndPrint("GetAllowance", rpc.GetAllowanceArgs{Asset: assetFlag, Owner: ownerFlag, Spender: spenderFlag})
	},
}

// sequenceCmd represents the sequence command.
// Example:
//
//	feecli query sequence --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab
var sequenceCmd = &cobra.Command{
	Use:     "sequence",
	Short:   "Get the last sequence used by an address",
	Example: `feecli query sequence --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab`,
	Run: func(cmd *cobra.Command, args []string) {
		callAndPrint("GetSequence", rpc.GetSequenceArgs{Address: addressFlag})
	},
}

// eventsCmd represents the events command.
// Example:
//
//	feecli query events --start=0 --limit=20
var eventsCmd = &cobra.Command{
	Use:     "events",
	Short:   "List ledger events",
	Example: `feecli query events --start=0 --limit=20`,
	Run: func(cmd *cobra.Command, args []string) {
		callAndPrint("GetEvents", rpc.GetEventsArgs{Start: common.JSONUint64(startFlag), Limit: common.JSONUint64(limitFlag)})
	},
}

func init() {
	balanceCmd.Flags().StringVar(&addressFlag, "address", "", "Address of the account")
	balanceCmd.Flags().StringVar(&assetFlag, "asset", "native", "Asset: native or a token address")
	balanceCmd.MarkFlagRequired("address")

	allowanceCmd.Flags().StringVar(&assetFlag, "asset", "", "Token address")
	allowanceCmd.Flags().StringVar(&ownerFlag, "owner", "", "Address of the token owner")
	allowanceCmd.Flags().StringVar(&spenderFlag, "spender", "", "Address of the spender")
	allowanceCmd.MarkFlagRequired("asset")
	allowanceCmd.MarkFlagRequired("owner")
	allowanceCmd.MarkFlagRequired("spender")

	sequenceCmd.Flags().StringVar(&addressFlag, "address", "", "Address of the account")
	sequenceCmd.MarkFlagRequired("address")

	eventsCmd.Flags().Uint64Var(&startFlag, "start", 0, "Index of the first event")
	eventsCmd.Flags().Uint64Var(&limitFlag, "limit", 100, "Maximum number of events")
}
