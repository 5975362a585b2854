package query

import (
	"github.com/spf13/cobra"

	"github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/rpc"
)

// vaultCmd represents the vault command.
// Example:
//
//	feecli query vault --id=0
var vaultCmd = &cobra.Command{
	Use:     "vault",
	Short:   "Get a vault",
	Example: `feecli query vault --id=0`,
	Run: func(cmd *cobra.Command, args []string) {
		callAndPrint("GetVault", rpc.GetVaultArgs{VaultID: common.JSONUint64(vaultIDFlag)})
	},
}

// paidCmd represents the paid command.
// Example:
//
//	feecli query paid --id=0 --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab
var paidCmd = &cobra.Command{
	Use:     "paid",
	Short:   "Check whether an address paid the fee of a vault",
	Example: `feecli query paid --id=0 --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab`,
	Run: func(cmd *cobra.Command, args []string) {
		callAndPrint("HasPaid", rpc.HasPaidArgs{VaultID: common.JSONUint64(vaultIDFlag), Payer: addressFlag})
	},
}

func init() {
	vaultCmd.Flags().Uint64Var(&vaultIDFlag, "id", 0, "Vault id")
	vaultCmd.MarkFlagRequired("id")

	paidCmd.Flags().Uint64Var(&vaultIDFlag, "id", 0, "Vault id")
	paidCmd.Flags().StringVar(&addressFlag, "address", "", "Address of the payer")
	paidCmd.MarkFlagRequired("id")
	paidCmd.MarkFlagRequired("address")
}
