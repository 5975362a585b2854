package tx

import (
	"github.com/spf13/cobra"

	"github.com/guildxyz/feeledger/ledger/types"
)

// registerCmd represents the register command
// Example:
//
//	feecli tx register --from=0x2E83... --event=summit-2024 --owner=0x9F12... --asset=native --fee=0.1
var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Register a fee collecting vault",
	Example: `feecli tx register --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --event=summit --owner=0x9F1233798E905E173560071255140b4A8aBd3Ec6 --asset=native --fee=0.1`,
	Run: func(cmd *cobra.Command, args []string) {
		owner := parseAddress("owner", ownerFlag)
		asset := parseAsset(assetFlag)
		fee := parseAmount("fee", feeFlag)
		signAndBroadcast(cmd, func(input types.TxInput) types.Tx {
			return &types.RegisterVaultTx{From: input, EventID: eventIDFlag, Owner: owner, Asset: asset, Fee: fee}
		})
	},
}

// payCmd represents the pay command
// Example:
//
//	feecli tx pay --from=0x2E83... --id=0 --value=0.1
var payCmd = &cobra.Command{
	Use:     "pay",
	Short:   "Pay the fee of a vault",
	Long:    `Pay the fee of a vault. Native vaults need --value equal to the fee, token vaults need an approval of the registry instead.`,
	Example: `feecli tx pay --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --id=0 --value=0.1`,
	Run: func(cmd *cobra.Command, args []string) {
		value := parseAmount("value", valueFlag)
		signAndBroadcast(cmd, func(input types.TxInput) types.Tx {
			return &types.PayFeeTx{From: input, VaultID: vaultIDFlag, Value: value}
		})
	},
}

// withdrawCmd represents the withdraw command
// Example:
//
//	feecli tx withdraw --from=0x2E83... --id=0
var withdrawCmd = &cobra.Command{
	Use:     "withdraw",
	Short:   "Distribute the funds collected by a vault",
	Example: `feecli tx withdraw --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --id=0`,
	Run: func(cmd *cobra.Command, args []string) {
		signAndBroadcast(cmd, func(input types.TxInput) types.Tx {
			return &types.WithdrawTx{From: input, VaultID: vaultIDFlag}
		})
	},
}

// approveCmd represents the approve command
// Example:
//
//	feecli tx approve --from=0x2E83... --asset=0x00f0... --spender=0xfee0... --amount=100wei
var approveCmd = &cobra.Command{
	Use:     "approve",
	Short:   "Allow a spender to pull tokens",
	Example: `feecli tx approve --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --asset=0x00000000000000000000000000000000000000f0 --spender=0x000000000000000000000000000000000000fee0 --amount=100wei`,
	Run: func(cmd *cobra.Command, args []string) {
		asset := parseAsset(assetFlag)
		spender := parseAddress("spender", spenderFlag)
		amount := parseAmount("amount", amountFlag)
		signAndBroadcast(cmd, func(input types.TxInput) types.Tx {
			return &types.ApproveTx{From: input, Asset: asset, Spender: spender, Amount: amount}
		})
	},
}

func init() {
	addCommonFlags(registerCmd)
	registerCmd.Flags().StringVar(&eventIDFlag, "event", "", "Id of the event the vault collects for")
	registerCmd.Flags().StringVar(&ownerFlag, "owner", "", "Owner of the vault")
	registerCmd.Flags().StringVar(&assetFlag, "asset", "native", "Asset: native or a token address")
	registerCmd.Flags().StringVar(&feeFlag, "fee", "0", "Fee, in whole units or with a wei suffix")
	registerCmd.MarkFlagRequired("owner")
	registerCmd.MarkFlagRequired("fee")

	addCommonFlags(payCmd)
	payCmd.Flags().Uint64Var(&vaultIDFlag, "id", 0, "Vault id")
	payCmd.Flags().StringVar(&valueFlag, "value", "0", "Native value attached to the payment")
	payCmd.MarkFlagRequired("id")

	addCommonFlags(withdrawCmd)
	withdrawCmd.Flags().Uint64Var(&vaultIDFlag, "id", 0, "Vault id")
	withdrawCmd.MarkFlagRequired("id")

	addCommonFlags(approveCmd)
	approveCmd.Flags().StringVar(&assetFlag, "asset", "", "Token address")
	approveCmd.Flags().StringVar(&spenderFlag, "spender", "", "Address allowed to pull the tokens")
	approveCmd.Flags().StringVar(&amountFlag, "amount", "0", "Allowance, in whole units or with a wei suffix")
	approveCmd.MarkFlagRequired("asset")
	approveCmd.MarkFlagRequired("spender")
}
