package tx

import (
	"github.com/spf13/cobra"
)

// Common flags used in Tx sub commands.
var (
	chainIDFlag   string
	fromFlag      string
	seqFlag       uint64
	vaultIDFlag   uint64
	eventIDFlag   string
	ownerFlag     string
	assetFlag     string
	feeFlag       string
	valueFlag     string
	spenderFlag   string
	amountFlag    string
	collectorFlag string
	shareFlag     uint64
)

// TxCmd represents the Tx command
var TxCmd = &cobra.Command{
	Use:   "tx",
	Short: "Manage transactions",
	Long:  `Sign transactions with a stored key and broadcast them to the node.`,
}

func init() {
	TxCmd.AddCommand(registerCmd)
	TxCmd.AddCommand(payCmd)
	TxCmd.AddCommand(withdrawCmd)
	TxCmd.AddCommand(approveCmd)
	TxCmd.AddCommand(setGuildCollectorCmd)
	TxCmd.AddCommand(setGuildShareCmd)
	TxCmd.AddCommand(setPoapCollectorCmd)
	TxCmd.AddCommand(setPoapShareCmd)
}

// addCommonFlags registers the flags every transaction needs.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&chainIDFlag, "chain", "", "Chain ID (default is the chain of the node)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Address of the signing key")
	cmd.Flags().Uint64Var(&seqFlag, "seq", 0, "Sequence number of the transaction (default is the next one)")
	cmd.MarkFlagRequired("from")
}
