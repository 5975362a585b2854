package query

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	rpcc "github.com/ybbus/jsonrpc"

	"github.com/guildxyz/feeledger/cmd/feecli/cmd/utils"
	"github.com/guildxyz/feeledger/rpc"
)

// Common flags used in Query sub commands.
var (
	vaultIDFlag uint64
	addressFlag string
	assetFlag   string
	ownerFlag   string
	spenderFlag string
	startFlag   uint64
	limitFlag   uint64
)

// QueryCmd represents the query command
var QueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the fee ledger",
	Long:  `Query the fee ledger.`,
}

func init() {
	QueryCmd.AddCommand(statusCmd)
	QueryCmd.AddCommand(vaultCmd)
	QueryCmd.AddCommand(paidCmd)
	QueryCmd.AddCommand(configCmd)
	QueryCmd.AddCommand(balanceCmd)
	QueryCmd.AddCommand(allowanceCmd)
	QueryCmd.AddCommand(sequenceCmd)
	QueryCmd.AddCommand(eventsCmd)
}

// callAndPrint calls method on the node and prints the result as indented
// JSON.
func callAndPrint(method string, args interface{}) {
	client := rpcc.NewRPCClient(viper.GetString(utils.CfgRemoteRPCEndpoint))

	res, err := client.Call(rpc.ServiceName+"."+method, args)
	if err != nil {
		utils.Error("Failed to call %v: %v\n", method, err)
	}
	if res.Error != nil {
		utils.Error("Server returned error: %v\n", res.Error)
	}
	json, err := json.MarshalIndent(res.Result, "", "    ")
	if err != nil {
		utils.Error("Failed to parse server response: %v\n%v\n", err, string(json))
	}
	fmt.Println(string(json))
}
