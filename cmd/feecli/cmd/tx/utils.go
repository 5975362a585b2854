package tx

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/guildxyz/feeledger/cmd/feecli/cmd/utils"
	"github.com/guildxyz/feeledger/ledger/types"
	"github.com/guildxyz/feeledger/rpc"
)

func newClient() rpc.Client {
	client, err := rpc.NewClient(viper.GetString(utils.CfgRemoteRPCEndpoint))
	if err != nil {
		utils.Error("Failed to connect to node: %v\n", err)
	}
	return client
}

func parseAddress(name, in string) common.Address {
	if !common.IsHexAddress(in) {
		utils.Error("Invalid %v address: %q\n", name, in)
	}
	return common.HexToAddress(in)
}

func parseAmount(name, in string) *big.Int {
	amount, ok := types.ParseAmount(in)
	if !ok {
		utils.Error("Failed to parse %v: %q\n", name, in)
	}
	return amount
}

func parseAsset(in string) types.Asset {
	asset, err := types.ParseAsset(in)
	if err != nil {
		utils.Error("Failed to parse asset: %v\n", err)
	}
	return asset
}

// unlockKey prompts for the password of the from key and decrypts it.
func unlockKey(cmd *cobra.Command) *keystore.Key {
	cfgPath := cmd.Flag("config").Value.String()
	from := parseAddress("from", fromFlag)

	password, err := utils.GetPassword(fmt.Sprintf("Please enter password for %v: ", from.Hex()))
	if err != nil {
		utils.Error("Failed to get password: %v\n", err)
	}
	key, err := utils.LoadKey(cfgPath, from, password)
	if err != nil {
		utils.Error("Failed to unlock key: %v\n", err)
	}
	return key
}

// newInput returns the input of the next transaction of from, asking the
// node for the sequence unless --seq was given.
func newInput(client rpc.Client, from common.Address) types.TxInput {
	seq := seqFlag
	if seq == 0 {
		res := &rpc.GetSequenceResult{}
		if err := client.Call("GetSequence", rpc.GetSequenceArgs{Address: from.Hex()}, res); err != nil {
			utils.Error("Failed to get sequence: %v\n", err)
		}
		seq = uint64(res.Sequence) + 1
	}
	return types.NewTxInput(from, seq)
}

func chainID(client rpc.Client) string {
	if chainIDFlag != "" {
		return chainIDFlag
	}
	res := &rpc.GetStatusResult{}
	if err := client.Call("GetStatus", rpc.GetStatusArgs{}, res); err != nil {
		utils.Error("Failed to get chain id: %v\n", err)
	}
	return res.ChainID
}

// signAndBroadcast builds the transaction with makeTx, signs it with the from
// key and waits for the node to execute it.
func signAndBroadcast(cmd *cobra.Command, makeTx func(input types.TxInput) types.Tx) {
	key := unlockKey(cmd)
	client := newClient()

	tx := makeTx(newInput(client, key.Address))
	if err := types.SignTx(chainID(client), tx, key.PrivateKey); err != nil {
		utils.Error("Failed to sign transaction: %v\n", err)
	}

	raw, err := types.TxToBytes(tx)
	if err != nil {
		utils.Error("Failed to encode transaction: %v\n", err)
	}

	result := &rpc.BroadcastRawTransactionResult{}
	err = client.Call("BroadcastRawTransaction", rpc.BroadcastRawTransactionArgs{TxBytes: hex.EncodeToString(raw)}, result)
	if err != nil {
		utils.Error("Failed to broadcast transaction: %v\n", err)
	}
	formatted, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		utils.Error("Failed to parse server response: %v\n", err)
	}
	fmt.Printf("Successfully broadcasted transaction:\n%s\n", formatted)
}
