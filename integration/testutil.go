package integration

import (
	"crypto/ecdsa"
	"encoding/hex"
	"math/big"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	cmn "github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/ledger"
	"github.com/guildxyz/feeledger/ledger/types"
	"github.com/guildxyz/feeledger/node"
	"github.com/guildxyz/feeledger/rpc"
	"github.com/guildxyz/feeledger/store/database/backend"
)

// account is a test key pair.
type account struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func newAccount(t *testing.T) *account {
	key, err := crypto.GenerateKey()
	require.Nil(t, err)
	return &account{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

// testNet is a node serving RPC from an in-memory database.
type testNet struct {
	t       *testing.T
	chainID string
	node    *node.Node
	server  *httptest.Server
	client  rpc.Client
}

func newTestNet(t *testing.T, genesis *ledger.Genesis) *testNet {
	viper.Set(cmn.CfgRPCEnabled, true)

	n, err := node.NewNode(&node.Params{Genesis: genesis, DB: backend.NewMemDatabase(), VaultCacheSize: 16})
	require.Nil(t, err)
	require.NotNil(t, n.RPC)

	server := httptest.NewServer(n.RPC.Handler())
	t.Cleanup(server.Close)

	client, err := rpc.NewClient(server.URL + "/rpc")
	require.Nil(t, err)

	return &testNet{t: t, chainID: genesis.ChainID, node: n, server: server, client: client}
}

func nativeBalance(addr common.Address, amount *big.Int) ledger.GenesisBalance {
	return ledger.GenesisBalance{Address: addr, Asset: types.NativeAsset, Amount: cmn.NewJSONBig(amount)}
}

func (tn *testNet) nextInput(from common.Address) types.TxInput {
	res := &rpc.GetSequenceResult{}
	require.Nil(tn.t, tn.client.Call("GetSequence", rpc.GetSequenceArgs{Address: from.Hex()}, res))
	return types.NewTxInput(from, uint64(res.Sequence)+1)
}

// send signs the transaction built by makeTx and broadcasts it.
func (tn *testNet) send(from *account, makeTx func(input types.TxInput) types.Tx) (*rpc.BroadcastRawTransactionResult, error) {
	tx := makeTx(tn.nextInput(from.address))
	require.Nil(tn.t, types.SignTx(tn.chainID, tx, from.key))
	raw, err := types.TxToBytes(tx)
	require.Nil(tn.t, err)

	result := &rpc.BroadcastRawTransactionResult{}
	err = tn.client.Call("BroadcastRawTransaction", rpc.BroadcastRawTransactionArgs{TxBytes: hex.EncodeToString(raw)}, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (tn *testNet) balance(asset types.Asset, addr common.Address) *big.Int {
	res := &rpc.GetBalanceResult{}
	require.Nil(tn.t, tn.client.Call("GetBalance", rpc.GetBalanceArgs{Asset: asset.String(), Address: addr.Hex()}, res))
	return res.Balance.ToInt()
}
