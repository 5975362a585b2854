package node

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmn "github.com/guildxyz/feeledger/common"
	ld "github.com/guildxyz/feeledger/ledger"
	"github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
	"github.com/guildxyz/feeledger/store/database/backend"
)

func testGenesis() *ld.Genesis {
	genesis := ld.DefaultGenesis()
	genesis.ChainID = "node_test_chain"
	genesis.Balances = []ld.GenesisBalance{
		{
			Address: common.HexToAddress("0x0000000000000000000000000000000000000d04"),
			Asset:   types.NativeAsset,
			Amount:  cmn.NewJSONBig(big.NewInt(500)),
		},
	}
	return genesis
}

func TestNodeGenesisRecord(t *testing.T) {
	assert := assert.New(t)
	viper.Set(cmn.CfgRPCEnabled, false)
	defer viper.Set(cmn.CfgRPCEnabled, true)

	db := backend.NewMemDatabase()
	genesis := testGenesis()

	n, err := NewNode(&Params{Genesis: genesis, DB: db, VaultCacheSize: 8})
	require.Nil(t, err)
	assert.Nil(n.RPC)
	assert.Equal("node_test_chain", n.Ledger.ChainID())

	record := &GenesisRecord{}
	require.Nil(t, n.Store.Get(state.GenesisKey(), record))
	assert.Equal(genesis.ChainID, record.ChainID)
	assert.Equal(genesis.Hash(), record.Hash)

	// Restarting with the same genesis keeps the state.
	payer := genesis.Balances[0].Address
	id, err := n.Ledger.RegisterVault(payer, "event", payer, types.NativeAsset, big.NewInt(5))
	require.Nil(t, err)

	n, err = NewNode(&Params{Genesis: testGenesis(), DB: db, VaultCacheSize: 8})
	require.Nil(t, err)
	_, err = n.Ledger.GetVault(id)
	assert.Nil(err)
	assert.Equal(big.NewInt(500), n.Ledger.BalanceOf(types.NativeAsset, payer))

	// Another chain is refused.
	other := testGenesis()
	other.ChainID = "other_chain"
	_, err = NewNode(&Params{Genesis: other, DB: db, VaultCacheSize: 8})
	assert.NotNil(err)
}

func TestNodeLifecycle(t *testing.T) {
	viper.Set(cmn.CfgRPCEnabled, false)
	defer viper.Set(cmn.CfgRPCEnabled, true)

	n, err := NewNode(&Params{Genesis: testGenesis(), DB: backend.NewMemDatabase()})
	require.Nil(t, err)

	n.Start(context.Background())
	n.Stop()
	n.Wait()
	assert.True(t, n.stopped)
}
