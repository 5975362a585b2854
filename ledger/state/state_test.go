package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guildxyz/feeledger/ledger/types"
	"github.com/guildxyz/feeledger/store/database/backend"
)

func TestLedgerStateBasics(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	db := backend.NewMemDatabase()
	ls, err := NewLedgerState(db, 16)
	require.Nil(err)
	assert.Equal(uint64(0), ls.Height())
	assert.Equal("", ls.GetChainID())

	view := ls.Delivered().Branch()
	view.SetChainID("testchain")
	view.SetVault(types.NewVault(0, "e", common.HexToAddress("0x1"), types.NativeAsset, big.NewInt(10)))
	view.SetVaultCount(1)
	view.IncrementHeight()
	view.Commit()
	require.Nil(ls.Commit())

	assert.Equal("testchain", ls.GetChainID())
	assert.Equal(uint64(1), ls.Height())

	// Reopen from the same database
	ls2, err := NewLedgerState(db, 16)
	require.Nil(err)
	assert.Equal("testchain", ls2.GetChainID())
	assert.Equal(uint64(1), ls2.Height())
	assert.Equal(uint64(1), ls2.Delivered().GetVaultCount())
}

func TestLedgerStateVaultCache(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ls, err := NewLedgerState(backend.NewMemDatabase(), 4)
	require.Nil(err)

	view := ls.Delivered().Branch()
	view.SetVault(types.NewVault(0, "e", common.HexToAddress("0x1"), types.NativeAsset, big.NewInt(10)))
	view.Commit()
	require.Nil(ls.Commit())

	v := ls.GetVault(0)
	require.NotNil(v)
	v.Collected.SetInt64(999)

	// Modifying the returned copy does not touch the cache
	assert.Equal(0, ls.GetVault(0).Collected.Sign())

	view = ls.Delivered().Branch()
	updated := ls.GetVault(0)
	updated.Collected = big.NewInt(10)
	view.SetVault(updated)
	view.Commit()
	require.Nil(ls.Commit())

	// The cache is purged on commit
	assert.Equal(int64(10), ls.GetVault(0).Collected.Int64())
	assert.Nil(ls.GetVault(1))
}

func TestLedgerStateReload(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ls, err := NewLedgerState(backend.NewMemDatabase(), 4)
	require.Nil(err)

	view := ls.Delivered().Branch()
	view.SetVaultCount(7)
	view.IncrementHeight()
	view.Commit()
	assert.Equal(uint64(1), ls.Height())

	ls.Reload()
	assert.Equal(uint64(0), ls.Height())
	assert.Equal(uint64(0), ls.Delivered().GetVaultCount())
}
