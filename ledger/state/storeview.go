package state

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/guildxyz/feeledger/ledger/types"
	"github.com/guildxyz/feeledger/store"
	"github.com/guildxyz/feeledger/store/database"
)

//
// ------------------------- StoreView -------------------------
//

type write struct {
	value   []byte
	deleted bool
}

// StoreView is a write buffer over either the database (root view) or
// another view (branch). Branches are merged into their parent with Commit,
// the root view is flushed to the database with Save. A branch that is
// dropped leaves no trace, which is how failed transactions roll back.
type StoreView struct {
	height uint64 // number of committed transactions
	parent *StoreView
	db     database.Database
	writes map[string]write
}

// NewStoreView creates a root view over db
func NewStoreView(height uint64, db database.Database) *StoreView {
	return &StoreView{
		height: height,
		db:     db,
		writes: make(map[string]write),
	}
}

// Branch returns a child view that sees everything sv sees, and whose writes
// only reach sv on Commit.
func (sv *StoreView) Branch() *StoreView {
	return &StoreView{
		height: sv.height,
		parent: sv,
		writes: make(map[string]write),
	}
}

// Height returns the height corresponding to the stored state
func (sv *StoreView) Height() uint64 {
	return sv.height
}

// IncrementHeight increments the height by 1
func (sv *StoreView) IncrementHeight() {
	sv.height++
}

// Get returns the value corresponding the key, nil if absent
func (sv *StoreView) Get(key []byte) []byte {
	if w, ok := sv.writes[string(key)]; ok {
		if w.deleted {
			return nil
		}
		return w.value
	}
	if sv.parent != nil {
		return sv.parent.Get(key)
	}
	value, err := sv.db.Get(key)
	if err == store.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		panic(fmt.Sprintf("Failed to read key %X: %v", key, err))
	}
	return value
}

// Set sets the value of key in this view
func (sv *StoreView) Set(key []byte, value []byte) {
	sv.writes[string(key)] = write{value: value}
}

// Delete removes key in this view
func (sv *StoreView) Delete(key []byte) {
	sv.writes[string(key)] = write{deleted: true}
}

// Commit merges the writes of a branch into its parent.
func (sv *StoreView) Commit() {
	if sv.parent == nil {
		panic("Commit called on a root StoreView")
	}
	for k, w := range sv.writes {
		sv.parent.writes[k] = w
	}
	sv.parent.height = sv.height
	sv.writes = make(map[string]write)
}

// Save flushes the writes of a root view to the database in one batch.
func (sv *StoreView) Save() error {
	if sv.db == nil {
		return errors.New("Save called on a branched StoreView")
	}
	batch := sv.db.NewBatch()
	for k, w := range sv.writes {
		var err error
		if w.deleted {
			err = batch.Delete([]byte(k))
		} else {
			err = batch.Put([]byte(k), w.value)
		}
		if err != nil {
			return errors.Wrap(err, "failed to stage write")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "failed to save the StoreView")
	}
	sv.writes = make(map[string]write)
	return nil
}

// Discard drops the pending writes of the view.
func (sv *StoreView) Discard() {
	sv.writes = make(map[string]write)
}

// Dirty reports whether the view holds writes not yet merged or saved.
func (sv *StoreView) Dirty() bool {
	return len(sv.writes) > 0
}

func (sv *StoreView) getValue(key []byte, value interface{}) bool {
	data := sv.Get(key)
	if len(data) == 0 {
		return false
	}
	if err := types.FromBytes(data, value); err != nil {
		panic(fmt.Sprintf("Error reading %X error: %v", data, err.Error()))
	}
	return true
}

func (sv *StoreView) setValue(key []byte, value interface{}) {
	data, err := types.ToBytes(value)
	if err != nil {
		panic(fmt.Sprintf("Error writing %v error: %v", value, err.Error()))
	}
	sv.Set(key, data)
}

func (sv *StoreView) getUint64(key []byte) uint64 {
	var v uint64
	sv.getValue(key, &v)
	return v
}

// GetChainID returns the chain id recorded at genesis
func (sv *StoreView) GetChainID() string {
	return string(sv.Get(ChainIDKey()))
}

func (sv *StoreView) SetChainID(chainID string) {
	sv.Set(ChainIDKey(), []byte(chainID))
}

// GetRegistryAddress returns the address that holds the funds of all vaults
func (sv *StoreView) GetRegistryAddress() common.Address {
	return common.BytesToAddress(sv.Get(RegistryAddressKey()))
}

func (sv *StoreView) SetRegistryAddress(addr common.Address) {
	sv.Set(RegistryAddressKey(), addr.Bytes())
}

// GetVaultCount returns the number of registered vaults, which is also the
// next vault id.
func (sv *StoreView) GetVaultCount() uint64 {
	return sv.getUint64(VaultCountKey())
}

func (sv *StoreView) SetVaultCount(count uint64) {
	sv.setValue(VaultCountKey(), count)
}

// GetVault returns the vault with the given id, nil if it does not exist
func (sv *StoreView) GetVault(id uint64) *types.Vault {
	vault := &types.Vault{}
	if !sv.getValue(VaultKey(id), vault) {
		return nil
	}
	return vault
}

func (sv *StoreView) SetVault(vault *types.Vault) {
	sv.setValue(VaultKey(vault.ID), vault)
}

// HasPaid returns whether payer has ever paid the vault
func (sv *StoreView) HasPaid(id uint64, payer common.Address) bool {
	return len(sv.Get(PaidKey(id, payer))) > 0
}

func (sv *StoreView) SetPaid(id uint64, payer common.Address) {
	sv.Set(PaidKey(id, payer), []byte{1})
}

// GetDistributionConfig returns the distribution config, nil before genesis
func (sv *StoreView) GetDistributionConfig() *types.DistributionConfig {
	config := &types.DistributionConfig{}
	if !sv.getValue(DistributionConfigKey(), config) {
		return nil
	}
	return config
}

func (sv *StoreView) SetDistributionConfig(config *types.DistributionConfig) {
	sv.setValue(DistributionConfigKey(), config)
}

// GetBalance returns the balance of addr in asset, zero when never set
func (sv *StoreView) GetBalance(asset types.Asset, addr common.Address) *big.Int {
	balance := new(big.Int)
	sv.getValue(BalanceKey(asset, addr), balance)
	return balance
}

func (sv *StoreView) SetBalance(asset types.Asset, addr common.Address, balance *big.Int) {
	sv.setValue(BalanceKey(asset, addr), balance)
}

// GetAllowance returns how much spender may pull from owner in asset
func (sv *StoreView) GetAllowance(asset types.Asset, owner, spender common.Address) *big.Int {
	allowance := new(big.Int)
	sv.getValue(AllowanceKey(asset, owner, spender), allowance)
	return allowance
}

func (sv *StoreView) SetAllowance(asset types.Asset, owner, spender common.Address, allowance *big.Int) {
	sv.setValue(AllowanceKey(asset, owner, spender), allowance)
}

// GetSequence returns the last committed sequence of addr
func (sv *StoreView) GetSequence(addr common.Address) uint64 {
	return sv.getUint64(SequenceKey(addr))
}

func (sv *StoreView) SetSequence(addr common.Address, sequence uint64) {
	sv.setValue(SequenceKey(addr), sequence)
}

// GetEventCount returns the number of stored events
func (sv *StoreView) GetEventCount() uint64 {
	return sv.getUint64(EventCountKey())
}

// AppendEvent stores ev as the next event and returns its record.
func (sv *StoreView) AppendEvent(txHash common.Hash, ev types.Event) (*types.EventRecord, error) {
	index := sv.GetEventCount()
	rec, err := types.NewEventRecord(index, sv.height, txHash, ev)
	if err != nil {
		return nil, err
	}
	sv.setValue(EventKey(index), rec)
	sv.setValue(EventCountKey(), index+1)
	return rec, nil
}

// GetEvent returns the event with the given index, nil if it does not exist
func (sv *StoreView) GetEvent(index uint64) *types.EventRecord {
	rec := &types.EventRecord{}
	if !sv.getValue(EventKey(index), rec) {
		return nil
	}
	return rec
}
