package state

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"

	"github.com/guildxyz/feeledger/ledger/types"
)

//
// ------------------------- Ledger State Keys -------------------------
//

// ChainIDKey returns the key for chainID
func ChainIDKey() []byte {
	return []byte("chainid")
}

// GenesisKey returns the key under which the applied genesis is recorded
func GenesisKey() []byte {
	return []byte("genesis")
}

// HeightKey returns the key of the number of committed transactions
func HeightKey() []byte {
	return []byte("ls/h")
}

// RegistryAddressKey returns the key of the address that holds collected funds
func RegistryAddressKey() []byte {
	return []byte("ls/reg")
}

// VaultCountKey returns the key of the number of registered vaults
func VaultCountKey() []byte {
	return []byte("ls/vc")
}

// VaultKey constructs the state key for the given vault id
func VaultKey(id uint64) []byte {
	return append([]byte("ls/v/"), uint64Bytes(id)...)
}

// PaidKey constructs the key of the has-paid flag of payer for the vault
func PaidKey(id uint64, payer common.Address) []byte {
	key := append([]byte("ls/p/"), uint64Bytes(id)...)
	return append(key, payer[:]...)
}

// DistributionConfigKey returns the key of the singleton distribution config
func DistributionConfigKey() []byte {
	return []byte("ls/dc")
}

// BalanceKey constructs the key of the balance of addr in asset
func BalanceKey(asset types.Asset, addr common.Address) []byte {
	key := append([]byte("ls/b/"), asset[:]...)
	return append(key, addr[:]...)
}

// AllowanceKey constructs the key of what spender may pull from owner in asset
func AllowanceKey(asset types.Asset, owner, spender common.Address) []byte {
	key := append([]byte("ls/al/"), asset[:]...)
	key = append(key, owner[:]...)
	return append(key, spender[:]...)
}

// SequenceKey constructs the key of the last committed sequence of addr
func SequenceKey(addr common.Address) []byte {
	return append([]byte("ls/s/"), addr[:]...)
}

// EventCountKey returns the key of the number of stored events
func EventCountKey() []byte {
	return []byte("ls/ec")
}

// EventKey constructs the key of the event with the given index
func EventKey(index uint64) []byte {
	return append([]byte("ls/e/"), uint64Bytes(index)...)
}

func uint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
