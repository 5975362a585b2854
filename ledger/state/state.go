package state

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/guildxyz/feeledger/ledger/types"
	"github.com/guildxyz/feeledger/store/database"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "state"})

//
// ------------------------- State -------------------------
//

type LedgerState struct {
	chainID string
	db      database.Database

	delivered *StoreView // for actually applying the transactions
	vaults    *lru.Cache // vault id -> *types.Vault, committed state only
}

// NewLedgerState loads the ledger state stored in db. vaultCacheSize is the
// number of decoded vaults kept in memory.
func NewLedgerState(db database.Database, vaultCacheSize int) (*LedgerState, error) {
	if vaultCacheSize <= 0 {
		vaultCacheSize = 1
	}
	cache, err := lru.New(vaultCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create vault cache")
	}

	s := &LedgerState{
		db:     db,
		vaults: cache,
	}
	root := NewStoreView(0, db)
	root.height = root.getUint64(HeightKey())
	s.delivered = root
	s.chainID = root.GetChainID()

	logger.Debugf("Loaded ledger state, chainID: %v, height: %v", s.chainID, s.delivered.Height())
	return s, nil
}

// GetChainID gets chain ID.
func (s *LedgerState) GetChainID() string {
	if s.chainID != "" {
		return s.chainID
	}
	s.chainID = s.delivered.GetChainID()
	return s.chainID
}

// DB returns the database instance of the ledger state
func (s *LedgerState) DB() database.Database {
	return s.db
}

// Height returns the number of committed transactions
func (s *LedgerState) Height() uint64 {
	return s.delivered.Height()
}

// Delivered returns the view transactions are applied to.
func (s *LedgerState) Delivered() *StoreView {
	return s.delivered
}

// GetVault reads a committed vault through the cache. The returned vault is
// a copy the caller may modify.
func (s *LedgerState) GetVault(id uint64) *types.Vault {
	if cached, ok := s.vaults.Get(id); ok {
		return cached.(*types.Vault).Copy()
	}
	vault := s.delivered.GetVault(id)
	if vault == nil {
		return nil
	}
	s.vaults.Add(id, vault)
	return vault.Copy()
}

// Commit persists the delivered view. When the database rejects the write
// the pending changes are dropped, so memory never runs ahead of disk.
func (s *LedgerState) Commit() error {
	s.vaults.Purge()
	s.delivered.setValue(HeightKey(), s.delivered.Height())
	if err := s.delivered.Save(); err != nil {
		s.Reload()
		return err
	}
	return nil
}

// Reload discards pending writes and reloads the height from the database.
func (s *LedgerState) Reload() {
	s.delivered.Discard()
	s.delivered.height = s.delivered.getUint64(HeightKey())
	s.vaults.Purge()
}
