package node

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	cmn "github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/common/util"
	ld "github.com/guildxyz/feeledger/ledger"
	"github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
	"github.com/guildxyz/feeledger/rpc"
	"github.com/guildxyz/feeledger/store"
	"github.com/guildxyz/feeledger/store/database"
	"github.com/guildxyz/feeledger/store/kvstore"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "node"})

type Node struct {
	Store  store.Store
	Ledger *ld.Ledger
	RPC    *rpc.FeeLedgerRPCServer

	// Life cycle
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
}

type Params struct {
	Genesis        *ld.Genesis
	DB             database.Database
	VaultCacheSize int
}

// GenesisRecord is what the node remembers about the genesis it was started
// with.
type GenesisRecord struct {
	ChainID string
	Hash    common.Hash
}

func NewNode(params *Params) (*Node, error) {
	logger = util.GetLoggerForModule("node")

	kv := kvstore.NewKVStore(params.DB)
	recorded, err := checkGenesis(kv, params.Genesis)
	if err != nil {
		return nil, err
	}

	cacheSize := params.VaultCacheSize
	if cacheSize <= 0 {
		cacheSize = viper.GetInt(cmn.CfgLedgerVaultCacheSize)
	}
	ledgerState, err := state.NewLedgerState(params.DB, cacheSize)
	if err != nil {
		return nil, err
	}
	ledger := ld.NewLedger(ledgerState, nil)
	if err := ledger.ApplyGenesis(params.Genesis); err != nil {
		return nil, err
	}
	if !recorded {
		if err := kv.Put(state.GenesisKey(), &GenesisRecord{
			ChainID: params.Genesis.ChainID,
			Hash:    params.Genesis.Hash(),
		}); err != nil {
			return nil, errors.Wrap(err, "failed to record genesis")
		}
	}
	ledger.Subscribe(logEvent)

	node := &Node{
		Store:  kv,
		Ledger: ledger,
	}

	if viper.GetBool(cmn.CfgRPCEnabled) {
		node.RPC = rpc.NewFeeLedgerRPCServer(ledger)
	}

	return node, nil
}

// checkGenesis refuses to start on a database that was initialized for
// another chain. It reports whether a genesis was already recorded.
func checkGenesis(kv store.Store, genesis *ld.Genesis) (bool, error) {
	record := &GenesisRecord{}
	err := kv.Get(state.GenesisKey(), record)
	if errors.Is(err, store.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to read genesis record")
	}
	if record.ChainID != genesis.ChainID {
		return true, errors.Errorf("database belongs to chain %v, genesis is for chain %v", record.ChainID, genesis.ChainID)
	}
	if record.Hash != genesis.Hash() {
		logger.Warnf("Genesis file changed since the database was initialized, keeping the stored state")
	}
	return true, nil
}

func logEvent(rec *types.EventRecord) {
	logger.WithFields(log.Fields{
		"index":  rec.Index,
		"height": rec.Height,
		"tx":     rec.TxHash.Hex(),
	}).Debugf("%v %s", rec.Name, rec.Payload)
}

// Start starts sub components and kick off the main loop.
func (n *Node) Start(ctx context.Context) {
	c, cancel := context.WithCancel(ctx)
	n.ctx = c
	n.cancel = cancel

	logger.Infof("Starting node for chain %v at height %v", n.Ledger.ChainID(), n.Ledger.Height())

	if n.RPC != nil {
		n.RPC.Start(n.ctx)
	}
}

// Stop notifies all sub components to stop without blocking.
func (n *Node) Stop() {
	n.stopped = true
	n.cancel()
}

// Wait blocks until all sub components stop.
func (n *Node) Wait() {
	if n.RPC != nil {
		n.RPC.Wait()
	}
}
