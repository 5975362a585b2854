package execution

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/guildxyz/feeledger/ledger/bank"
	st "github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "execution"})

// TxExecutor defines the interface of the transaction executors.
// sanityCheck only reads the view, process mutates it.
type TxExecutor interface {
	sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) error
	process(chainID string, view *st.StoreView, transaction types.Tx) ([]types.Event, error)
}

// ExecResult describes a committed transaction.
type ExecResult struct {
	TxHash  common.Hash
	Height  uint64
	Events  []types.Event
	Records []*types.EventRecord
}

// Executor executes the transactions
type Executor struct {
	state      *st.LedgerState
	transferer bank.Transferer

	registerVaultTxExec *RegisterVaultTxExecutor
	payFeeTxExec        *PayFeeTxExecutor
	withdrawTxExec      *WithdrawTxExecutor
	setCollectorTxExec  *SetCollectorTxExecutor
	setShareTxExec      *SetShareTxExecutor
	approveTxExec       *ApproveTxExecutor
}

// NewExecutor creates a new instance of Executor
func NewExecutor(state *st.LedgerState, transferer bank.Transferer) *Executor {
	executor := &Executor{
		state:               state,
		transferer:          transferer,
		registerVaultTxExec: NewRegisterVaultTxExecutor(),
		payFeeTxExec:        NewPayFeeTxExecutor(transferer),
		withdrawTxExec:      NewWithdrawTxExecutor(transferer),
		setCollectorTxExec:  NewSetCollectorTxExecutor(),
		setShareTxExec:      NewSetShareTxExecutor(),
		approveTxExec:       NewApproveTxExecutor(),
	}

	return executor
}

// ExecuteTx runs tx on a branch of the delivered view. The branch is merged
// and persisted only when every check and every transfer succeeded, a failed
// transaction leaves the state untouched. An unsigned tx is trusted to come
// from its From address, so only in-process callers may submit one.
func (exec *Executor) ExecuteTx(tx types.Tx) (*ExecResult, error) {
	chainID := exec.state.GetChainID()
	txExecutor := exec.getTxExecutor(tx)
	if txExecutor == nil {
		return nil, ErrUnknownTxType(tx)
	}

	view := exec.state.Delivered().Branch()
	view.IncrementHeight()

	if err := checkInput(chainID, view, tx); err != nil {
		logger.Infof("Rejected %v: %v", tx, err)
		return nil, err
	}
	if err := txExecutor.sanityCheck(chainID, view, tx); err != nil {
		logger.Infof("Sanity check failed for %v: %v", tx, err)
		return nil, err
	}
	events, err := txExecutor.process(chainID, view, tx)
	if err != nil {
		logger.Infof("Failed to process %v: %v", tx, err)
		return nil, err
	}

	input := tx.GetInput()
	view.SetSequence(input.Address, input.Sequence)

	res := &ExecResult{
		TxHash: types.TxID(chainID, tx),
		Height: view.Height(),
		Events: events,
	}
	for _, ev := range events {
		rec, err := view.AppendEvent(res.TxHash, ev)
		if err != nil {
			return nil, err
		}
		res.Records = append(res.Records, rec)
	}

	view.Commit()
	if err := exec.state.Commit(); err != nil {
		logger.Errorf("Failed to commit %v: %v", tx, err)
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	logger.Debugf("Committed %v at height %v, hash: %v", tx, res.Height, res.TxHash.Hex())
	for _, rec := range res.Records {
		logger.Debugf("Emitted %v", rec)
	}
	return res, nil
}

func (exec *Executor) getTxExecutor(tx types.Tx) TxExecutor {
	var txExecutor TxExecutor
	switch tx.(type) {
	case *types.RegisterVaultTx:
		txExecutor = exec.registerVaultTxExec
	case *types.PayFeeTx:
		txExecutor = exec.payFeeTxExec
	case *types.WithdrawTx:
		txExecutor = exec.withdrawTxExec
	case *types.SetGuildFeeCollectorTx, *types.SetPoapFeeCollectorTx:
		txExecutor = exec.setCollectorTxExec
	case *types.SetGuildShareTx, *types.SetPoapShareTx:
		txExecutor = exec.setShareTxExec
	case *types.ApproveTx:
		txExecutor = exec.approveTxExec
	default:
		txExecutor = nil
	}
	return txExecutor
}
