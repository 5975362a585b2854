package execution

import (
	"math/big"

	"github.com/pkg/errors"

	st "github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
)

var _ TxExecutor = (*ApproveTxExecutor)(nil)

// ------------------------------- Approve Transaction -----------------------------------

// ApproveTxExecutor implements the TxExecutor interface
type ApproveTxExecutor struct {
}

// NewApproveTxExecutor creates a new instance of ApproveTxExecutor
func NewApproveTxExecutor() *ApproveTxExecutor {
	return &ApproveTxExecutor{}
}

func (exec *ApproveTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.ApproveTx)

	if tx.Asset.IsNative() {
		return errors.New("allowances only apply to tokens")
	}
	return checkAmount("amount", tx.Amount)
}

func (exec *ApproveTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) ([]types.Event, error) {
	tx := transaction.(*types.ApproveTx)
	owner := tx.From.Address
	amount := new(big.Int).Set(amountOrZero(tx.Amount))

	view.SetAllowance(tx.Asset, owner, tx.Spender, amount)

	return []types.Event{&types.ApprovalEvent{
		Owner:   owner,
		Asset:   tx.Asset,
		Spender: tx.Spender,
		Amount:  amount,
	}}, nil
}
