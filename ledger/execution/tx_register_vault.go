package execution

import (
	st "github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
)

var _ TxExecutor = (*RegisterVaultTxExecutor)(nil)

// ------------------------------- RegisterVault Transaction -----------------------------------

// RegisterVaultTxExecutor implements the TxExecutor interface. Anyone may
// register a vault.
type RegisterVaultTxExecutor struct {
}

// NewRegisterVaultTxExecutor creates a new instance of RegisterVaultTxExecutor
func NewRegisterVaultTxExecutor() *RegisterVaultTxExecutor {
	return &RegisterVaultTxExecutor{}
}

func (exec *RegisterVaultTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.RegisterVaultTx)
	return checkAmount("fee", tx.Fee)
}

func (exec *RegisterVaultTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) ([]types.Event, error) {
	tx := transaction.(*types.RegisterVaultTx)

	id := view.GetVaultCount()
	vault := types.NewVault(id, tx.EventID, tx.Owner, tx.Asset, amountOrZero(tx.Fee))
	view.SetVault(vault)
	view.SetVaultCount(id + 1)

	return []types.Event{&types.VaultRegisteredEvent{
		VaultID: id,
		EventID: vault.EventID,
		Owner:   vault.Owner,
		Asset:   vault.Asset,
		Fee:     vault.Fee,
	}}, nil
}
