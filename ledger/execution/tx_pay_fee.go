package execution

import (
	"math/big"

	"github.com/guildxyz/feeledger/ledger/bank"
	st "github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
)

var _ TxExecutor = (*PayFeeTxExecutor)(nil)

// ------------------------------- PayFee Transaction -----------------------------------

// PayFeeTxExecutor implements the TxExecutor interface
type PayFeeTxExecutor struct {
	transferer bank.Transferer
}

// NewPayFeeTxExecutor creates a new instance of PayFeeTxExecutor
func NewPayFeeTxExecutor(transferer bank.Transferer) *PayFeeTxExecutor {
	return &PayFeeTxExecutor{
		transferer: transferer,
	}
}

func (exec *PayFeeTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.PayFeeTx)

	// The vault is checked first, even when native value is attached.
	vault, err := getVault(view, tx.VaultID)
	if err != nil {
		return err
	}
	if registry := view.GetRegistryAddress(); tx.From.Address == registry {
		return &types.RegistryPayerError{VaultID: vault.ID, Registry: registry}
	}
	if err := checkAmount("value", tx.Value); err != nil {
		return err
	}

	value := amountOrZero(tx.Value)
	if vault.Asset.IsNative() {
		if value.Cmp(vault.Fee) != 0 {
			return &types.IncorrectFeeError{VaultID: vault.ID, Supplied: value, Expected: vault.Fee}
		}
	} else if value.Sign() != 0 {
		return &types.IncorrectFeeError{VaultID: vault.ID, Supplied: value, Expected: big.NewInt(0)}
	}
	return nil
}

func (exec *PayFeeTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) ([]types.Event, error) {
	tx := transaction.(*types.PayFeeTx)
	payer := tx.From.Address

	vault, err := getVault(view, tx.VaultID)
	if err != nil {
		return nil, err
	}
	registry := view.GetRegistryAddress()

	vault.Collected.Add(vault.Collected, vault.Fee)
	view.SetVault(vault)
	view.SetPaid(vault.ID, payer)

	var ok bool
	if vault.Asset.IsNative() {
		ok = exec.transferer.Transfer(view, vault.Asset, payer, registry, vault.Fee)
	} else {
		ok = exec.transferer.TransferFrom(view, vault.Asset, registry, payer, registry, vault.Fee)
	}
	if !ok {
		return nil, &types.TransferFailedError{From: payer, To: registry}
	}

	return []types.Event{&types.FeeReceivedEvent{
		VaultID: vault.ID,
		Payer:   payer,
		Amount:  new(big.Int).Set(vault.Fee),
	}}, nil
}
