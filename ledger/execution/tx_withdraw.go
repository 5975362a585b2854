package execution

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/guildxyz/feeledger/ledger/bank"
	st "github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
)

var _ TxExecutor = (*WithdrawTxExecutor)(nil)

// ------------------------------- Withdraw Transaction -----------------------------------

// WithdrawTxExecutor implements the TxExecutor interface. Anyone may trigger
// a withdrawal, the funds always go to the collectors and the vault owner.
type WithdrawTxExecutor struct {
	transferer bank.Transferer
}

// NewWithdrawTxExecutor creates a new instance of WithdrawTxExecutor
func NewWithdrawTxExecutor(transferer bank.Transferer) *WithdrawTxExecutor {
	return &WithdrawTxExecutor{
		transferer: transferer,
	}
}

func (exec *WithdrawTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.WithdrawTx)

	if _, err := getVault(view, tx.VaultID); err != nil {
		return err
	}
	config, err := getDistributionConfig(view)
	if err != nil {
		return err
	}
	return types.ValidateShares(config.GuildShareBp, config.PoapShareBp)
}

func (exec *WithdrawTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) ([]types.Event, error) {
	tx := transaction.(*types.WithdrawTx)

	vault, err := getVault(view, tx.VaultID)
	if err != nil {
		return nil, err
	}
	config, err := getDistributionConfig(view)
	if err != nil {
		return nil, err
	}
	dist, err := types.CalculateDistribution(vault.Collected, config.GuildShareBp, config.PoapShareBp)
	if err != nil {
		return nil, err
	}

	// The zeroed balance is in the view before any transfer runs.
	vault.Collected.SetInt64(0)
	view.SetVault(vault)

	registry := view.GetRegistryAddress()
	payouts := []struct {
		to     common.Address
		amount *big.Int
	}{
		{config.GuildCollector, dist.Guild},
		{config.PoapCollector, dist.Poap},
		{vault.Owner, dist.Owner},
	}
	for _, p := range payouts {
		if !exec.transferer.Transfer(view, vault.Asset, registry, p.to, p.amount) {
			return nil, &types.TransferFailedError{From: registry, To: p.to}
		}
	}

	return []types.Event{&types.WithdrawnEvent{
		VaultID:     vault.ID,
		GuildAmount: dist.Guild,
		PoapAmount:  dist.Poap,
		OwnerAmount: dist.Owner,
	}}, nil
}
