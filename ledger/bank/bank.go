package bank

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "bank"})

// Transferer moves assets between addresses inside a view. Failures are
// reported through the return value, never by panicking, so that callers can
// raise TransferFailed.
type Transferer interface {
	// Transfer pushes amount of asset from its holder to another address.
	Transfer(view *state.StoreView, asset types.Asset, from, to common.Address, amount *big.Int) bool

	// TransferFrom pulls amount of asset from one address to another on
	// behalf of spender.
	TransferFrom(view *state.StoreView, asset types.Asset, spender, from, to common.Address, amount *big.Int) bool
}

var _ Transferer = (*Bank)(nil)

// Bank is the default Transferer. It keeps balances and token allowances in
// the ledger state. Native currency pulls ignore allowances: the value was
// attached by the payer to a transaction the payer signed.
type Bank struct{}

func NewBank() *Bank {
	return &Bank{}
}

func (b *Bank) Transfer(view *state.StoreView, asset types.Asset, from, to common.Address, amount *big.Int) bool {
	if amount == nil || amount.Sign() == 0 {
		return true
	}
	if amount.Sign() < 0 {
		return false
	}

	fromBalance := view.GetBalance(asset, from)
	if fromBalance.Cmp(amount) < 0 {
		logger.Debugf("Insufficient %v balance of %v: %v < %v", asset, from.Hex(), fromBalance, amount)
		return false
	}
	if from == to {
		return true
	}

	view.SetBalance(asset, from, fromBalance.Sub(fromBalance, amount))
	toBalance := view.GetBalance(asset, to)
	view.SetBalance(asset, to, toBalance.Add(toBalance, amount))
	return true
}

func (b *Bank) TransferFrom(view *state.StoreView, asset types.Asset, spender, from, to common.Address, amount *big.Int) bool {
	if amount == nil || amount.Sign() == 0 {
		return true
	}
	if amount.Sign() < 0 {
		return false
	}
	if asset.IsNative() || spender == from {
		return b.Transfer(view, asset, from, to, amount)
	}

	allowance := view.GetAllowance(asset, from, spender)
	if allowance.Cmp(amount) < 0 {
		logger.Debugf("Insufficient %v allowance of %v for %v: %v < %v", asset, from.Hex(), spender.Hex(), allowance, amount)
		return false
	}
	if !b.Transfer(view, asset, from, to, amount) {
		return false
	}
	view.SetAllowance(asset, from, spender, allowance.Sub(allowance, amount))
	return true
}

// Mint credits amount of asset to addr. Used for genesis allocations.
func (b *Bank) Mint(view *state.StoreView, asset types.Asset, to common.Address, amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	balance := view.GetBalance(asset, to)
	view.SetBalance(asset, to, balance.Add(balance, amount))
}
