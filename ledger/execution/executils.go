package execution

import (
	"math/big"
	"reflect"

	"github.com/pkg/errors"

	st "github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
)

// --------------------------------- Execution Utilities -------------------------------------

func ErrUnknownTxType(tx types.Tx) error {
	return errors.Wrapf(types.ErrUnknownTx, "%v", reflect.TypeOf(tx))
}

// checkInput enforces the sequence of the caller and, when the transaction
// carries a signature, that it was produced by the caller.
func checkInput(chainID string, view *st.StoreView, tx types.Tx) error {
	input := tx.GetInput()
	expected := view.GetSequence(input.Address) + 1
	if input.Sequence != expected {
		return &types.InvalidSequenceError{
			Address:  input.Address,
			Expected: expected,
			Got:      input.Sequence,
		}
	}
	if len(input.Signature) > 0 {
		if err := types.VerifySignature(chainID, tx); err != nil {
			return err
		}
	}
	return nil
}

// getVault returns the vault or VaultDoesNotExist when id is not below the
// vault count.
func getVault(view *st.StoreView, id uint64) (*types.Vault, error) {
	if id >= view.GetVaultCount() {
		return nil, &types.VaultDoesNotExistError{VaultID: id}
	}
	vault := view.GetVault(id)
	if vault == nil {
		return nil, &types.VaultDoesNotExistError{VaultID: id}
	}
	return vault, nil
}

func getDistributionConfig(view *st.StoreView) (*types.DistributionConfig, error) {
	config := view.GetDistributionConfig()
	if config == nil {
		return nil, errors.New("distribution config is not initialized")
	}
	return config, nil
}

func amountOrZero(amount *big.Int) *big.Int {
	if amount == nil {
		return big.NewInt(0)
	}
	return amount
}

func checkAmount(name string, amount *big.Int) error {
	if amount != nil && amount.Sign() < 0 {
		return errors.Errorf("%v must not be negative: %v", name, amount)
	}
	return nil
}
