package ledger

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/guildxyz/feeledger/ledger/bank"
	exec "github.com/guildxyz/feeledger/ledger/execution"
	st "github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "ledger"})

// EventListener is notified of every event after its transaction committed.
type EventListener func(rec *types.EventRecord)

// Ledger is the in-process API of the fee ledger. Every mutation runs to
// completion, or fails without effect, before the next one starts.
type Ledger struct {
	mu sync.RWMutex

	state    *st.LedgerState
	executor *exec.Executor
	bank     *bank.Bank

	listenersMu sync.Mutex
	listeners   []EventListener
}

// NewLedger creates a ledger over state. A nil transferer selects the
// in-ledger bank.
func NewLedger(state *st.LedgerState, transferer bank.Transferer) *Ledger {
	b := bank.NewBank()
	if transferer == nil {
		transferer = b
	}
	return &Ledger{
		state:    state,
		executor: exec.NewExecutor(state, transferer),
		bank:     b,
	}
}

// GetState returns the state of the ledger
func (ledger *Ledger) GetState() *st.LedgerState {
	return ledger.state
}

// ApplyGenesis initializes an empty ledger. On a ledger that was already
// initialized it only checks that the chain ids match.
func (ledger *Ledger) ApplyGenesis(genesis *Genesis) error {
	if err := genesis.Validate(); err != nil {
		return err
	}

	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	if chainID := ledger.state.GetChainID(); chainID != "" {
		if chainID != genesis.ChainID {
			return errors.Errorf("ledger was initialized with chain %v, genesis is for %v", chainID, genesis.ChainID)
		}
		logger.Infof("Ledger already initialized for chain %v at height %v", chainID, ledger.state.Height())
		return nil
	}

	if err := genesis.Distribution.Validate(); err != nil {
		logger.Warnf("Genesis distribution config is out of bounds, withdrawals will fail until fixed: %v", err)
	}

	view := ledger.state.Delivered().Branch()
	view.SetChainID(genesis.ChainID)
	view.SetRegistryAddress(genesis.RegistryAddress)
	config := genesis.Distribution
	view.SetDistributionConfig(&config)
	for _, b := range genesis.Balances {
		ledger.bank.Mint(view, b.Asset, b.Address, b.amount())
	}
	view.Commit()
	if err := ledger.state.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit genesis")
	}

	logger.Infof("Applied genesis for chain %v, %v", genesis.ChainID, genesis.Distribution)
	return nil
}

// Subscribe registers a listener for committed events.
func (ledger *Ledger) Subscribe(listener EventListener) {
	ledger.listenersMu.Lock()
	defer ledger.listenersMu.Unlock()
	ledger.listeners = append(ledger.listeners, listener)
}

func (ledger *Ledger) notify(records []*types.EventRecord) {
	ledger.listenersMu.Lock()
	listeners := append([]EventListener{}, ledger.listeners...)
	ledger.listenersMu.Unlock()

	for _, rec := range records {
		for _, listener := range listeners {
			listener(rec)
		}
	}
}

// ExecuteTx executes a transaction built outside the ledger. It must be signed
// by its From address. The typed methods below are the trusted entry points
// that act on behalf of a caller without a signature.
func (ledger *Ledger) ExecuteTx(tx types.Tx) (*exec.ExecResult, error) {
	if len(tx.GetInput().Signature) == 0 {
		return nil, errors.Wrap(types.ErrInvalidSignature, "transaction is not signed")
	}

	ledger.mu.Lock()
	res, err := ledger.executor.ExecuteTx(tx)
	ledger.mu.Unlock()

	if err != nil {
		return nil, err
	}
	ledger.notify(res.Records)
	return res, nil
}

// execute fills in the next sequence of caller and executes the tx built by
// makeTx.
func (ledger *Ledger) execute(caller common.Address, makeTx func(input types.TxInput) types.Tx) (*exec.ExecResult, error) {
	ledger.mu.Lock()
	input := types.NewTxInput(caller, ledger.state.Delivered().GetSequence(caller)+1)
	res, err := ledger.executor.ExecuteTx(makeTx(input))
	ledger.mu.Unlock()

	if err != nil {
		return nil, err
	}
	ledger.notify(res.Records)
	return res, nil
}

// ------------------------------- Vault registry -----------------------------------

// RegisterVault creates a vault and returns its id.
func (ledger *Ledger) RegisterVault(caller common.Address, eventID string, owner common.Address, asset types.Asset, fee *big.Int) (uint64, error) {
	res, err := ledger.execute(caller, func(input types.TxInput) types.Tx {
		return &types.RegisterVaultTx{From: input, EventID: eventID, Owner: owner, Asset: asset, Fee: fee}
	})
	if err != nil {
		return 0, err
	}
	return res.Events[0].(*types.VaultRegisteredEvent).VaultID, nil
}

// PayFee pays the fee of a vault. value is the native currency attached to
// the payment: the exact fee for native vaults, zero for token vaults.
func (ledger *Ledger) PayFee(caller common.Address, vaultID uint64, value *big.Int) error {
	_, err := ledger.execute(caller, func(input types.TxInput) types.Tx {
		return &types.PayFeeTx{From: input, VaultID: vaultID, Value: value}
	})
	return err
}

// GetVault returns a copy of the vault.
func (ledger *Ledger) GetVault(vaultID uint64) (*types.Vault, error) {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	if vaultID >= ledger.state.Delivered().GetVaultCount() {
		return nil, &types.VaultDoesNotExistError{VaultID: vaultID}
	}
	vault := ledger.state.GetVault(vaultID)
	if vault == nil {
		return nil, &types.VaultDoesNotExistError{VaultID: vaultID}
	}
	return vault, nil
}

// VaultCount returns the number of registered vaults.
func (ledger *Ledger) VaultCount() uint64 {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.Delivered().GetVaultCount()
}

// HasPaid reports whether payer has ever paid the vault.
func (ledger *Ledger) HasPaid(vaultID uint64, payer common.Address) (bool, error) {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	view := ledger.state.Delivered()
	if vaultID >= view.GetVaultCount() {
		return false, &types.VaultDoesNotExistError{VaultID: vaultID}
	}
	return view.HasPaid(vaultID, payer), nil
}

// ------------------------------- Fee distributor -----------------------------------

// Withdraw splits the collected funds of a vault and returns what each party
// received.
func (ledger *Ledger) Withdraw(caller common.Address, vaultID uint64) (types.Distribution, error) {
	res, err := ledger.execute(caller, func(input types.TxInput) types.Tx {
		return &types.WithdrawTx{From: input, VaultID: vaultID}
	})
	if err != nil {
		return types.Distribution{}, err
	}
	ev := res.Events[0].(*types.WithdrawnEvent)
	return types.Distribution{Guild: ev.GuildAmount, Poap: ev.PoapAmount, Owner: ev.OwnerAmount}, nil
}

func (ledger *Ledger) SetGuildFeeCollector(caller, newCollector common.Address) error {
	_, err := ledger.execute(caller, func(input types.TxInput) types.Tx {
		return &types.SetGuildFeeCollectorTx{From: input, NewCollector: newCollector}
	})
	return err
}

func (ledger *Ledger) SetGuildShare(caller common.Address, newShare uint64) error {
	_, err := ledger.execute(caller, func(input types.TxInput) types.Tx {
		return &types.SetGuildShareTx{From: input, NewShare: newShare}
	})
	return err
}

func (ledger *Ledger) SetPoapFeeCollector(caller, newCollector common.Address) error {
	_, err := ledger.execute(caller, func(input types.TxInput) types.Tx {
		return &types.SetPoapFeeCollectorTx{From: input, NewCollector: newCollector}
	})
	return err
}

func (ledger *Ledger) SetPoapShare(caller common.Address, newShare uint64) error {
	_, err := ledger.execute(caller, func(input types.TxInput) types.Tx {
		return &types.SetPoapShareTx{From: input, NewShare: newShare}
	})
	return err
}

// DistributionConfig returns the current distribution config, the zero
// config before genesis.
func (ledger *Ledger) DistributionConfig() types.DistributionConfig {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	config := ledger.state.Delivered().GetDistributionConfig()
	if config == nil {
		return types.DistributionConfig{}
	}
	return *config
}

func (ledger *Ledger) GuildFeeCollector() common.Address {
	return ledger.DistributionConfig().GuildCollector
}

func (ledger *Ledger) GuildShare() uint64 {
	return ledger.DistributionConfig().GuildShareBp
}

func (ledger *Ledger) PoapFeeCollector() common.Address {
	return ledger.DistributionConfig().PoapCollector
}

func (ledger *Ledger) PoapShare() uint64 {
	return ledger.DistributionConfig().PoapShareBp
}

// ------------------------------- Asset book -----------------------------------

// Approve lets spender pull up to amount of a token from caller.
func (ledger *Ledger) Approve(caller common.Address, asset types.Asset, spender common.Address, amount *big.Int) error {
	_, err := ledger.execute(caller, func(input types.TxInput) types.Tx {
		return &types.ApproveTx{From: input, Asset: asset, Spender: spender, Amount: amount}
	})
	return err
}

func (ledger *Ledger) BalanceOf(asset types.Asset, addr common.Address) *big.Int {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.Delivered().GetBalance(asset, addr)
}

func (ledger *Ledger) Allowance(asset types.Asset, owner, spender common.Address) *big.Int {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.Delivered().GetAllowance(asset, owner, spender)
}

// ------------------------------- Status -----------------------------------

// Sequence returns the last committed sequence of addr.
func (ledger *Ledger) Sequence(addr common.Address) uint64 {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.Delivered().GetSequence(addr)
}

func (ledger *Ledger) ChainID() string {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.GetChainID()
}

func (ledger *Ledger) Height() uint64 {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.Height()
}

func (ledger *Ledger) RegistryAddress() common.Address {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.Delivered().GetRegistryAddress()
}

// Events returns up to limit events starting at index start.
func (ledger *Ledger) Events(start, limit uint64) []*types.EventRecord {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	view := ledger.state.Delivered()
	count := view.GetEventCount()
	records := []*types.EventRecord{}
	for i := start; i < count && uint64(len(records)) < limit; i++ {
		if rec := view.GetEvent(i); rec != nil {
			records = append(records, rec)
		}
	}
	return records
}

// EventCount returns the number of stored events.
func (ledger *Ledger) EventCount() uint64 {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.Delivered().GetEventCount()
}
