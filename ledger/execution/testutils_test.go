package execution

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/guildxyz/feeledger/ledger/bank"
	st "github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
	"github.com/guildxyz/feeledger/store/database/backend"
)

// --------------- Test Utilities --------------- //

var (
	registryAddr = common.HexToAddress("0x00000000000000000000000000000000000fee00")
	guildAddr    = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	poapAddr     = common.HexToAddress("0x0000000000000000000000000000000000000b02")
	ownerAddr    = common.HexToAddress("0x0000000000000000000000000000000000000c03")
	payerAddr    = common.HexToAddress("0x0000000000000000000000000000000000000d04")
	strangerAddr = common.HexToAddress("0x0000000000000000000000000000000000000e05")

	testToken = types.TokenAsset(common.HexToAddress("0x00000000000000000000000000000000000000f0"))
)

type execTest struct {
	t        *testing.T
	chainID  string
	state    *st.LedgerState
	executor *Executor
}

func newExecTest(t *testing.T) *execTest {
	return newExecTestWithTransferer(t, bank.NewBank())
}

func newExecTestWithTransferer(t *testing.T, transferer bank.Transferer) *execTest {
	ledgerState, err := st.NewLedgerState(backend.NewMemDatabase(), 64)
	require.Nil(t, err)

	et := &execTest{
		t:        t,
		chainID:  "test_chain_id",
		state:    ledgerState,
		executor: NewExecutor(ledgerState, transferer),
	}

	view := ledgerState.Delivered().Branch()
	view.SetChainID(et.chainID)
	view.SetRegistryAddress(registryAddr)
	view.SetDistributionConfig(&types.DistributionConfig{
		GuildCollector: guildAddr,
		GuildShareBp:   469,
		PoapCollector:  poapAddr,
		PoapShareBp:    500,
	})
	b := bank.NewBank()
	b.Mint(view, types.NativeAsset, payerAddr, ether(10))
	b.Mint(view, testToken, payerAddr, big.NewInt(100000))
	view.Commit()
	require.Nil(t, ledgerState.Commit())

	return et
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), types.Denomination)
}

func tenthEther() *big.Int {
	v, _ := types.ParseAmount("0.1")
	return v
}

// input returns the next valid TxInput of addr.
func (et *execTest) input(addr common.Address) types.TxInput {
	return types.NewTxInput(addr, et.view().GetSequence(addr)+1)
}

func (et *execTest) view() *st.StoreView {
	return et.state.Delivered()
}

func (et *execTest) exec(tx types.Tx) (*ExecResult, error) {
	return et.executor.ExecuteTx(tx)
}

func (et *execTest) register(owner common.Address, asset types.Asset, fee *big.Int) uint64 {
	res, err := et.exec(&types.RegisterVaultTx{
		From:    et.input(strangerAddr),
		EventID: "event",
		Owner:   owner,
		Asset:   asset,
		Fee:     fee,
	})
	require.Nil(et.t, err)
	return res.Events[0].(*types.VaultRegisteredEvent).VaultID
}

func (et *execTest) pay(payer common.Address, vaultID uint64, value *big.Int) error {
	_, err := et.exec(&types.PayFeeTx{From: et.input(payer), VaultID: vaultID, Value: value})
	return err
}

func (et *execTest) withdraw(vaultID uint64) (*ExecResult, error) {
	return et.exec(&types.WithdrawTx{From: et.input(strangerAddr), VaultID: vaultID})
}

func (et *execTest) approve(owner common.Address, asset types.Asset, amount *big.Int) {
	_, err := et.exec(&types.ApproveTx{From: et.input(owner), Asset: asset, Spender: registryAddr, Amount: amount})
	require.Nil(et.t, err)
}

func (et *execTest) balance(asset types.Asset, addr common.Address) *big.Int {
	return et.view().GetBalance(asset, addr)
}

func (et *execTest) collected(vaultID uint64) *big.Int {
	return et.view().GetVault(vaultID).Collected
}

// observingTransferer records the collected balance of a vault every time a
// push transfer runs, and can refuse transfers to one address.
type observingTransferer struct {
	*bank.Bank
	vaultID  uint64
	observed []*big.Int
	failTo   *common.Address
}

func (o *observingTransferer) Transfer(view *st.StoreView, asset types.Asset, from, to common.Address, amount *big.Int) bool {
	if vault := view.GetVault(o.vaultID); vault != nil && from == registryAddr {
		o.observed = append(o.observed, new(big.Int).Set(vault.Collected))
	}
	if o.failTo != nil && *o.failTo == to {
		return false
	}
	return o.Bank.Transfer(view, asset, from, to, amount)
}

type unknownTx struct {
	From types.TxInput
}

func (_ *unknownTx) AssertIsTx()                      {}
func (tx *unknownTx) GetInput() *types.TxInput        { return &tx.From }
func (tx *unknownTx) SignBytes(chainID string) []byte { return []byte(chainID) }
