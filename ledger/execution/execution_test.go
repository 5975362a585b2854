package execution

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guildxyz/feeledger/ledger/bank"
	"github.com/guildxyz/feeledger/ledger/types"
)

func TestRegisterVaultMonotonic(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	for i := uint64(0); i < 5; i++ {
		fee := big.NewInt(int64(100 + i))
		res, err := et.exec(&types.RegisterVaultTx{
			From:    et.input(strangerAddr),
			EventID: "event",
			Owner:   ownerAddr,
			Asset:   testToken,
			Fee:     fee,
		})
		require.Nil(err)
		require.Len(res.Events, 1)

		ev := res.Events[0].(*types.VaultRegisteredEvent)
		assert.Equal(i, ev.VaultID)
		assert.Equal(0, fee.Cmp(ev.Fee))

		vault := et.view().GetVault(i)
		require.NotNil(vault)
		assert.Equal(i, vault.ID)
		assert.Equal("event", vault.EventID)
		assert.Equal(ownerAddr, vault.Owner)
		assert.Equal(testToken, vault.Asset)
		assert.Equal(0, fee.Cmp(vault.Fee))
		assert.Equal(0, vault.Collected.Sign())
	}
	assert.Equal(uint64(5), et.view().GetVaultCount())
	assert.Equal(uint64(5), et.view().GetEventCount())
}

func TestUnknownVault(t *testing.T) {
	assert := assert.New(t)

	et := newExecTest(t)
	et.register(ownerAddr, types.NativeAsset, tenthEther())

	var notExist *types.VaultDoesNotExistError

	// Attached value does not turn this into an IncorrectFee
	err := et.pay(payerAddr, 1, tenthEther())
	assert.ErrorAs(err, &notExist)
	assert.Equal(uint64(1), notExist.VaultID)

	err = et.pay(payerAddr, 42, nil)
	assert.ErrorAs(err, &notExist)
	assert.Equal(uint64(42), notExist.VaultID)

	_, err = et.withdraw(1)
	assert.ErrorAs(err, &notExist)

	assert.Equal(0, ether(10).Cmp(et.balance(types.NativeAsset, payerAddr)))
	assert.Equal(uint64(0), et.view().GetSequence(payerAddr))
}

func TestPayFeeNative(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	fee := tenthEther()
	id := et.register(ownerAddr, types.NativeAsset, fee)

	for _, supplied := range []*big.Int{nil, big.NewInt(0), big.NewInt(42), new(big.Int).Sub(fee, big.NewInt(1)), new(big.Int).Add(fee, big.NewInt(1))} {
		err := et.pay(payerAddr, id, supplied)
		var incorrect *types.IncorrectFeeError
		require.ErrorAs(err, &incorrect)
		assert.Equal(id, incorrect.VaultID)
		assert.Equal(0, amountOrZero(supplied).Cmp(incorrect.Supplied))
		assert.Equal(0, fee.Cmp(incorrect.Expected))
	}
	assert.False(et.view().HasPaid(id, payerAddr))
	assert.Equal(0, et.collected(id).Sign())

	res, err := et.exec(&types.PayFeeTx{From: et.input(payerAddr), VaultID: id, Value: fee})
	require.Nil(err)
	assert.Equal(0, fee.Cmp(et.collected(id)))
	assert.True(et.view().HasPaid(id, payerAddr))
	assert.False(et.view().HasPaid(id, strangerAddr))
	assert.Equal(0, fee.Cmp(et.balance(types.NativeAsset, registryAddr)))

	require.Len(res.Events, 1)
	ev := res.Events[0].(*types.FeeReceivedEvent)
	assert.Equal(id, ev.VaultID)
	assert.Equal(payerAddr, ev.Payer)
	assert.Equal(0, fee.Cmp(ev.Amount))
	assert.Equal(types.EventFeeReceived, res.Records[0].Name)
}

func TestPayFeeNativeInsufficientBalance(t *testing.T) {
	assert := assert.New(t)

	et := newExecTest(t)
	id := et.register(ownerAddr, types.NativeAsset, ether(11))

	err := et.pay(payerAddr, id, ether(11))
	var failed *types.TransferFailedError
	assert.ErrorAs(err, &failed)
	assert.Equal(payerAddr, failed.From)
	assert.Equal(registryAddr, failed.To)

	assert.Equal(0, et.collected(id).Sign())
	assert.False(et.view().HasPaid(id, payerAddr))
}

func TestPayFeeToken(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	fee := big.NewInt(555)
	id := et.register(ownerAddr, testToken, fee)

	// Native value attached to a token vault
	err := et.pay(payerAddr, id, big.NewInt(1))
	var incorrect *types.IncorrectFeeError
	require.ErrorAs(err, &incorrect)
	assert.Equal(int64(1), incorrect.Supplied.Int64())
	assert.Equal(0, incorrect.Expected.Sign())

	// No allowance: the whole payment is rolled back
	seq := et.view().GetSequence(payerAddr)
	err = et.pay(payerAddr, id, nil)
	var failed *types.TransferFailedError
	require.ErrorAs(err, &failed)
	assert.Equal(payerAddr, failed.From)
	assert.Equal(registryAddr, failed.To)
	assert.Equal(0, et.collected(id).Sign())
	assert.False(et.view().HasPaid(id, payerAddr))
	assert.Equal(seq, et.view().GetSequence(payerAddr))
	assert.Equal(int64(100000), et.balance(testToken, payerAddr).Int64())

	et.approve(payerAddr, testToken, big.NewInt(1000))
	require.Nil(et.pay(payerAddr, id, big.NewInt(0)))
	assert.Equal(int64(555), et.collected(id).Int64())
	assert.True(et.view().HasPaid(id, payerAddr))
	assert.Equal(int64(100000-555), et.balance(testToken, payerAddr).Int64())
	assert.Equal(int64(555), et.balance(testToken, registryAddr).Int64())
	assert.Equal(int64(445), et.view().GetAllowance(testToken, payerAddr, registryAddr).Int64())

	// Native balance untouched
	assert.Equal(0, ether(10).Cmp(et.balance(types.NativeAsset, payerAddr)))
}

func TestRepeatPayment(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	fee := tenthEther()
	id := et.register(ownerAddr, types.NativeAsset, fee)

	require.Nil(et.pay(payerAddr, id, fee))
	require.Nil(et.pay(payerAddr, id, fee))
	assert.Equal(0, new(big.Int).Mul(fee, big.NewInt(2)).Cmp(et.collected(id)))
	assert.True(et.view().HasPaid(id, payerAddr))
}

func TestPayFeeByRegistry(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	fee := tenthEther()
	paid := et.register(ownerAddr, types.NativeAsset, fee)
	native := et.register(ownerAddr, types.NativeAsset, fee)
	token := et.register(ownerAddr, testToken, big.NewInt(555))

	require.Nil(et.pay(payerAddr, paid, fee))
	assert.Equal(0, fee.Cmp(et.balance(types.NativeAsset, registryAddr)))

	// The registry holds the fee of the first vault, yet may not use it to
	// pay into another one.
	var registryPayer *types.RegistryPayerError
	err := et.pay(registryAddr, native, fee)
	require.ErrorAs(err, &registryPayer)
	assert.Equal(native, registryPayer.VaultID)
	assert.Equal(registryAddr, registryPayer.Registry)

	err = et.pay(registryAddr, token, nil)
	require.ErrorAs(err, &registryPayer)
	assert.Equal(token, registryPayer.VaultID)

	assert.Equal(0, et.collected(native).Sign())
	assert.Equal(0, et.collected(token).Sign())
	assert.False(et.view().HasPaid(native, registryAddr))
	assert.Equal(uint64(0), et.view().GetSequence(registryAddr))

	// The vault that was really paid can still be withdrawn in full.
	_, err = et.withdraw(paid)
	require.Nil(err)
	assert.Equal(0, et.collected(paid).Sign())
	assert.Equal(0, et.balance(types.NativeAsset, registryAddr).Sign())
}

func TestWithdraw(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	fee := tenthEther()
	id := et.register(ownerAddr, types.NativeAsset, fee)
	require.Nil(et.pay(payerAddr, id, fee))

	res, err := et.withdraw(id)
	require.Nil(err)

	assert.Equal("4690000000000000", et.balance(types.NativeAsset, guildAddr).String())
	assert.Equal("5000000000000000", et.balance(types.NativeAsset, poapAddr).String())
	assert.Equal("90310000000000000", et.balance(types.NativeAsset, ownerAddr).String())
	assert.Equal(0, et.balance(types.NativeAsset, registryAddr).Sign())
	assert.Equal(0, et.collected(id).Sign())

	ev := res.Events[0].(*types.WithdrawnEvent)
	assert.Equal(id, ev.VaultID)
	assert.Equal("4690000000000000", ev.GuildAmount.String())
	assert.Equal("5000000000000000", ev.PoapAmount.String())
	assert.Equal("90310000000000000", ev.OwnerAmount.String())

	// A second withdrawal distributes nothing and does not fail
	res, err = et.withdraw(id)
	require.Nil(err)
	ev = res.Events[0].(*types.WithdrawnEvent)
	assert.Equal(0, ev.GuildAmount.Sign())
	assert.Equal(0, ev.PoapAmount.Sign())
	assert.Equal(0, ev.OwnerAmount.Sign())
	assert.Equal("90310000000000000", et.balance(types.NativeAsset, ownerAddr).String())
}

func TestWithdrawToken(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	id := et.register(ownerAddr, testToken, big.NewInt(10000))
	et.approve(payerAddr, testToken, big.NewInt(20000))
	require.Nil(et.pay(payerAddr, id, nil))
	require.Nil(et.pay(payerAddr, id, nil))

	_, err := et.withdraw(id)
	require.Nil(err)
	assert.Equal(int64(938), et.balance(testToken, guildAddr).Int64())
	assert.Equal(int64(1000), et.balance(testToken, poapAddr).Int64())
	assert.Equal(int64(20000-938-1000), et.balance(testToken, ownerAddr).Int64())
	assert.Equal(0, et.balance(types.NativeAsset, ownerAddr).Sign())
}

func TestWithdrawZeroesCollectedBeforeTransfer(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	transferer := &observingTransferer{Bank: bank.NewBank(), vaultID: 0}
	et := newExecTestWithTransferer(t, transferer)
	fee := tenthEther()
	id := et.register(ownerAddr, types.NativeAsset, fee)
	require.Equal(uint64(0), id)
	require.Nil(et.pay(payerAddr, id, fee))

	_, err := et.withdraw(id)
	require.Nil(err)
	require.Len(transferer.observed, 3)
	for _, c := range transferer.observed {
		assert.Equal(0, c.Sign())
	}
}

func TestWithdrawTransferFailureRollsBack(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	failTo := poapAddr
	transferer := &observingTransferer{Bank: bank.NewBank(), failTo: &failTo}
	et := newExecTestWithTransferer(t, transferer)
	fee := tenthEther()
	id := et.register(ownerAddr, types.NativeAsset, fee)
	require.Nil(et.pay(payerAddr, id, fee))
	eventCount := et.view().GetEventCount()

	_, err := et.withdraw(id)
	var failed *types.TransferFailedError
	require.ErrorAs(err, &failed)
	assert.Equal(registryAddr, failed.From)
	assert.Equal(poapAddr, failed.To)

	// The guild transfer that succeeded is undone along with the reset
	assert.Equal(0, fee.Cmp(et.collected(id)))
	assert.Equal(0, et.balance(types.NativeAsset, guildAddr).Sign())
	assert.Equal(0, fee.Cmp(et.balance(types.NativeAsset, registryAddr)))
	assert.Equal(eventCount, et.view().GetEventCount())

	transferer.failTo = nil
	_, err = et.withdraw(id)
	require.Nil(err)
	assert.Equal(0, et.collected(id).Sign())
}

func TestWithdrawRejectsExcessiveShares(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	view := et.view().Branch()
	view.SetDistributionConfig(&types.DistributionConfig{
		GuildCollector: guildAddr, GuildShareBp: 6000,
		PoapCollector: poapAddr, PoapShareBp: 5000,
	})
	view.Commit()
	require.Nil(et.state.Commit())

	fee := tenthEther()
	id := et.register(ownerAddr, types.NativeAsset, fee)
	require.Nil(et.pay(payerAddr, id, fee))

	_, err := et.withdraw(id)
	var exceeded *types.SharesExceedTotalError
	assert.ErrorAs(err, &exceeded)
	assert.Equal(0, fee.Cmp(et.collected(id)))
}

func TestGuildAccessControl(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	newGuild := common.HexToAddress("0x0000000000000000000000000000000000000a99")

	var denied *types.AccessDeniedError
	_, err := et.exec(&types.SetGuildFeeCollectorTx{From: et.input(strangerAddr), NewCollector: strangerAddr})
	require.ErrorAs(err, &denied)
	assert.Equal(strangerAddr, denied.Caller)
	assert.Equal(guildAddr, denied.RequiredHolder)

	// The poap collector does not hold the guild role
	_, err = et.exec(&types.SetGuildShareTx{From: et.input(poapAddr), NewShare: 1})
	require.ErrorAs(err, &denied)
	assert.Equal(poapAddr, denied.Caller)

	res, err := et.exec(&types.SetGuildShareTx{From: et.input(guildAddr), NewShare: 100})
	require.Nil(err)
	assert.Equal(uint64(100), res.Events[0].(*types.GuildSharex100ChangedEvent).NewShare)
	assert.Equal(uint64(100), et.view().GetDistributionConfig().GuildShareBp)

	res, err = et.exec(&types.SetGuildFeeCollectorTx{From: et.input(guildAddr), NewCollector: newGuild})
	require.Nil(err)
	assert.Equal(newGuild, res.Events[0].(*types.GuildFeeCollectorChangedEvent).NewAddress)
	assert.Equal(newGuild, et.view().GetDistributionConfig().GuildCollector)

	// The previous holder lost the role
	_, err = et.exec(&types.SetGuildShareTx{From: et.input(guildAddr), NewShare: 200})
	require.ErrorAs(err, &denied)
	assert.Equal(newGuild, denied.RequiredHolder)

	_, err = et.exec(&types.SetGuildShareTx{From: et.input(newGuild), NewShare: 200})
	require.Nil(err)

	// Poap side untouched
	config := et.view().GetDistributionConfig()
	assert.Equal(poapAddr, config.PoapCollector)
	assert.Equal(uint64(500), config.PoapShareBp)
}

func TestPoapAccessControl(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	newPoap := common.HexToAddress("0x0000000000000000000000000000000000000b99")

	var denied *types.AccessDeniedError
	_, err := et.exec(&types.SetPoapFeeCollectorTx{From: et.input(guildAddr), NewCollector: guildAddr})
	require.ErrorAs(err, &denied)
	assert.Equal(guildAddr, denied.Caller)
	assert.Equal(poapAddr, denied.RequiredHolder)

	_, err = et.exec(&types.SetPoapShareTx{From: et.input(strangerAddr), NewShare: 1})
	require.ErrorAs(err, &denied)

	res, err := et.exec(&types.SetPoapShareTx{From: et.input(poapAddr), NewShare: 250})
	require.Nil(err)
	assert.Equal(uint64(250), res.Events[0].(*types.PoapSharex100ChangedEvent).NewShare)

	// Reassigning to itself is a valid no-op
	_, err = et.exec(&types.SetPoapFeeCollectorTx{From: et.input(poapAddr), NewCollector: poapAddr})
	require.Nil(err)

	res, err = et.exec(&types.SetPoapFeeCollectorTx{From: et.input(poapAddr), NewCollector: newPoap})
	require.Nil(err)
	assert.Equal(newPoap, res.Events[0].(*types.PoapFeeCollectorChangedEvent).NewAddress)

	config := et.view().GetDistributionConfig()
	assert.Equal(newPoap, config.PoapCollector)
	assert.Equal(uint64(250), config.PoapShareBp)
	assert.Equal(guildAddr, config.GuildCollector)
}

func TestShareBounds(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)

	_, err := et.exec(&types.SetGuildShareTx{From: et.input(guildAddr), NewShare: 10001})
	var outOfRange *types.ShareOutOfRangeError
	require.ErrorAs(err, &outOfRange)
	assert.Equal(uint64(10001), outOfRange.Share)

	_, err = et.exec(&types.SetGuildShareTx{From: et.input(guildAddr), NewShare: 9600})
	var exceeded *types.SharesExceedTotalError
	require.ErrorAs(err, &exceeded)
	assert.Equal(uint64(9600), exceeded.Guild)
	assert.Equal(uint64(500), exceeded.Poap)

	_, err = et.exec(&types.SetPoapShareTx{From: et.input(poapAddr), NewShare: 9600})
	require.ErrorAs(err, &exceeded)
	assert.Equal(uint64(469), exceeded.Guild)
	assert.Equal(uint64(9600), exceeded.Poap)

	_, err = et.exec(&types.SetGuildShareTx{From: et.input(guildAddr), NewShare: 9500})
	require.Nil(err)
	assert.Equal(uint64(9500), et.view().GetDistributionConfig().GuildShareBp)
}

func TestSequence(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	tx := &types.RegisterVaultTx{From: types.NewTxInput(strangerAddr, 1), Owner: ownerAddr, Fee: big.NewInt(1)}
	_, err := et.exec(tx)
	require.Nil(err)
	assert.Equal(uint64(1), et.view().GetSequence(strangerAddr))

	// Replay
	_, err = et.exec(tx)
	var invalid *types.InvalidSequenceError
	require.ErrorAs(err, &invalid)
	assert.Equal(uint64(2), invalid.Expected)
	assert.Equal(uint64(1), invalid.Got)
	assert.Equal(uint64(1), et.view().GetVaultCount())

	// Gap
	_, err = et.exec(&types.WithdrawTx{From: types.NewTxInput(strangerAddr, 5), VaultID: 0})
	require.ErrorAs(err, &invalid)
}

func TestSignedTx(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	key, err := crypto.GenerateKey()
	require.Nil(err)
	signer := crypto.PubkeyToAddress(key.PublicKey)

	tx := &types.RegisterVaultTx{From: et.input(signer), Owner: signer, Fee: big.NewInt(1)}
	require.Nil(types.SignTx(et.chainID, tx, key))
	_, err = et.exec(tx)
	require.Nil(err)

	// Signed by someone else than the claimed caller
	other, err := crypto.GenerateKey()
	require.Nil(err)
	forged := &types.SetGuildFeeCollectorTx{From: et.input(guildAddr), NewCollector: signer}
	require.Nil(types.SignTx(et.chainID, forged, other))
	_, err = et.exec(forged)
	assert.Equal(types.ErrInvalidSignature, err)
	assert.Equal(guildAddr, et.view().GetDistributionConfig().GuildCollector)
}

func TestUnknownTx(t *testing.T) {
	et := newExecTest(t)
	_, err := et.exec(&unknownTx{From: et.input(strangerAddr)})
	assert.ErrorIs(t, err, types.ErrUnknownTx)
}

func TestApprove(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	res, err := et.exec(&types.ApproveTx{From: et.input(payerAddr), Asset: testToken, Spender: registryAddr, Amount: big.NewInt(77)})
	require.Nil(err)
	ev := res.Events[0].(*types.ApprovalEvent)
	assert.Equal(payerAddr, ev.Owner)
	assert.Equal(int64(77), ev.Amount.Int64())
	assert.Equal(int64(77), et.view().GetAllowance(testToken, payerAddr, registryAddr).Int64())

	_, err = et.exec(&types.ApproveTx{From: et.input(payerAddr), Asset: types.NativeAsset, Spender: registryAddr, Amount: big.NewInt(1)})
	assert.NotNil(err)
	_, err = et.exec(&types.ApproveTx{From: et.input(payerAddr), Asset: testToken, Spender: registryAddr, Amount: big.NewInt(-1)})
	assert.NotNil(err)
}

func TestEventsOnlyOnSuccess(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	et := newExecTest(t)
	height := et.state.Height()
	id := et.register(ownerAddr, types.NativeAsset, tenthEther())
	assert.Equal(height+1, et.state.Height())
	assert.Equal(uint64(1), et.view().GetEventCount())

	assert.NotNil(et.pay(payerAddr, id, big.NewInt(1)))
	assert.NotNil(et.pay(payerAddr, id+1, tenthEther()))
	assert.Equal(uint64(1), et.view().GetEventCount())
	assert.Equal(height+1, et.state.Height())

	require.Nil(et.pay(payerAddr, id, tenthEther()))
	rec := et.view().GetEvent(1)
	require.NotNil(rec)
	assert.Equal(types.EventFeeReceived, rec.Name)
	assert.Equal(height+2, rec.Height)
}
