package types

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChainID = "feeledger-test"

func TestSignAndVerifyTx(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	key, err := crypto.GenerateKey()
	require.Nil(err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	tx := &PayFeeTx{
		From:    NewTxInput(addr, 1),
		VaultID: 3,
		Value:   big.NewInt(1000),
	}
	require.Nil(SignTx(testChainID, tx, key))
	assert.Len(tx.From.Signature, crypto.SignatureLength)

	signer, err := RecoverSigner(testChainID, tx)
	assert.Nil(err)
	assert.Equal(addr, signer)
	assert.Nil(VerifySignature(testChainID, tx))

	// Signature is bound to the chain id
	assert.Equal(ErrInvalidSignature, VerifySignature("other-chain", tx))

	// and to the content
	tx.Value = big.NewInt(1001)
	assert.Equal(ErrInvalidSignature, VerifySignature(testChainID, tx))
	tx.Value = big.NewInt(1000)

	// and to the claimed sender
	tx.From.Address = common.HexToAddress("0x1")
	assert.Equal(ErrInvalidSignature, VerifySignature(testChainID, tx))
}

func TestVerifyUnsignedTx(t *testing.T) {
	assert := assert.New(t)

	tx := &WithdrawTx{From: NewTxInput(common.HexToAddress("0x1"), 1)}
	_, err := RecoverSigner(testChainID, tx)
	assert.Equal(ErrInvalidSignature, err)
}

func TestSignBytesIgnoreSignature(t *testing.T) {
	assert := assert.New(t)

	tx := &SetGuildShareTx{From: NewTxInput(common.HexToAddress("0x1"), 7), NewShare: 469}
	before := tx.SignBytes(testChainID)
	id := TxID(testChainID, tx)

	tx.From.Signature = []byte{1, 2, 3}
	assert.Equal(before, tx.SignBytes(testChainID))
	assert.Equal(id, TxID(testChainID, tx))
	assert.Equal([]byte{1, 2, 3}, tx.From.Signature)

	assert.NotEqual(before, tx.SignBytes("other-chain"))
}

func TestTxSerialization(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	caller := common.HexToAddress("0x00000000000000000000000000000000000000c1")
	token := TokenAsset(common.HexToAddress("0x00000000000000000000000000000000000000f0"))

	txs := []Tx{
		&RegisterVaultTx{
			From:    TxInput{Address: caller, Sequence: 1, Signature: []byte{0xaa}},
			EventID: "event-1",
			Owner:   common.HexToAddress("0x00000000000000000000000000000000000000d1"),
			Asset:   token,
			Fee:     big.NewInt(555),
		},
		&PayFeeTx{From: NewTxInput(caller, 2), VaultID: 9, Value: big.NewInt(0)},
		&WithdrawTx{From: NewTxInput(caller, 3), VaultID: 9},
		&SetGuildFeeCollectorTx{From: NewTxInput(caller, 4), NewCollector: caller},
		&SetGuildShareTx{From: NewTxInput(caller, 5), NewShare: 469},
		&SetPoapFeeCollectorTx{From: NewTxInput(caller, 6), NewCollector: caller},
		&SetPoapShareTx{From: NewTxInput(caller, 7), NewShare: 500},
		&ApproveTx{From: NewTxInput(caller, 8), Asset: token, Spender: caller, Amount: big.NewInt(1)},
	}

	for _, tx := range txs {
		raw, err := TxToBytes(tx)
		require.Nil(err)

		decoded, err := TxFromBytes(raw)
		require.Nil(err)
		assert.IsType(tx, decoded)
		assert.Equal(tx.GetInput().Sequence, decoded.GetInput().Sequence)
		assert.Equal(tx.SignBytes(testChainID), decoded.SignBytes(testChainID))
	}

	decoded, err := TxFromBytes(mustTxToBytes(t, txs[0]))
	require.Nil(err)
	reg := decoded.(*RegisterVaultTx)
	assert.Equal("event-1", reg.EventID)
	assert.Equal(token, reg.Asset)
	assert.Equal(int64(555), reg.Fee.Int64())
	assert.Equal([]byte{0xaa}, reg.From.Signature)
}

func TestTxFromBytesErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := TxFromBytes(nil)
	assert.NotNil(err)

	_, err = TxFromBytes([]byte{0xff, 0xc0})
	assert.ErrorIs(err, ErrUnknownTx)

	_, err = TxFromBytes([]byte{byte(TxWithdraw), 0x01})
	assert.NotNil(err)
}

func mustTxToBytes(t *testing.T, tx Tx) []byte {
	raw, err := TxToBytes(tx)
	require.Nil(t, err)
	return raw
}
