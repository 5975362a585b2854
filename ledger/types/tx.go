package types

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "ledger"})

/*
Tx (Transaction) is an atomic operation on the ledger state.

Transaction Types:
 - RegisterVaultTx         Register a new vault
 - PayFeeTx                Pay the fee of a vault
 - WithdrawTx              Split a vault's collected funds between the collectors and the owner
 - SetGuildFeeCollectorTx  Replace the guild collector, signed by the current one
 - SetGuildShareTx         Replace the guild share, signed by the guild collector
 - SetPoapFeeCollectorTx   Replace the poap collector, signed by the current one
 - SetPoapShareTx          Replace the poap share, signed by the poap collector
 - ApproveTx               Allow a spender to pull tokens from the signer
*/

type Tx interface {
	AssertIsTx()
	GetInput() *TxInput
	SignBytes(chainID string) []byte
}

//-----------------------------------------------------------------------------

// TxID is the keccak hash of the transaction's sign bytes.
func TxID(chainID string, tx Tx) common.Hash {
	return crypto.Keccak256Hash(tx.SignBytes(chainID))
}

func encodeToBytes(str string) []byte {
	encodedBytes, err := rlp.EncodeToBytes(str)
	if err != nil {
		log.Panicf("Failed to encode %v: %v", str, err)
	}
	return encodedBytes
}

// signBytes is the rlp encoded chain id followed by the transaction encoded
// without its signature.
func signBytes(chainID string, tx Tx) []byte {
	input := tx.GetInput()
	sig := input.Signature
	input.Signature = nil
	txBytes, err := TxToBytes(tx)
	input.Signature = sig
	if err != nil {
		log.Panicf("Failed to encode %v: %v", tx, err)
	}
	return append(encodeToBytes(chainID), txBytes...)
}

// SignTx signs tx with key and stores the signature in the tx input.
func SignTx(chainID string, tx Tx, key *ecdsa.PrivateKey) error {
	sig, err := crypto.Sign(crypto.Keccak256(tx.SignBytes(chainID)), key)
	if err != nil {
		return errors.Wrap(err, "failed to sign transaction")
	}
	tx.GetInput().Signature = sig
	return nil
}

// RecoverSigner returns the address whose key produced the tx signature.
func RecoverSigner(chainID string, tx Tx) (common.Address, error) {
	sig := tx.GetInput().Signature
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrInvalidSignature
	}
	pub, err := crypto.SigToPub(crypto.Keccak256(tx.SignBytes(chainID)), sig)
	if err != nil {
		return common.Address{}, ErrInvalidSignature
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// VerifySignature checks that the tx was signed by its input address.
func VerifySignature(chainID string, tx Tx) error {
	signer, err := RecoverSigner(chainID, tx)
	if err != nil {
		return err
	}
	if signer != tx.GetInput().Address {
		logger.Debugf("Signature of %v recovers to %v", tx, signer.Hex())
		return ErrInvalidSignature
	}
	return nil
}

//-----------------------------------------------------------------------------

type TxInput struct {
	Address   common.Address // The caller
	Sequence  uint64         // Must be 1 greater than the last committed sequence of Address
	Signature []byte         // secp256k1 signature over SignBytes, may be empty for in-process calls
}

func NewTxInput(address common.Address, sequence uint64) TxInput {
	return TxInput{
		Address:  address,
		Sequence: sequence,
	}
}

func (txIn TxInput) String() string {
	return fmt.Sprintf("TxInput{%v, %v, %x}", txIn.Address.Hex(), txIn.Sequence, txIn.Signature)
}

//-----------------------------------------------------------------------------

type RegisterVaultTx struct {
	From    TxInput
	EventID string
	Owner   common.Address
	Asset   Asset
	Fee     *big.Int
}

func (_ *RegisterVaultTx) AssertIsTx() {}

func (tx *RegisterVaultTx) GetInput() *TxInput { return &tx.From }

func (tx *RegisterVaultTx) SignBytes(chainID string) []byte {
	return signBytes(chainID, tx)
}

func (tx *RegisterVaultTx) String() string {
	return fmt.Sprintf("RegisterVaultTx{from: %v, event_id: %v, owner: %v, asset: %v, fee: %v}",
		tx.From, tx.EventID, tx.Owner.Hex(), tx.Asset, tx.Fee)
}

//-----------------------------------------------------------------------------

type PayFeeTx struct {
	From    TxInput
	VaultID uint64
	Value   *big.Int // Native currency attached to the payment
}

func (_ *PayFeeTx) AssertIsTx() {}

func (tx *PayFeeTx) GetInput() *TxInput { return &tx.From }

func (tx *PayFeeTx) SignBytes(chainID string) []byte {
	return signBytes(chainID, tx)
}

func (tx *PayFeeTx) String() string {
	return fmt.Sprintf("PayFeeTx{from: %v, vault_id: %v, value: %v}", tx.From, tx.VaultID, tx.Value)
}

//-----------------------------------------------------------------------------

type WithdrawTx struct {
	From    TxInput
	VaultID uint64
}

func (_ *WithdrawTx) AssertIsTx() {}

func (tx *WithdrawTx) GetInput() *TxInput { return &tx.From }

func (tx *WithdrawTx) SignBytes(chainID string) []byte {
	return signBytes(chainID, tx)
}

func (tx *WithdrawTx) String() string {
	return fmt.Sprintf("WithdrawTx{from: %v, vault_id: %v}", tx.From, tx.VaultID)
}

//-----------------------------------------------------------------------------

type SetGuildFeeCollectorTx struct {
	From         TxInput
	NewCollector common.Address
}

func (_ *SetGuildFeeCollectorTx) AssertIsTx() {}

func (tx *SetGuildFeeCollectorTx) GetInput() *TxInput { return &tx.From }

func (tx *SetGuildFeeCollectorTx) SignBytes(chainID string) []byte {
	return signBytes(chainID, tx)
}

func (tx *SetGuildFeeCollectorTx) String() string {
	return fmt.Sprintf("SetGuildFeeCollectorTx{from: %v, new_collector: %v}", tx.From, tx.NewCollector.Hex())
}

//-----------------------------------------------------------------------------

type SetGuildShareTx struct {
	From     TxInput
	NewShare uint64 // basis points
}

func (_ *SetGuildShareTx) AssertIsTx() {}

func (tx *SetGuildShareTx) GetInput() *TxInput { return &tx.From }

func (tx *SetGuildShareTx) SignBytes(chainID string) []byte {
	return signBytes(chainID, tx)
}

func (tx *SetGuildShareTx) String() string {
	return fmt.Sprintf("SetGuildShareTx{from: %v, new_share: %v}", tx.From, tx.NewShare)
}

//-----------------------------------------------------------------------------

type SetPoapFeeCollectorTx struct {
	From         TxInput
	NewCollector common.Address
}

func (_ *SetPoapFeeCollectorTx) AssertIsTx() {}

func (tx *SetPoapFeeCollectorTx) GetInput() *TxInput { return &tx.From }

func (tx *SetPoapFeeCollectorTx) SignBytes(chainID string) []byte {
	return signBytes(chainID, tx)
}

func (tx *SetPoapFeeCollectorTx) String() string {
	return fmt.Sprintf("SetPoapFeeCollectorTx{from: %v, new_collector: %v}", tx.From, tx.NewCollector.Hex())
}

//-----------------------------------------------------------------------------

type SetPoapShareTx struct {
	From     TxInput
	NewShare uint64 // basis points
}

func (_ *SetPoapShareTx) AssertIsTx() {}

func (tx *SetPoapShareTx) GetInput() *TxInput { return &tx.From }

func (tx *SetPoapShareTx) SignBytes(chainID string) []byte {
	return signBytes(chainID, tx)
}

func (tx *SetPoapShareTx) String() string {
	return fmt.Sprintf("SetPoapShareTx{from: %v, new_share: %v}", tx.From, tx.NewShare)
}

//-----------------------------------------------------------------------------

type ApproveTx struct {
	From    TxInput
	Asset   Asset
	Spender common.Address
	Amount  *big.Int
}

func (_ *ApproveTx) AssertIsTx() {}

func (tx *ApproveTx) GetInput() *TxInput { return &tx.From }

func (tx *ApproveTx) SignBytes(chainID string) []byte {
	return signBytes(chainID, tx)
}

func (tx *ApproveTx) String() string {
	return fmt.Sprintf("ApproveTx{from: %v, asset: %v, spender: %v, amount: %v}",
		tx.From, tx.Asset, tx.Spender.Hex(), tx.Amount)
}
