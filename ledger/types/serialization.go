package types

import (
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// ----------------- Common -------------------

func ToBytes(a interface{}) ([]byte, error) {
	b, err := rlp.EncodeToBytes(a)
	if err != nil {
		return nil, errors.Wrapf(err, "ToBytes: failed to encode %v", reflect.TypeOf(a))
	}
	return b, nil
}

func FromBytes(in []byte, a interface{}) error {
	if err := rlp.DecodeBytes(in, a); err != nil {
		return errors.Wrapf(err, "FromBytes: failed to decode %v", reflect.TypeOf(a))
	}
	return nil
}

// ----------------- Tx -------------------

// TxType is the first byte of an encoded transaction.
type TxType byte

const (
	TxRegisterVault TxType = iota + 1
	TxPayFee
	TxWithdraw
	TxSetGuildFeeCollector
	TxSetGuildShare
	TxSetPoapFeeCollector
	TxSetPoapShare
	TxApprove
)

func txType(tx Tx) (TxType, error) {
	switch tx.(type) {
	case *RegisterVaultTx:
		return TxRegisterVault, nil
	case *PayFeeTx:
		return TxPayFee, nil
	case *WithdrawTx:
		return TxWithdraw, nil
	case *SetGuildFeeCollectorTx:
		return TxSetGuildFeeCollector, nil
	case *SetGuildShareTx:
		return TxSetGuildShare, nil
	case *SetPoapFeeCollectorTx:
		return TxSetPoapFeeCollector, nil
	case *SetPoapShareTx:
		return TxSetPoapShare, nil
	case *ApproveTx:
		return TxApprove, nil
	default:
		return 0, errors.Wrapf(ErrUnknownTx, "%v", reflect.TypeOf(tx))
	}
}

// TxToBytes encodes tx as its type byte followed by the rlp encoded body.
func TxToBytes(tx Tx) ([]byte, error) {
	t, err := txType(tx)
	if err != nil {
		return nil, err
	}
	body, err := rlp.EncodeToBytes(tx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %v", reflect.TypeOf(tx))
	}
	return append([]byte{byte(t)}, body...), nil
}

func TxFromBytes(in []byte) (Tx, error) {
	if len(in) == 0 {
		return nil, errors.New("TxFromBytes: empty input")
	}

	var tx Tx
	switch TxType(in[0]) {
	case TxRegisterVault:
		tx = &RegisterVaultTx{}
	case TxPayFee:
		tx = &PayFeeTx{}
	case TxWithdraw:
		tx = &WithdrawTx{}
	case TxSetGuildFeeCollector:
		tx = &SetGuildFeeCollectorTx{}
	case TxSetGuildShare:
		tx = &SetGuildShareTx{}
	case TxSetPoapFeeCollector:
		tx = &SetPoapFeeCollectorTx{}
	case TxSetPoapShare:
		tx = &SetPoapShareTx{}
	case TxApprove:
		tx = &ApproveTx{}
	default:
		return nil, errors.Wrap(ErrUnknownTx, fmt.Sprintf("type byte %d", in[0]))
	}
	if err := rlp.DecodeBytes(in[1:], tx); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %v", reflect.TypeOf(tx))
	}
	return tx, nil
}
