package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/guildxyz/feeledger/common/result"
)

// VaultDoesNotExistError is returned when a vault id is not below the vault
// count.
type VaultDoesNotExistError struct {
	VaultID uint64
}

func (e *VaultDoesNotExistError) Error() string {
	return fmt.Sprintf("VaultDoesNotExist(%v)", e.VaultID)
}

func (e *VaultDoesNotExistError) Code() result.ErrorCode {
	return result.CodeVaultDoesNotExist
}

// IncorrectFeeError is returned when the native value attached to a payment
// differs from what the vault expects. Expected is zero for token vaults.
type IncorrectFeeError struct {
	VaultID  uint64
	Supplied *big.Int
	Expected *big.Int
}

func (e *IncorrectFeeError) Error() string {
	return fmt.Sprintf("IncorrectFee(%v, %v, %v)", e.VaultID, e.Supplied, e.Expected)
}

func (e *IncorrectFeeError) Code() result.ErrorCode {
	return result.CodeIncorrectFee
}

// TransferFailedError is returned when the asset transfer capability
// reports failure.
type TransferFailedError struct {
	From common.Address
	To   common.Address
}

func (e *TransferFailedError) Error() string {
	return fmt.Sprintf("TransferFailed(%v, %v)", e.From.Hex(), e.To.Hex())
}

func (e *TransferFailedError) Code() result.ErrorCode {
	return result.CodeTransferFailed
}

// RegistryPayerError is returned when the registry itself tries to pay a
// fee. Its transfer to itself would move nothing while the vault still
// credited the fee.
type RegistryPayerError struct {
	VaultID  uint64
	Registry common.Address
}

func (e *RegistryPayerError) Error() string {
	return fmt.Sprintf("RegistryPayer(%v, %v)", e.VaultID, e.Registry.Hex())
}

func (e *RegistryPayerError) Code() result.ErrorCode {
	return result.CodeRegistryPayer
}

// AccessDeniedError is returned when the caller does not hold the role it
// tries to modify.
type AccessDeniedError struct {
	Caller         common.Address
	RequiredHolder common.Address
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("AccessDenied(%v, %v)", e.Caller.Hex(), e.RequiredHolder.Hex())
}

func (e *AccessDeniedError) Code() result.ErrorCode {
	return result.CodeAccessDenied
}

type ShareOutOfRangeError struct {
	Share uint64
}

func (e *ShareOutOfRangeError) Error() string {
	return fmt.Sprintf("ShareOutOfRange(%v), must be at most %v", e.Share, BasisPointsDenominator)
}

func (e *ShareOutOfRangeError) Code() result.ErrorCode {
	return result.CodeShareOutOfRange
}

type SharesExceedTotalError struct {
	Guild uint64
	Poap  uint64
}

func (e *SharesExceedTotalError) Error() string {
	return fmt.Sprintf("SharesExceedTotal(%v, %v), sum must be at most %v", e.Guild, e.Poap, BasisPointsDenominator)
}

func (e *SharesExceedTotalError) Code() result.ErrorCode {
	return result.CodeSharesExceedTotal
}

type InvalidSequenceError struct {
	Address  common.Address
	Expected uint64
	Got      uint64
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf("InvalidSequence(%v): expected %v, got %v", e.Address.Hex(), e.Expected, e.Got)
}

func (e *InvalidSequenceError) Code() result.ErrorCode {
	return result.CodeInvalidSequence
}

type codedError struct {
	code result.ErrorCode
	msg  string
}

func (e *codedError) Error() string          { return e.msg }
func (e *codedError) Code() result.ErrorCode { return e.code }

var (
	ErrInvalidSignature error = &codedError{result.CodeInvalidSignature, "invalid signature"}
	ErrUnknownTx        error = &codedError{result.CodeUnknownTx, "unknown transaction type"}
)
