package result

type ErrorCode int

const (
	CodeOK ErrorCode = 0

	// General errors, 10000 ~ 10099
	CodeGenericError     ErrorCode = 10000
	CodeInvalidSequence  ErrorCode = 10001
	CodeInvalidSignature ErrorCode = 10002
	CodeUnknownTx        ErrorCode = 10003
	CodeEncodingError    ErrorCode = 10004

	// Vault registry errors, 10100 ~ 10199
	CodeVaultDoesNotExist ErrorCode = 10100
	CodeIncorrectFee      ErrorCode = 10101
	CodeTransferFailed    ErrorCode = 10102
	CodeRegistryPayer     ErrorCode = 10103

	// Fee distribution errors, 10200 ~ 10299
	CodeAccessDenied      ErrorCode = 10200
	CodeShareOutOfRange   ErrorCode = 10201
	CodeSharesExceedTotal ErrorCode = 10202
)
