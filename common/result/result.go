package result

import (
	"errors"
	"fmt"
)

// Result represents the result of a transaction execution
type Result struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// IsOK indicates if the execution succeeded
func (res Result) IsOK() bool {
	return res.Code == CodeOK
}

// IsError indicates if the execution results in an error
func (res Result) IsError() bool {
	return res.Code != CodeOK
}

// String returns the string representation of the result
func (res Result) String() string {
	return fmt.Sprintf("Result{code:%v, message:%v}", res.Code, res.Message)
}

// Error implements the error interface so a Result can travel as a JSON-RPC error.
func (res Result) Error() string {
	return res.String()
}

// WithErrorCode attach the error code to the result
func (res Result) WithErrorCode(code ErrorCode) Result {
	res.Code = code
	return res
}

// Coder is implemented by errors that map onto a specific ErrorCode.
type Coder interface {
	Code() ErrorCode
}

// -------------- Constructors -------------- //

// OK represents the success result
var OK = Result{Code: CodeOK}

// Error returns an error result
func Error(msgFormat string, a ...interface{}) Result {
	msg := fmt.Sprintf(msgFormat, a...)
	return Result{
		Code:    CodeGenericError,
		Message: msg,
	}
}

// FromError converts err into a Result, keeping the code of typed errors.
func FromError(err error) Result {
	if err == nil {
		return OK
	}
	var coder Coder
	if errors.As(err, &coder) {
		return Result{Code: coder.Code(), Message: err.Error()}
	}
	return Result{Code: CodeGenericError, Message: err.Error()}
}
