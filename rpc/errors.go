package rpc

import (
	"github.com/AccumulateNetwork/jsonrpc2/v15"

	"github.com/thetatoken/checkpoint/common/result"
)

// Error codes returned by the methods. The range reserved by JSON-RPC,
// -32768 to -32000, is left to the handler.
const (
	ErrCodeInvalidParams jsonrpc2.ErrorCode = -32800
	ErrCodeValidation    jsonrpc2.ErrorCode = -32801

	// ErrCodeResultBase offsets ledger result codes: a result with code c is
	// reported as ErrCodeResultBase - c.
	ErrCodeResultBase jsonrpc2.ErrorCode = -33000
)

func invalidParamsError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeInvalidParams, "Invalid params", err.Error())
}

func validatorError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeValidation, "Validation Error", err.Error())
}

func resultError(res result.Result) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeResultBase-jsonrpc2.ErrorCode(res.Code), res.Code.String(), res.Message)
}

// ResultFromErrorCode maps an RPC error code back to a ledger result code.
// The boolean is false for codes that do not carry a result.
func ResultFromErrorCode(code int) (result.ErrorCode, bool) {
	c := int(ErrCodeResultBase) - code
	if c < int(result.CodeGenericError) {
		return 0, false
	}
	return result.ErrorCode(c), true
}

func internalError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeResultBase-jsonrpc2.ErrorCode(result.CodeInternalError), result.CodeInternalError.String(), err.Error())
}
