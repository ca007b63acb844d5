package result

type ErrorCode int

const (
	CodeOK ErrorCode = 0

	CodeGenericError ErrorCode = 10000

	// Bound policy rejections, 10001 ~ 10099
	CodeTooSoon       ErrorCode = 10001
	CodeOutOfBound    ErrorCode = 10002
	CodeInvalidCaller ErrorCode = 10003

	// Fail-closed internal failures
	CodeInternalError ErrorCode = 10100

	// Boundary and transaction screening, 10200 ~ 10299
	CodeEncodingError  ErrorCode = 10201
	CodeUnknownMethod  ErrorCode = 10202
	CodeInvalidNonce   ErrorCode = 10203
	CodeUnauthorized   ErrorCode = 10204
	CodeInvalidChainID ErrorCode = 10205
)

var codeNames = map[ErrorCode]string{
	CodeOK:             "OK",
	CodeGenericError:   "GenericError",
	CodeTooSoon:        "TooSoon",
	CodeOutOfBound:     "OutOfBound",
	CodeInvalidCaller:  "InvalidCaller",
	CodeInternalError:  "InternalError",
	CodeEncodingError:  "EncodingError",
	CodeUnknownMethod:  "UnknownMethod",
	CodeInvalidNonce:   "InvalidNonce",
	CodeUnauthorized:   "Unauthorized",
	CodeInvalidChainID: "InvalidChainID",
}

// String returns the name of the error code, e.g. "TooSoon".
func (code ErrorCode) String() string {
	if name, ok := codeNames[code]; ok {
		return name
	}
	return "Unknown"
}

// IsRetryable indicates whether the caller may succeed by retrying later or
// with a different value, without fixing its setup.
func (code ErrorCode) IsRetryable() bool {
	return code == CodeTooSoon || code == CodeOutOfBound || code == CodeInvalidNonce
}
