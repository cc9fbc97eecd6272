package timelock

import "fmt"

// ResultCode is the stable integer taxonomy shared with foreign
// wrappers (C ABI, wasm, Python). Values are part of the wire contract
// and must not be renumbered.
type ResultCode uint8

const (
	Success            ResultCode = 0
	CodeInvalidInput   ResultCode = 1
	CodeEncryptionFail ResultCode = 2
	CodeDecryptionFail ResultCode = 3
	CodeMemoryError    ResultCode = 4
	CodeSerialization  ResultCode = 5
	CodeInvalidPubKey  ResultCode = 6
	CodeInvalidSig     ResultCode = 7
)

func (c ResultCode) String() string {
	switch c {
	case Success:
		return "Success"
	case CodeInvalidInput:
		return "InvalidInput"
	case CodeEncryptionFail:
		return "EncryptionFailed"
	case CodeDecryptionFail:
		return "DecryptionFailed"
	case CodeMemoryError:
		return "MemoryError"
	case CodeSerialization:
		return "SerializationError"
	case CodeInvalidPubKey:
		return "InvalidPublicKey"
	case CodeInvalidSig:
		return "InvalidSignature"
	default:
		return fmt.Sprintf("ResultCode(%d)", uint8(c))
	}
}

// Error carries a result code and a message describing the failing
// step. Messages never include secret material; wrappers surface them
// through their last-error channel.
type Error struct {
	Code  ResultCode
	msg   string
	cause error
}

func newError(code ResultCode, msg string, cause error) *Error {
	return &Error{Code: code, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf extracts the result code from an error returned by this
// package; Success for nil, InvalidInput for foreign errors.
func CodeOf(err error) ResultCode {
	if err == nil {
		return Success
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return CodeInvalidInput
}
