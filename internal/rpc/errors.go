package rpc

import (
	"fmt"

	"github.com/labsx402/paradoxd/internal/core/engine"
)

// RpcError is the error object embedded in a response's result field.
type RpcError struct {
	Code        int    `json:"error_code"`
	ErrorString string `json:"error"`
	Message     string `json:"error_message"`
}

func (e *RpcError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.ErrorString, e.Code, e.Message)
}

// Wire error codes. Negative codes are transport or dispatch failures;
// positive codes mirror engine result codes directly.
const (
	codeUnknownMethod = -1
	codeInvalidParams = -2
	codeInternal      = -3
	codeNotFound      = -4
	codeUnauthorized  = -5
)

func NewRpcError(code int, errorString, message string) *RpcError {
	return &RpcError{Code: code, ErrorString: errorString, Message: message}
}

func RpcErrorMethodNotFound(method string) *RpcError {
	return NewRpcError(codeUnknownMethod, "unknownMethod", fmt.Sprintf("Unknown method: %s", method))
}

func RpcErrorInvalidParams(detail string) *RpcError {
	return NewRpcError(codeInvalidParams, "invalidParams", detail)
}

func RpcErrorInternal(detail string) *RpcError {
	return NewRpcError(codeInternal, "internal", detail)
}

func RpcErrorNotFound(what string) *RpcError {
	return NewRpcError(codeNotFound, "entryNotFound", fmt.Sprintf("%s not found", what))
}

func RpcErrorUnauthorized(detail string) *RpcError {
	return NewRpcError(codeUnauthorized, "unauthorized", detail)
}

// resultError maps a non-success engine result onto a wire error. The
// engine's own code is carried through so clients can distinguish
// terminal failures from retryable ones without parsing strings.
func resultError(res engine.Result) *RpcError {
	return &RpcError{
		Code:        int(res),
		ErrorString: res.String(),
		Message:     fmt.Sprintf("operation failed: %s", res),
	}
}
