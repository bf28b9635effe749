package api

import (
	"errors"
	"fmt"
	"net/http"

	"lemonworks/common"
)

type ErrorKind string

const (
	// KindServer: a response was received with a non-2xx status.
	KindServer ErrorKind = "server"
	// KindNetwork: the request was sent but no response came back.
	KindNetwork ErrorKind = "network"
	// KindValidation: a client side check failed, no request was issued.
	KindValidation ErrorKind = "validation"
)

const (
	GenericServerMessage = "request to the server failed"
	NetworkMessage       = "could not connect to the server, check your connection"
)

// Error is the normalized failure of any remote call. Message is always human readable.
type Error struct {
	Kind       ErrorKind
	Method     string
	URL        string
	StatusCode int
	Message    string
	RespBody   string

	Cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Respond() *common.BizErrorDetail {
	switch e.Kind {
	case KindValidation:
		return &common.BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: e.Message, Cause: e}
	case KindNetwork:
		return &common.BizErrorDetail{Status: http.StatusServiceUnavailable, Code: "backend.unreachable", Message: e.Message, Cause: e}
	default:
		return &common.BizErrorDetail{Status: http.StatusBadGateway, Code: "backend.server_error", Message: e.Message,
			Data: map[string]interface{}{"status": e.StatusCode}, Cause: e}
	}
}

func NewValidationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func newNetworkError(method, url string, cause error) *Error {
	return &Error{Kind: KindNetwork, Method: method, URL: url, Message: NetworkMessage, Cause: cause}
}

func newServerError(method, url string, status int, message, respBody string) *Error {
	if message == "" {
		message = GenericServerMessage
	}
	return &Error{Kind: KindServer, Method: method, URL: url, StatusCode: status, Message: message, RespBody: respBody}
}

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// Invalid wraps a domain rule violation as a validation error, keeping it matchable with errors.Is.
func Invalid(cause error) *Error {
	return &Error{Kind: KindValidation, Message: cause.Error(), Cause: cause}
}
