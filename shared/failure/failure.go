package failure

import (
	"errors"
	"net/http"
)

// Failure pairs an error with the HTTP status it should be reported as.
// Message is what a client may see; the wrapped cause is only for logs.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

// ErrRequestFailed is the message every store or gateway failure is reported with.
const ErrRequestFailed = "request failed"

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest marks err as a validation failure. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
		cause:   err,
	}
}

// BadRequestFromString returns a validation failure with msg.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// NotFound reports that entityName does not exist.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict reports a write rejected by a uniqueness rule.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// RequestError wraps a store or gateway failure. The cause is kept for
// errors.Is/As and logging while the message stays generic.
func RequestError(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusInternalServerError,
		Message: ErrRequestFailed,
		cause:   err,
	}
}

// GetCode returns the status carried by err, or 500 for anything else.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsClientError reports whether err carries a 4xx status.
func IsClientError(err error) bool {
	code := GetCode(err)

	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}

// PublicMessage returns the text a client may see for err. Anything that is
// not a client error collapses into ErrRequestFailed.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}

	if IsClientError(err) {
		return err.Error()
	}

	return ErrRequestFailed
}
