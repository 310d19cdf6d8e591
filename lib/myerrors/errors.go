package myerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type httpErrorCoder interface {
	error
	GetHTTPErrorCode() int
}

type httpError struct {
	httpCode int
	err      error
	details  any
}

func (e httpError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e httpError) GetHTTPErrorCode() int {
	return e.httpCode
}

func (e httpError) Unwrap() error {
	return e.err
}

func newError(httpCode int, err error) *httpError {
	return &httpError{
		httpCode: httpCode,
		err:      err,
	}
}

func NewInvalidInputError(err error) *httpError {
	return newError(http.StatusBadRequest, err)
}

func NewInvalidInputErrorf(format string, args ...any) *httpError {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

func NewUnsupportedMediaTypeError(err error) *httpError {
	return newError(http.StatusUnsupportedMediaType, err)
}

func NewNotFoundError(err error) *httpError {
	return newError(http.StatusNotFound, err)
}

func NewAuthenticationError(err error) *httpError {
	return newError(http.StatusForbidden, err)
}

func NewInternalError(err error) *httpError {
	return newError(http.StatusInternalServerError, err)
}

func NewNotImplementedError(err error) *httpError {
	return newError(http.StatusNotImplemented, err)
}

func NewUnavailableError(err error) *httpError {
	return newError(http.StatusServiceUnavailable, err)
}

// NewUpstreamError reports a failure of an external api. The status of the upstream
// response is kept so it can be mirrored to our own caller; codes outside 4xx/5xx become 502.
func NewUpstreamError(upstreamStatus int, err error, details any) *httpError {
	if upstreamStatus < 400 || upstreamStatus > 599 {
		upstreamStatus = http.StatusBadGateway
	}
	return &httpError{
		httpCode: upstreamStatus,
		err:      err,
		details:  details,
	}
}

// WithDetails attaches extra information that is returned to the caller next to the message.
func WithDetails(err *httpError, details any) *httpError {
	err.details = details
	return err
}

func GetHTTPStatus(err error) int {
	var coder httpErrorCoder
	if err != nil && errors.As(err, &coder) {
		return coder.GetHTTPErrorCode()
	}
	return http.StatusInternalServerError
}

// GetMessage returns the message of the innermost coded error without the status prefix.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var httpErr *httpError
	if errors.As(err, &httpErr) {
		return httpErr.err.Error()
	}
	return err.Error()
}

func GetDetails(err error) any {
	var httpErr *httpError
	if err != nil && errors.As(err, &httpErr) {
		return httpErr.details
	}
	return nil
}
