package myerrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	myErr := fmt.Errorf("my error")

	testCases := []struct {
		name       string
		in         error
		httpStatus int
		errorText  string
	}{
		{
			name:       "No http error",
			in:         myErr,
			httpStatus: 500,
			errorText:  "my error",
		},
		{
			name:       "Invalid input error",
			in:         NewInvalidInputError(myErr),
			httpStatus: 400,
			errorText:  "status: 400, err: my error",
		},
		{
			name:       "Invalid input errorf",
			in:         NewInvalidInputErrorf("%s: %d", myErr.Error(), 123),
			httpStatus: 400,
			errorText:  "status: 400, err: my error: 123",
		},
		{
			name:       "Authentication error",
			in:         NewAuthenticationError(myErr),
			httpStatus: 403,
			errorText:  "status: 403, err: my error",
		},
		{
			name:       "Not found error",
			in:         NewNotFoundError(myErr),
			httpStatus: 404,
			errorText:  "status: 404, err: my error",
		},
		{
			name:       "UnsupportedMedia error",
			in:         NewUnsupportedMediaTypeError(myErr),
			httpStatus: 415,
			errorText:  "status: 415, err: my error",
		},
		{
			name:       "Internal error",
			in:         NewInternalError(myErr),
			httpStatus: 500,
			errorText:  "status: 500, err: my error",
		},
		{
			name:       "Not implemented error",
			in:         NewNotImplementedError(myErr),
			httpStatus: 501,
			errorText:  "status: 501, err: my error",
		},
		{
			name:       "Not available error",
			in:         NewUnavailableError(myErr),
			httpStatus: 503,
			errorText:  "status: 503, err: my error",
		},
		{
			name:       "Upstream error mirrors status",
			in:         NewUpstreamError(429, myErr, nil),
			httpStatus: 429,
			errorText:  "status: 429, err: my error",
		},
		{
			name:       "Upstream error without failure status",
			in:         NewUpstreamError(200, myErr, nil),
			httpStatus: 502,
			errorText:  "status: 502, err: my error",
		},
		{
			name:       "Wrapped error",
			in:         fmt.Errorf("fetching collection: %w", NewNotFoundError(myErr)),
			httpStatus: 404,
			errorText:  "fetching collection: status: 404, err: my error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpStatus := GetHTTPStatus(tc.in)
			if httpStatus != tc.httpStatus {
				t.Errorf("HttpStatus: got %v, want %v", httpStatus, tc.httpStatus)
			}
			if tc.errorText != tc.in.Error() {
				t.Errorf("%s: ErrorText: got %v, want %v", tc.name, tc.in.Error(), tc.errorText)
			}
		})
	}
}

func TestMessageAndDetails(t *testing.T) {
	details := []map[string]string{{"message": "Field 'x' doesn't exist"}}
	err := NewUpstreamError(502, fmt.Errorf("graphql returned 1 error"), details)

	assert.Equal(t, "graphql returned 1 error", GetMessage(err))
	assert.Equal(t, details, GetDetails(err))

	assert.Equal(t, "plain", GetMessage(fmt.Errorf("plain")))
	assert.Nil(t, GetDetails(fmt.Errorf("plain")))
	assert.Equal(t, "", GetMessage(nil))

	withDetails := WithDetails(NewInvalidInputErrorf("bad quantity"), map[string]int{"quantity": 0})
	assert.Equal(t, map[string]int{"quantity": 0}, GetDetails(withDetails))
}
