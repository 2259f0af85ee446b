package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	cases := map[Code]int{
		CodeInternal:       http.StatusInternalServerError,
		CodeInvalidFormat:  http.StatusBadRequest,
		CodeInvalidInput:   http.StatusUnprocessableEntity,
		CodeNotFound:       http.StatusNotFound,
		CodeConflict:       http.StatusConflict,
		CodeTooManyRequest: http.StatusTooManyRequests,
		CodeUnauthorized:   http.StatusUnauthorized,
		CodeForbidden:      http.StatusForbidden,
		CodeDependency:     http.StatusBadGateway,
	}

	for code, want := range cases {
		err := NewBusiness("x", code)

		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, want, gerr.StatusCode(), "code %s", code)
	}
}

func TestNewServer(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewServer(cause)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Internal server error", gerr.Msg())
	assert.Equal(t, TypeServer, gerr.Type())
	assert.Equal(t, CodeInternal, gerr.Code())
	// The cause stays reachable for logging but drives Error().
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connection refused", gerr.Error())
}

func TestNewBusiness(t *testing.T) {
	err := NewBusiness("account is blocked", CodeForbidden)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "account is blocked", gerr.Error())
	assert.Equal(t, TypeBusiness, gerr.Type())
	assert.Nil(t, gerr.Fields())
}

func TestNewInvalidInput(t *testing.T) {
	t.Run("WrapsValidatorError", func(t *testing.T) {
		cause := errors.New("field errors")

		err := NewInvalidInput(cause)

		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, CodeInvalidInput, gerr.Code())
		assert.Equal(t, TypeValidation, gerr.Type())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("ExplicitFieldMessages", func(t *testing.T) {
		err := NewInvalidInput(nil, "images", "at least 3 product images are required")

		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, CodeInvalidInput, gerr.Code())
		assert.Equal(t, map[string]string{"images": "at least 3 product images are required"}, gerr.Fields())
	})

	t.Run("OddPairsDegradeToFormatError", func(t *testing.T) {
		err := NewInvalidInput(nil, "orphan")

		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, CodeInvalidFormat, gerr.Code())
	})
}

func TestNewInvalidFormat(t *testing.T) {
	var gerr *Error

	require.ErrorAs(t, NewInvalidFormat(), &gerr)
	assert.Equal(t, "Invalid request body", gerr.Msg())

	require.ErrorAs(t, NewInvalidFormat("body must be multipart"), &gerr)
	assert.Equal(t, "body must be multipart", gerr.Msg())
}

func TestWireStrings(t *testing.T) {
	assert.Equal(t, "ERROR_TYPE_BUSINESS", TypeBusiness.String())
	assert.Equal(t, "ERROR_TYPE_VALIDATION", TypeValidation.String())
	assert.Equal(t, "ERROR_TYPE_SERVER", TypeServer.String())
	assert.Equal(t, "ERROR_CODE_TOO_MANY_REQUESTS", CodeTooManyRequest.String())
	assert.Equal(t, "ERROR_CODE_INTERNAL", CodeInternal.String())
}
