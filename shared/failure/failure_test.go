package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"rkhub/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad request", failure.BadRequest(errors.New("name is required")), http.StatusBadRequest, "name is required"},
		{"bad request from string", failure.BadRequestFromString("file is required"), http.StatusBadRequest, "file is required"},
		{"unauthorized", failure.Unauthorized("Invalid token"), http.StatusUnauthorized, "Invalid token"},
		{"forbidden", failure.Forbidden("Account is deactivated"), http.StatusForbidden, "Account is deactivated"},
		{"forbidden default", failure.ForbiddenError, http.StatusForbidden, "You don't have the required permissions"},
		{"not found", failure.NotFound("admin"), http.StatusNotFound, "admin"},
		{"conflict", failure.Conflict("admins already exists"), http.StatusConflict, "admins already exists"},
		{"request error", failure.RequestError(errors.New("connection reset")), http.StatusInternalServerError, failure.ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.RequestError(nil))
}

func TestRequestError_KeepsCause(t *testing.T) {
	cause := errors.New("pq: relation \"updates\" does not exist")

	err := fmt.Errorf("listing updates: %w", failure.RequestError(cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.NotContains(t, failure.PublicMessage(err), "relation")
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped failure", fmt.Errorf("submit: %w", failure.BadRequestFromString("email is invalid")), http.StatusBadRequest},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "email is invalid", failure.PublicMessage(failure.BadRequestFromString("email is invalid")))
	assert.Equal(t, failure.ErrRequestFailed, failure.PublicMessage(errors.New("dial tcp: timeout")))
	assert.Empty(t, failure.PublicMessage(nil))
	assert.False(t, failure.IsClientError(errors.New("dial tcp: timeout")))
	assert.True(t, failure.IsClientError(failure.NotFound("update")))
}
