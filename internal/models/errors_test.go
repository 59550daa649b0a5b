package models

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("bad input")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NewNotFoundError("gone")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(NewNotAuthenticatedError("no user")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NewStoreError(errors.New("db down"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain error")))
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
