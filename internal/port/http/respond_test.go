package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/repository"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{repository.ErrDuplicateContactNumber, http.StatusConflict},
		{repository.ErrNotFound, http.StatusNotFound},
		{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{usecase.ErrAccountDeactivated, http.StatusUnauthorized},
		{usecase.ErrInvalidToken, http.StatusUnauthorized},
		{usecase.ErrCurrentPasswordIncorrect, http.StatusUnauthorized},
		{usecase.ErrNoResetRequest, http.StatusUnauthorized},
		{usecase.ErrOTPExpired, http.StatusUnauthorized},
		{usecase.ErrInvalidOTP, http.StatusUnauthorized},
		{usecase.ErrForbidden, http.StatusForbidden},
		{usecase.ErrInvalidContactNumber, http.StatusBadRequest},
		{usecase.ErrPasswordTooShort, http.StatusBadRequest},
		{usecase.ErrInvalidOTPFormat, http.StatusBadRequest},
		{errors.New("mongo exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, statusForError(tc.err), "error: %v", tc.err)
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("dial tcp 10.0.0.5:27017: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRespondErrorKeepsDomainMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, usecase.ErrNoResetRequest)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"no password reset request found"}`, rec.Body.String())
}
