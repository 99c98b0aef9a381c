package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/repository"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps domain errors onto HTTP status codes. Anything outside
// the known set becomes a 500 with a generic message so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	respondJSON(w, status, errorResponse{Error: message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, repository.ErrDuplicateContactNumber):
		return http.StatusConflict
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrAccountDeactivated),
		errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrCurrentPasswordIncorrect),
		errors.Is(err, usecase.ErrNoResetRequest),
		errors.Is(err, usecase.ErrOTPExpired),
		errors.Is(err, usecase.ErrInvalidOTP):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrInvalidContactNumber),
		errors.Is(err, usecase.ErrPasswordTooShort),
		errors.Is(err, usecase.ErrInvalidOTPFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorType(err error) string {
	switch statusForError(err) {
	case http.StatusConflict:
		return "conflict"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}
