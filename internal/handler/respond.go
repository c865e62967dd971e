package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vasavipoluri/student-registry-api/internal/payload"
	"github.com/vasavipoluri/student-registry-api/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrors(w http.ResponseWriter, status int, messages ...string) {
	writeJSON(w, status, payload.ErrorResponse{Errors: messages})
}

// decode parses and validates the JSON request body, answering 400 with the
// enumerated violation messages itself. It reports whether the payload is
// usable.
func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrors(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if messages := h.validate.ValidateStruct(dst); len(messages) > 0 {
		writeErrors(w, http.StatusBadRequest, messages...)
		return false
	}

	return true
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// respondError maps usecase errors to HTTP statuses. Validation and
// authorization failures surface their messages; anything else is logged and
// collapsed to a generic failure.
func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var policyErr *usecase.PasswordPolicyError

	switch {
	case errors.As(err, &policyErr):
		writeErrors(w, http.StatusBadRequest, policyErr.Violations...)
	case errors.Is(err, usecase.ErrPasswordMismatch):
		writeErrors(w, http.StatusBadRequest, "Passwords do not match")
	case errors.Is(err, usecase.ErrInvalidOTP):
		writeErrors(w, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeErrors(w, http.StatusUnauthorized, "Invalid Email or Password")
	case errors.Is(err, usecase.ErrNotOwner):
		writeErrors(w, http.StatusForbidden, "You don't have permission to modify this course registration")
	case errors.Is(err, usecase.ErrUserNotFound):
		writeErrors(w, http.StatusNotFound, "User not found")
	case errors.Is(err, usecase.ErrStudentNotFound):
		writeErrors(w, http.StatusNotFound, "Student not found")
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		writeErrors(w, http.StatusConflict, "User already exists")
	default:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeErrors(w, http.StatusInternalServerError, "something went wrong")
	}
}
