package handler

import (
	"net/http"

	"github.com/vasavipoluri/student-registry-api/internal/payload"
)

func (h *HTTPHandler) resetPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, payload.PageResponse{Page: "reset"})
}

func (h *HTTPHandler) generateOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.GenerateOTPRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.passwordResetUsecase.GenerateOTP(r.Context(), req.Username); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, payload.MessageResponse{Message: "OTP generated and sent successfully"})
}

func (h *HTTPHandler) verifyAndUpdate(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyAndUpdateRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.VerifyAndUpdate(r.Context(), req.Username, req.OTP, req.NewPassword)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, payload.MessageResponse{Message: "Password updated successfully"})
}
