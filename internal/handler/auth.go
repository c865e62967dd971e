package handler

import (
	"errors"
	"net/http"

	"github.com/vasavipoluri/student-registry-api/internal/payload"
	"github.com/vasavipoluri/student-registry-api/internal/usecase"
)

func (h *HTTPHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req payload.SignupRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Username:       req.Username,
		Password:       req.Password,
		PasswordRepeat: req.PasswordRepeat,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, payload.MessageResponse{Message: "User Created Successfully!"})
}

func (h *HTTPHandler) login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyRegistered) {
			http.Redirect(w, r, "/already-registered", http.StatusSeeOther)
			return
		}

		h.respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.jwtAuth.ExpiresIn().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Location", "/home")
	writeJSON(w, http.StatusSeeOther, payload.LoginResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
	})
}

// logout reports success without clearing the cookie; the outstanding token
// stays valid until it expires.
func (h *HTTPHandler) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, payload.MessageResponse{Message: "Logout Successful!"})
}

func (h *HTTPHandler) loginPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, payload.PageResponse{Page: "login"})
}

func (h *HTTPHandler) signupPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, payload.PageResponse{Page: "signup"})
}

func (h *HTTPHandler) alreadyRegisteredPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, payload.PageResponse{Page: "already-registered"})
}

func (h *HTTPHandler) homePage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, payload.PageResponse{
		Page: "home",
		User: usernameFromContext(r.Context()),
	})
}

func (h *HTTPHandler) contactPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, payload.PageResponse{
		Page: "contactus",
		User: usernameFromContext(r.Context()),
	})
}

func (h *HTTPHandler) coursesPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, payload.PageResponse{
		Page: "courses",
		User: usernameFromContext(r.Context()),
	})
}
