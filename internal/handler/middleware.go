package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// sessionCookie is the cookie carrying the session token.
const sessionCookie = "access_token"

type contextKey struct{}

var usernameKey = contextKey{}

// usernameFromContext returns the authenticated username stored by the
// session middleware.
func usernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

// requireSession guards protected routes. The check is a pure function of
// the cookie and the signing secret; no database lookup is made.
func (h *HTTPHandler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			h.unauthenticated(w)
			return
		}

		username, err := h.jwtAuth.ValidateSessionToken(cookie.Value)
		if err != nil {
			h.unauthenticated(w)
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *HTTPHandler) unauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeErrors(w, http.StatusUnauthorized, "Could not validate credentials")
}

// requestLogger logs one line per request with the chi request ID.
func (h *HTTPHandler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
