package middlewares

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"orderhub/internal/pkg/auth"
)

// RequireAuth verifies the Authorization bearer credential and injects the
// resulting Actor into the request context. Requests without a valid token
// never reach a handler.
//
// Role checks do not happen here: an authenticated actor with no usable
// roles passes through and is rejected by the access policy with 403.
func RequireAuth(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			actor, err := verifier.Verify(token)
			if err != nil {
				slog.WarnContext(r.Context(), "rejected bearer token", "error", err)
				writeUnauthorized(w, "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer x" header.
func bearerToken(header string) (string, bool) {
	const scheme = "Bearer "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", false
	}
	return header[len(scheme):], true
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthenticated",
		"message": msg,
	})
}
