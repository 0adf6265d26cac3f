package middleware

import (
	"net/http"
)

// ReadOnly creates middleware that blocks mutations from the demo principal.
// It must run after Auth: it only inspects the principal already attached to
// the request context and never verifies credentials itself.
func ReadOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := GetPrincipal(r)
		if err != nil {
			unauthorized(w)
			return
		}

		if principal.Demo {
			writeError(w, http.StatusForbidden, "demo account is read-only")
			return
		}

		next.ServeHTTP(w, r)
	})
}
