package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/pkg/ctxutil"
)

// SessionPathParam is the route wildcard holding the study session ID.
const SessionPathParam = "id"

// Session returns middleware that parses the session ID from the route and
// stores it in the context. Requests with a malformed ID are rejected with 400.
// It must wrap a handler registered on a pattern containing {id}.
func Session() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.PathValue(SessionPathParam)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := uuid.Parse(raw)
			if err != nil || id == uuid.Nil {
				writeJSONError(w, http.StatusBadRequest, "invalid session id")
				return
			}
			ctx := ctxutil.WithSessionID(r.Context(), id)
			reportContext(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
