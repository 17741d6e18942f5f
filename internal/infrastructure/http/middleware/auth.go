package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/markethub/products-api/internal/domain"
	"github.com/markethub/products-api/internal/infrastructure/auth"
	"github.com/markethub/products-api/internal/infrastructure/http/response"
)

type callerContextKey struct{}

// CallerFromContext returns the authenticated caller placed in the context
// by Authenticate.
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerContextKey{}).(domain.Caller)
	return caller, ok
}

// WithCaller returns a context carrying the given caller. Exported for
// tests that exercise handlers below the middleware chain.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// Authenticate verifies the bearer token and threads the caller identity
// into the request context. Requests without a valid token never reach a
// handler.
func Authenticate(manager *auth.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Message(w, http.StatusUnauthorized, "Authorization header is required.")
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				response.Message(w, http.StatusUnauthorized, "Invalid authorization header format.")
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				response.Message(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			caller := domain.Caller{ID: claims.UserID, Role: domain.Role(claims.Role)}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// RequireRole denies callers whose role differs from the required one.
func RequireRole(role domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				response.Message(w, http.StatusUnauthorized, "Authorization header is required.")
				return
			}
			if caller.Role != role {
				response.Message(w, http.StatusForbidden, "Access denied.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
