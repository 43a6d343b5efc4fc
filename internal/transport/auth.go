package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type workspaceKey struct{}

// WorkspaceResolver resolves a workspace ID from a bearer token.
type WorkspaceResolver interface {
	ResolveWorkspace(ctx context.Context, token string) (string, error)
}

// WorkspaceFromContext returns the workspace ID from context, if present.
func WorkspaceFromContext(ctx context.Context) (string, bool) {
	workspaceID, ok := ctx.Value(workspaceKey{}).(string)
	return workspaceID, ok
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver WorkspaceResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			workspaceID, err := resolver.ResolveWorkspace(r.Context(), token)
			if err != nil || workspaceID == "" {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), workspaceKey{}, workspaceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
