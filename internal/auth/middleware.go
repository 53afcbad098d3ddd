package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/talentforge/talentforge/internal/shared"
)

// IdentityLoader resolves the caller identity from a bearer token or
// an established cookie session and stores it in the request context.
// Requests without credentials pass through anonymously; protected
// routes enforce presence via RequireIdentity.
func IdentityLoader(service *Service, tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if raw := bearerToken(r); raw != "" {
				identity, err := tokens.Verify(raw)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(ctx, identity)))
					return
				}
			}

			if sess := shared.SessionFromContext(ctx); sess != nil {
				if userID, err := uuid.Parse(sess.User()); err == nil {
					account, err := service.Lookup(ctx, userID)
					if err == nil && account.IsActive {
						identity := shared.Identity{ID: account.ID, Email: account.Email, RoleName: account.RoleName}
						next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(ctx, identity)))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity rejects requests with no resolved identity.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := shared.IdentityFromContext(r.Context()); !ok {
			shared.RespondError(w, shared.ErrInvalidCredentials)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
