package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/campuslab/equiptrack/internal/authz"
	"github.com/golang-jwt/jwt/v5"
)

// Principal is the resolved caller of a request.
type Principal struct {
	ID       int
	Username string
	Role     authz.Role
}

type ctxKey string

const principalKey ctxKey = "principal"

// AnonymousActor labels requests with no resolved principal.
const AnonymousActor = "anonymous"

// Identity resolves the caller from a Bearer token when one is present and
// valid. Resolution is advisory: absent, malformed, or expired tokens leave
// the request anonymous and never reject it. Routes that require a caller
// use RequireAuth on top of this.
func Identity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				return secret, nil
			})
			if err != nil || !token.Valid {
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			userID, ok := claims["user_id"].(float64)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			username, _ := claims["username"].(string)
			role, _ := claims["role"].(string)

			p := Principal{
				ID:       int(userID),
				Username: username,
				Role:     authz.ParseRole(role),
			}
			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the resolved principal, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// WithPrincipal returns a context carrying the principal. Test helper and
// escape hatch for non-HTTP callers.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// ActorLabel returns the principal's username, or "anonymous".
func ActorLabel(ctx context.Context) string {
	if p, ok := PrincipalFrom(ctx); ok && p.Username != "" {
		return p.Username
	}
	return AnonymousActor
}

// RoleFrom returns the principal's role; anonymous requests act as guest.
func RoleFrom(ctx context.Context) authz.Role {
	if p, ok := PrincipalFrom(ctx); ok {
		return p.Role
	}
	return authz.RoleGuest
}
