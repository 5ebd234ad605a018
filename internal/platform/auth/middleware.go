// Package auth is the request-pipeline authentication gate. The gate itself
// never rejects a request: it binds a verified principal into the request
// context when the Authorization header checks out, and otherwise leaves the
// request unauthenticated for the route-level guards to reject. That split
// lets public and protected routes share one middleware chain.
package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinrec/clinrec/internal/platform/token"
)

type contextKey string

const principalKey contextKey = "principal"

// Verifier verifies a bearer token and returns the principal it carries.
type Verifier interface {
	Verify(tokenStr string) (token.Principal, error)
}

// Middleware extracts and verifies the Authorization bearer token. On
// success the principal is bound to the request context; on any failure
// (no header, malformed header, invalid or expired token) the request
// continues with no principal bound. Running the gate twice on the same
// request yields the same outcome.
func Middleware(verifier Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			p, err := verifier.Verify(parts[1])
			if err != nil {
				return next(c)
			}

			ctx := context.WithValue(c.Request().Context(), principalKey, p)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// PrincipalFromContext returns the principal bound by the gate, if any.
func PrincipalFromContext(ctx context.Context) (token.Principal, bool) {
	p, ok := ctx.Value(principalKey).(token.Principal)
	return p, ok
}

// WithPrincipal returns a context carrying p. Tests use this to construct
// requests with arbitrary principals.
func WithPrincipal(ctx context.Context, p token.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
