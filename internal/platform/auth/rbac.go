package auth

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinrec/clinrec/internal/platform/apperror"
)

// Roles carried in the token's role claim. RoleAdmin passes every check.
const (
	RoleAdmin  = "ADMIN"
	RoleDoctor = "DOCTOR"
	RoleStaff  = "STAFF"
)

// RequirePrincipal returns middleware that rejects requests to protected
// routes when the gate bound no principal. Paths on the given allow-list
// pass through.
func RequirePrincipal(public *PublicPaths) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if public.Contains(c.Request().URL.Path) {
				return next(c)
			}
			if _, ok := PrincipalFromContext(c.Request().Context()); !ok {
				return apperror.Unauthenticated()
			}
			return next(c)
		}
	}
}

// RequireRole returns middleware that checks the caller's role against the
// given set. Admins pass every check.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFromContext(c.Request().Context())
			if !ok {
				return apperror.Unauthenticated()
			}
			if p.Role == RoleAdmin {
				return next(c)
			}
			for _, required := range roles {
				if p.Role == required {
					return next(c)
				}
			}
			return apperror.Forbidden(fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
