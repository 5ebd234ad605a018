package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinrec/clinrec/internal/platform/apperror"
)

// Recovery converts a handler panic into an Unexpected error so the central
// error handler answers with a generic 500. The panic value and stack go to
// the log only.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					rid, _ := c.Get("request_id").(string)
					logger.Error().
						Str("request_id", rid).
						Str("method", c.Request().Method).
						Str("path", c.Request().URL.Path).
						Str("stack", string(debug.Stack())).
						Msgf("panic recovered: %v", r)

					err = apperror.Unexpected(fmt.Errorf("panic: %v", r))
				}
			}()
			return next(c)
		}
	}
}
