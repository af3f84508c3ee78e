package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
)

// Context keys set by Auth.
const (
	ClaimsKey   = "claims"
	UsernameKey = "username"
	RoleKey     = "role"
)

// UnauthorizedMessage is the body text of every authentication failure on
// protected routes. The cause is kept as the internal error for logging.
const UnauthorizedMessage = "Unauthorized"

// Auth validates the bearer token and injects the session claim into context.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(errMissingHeader)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return unauthorized(errBadHeader)
			}

			claim, err := tokens.Validate(strings.TrimSpace(parts[1]))
			if err != nil {
				return unauthorized(err)
			}

			c.Set(ClaimsKey, claim)
			c.Set(UsernameKey, claim.Subject)
			c.Set(RoleKey, claim.Role)

			return next(c)
		}
	}
}

type authError string

func (e authError) Error() string { return string(e) }

const (
	errMissingHeader authError = "missing authorization header"
	errBadHeader     authError = "invalid authorization header"
)

func unauthorized(cause error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, UnauthorizedMessage).SetInternal(cause)
}
