package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/aCoruja/TechSecurityWebsite/internal/api/middleware"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

// ctxUsername extracts the subject injected by the Auth middleware and
// fails fast before any service call. A missing claim means the route was
// wired without the middleware, which is treated as unauthenticated.
func ctxUsername(c echo.Context) (string, error) {
	claim, ok := c.Get(middleware.ClaimsKey).(*domain.SessionClaim)
	if !ok || claim == nil || claim.Subject == "" {
		return "", domain.ErrUnauthorized
	}
	return claim.Subject, nil
}
