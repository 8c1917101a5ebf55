package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/prostore/catalog-api/internal/api/middleware"
	"github.com/prostore/catalog-api/internal/core/domain"
)

// actor extracts the account resolved by the Auth middleware. Returns
// nil on public routes or if the middleware did not run; the service
// layer treats a nil actor as unauthenticated.
func actor(c echo.Context) *domain.User {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	return user
}
