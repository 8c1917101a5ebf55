package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/prostore/catalog-api/internal/core/domain"
	"github.com/prostore/catalog-api/internal/core/ports"
)

// UserContextKey is the echo context key under which the resolved
// account is stored.
const UserContextKey = "user"

// TokenCookieName is the cookie checked when no Authorization header is
// present.
const TokenCookieName = "token"

// Auth resolves the request's identity: it extracts a token from the
// Authorization header or the token cookie, verifies it, loads the
// account, and attaches it to the context. Any failure ends the request
// with 401; expired and malformed tokens differ only in message.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token")
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
				}
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// extractToken prefers the Authorization header; a "token" cookie is
// the fallback for browser clients.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	cookie, err := c.Cookie(TokenCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}
