package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prostore/catalog-api/internal/api/metrics"
	"github.com/prostore/catalog-api/internal/api/middleware"
	"github.com/prostore/catalog-api/internal/core/domain"
	"github.com/prostore/catalog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// Signup creates a new account. The first account ever created becomes
// the admin.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.authService.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "User created successfully as " + user.Role,
		Token:   token,
		User:    user,
	})
}

// Login authenticates an account and returns a fresh token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// Logout acknowledges the logout and expires the token cookie. Tokens
// are stateless, so the server keeps no session to destroy; clients
// must discard the token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Logged out successfully. Please clear token on client.",
	})
}
