package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/blog-api/internal/auth"
)

// Login handles POST /auth/login
// @Summary Exchange admin credentials for a bearer token
// @Description Rate-limited per caller IP. Failure does not reveal whether the username or the password was wrong
// @Tags auth
// @Accept json
// @Produce json
// @Param request body rest.LoginRequest true "Credentials"
// @Success 200 {object} rest.LoginResponse
// @Failure 400,401,429,500 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return h.handleError(c, nil, http.StatusBadRequest, "username and password are required")
	}

	session, err := h.auth.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrUnauthorized) {
		return h.handleError(c, err, http.StatusUnauthorized, "invalid credentials")
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     session.Token,
		TokenType: session.TokenType,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	})
}

// Me handles GET /auth/me
// @Summary Describe the authenticated caller
// @Tags auth
// @Produce json
// @Success 200 {object} rest.MeResponse
// @Failure 401 {object} map[string]string
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *Handler) Me(c echo.Context) error {
	identity := identityFrom(c)

	return c.JSON(http.StatusOK, MeResponse{
		Authenticated: true,
		User:          identity.User,
	})
}
