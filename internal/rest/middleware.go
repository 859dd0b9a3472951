package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/blog-api/internal/auth"
)

const identityKey = "identity"

// authenticate parses the credential headers once per request and
// attaches the resolved identity. A missing credential is not an error;
// a presented-but-invalid one rejects the request before any handler.
func (h *Handler) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cred := auth.ParseCredentials(
			c.Request().Header.Get(auth.HeaderAuthorization),
			c.Request().Header.Get(auth.HeaderAPIKey),
		)

		identity, err := h.auth.Authenticate(cred)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}

		c.Set(identityKey, identity)
		return next(c)
	}
}

func (h *Handler) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !identityFrom(c).IsAdmin() {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		return next(c)
	}
}

func identityFrom(c echo.Context) auth.Identity {
	if identity, ok := c.Get(identityKey).(auth.Identity); ok {
		return identity
	}
	return auth.Anonymous
}

func (h *Handler) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		h.log.Info("HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.RealIP(),
		)

		return err
	}
}
