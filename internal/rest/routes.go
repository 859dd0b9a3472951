package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	postsPath    = "/posts"
	postByIDPath = "/posts/:id"
	loginPath    = "/auth/login"
	mePath       = "/auth/me"
	uploadsPath  = "/uploads"
	uploadKey    = "/uploads/*"
	healthPath   = "/health"
)

// RegisterRoutes builds the echo instance with the full HTTP surface.
func (h *Handler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(h.requestLogger)
	if len(h.cfg.CORS.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: h.cfg.CORS.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, "X-API-Key"},
		}))
	}
	e.Use(h.authenticate)

	e.GET(healthPath, h.handleHealth)

	e.GET(postsPath, h.Posts)
	e.GET(postByIDPath, h.PostByID)
	e.POST(postsPath, h.CreatePost, h.requireAdmin)
	e.PUT(postByIDPath, h.UpdatePost, h.requireAdmin)
	e.DELETE(postByIDPath, h.DeletePost, h.requireAdmin)

	e.POST(loginPath, h.Login, h.loginRateLimiter())
	e.GET(mePath, h.Me, h.requireAdmin)

	e.POST(uploadsPath, h.Upload, h.requireAdmin)
	e.DELETE(uploadKey, h.DeleteUpload, h.requireAdmin)

	return e
}

// loginRateLimiter throttles login attempts per caller IP. The bucket
// holds the full per-minute budget, so the sixth attempt inside a minute
// gets 429 before credentials are evaluated.
func (h *Handler) loginRateLimiter() echo.MiddlewareFunc {
	attempts := h.cfg.Auth.LoginAttemptsPerMinute

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(attempts) / 60.0),
			Burst:     attempts,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many login attempts"})
		},
	})
}

func (h *Handler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
