package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/lunaword/internal/config"
)

// NewEcho registers every route of the API.
func NewEcho(cfg config.ServerConfig, h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization},
		ExposeHeaders: []string{headerRequestID},
		MaxAge:        3600,
	}))

	api := e.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authenticated := api.Group("", requireSession(h.auth))
	authenticated.GET("/categories", h.Categories)
	authenticated.GET("/categories/:category/progress", h.CategoryProgress)
	authenticated.GET("/learn/next", h.NextLearn)
	authenticated.POST("/learn/:word", h.Learned)
	authenticated.GET("/review/next", h.NextReview)
	authenticated.POST("/review/:word", h.Reviewed)
	authenticated.GET("/stats", h.Stats)

	generating := authenticated.Group("", rateLimit(NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)))
	generating.POST("/library/lookup", h.Lookup)
	generating.POST("/library/expand", h.Expand)
	generating.GET("/words/:word/audio", h.Audio)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

// NewHTTPServer serves handler with HTTP/2 cleartext support.
func NewHTTPServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
