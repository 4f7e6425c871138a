package server

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/at-ishikawa/lunaword/internal/auth"
)

const (
	headerRequestID = "X-Request-Id"
	contextLogger   = "logger"
	contextSession  = "session"
)

// requestLogger gives every request an ID and a logger carrying it.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(headerRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(headerRequestID, requestID)

			logger := slog.Default().With("request_id", requestID)
			c.Set(contextLogger, logger)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.Info("request",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency", time.Since(start),
			)
			return nil
		}
	}
}

func loggerFrom(c echo.Context) *slog.Logger {
	if logger, ok := c.Get(contextLogger).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// TokenParser validates bearer tokens.
type TokenParser interface {
	ParseToken(token string) (auth.Session, error)
}

// requireSession rejects requests without a valid bearer token.
func requireSession(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			session, err := parser.ParseToken(strings.TrimSpace(token))
			if err != nil {
				loggerFrom(c).Debug("rejected token", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			c.Set(contextSession, session)
			return next(c)
		}
	}
}

func sessionFrom(c echo.Context) auth.Session {
	session, _ := c.Get(contextSession).(auth.Session)
	return session
}

// RateLimiter keeps one token bucket per user.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*rate.Limiter
	limit  rate.Limit
	burst  int
}

// NewRateLimiter allows requestsPerMinute per user with the given burst.
// A non-positive requestsPerMinute disables limiting.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limits: make(map[string]*rate.Limiter),
		limit:  limit,
		burst:  burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limits[key] = limiter
	return limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

func rateLimit(limiter *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(sessionFrom(c).Username) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
