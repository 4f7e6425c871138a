package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/at-ishikawa/lunaword/internal/auth"
	"github.com/at-ishikawa/lunaword/internal/database"
	"github.com/at-ishikawa/lunaword/internal/inference"
	"github.com/at-ishikawa/lunaword/internal/library"
	"github.com/at-ishikawa/lunaword/internal/progress"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error          string `json:"error"`
	Message        string `json:"message,omitempty"`
	QuotaExhausted bool   `json:"quota_exhausted,omitempty"`
}

// errorResponse maps err to a status code and a response body.
func errorResponse(err error) (int, ErrorResponse) {
	if genErr, ok := library.AsGenerationError(err); ok {
		if !genErr.Degraded() {
			return http.StatusNotFound, ErrorResponse{
				Error:   string(genErr.Reason),
				Message: "no word card could be found for " + genErr.Query,
			}
		}
		return http.StatusServiceUnavailable, ErrorResponse{
			Error:          string(genErr.Reason),
			Message:        "the word generator is unavailable, please try again later",
			QuotaExhausted: genErr.Reason == library.ReasonQuotaExhausted,
		}
	}

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		message, _ := httpErr.Message.(string)
		if message == "" {
			message = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorResponse{Error: errorCode(httpErr.Code), Message: message}
	case errors.Is(err, database.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Error: "store_unavailable", Message: "storage is unavailable, please try again later"}
	case errors.Is(err, inference.ErrInsufficientQuota):
		return http.StatusServiceUnavailable, ErrorResponse{Error: string(library.ReasonQuotaExhausted), QuotaExhausted: true}
	case errors.Is(err, progress.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()}
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: err.Error()}
	case errors.Is(err, auth.ErrUserExists):
		return http.StatusConflict, ErrorResponse{Error: "conflict", Message: err.Error()}
	case errors.Is(err, auth.ErrInvalidUsername), errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal", Message: http.StatusText(http.StatusInternalServerError)}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusServiceUnavailable:
		return "unavailable"
	}
	return "error"
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		loggerFrom(c).Error("request failed", "status", status, "error", err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		loggerFrom(c).Error("failed to write an error response", "error", writeErr)
	}
}
