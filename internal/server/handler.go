// Package server serves the learning API over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/at-ishikawa/lunaword/internal/auth"
	"github.com/at-ishikawa/lunaword/internal/learning"
	"github.com/at-ishikawa/lunaword/internal/library"
	"github.com/at-ishikawa/lunaword/internal/progress"
	"github.com/at-ishikawa/lunaword/internal/selection"
	"github.com/at-ishikawa/lunaword/internal/speech"
	"github.com/at-ishikawa/lunaword/internal/statistics"
	"github.com/at-ishikawa/lunaword/internal/user"
)

//go:generate mockgen -source=handler.go -destination=../mocks/server/mock_handler.go -package=mock_server

type Authenticator interface {
	TokenParser
	Register(ctx context.Context, username, password string) (*user.User, error)
	Login(ctx context.Context, username, password string) (string, auth.Session, error)
}

type WordLibrary interface {
	Find(ctx context.Context, word string) (*library.WordCard, error)
	Fetch(ctx context.Context, query string) (*library.WordCard, error)
	Expand(ctx context.Context, topic string, count int) ([]library.ExpandResult, error)
}

type Selector interface {
	Categories(ctx context.Context, username string) ([]selection.CategoryCount, error)
	CategoryProgress(ctx context.Context, username, category string) (selection.CategoryProgress, error)
	NextLearn(ctx context.Context, username, filter string) (*library.WordCard, error)
	NextReview(ctx context.Context, username string) (*selection.ReviewItem, error)
}

type ProgressRecorder interface {
	RecordLearned(ctx context.Context, username, word string) (progress.Entry, error)
	RecordOutcome(ctx context.Context, username, word string, outcome progress.Outcome) (progress.Entry, error)
}

type ReviewLogs interface {
	FindByUser(ctx context.Context, username string) ([]learning.ReviewLog, error)
}

const (
	defaultExpandCount = 5
	maxExpandCount     = 20
)

// Handler implements the API endpoints.
type Handler struct {
	auth        Authenticator
	library     WordLibrary
	selector    Selector
	progress    ProgressRecorder
	reviewLogs  ReviewLogs
	synthesizer speech.Synthesizer
	now         func() time.Time
}

func NewHandler(
	authenticator Authenticator,
	wordLibrary WordLibrary,
	selector Selector,
	recorder ProgressRecorder,
	reviewLogs ReviewLogs,
	synthesizer speech.Synthesizer,
) *Handler {
	return &Handler{
		auth:        authenticator,
		library:     wordLibrary,
		selector:    selector,
		progress:    recorder,
		reviewLogs:  reviewLogs,
		synthesizer: synthesizer,
		now:         time.Now,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register creates an account.
// POST /api/auth/register
func (h *Handler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	u, err := h.auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

// Login returns a bearer token.
// POST /api/auth/login
func (h *Handler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	token, session, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	})
}

type categoriesResponse struct {
	Categories []selection.CategoryCount `json:"categories"`
}

// Categories lists the categories with words left to learn.
// GET /api/categories
func (h *Handler) Categories(c echo.Context) error {
	categories, err := h.selector.Categories(c.Request().Context(), sessionFrom(c).Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: categories})
}

// CategoryProgress returns learned/total of a category.
// GET /api/categories/:category/progress
func (h *Handler) CategoryProgress(c echo.Context) error {
	result, err := h.selector.CategoryProgress(c.Request().Context(), sessionFrom(c).Username, c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

type nextCardResponse struct {
	Done      bool              `json:"done"`
	Card      *library.WordCard `json:"card,omitempty"`
	Remaining int               `json:"remaining,omitempty"`
}

// NextLearn returns the next card to learn.
// GET /api/learn/next?category=
func (h *Handler) NextLearn(c echo.Context) error {
	card, err := h.selector.NextLearn(c.Request().Context(), sessionFrom(c).Username, c.QueryParam("category"))
	if errors.Is(err, selection.ErrNothingToLearn) {
		return c.JSON(http.StatusOK, nextCardResponse{Done: true})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nextCardResponse{Card: card})
}

// Learned records a word as learned.
// POST /api/learn/:word
func (h *Handler) Learned(c echo.Context) error {
	ctx := c.Request().Context()
	word := c.Param("word")
	card, err := h.library.Find(ctx, word)
	if err != nil {
		return err
	}
	if card == nil {
		return echo.NewHTTPError(http.StatusNotFound, "the word is not in the library")
	}

	entry, err := h.progress.RecordLearned(ctx, sessionFrom(c).Username, card.Word)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// NextReview returns one due card.
// GET /api/review/next
func (h *Handler) NextReview(c echo.Context) error {
	item, err := h.selector.NextReview(c.Request().Context(), sessionFrom(c).Username)
	if errors.Is(err, selection.ErrNothingToReview) {
		return c.JSON(http.StatusOK, nextCardResponse{Done: true})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nextCardResponse{Card: &item.Card, Remaining: item.Remaining})
}

type outcomeRequest struct {
	Outcome string `json:"outcome"`
}

// Reviewed records the outcome of a review.
// POST /api/review/:word
func (h *Handler) Reviewed(c echo.Context) error {
	var req outcomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	outcome, err := progress.ParseOutcome(req.Outcome)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.progress.RecordOutcome(c.Request().Context(), sessionFrom(c).Username, c.Param("word"), outcome)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

type lookupRequest struct {
	Query string `json:"query"`
}

// Lookup returns the card of a word, generating it when the library has none.
// POST /api/library/lookup
func (h *Handler) Lookup(c echo.Context) error {
	var req lookupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	card, err := h.library.Fetch(c.Request().Context(), req.Query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, card)
}

type expandRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

type expandItem struct {
	Word  string            `json:"word"`
	Card  *library.WordCard `json:"card,omitempty"`
	Error *ErrorResponse    `json:"error,omitempty"`
}

type expandResponse struct {
	Added   int          `json:"added"`
	Results []expandItem `json:"results"`
}

// Expand adds new words about a topic to the library.
// POST /api/library/expand
func (h *Handler) Expand(c echo.Context) error {
	var req expandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Topic) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "topic is required")
	}
	if req.Count <= 0 {
		req.Count = defaultExpandCount
	}
	if req.Count > maxExpandCount {
		return echo.NewHTTPError(http.StatusBadRequest, "count must be at most "+strconv.Itoa(maxExpandCount))
	}

	results, err := h.library.Expand(c.Request().Context(), req.Topic, req.Count)
	if err != nil {
		return err
	}

	response := expandResponse{Results: make([]expandItem, 0, len(results))}
	for _, result := range results {
		item := expandItem{Word: result.Word, Card: result.Card}
		if result.Err != nil {
			_, body := errorResponse(result.Err)
			item.Error = &body
		} else {
			response.Added++
		}
		response.Results = append(response.Results, item)
	}
	return c.JSON(http.StatusOK, response)
}

// Audio returns the pronunciation of a word as mp3.
// GET /api/words/:word/audio
func (h *Handler) Audio(c echo.Context) error {
	word := library.NormalizeWord(c.Param("word"))
	if word == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "word is required")
	}
	audio, err := h.synthesizer.Synthesize(c.Request().Context(), word)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=86400")
	return c.Blob(http.StatusOK, "audio/mpeg", audio)
}

// Stats returns the user's daily statistics and streak.
// GET /api/stats?year=&month=
func (h *Handler) Stats(c echo.Context) error {
	year, err := optionalInt(c.QueryParam("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	month, err := optionalInt(c.QueryParam("month"))
	if err != nil || month < 0 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}

	logs, err := h.reviewLogs.FindByUser(c.Request().Context(), sessionFrom(c).Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statistics.CalculateStatistics(logs, year, month, h.now()))
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
