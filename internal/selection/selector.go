package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/at-ishikawa/lunaword/internal/library"
	"github.com/at-ishikawa/lunaword/internal/progress"
)

//go:generate mockgen -source=selector.go -destination=../mocks/selection/mock_selector.go -package=mock_selection

var (
	ErrNothingToLearn  = errors.New("nothing left to learn")
	ErrNothingToReview = errors.New("nothing to review")
)

// Library is the read side of the word library.
type Library interface {
	Library(ctx context.Context) ([]library.WordCard, error)
}

// ProgressStore is the part of the progress store the selector needs.
type ProgressStore interface {
	Progress(ctx context.Context, username string) (map[string]progress.Entry, error)
	DueWords(ctx context.Context, username string, now time.Time) ([]string, error)
	Delete(ctx context.Context, username, word string) error
}

// Selector picks the next word to learn or review for a user.
type Selector struct {
	library  Library
	progress ProgressStore
	now      func() time.Time
	pick     func(n int) int
}

type Option func(*Selector)

func WithClock(now func() time.Time) Option {
	return func(s *Selector) {
		s.now = now
	}
}

// WithPicker replaces the random choice of the next review. pick returns an index in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(s *Selector) {
		s.pick = pick
	}
}

func NewSelector(library Library, progress ProgressStore, opts ...Option) *Selector {
	s := &Selector{
		library:  library,
		progress: progress,
		now:      time.Now,
		pick:     rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Categories returns the categories that still have words for the user to learn.
func (s *Selector) Categories(ctx context.Context, username string) ([]CategoryCount, error) {
	cards, learned, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}
	return Categories(cards, learned), nil
}

// CategoryProgress returns how much of category the user has learned.
func (s *Selector) CategoryProgress(ctx context.Context, username, category string) (CategoryProgress, error) {
	cards, learned, err := s.load(ctx, username)
	if err != nil {
		return CategoryProgress{}, err
	}
	return ProgressIn(cards, learned, category), nil
}

// NextLearn returns the first word of the learn pool.
func (s *Selector) NextLearn(ctx context.Context, username, filter string) (*library.WordCard, error) {
	cards, learned, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}
	pool := LearnPool(cards, learned, filter)
	if len(pool) == 0 {
		return nil, fmt.Errorf("category %q: %w", filter, ErrNothingToLearn)
	}
	return &pool[0], nil
}

// ReviewItem is a due word ready to show.
type ReviewItem struct {
	Card library.WordCard `json:"card"`
	// Remaining includes this card.
	Remaining int `json:"remaining"`
}

// ReviewPool returns the user's due words that exist in the library.
// Due words missing from the library are deleted from the user's progress.
func (s *Selector) ReviewPool(ctx context.Context, username string) ([]string, error) {
	cards, err := s.library.Library(ctx)
	if err != nil {
		return nil, fmt.Errorf("library.Library() > %w", err)
	}
	index := indexByWord(cards)

	due, err := s.progress.DueWords(ctx, username, s.now())
	if err != nil {
		return nil, fmt.Errorf("progress.DueWords(%s) > %w", username, err)
	}

	pool := make([]string, 0, len(due))
	for _, word := range due {
		if _, ok := index[word]; ok {
			pool = append(pool, word)
			continue
		}
		if err := s.dropDangling(ctx, username, word); err != nil {
			return nil, err
		}
	}
	return pool, nil
}

// NextReview picks one due word. A picked word missing from the library is deleted and the pick retried.
// A word is dropped at most once per call, so the retries end even if the deletion did not take effect.
func (s *Selector) NextReview(ctx context.Context, username string) (*ReviewItem, error) {
	cards, err := s.library.Library(ctx)
	if err != nil {
		return nil, fmt.Errorf("library.Library() > %w", err)
	}
	index := indexByWord(cards)

	dropped := make(map[string]struct{})
	for {
		due, err := s.progress.DueWords(ctx, username, s.now())
		if err != nil {
			return nil, fmt.Errorf("progress.DueWords(%s) > %w", username, err)
		}
		candidates := make([]string, 0, len(due))
		for _, word := range due {
			if _, ok := dropped[word]; !ok {
				candidates = append(candidates, word)
			}
		}
		if len(candidates) == 0 {
			return nil, ErrNothingToReview
		}

		word := candidates[s.pick(len(candidates))]
		card, ok := index[word]
		if !ok {
			if err := s.dropDangling(ctx, username, word); err != nil {
				return nil, err
			}
			dropped[word] = struct{}{}
			continue
		}
		return &ReviewItem{Card: card, Remaining: len(candidates)}, nil
	}
}

func (s *Selector) dropDangling(ctx context.Context, username, word string) error {
	slog.Default().Warn("progress refers to a word missing from the library",
		"username", username,
		"word", word,
	)
	if err := s.progress.Delete(ctx, username, word); err != nil {
		return fmt.Errorf("progress.Delete(%s, %s) > %w", username, word, err)
	}
	return nil
}

func (s *Selector) load(ctx context.Context, username string) ([]library.WordCard, map[string]progress.Entry, error) {
	cards, err := s.library.Library(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("library.Library() > %w", err)
	}
	learned, err := s.progress.Progress(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("progress.Progress(%s) > %w", username, err)
	}
	return cards, learned, nil
}

func indexByWord(cards []library.WordCard) map[string]library.WordCard {
	index := make(map[string]library.WordCard, len(cards))
	for _, card := range cards {
		index[card.Word] = card
	}
	return index
}
