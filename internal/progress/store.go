package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNotFound is returned when a user has no progress on a word.
var ErrNotFound = errors.New("progress not found")

// EventKind is what happened to a progress entry.
type EventKind string

const EventLearned EventKind = "learned"

// Event describes one change to a user's progress.
type Event struct {
	Username string
	Word     string
	Kind     EventKind
	Level    int
	At       time.Time
}

// EventSink receives every successful progress change.
type EventSink interface {
	Record(ctx context.Context, event Event) error
}

type Store struct {
	repository Repository
	now        func() time.Time
	sinks      []EventSink
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithEventSink adds a sink. A failing sink is logged and does not fail the change.
func WithEventSink(sink EventSink) StoreOption {
	return func(s *Store) {
		s.sinks = append(s.sinks, sink)
	}
}

func NewStore(repository Repository, opts ...StoreOption) *Store {
	s := &Store{
		repository: repository,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordLearned puts word at level 1. Learning the same word again resets it to level 1.
func (s *Store) RecordLearned(ctx context.Context, username, word string) (Entry, error) {
	entry := newEntry(username, normalizeWord(word), 1, s.now())
	if err := s.repository.Upsert(ctx, &entry); err != nil {
		return Entry{}, fmt.Errorf("repository.Upsert(%s, %s) > %w", username, entry.Word, err)
	}
	s.emit(ctx, entry, EventLearned)
	return entry, nil
}

// RecordOutcome moves word to the level implied by outcome and reschedules it.
func (s *Store) RecordOutcome(ctx context.Context, username, word string, outcome Outcome) (Entry, error) {
	word = normalizeWord(word)
	current, err := s.repository.Find(ctx, username, word)
	if err != nil {
		return Entry{}, fmt.Errorf("repository.Find(%s, %s) > %w", username, word, err)
	}
	if current == nil {
		return Entry{}, fmt.Errorf("%s has not learned %q: %w", username, word, ErrNotFound)
	}

	entry := newEntry(username, word, outcome.Apply(current.Level), s.now())
	if err := s.repository.UpdateLevel(ctx, &entry); err != nil {
		return Entry{}, fmt.Errorf("repository.UpdateLevel(%s, %s) > %w", username, word, err)
	}
	s.emit(ctx, entry, EventKind(outcome))
	return entry, nil
}

// DueWords returns every word of the user whose next review is before now.
func (s *Store) DueWords(ctx context.Context, username string, now time.Time) ([]string, error) {
	entries, err := s.repository.FindAll(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("repository.FindAll(%s) > %w", username, err)
	}
	return SelectDue(entries, now), nil
}

// Progress returns all of a user's entries keyed by word.
func (s *Store) Progress(ctx context.Context, username string) (map[string]Entry, error) {
	entries, err := s.repository.FindAll(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("repository.FindAll(%s) > %w", username, err)
	}
	return entries, nil
}

// Delete drops a user's entry. It is used to clean up entries whose word left the library.
func (s *Store) Delete(ctx context.Context, username, word string) error {
	word = normalizeWord(word)
	if err := s.repository.Delete(ctx, username, word); err != nil {
		return fmt.Errorf("repository.Delete(%s, %s) > %w", username, word, err)
	}
	slog.Default().Info("deleted progress entry", "username", username, "word", word)
	return nil
}

func (s *Store) emit(ctx context.Context, entry Entry, kind EventKind) {
	event := Event{
		Username: entry.Username,
		Word:     entry.Word,
		Kind:     kind,
		Level:    entry.Level,
		At:       entry.UpdatedAt,
	}
	for _, sink := range s.sinks {
		if err := sink.Record(ctx, event); err != nil {
			slog.Default().Warn("failed to record a progress event",
				"username", event.Username,
				"word", event.Word,
				"kind", event.Kind,
				"error", err,
			)
		}
	}
}
