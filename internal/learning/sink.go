package learning

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/lunaword/internal/progress"
)

// Sink appends every progress change to the review log.
type Sink struct {
	repository Repository
}

func NewSink(repository Repository) *Sink {
	return &Sink{repository: repository}
}

// Record implements progress.EventSink.
func (s *Sink) Record(ctx context.Context, event progress.Event) error {
	log := &ReviewLog{
		Username:   event.Username,
		Word:       event.Word,
		Event:      string(event.Kind),
		Level:      event.Level,
		ReviewedAt: event.At,
	}
	if err := s.repository.Create(ctx, log); err != nil {
		return fmt.Errorf("repository.Create() > %w", err)
	}
	return nil
}
