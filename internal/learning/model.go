// Package learning keeps the review log: one row per learned word or review outcome.
package learning

import (
	"time"

	"github.com/at-ishikawa/lunaword/internal/progress"
)

// ReviewLog is one learning event of a user.
type ReviewLog struct {
	ID       int64  `db:"id" yaml:"id"`
	Username string `db:"username" yaml:"username"`
	Word     string `db:"word" yaml:"word"`
	// Event is "learned" or a review outcome.
	Event      string    `db:"event" yaml:"event"`
	Level      int       `db:"level" yaml:"level"`
	ReviewedAt time.Time `db:"reviewed_at" yaml:"reviewed_at"`
}

const (
	EventLearned = string(progress.EventLearned)
	EventForgot  = string(progress.OutcomeForgot)
)
