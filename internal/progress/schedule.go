// Package progress tracks each user's mastery level per word and when the word is due for review.
package progress

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const day = 24 * time.Hour

// intervals maps a level to the wait before the next review. It is fixed.
var intervals = [...]time.Duration{
	0,
	1 * day,
	3 * day,
	7 * day,
	15 * day,
	30 * day,
}

// maxInterval applies to every level past the table.
const maxInterval = 30 * day

// Interval returns how long a word at level waits before it is due again.
func Interval(level int) time.Duration {
	if level < 0 {
		level = 0
	}
	if level < len(intervals) {
		return intervals[level]
	}
	return maxInterval
}

// NextReviewTime returns the due time of a word that reached level at now.
func NextReviewTime(now time.Time, level int) time.Time {
	return now.Add(Interval(level))
}

// Outcome is the learner's answer to a review.
type Outcome string

const (
	OutcomeForgot     Outcome = "forgot"
	OutcomeRemembered Outcome = "remembered"
	OutcomeTooEasy    Outcome = "too_easy"
)

var outcomes = []Outcome{OutcomeForgot, OutcomeRemembered, OutcomeTooEasy}

func ParseOutcome(s string) (Outcome, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, outcome := range outcomes {
		if string(outcome) == normalized {
			return outcome, nil
		}
	}
	return "", fmt.Errorf("unknown outcome %q, must be one of %v", s, outcomes)
}

// Apply returns the level after this outcome.
// Forgot resets to 0, Remembered adds one, TooEasy skips one level ahead.
func (o Outcome) Apply(level int) int {
	switch o {
	case OutcomeForgot:
		return 0
	case OutcomeRemembered:
		return level + 1
	case OutcomeTooEasy:
		return level + 2
	default:
		return level
	}
}

// Entry is one user's scheduling state for one word.
type Entry struct {
	Username string `db:"username" json:"-" yaml:"-"`
	Word     string `db:"word" json:"word" yaml:"word"`
	Level    int    `db:"level" json:"level" yaml:"level"`
	// NextReview is unix seconds.
	NextReview int64     `db:"next_review" json:"next_review" yaml:"next_review"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at" yaml:"updated_at"`
}

func newEntry(username, word string, level int, now time.Time) Entry {
	return Entry{
		Username:   username,
		Word:       word,
		Level:      level,
		NextReview: NextReviewTime(now, level).Unix(),
		UpdatedAt:  now,
	}
}

// IsDue reports whether the entry's next review is strictly before now.
func (e Entry) IsDue(now time.Time) bool {
	return e.NextReview < now.Unix()
}

func (e Entry) NextReviewAt() time.Time {
	return time.Unix(e.NextReview, 0)
}

// SelectDue returns the words of all due entries, sorted alphabetically.
func SelectDue(entries map[string]Entry, now time.Time) []string {
	words := make([]string, 0)
	for word, entry := range entries {
		if entry.IsDue(now) {
			words = append(words, word)
		}
	}
	sort.Strings(words)
	return words
}

// SortedEntries returns the entries ordered by word.
func SortedEntries(entries map[string]Entry) []Entry {
	sorted := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		sorted = append(sorted, entry)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Word < sorted[j].Word
	})
	return sorted
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
