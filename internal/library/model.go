// Package library holds the shared word card library and the cache that fills it from the generator.
package library

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// WordCard is the canonical content for one vocabulary item. It is shared by all users.
type WordCard struct {
	ID           int64     `db:"id" json:"-" yaml:"-"`
	Word         string    `db:"word" json:"word" yaml:"word"`
	Phonetic     string    `db:"phonetic" json:"phonetic" yaml:"phonetic,omitempty"`
	Meaning      string    `db:"meaning" json:"meaning" yaml:"meaning"`
	Category     string    `db:"category" json:"category" yaml:"category"`
	Mnemonic     string    `db:"mnemonic" json:"mnemonic,omitempty" yaml:"mnemonic,omitempty"`
	Roots        string    `db:"roots" json:"roots,omitempty" yaml:"roots,omitempty"`
	Collocations Strings   `db:"collocations" json:"collocations,omitempty" yaml:"collocations,omitempty"`
	Sentences    Sentences `db:"sentences" json:"sentences,omitempty" yaml:"sentences,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at" yaml:"updated_at"`
}

// Sentence is an example sentence with its translation.
type Sentence struct {
	Text        string `json:"text" yaml:"text"`
	Translation string `json:"translation" yaml:"translation"`
}

// IsComplete reports whether card carries every field the current card format has.
// Incomplete cards are treated as cache misses and regenerated.
func IsComplete(card WordCard) bool {
	return card.Phonetic != "" &&
		card.Meaning != "" &&
		len(card.Sentences) > 0 &&
		card.Roots != "" &&
		len(card.Collocations) > 0
}

// NormalizeCategory trims the category so near-duplicate labels group together.
func NormalizeCategory(category string) string {
	return strings.TrimSpace(category)
}

// NormalizeWord returns the storage key of a word.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// IsASCII reports whether s only contains ASCII characters.
func IsASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// Strings is a list of strings stored as a JSON array.
type Strings []string

func (s Strings) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(strings) > %w", err)
	}
	return string(b), nil
}

func (s *Strings) Scan(src any) error {
	var decoded []string
	if err := scanJSON(src, &decoded); err != nil {
		return err
	}
	*s = decoded
	return nil
}

// Sentences is a list of sentences stored as a JSON array.
type Sentences []Sentence

func (s Sentences) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Sentence(s))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(sentences) > %w", err)
	}
	return string(b), nil
}

func (s *Sentences) Scan(src any) error {
	var decoded []Sentence
	if err := scanJSON(src, &decoded); err != nil {
		return err
	}
	*s = decoded
	return nil
}

func scanJSON(src any, dest any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type for a JSON column: %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("json.Unmarshal(%s) > %w", b, err)
	}
	return nil
}
