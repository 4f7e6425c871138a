package inference

import (
	"context"
	"errors"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	GenerateWordCard(ctx context.Context, params GenerateWordCardRequest) (GenerateWordCardResponse, error)
	SuggestWords(ctx context.Context, params SuggestWordsRequest) (SuggestWordsResponse, error)
}

var (
	// ErrInsufficientQuota is returned when the provider rejects a call for billing or quota reasons.
	ErrInsufficientQuota = errors.New("insufficient quota")
	// ErrMalformedResponse is returned when the model output cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrUnknownWord is returned when the model cannot identify the requested word.
	ErrUnknownWord = errors.New("unknown word")
)

// GenerateWordCardRequest asks for a complete flashcard for a word or a phrase in any language.
type GenerateWordCardRequest struct {
	Query string `json:"query"`
	// MeaningLanguage is the language of the meaning and sentence translations, e.g. "Chinese".
	MeaningLanguage string `json:"meaning_language"`
}

type GenerateWordCardResponse struct {
	Word         string     `json:"word"`
	Phonetic     string     `json:"phonetic"`
	Meaning      string     `json:"meaning"`
	Roots        string     `json:"roots"`
	Collocations []string   `json:"collocations"`
	Mnemonic     string     `json:"mnemonic"`
	Category     string     `json:"category"`
	Sentences    []Sentence `json:"sentences"`
}

// Sentence is an example sentence with its translation
type Sentence struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// SuggestWordsRequest asks for words related to a topic
type SuggestWordsRequest struct {
	Topic   string   `json:"topic"`
	Count   int      `json:"count"`
	Exclude []string `json:"exclude,omitempty"`
}

type SuggestWordsResponse struct {
	Words []string `json:"words"`
}
