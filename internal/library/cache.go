package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/at-ishikawa/lunaword/internal/inference"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultMaxExclude      = 200
	defaultMeaningLanguage = "Chinese"
)

// Cache returns word cards from the repository and generates the missing or incomplete ones.
type Cache struct {
	repository      Repository
	generator       inference.Client
	timeout         time.Duration
	maxExclude      int
	meaningLanguage string
	now             func() time.Time
	group           *singleflight.Group
}

type Option func(*Cache)

// WithTimeout bounds every generator call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Cache) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMaxExclude caps the exclusion list sent with a suggestion request.
func WithMaxExclude(maxExclude int) Option {
	return func(c *Cache) {
		if maxExclude > 0 {
			c.maxExclude = maxExclude
		}
	}
}

func WithMeaningLanguage(language string) Option {
	return func(c *Cache) {
		if language != "" {
			c.meaningLanguage = language
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithDeduplication makes concurrent fetches of the same uncached word share one generator call.
// Without it the last write wins.
func WithDeduplication(enabled bool) Option {
	return func(c *Cache) {
		if enabled {
			c.group = &singleflight.Group{}
		} else {
			c.group = nil
		}
	}
}

func NewCache(repository Repository, generator inference.Client, opts ...Option) *Cache {
	c := &Cache{
		repository:      repository,
		generator:       generator,
		timeout:         defaultTimeout,
		maxExclude:      defaultMaxExclude,
		meaningLanguage: defaultMeaningLanguage,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the card for query.
// ASCII queries are looked up by their lower-cased form first; other queries always go to the generator
// since they may need a translation. A failed generation returns a *GenerationError and writes nothing.
func (c *Cache) Fetch(ctx context.Context, query string) (*WordCard, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &GenerationError{Query: query, Reason: ReasonNotFound}
	}

	if IsASCII(query) {
		key := strings.ToLower(query)
		card, err := c.repository.FindByWord(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("repository.FindByWord(%s) > %w", key, err)
		}
		if card != nil && IsComplete(*card) {
			return card, nil
		}
		if card != nil {
			slog.Default().Debug("regenerating an incomplete word card", "word", key)
		}
	}

	if c.group == nil {
		return c.generate(ctx, query)
	}
	v, err, shared := c.group.Do(strings.ToLower(query), func() (any, error) {
		return c.generate(ctx, query)
	})
	if shared {
		slog.Default().Debug("shared an in-flight generation", "query", query)
	}
	if err != nil {
		return nil, err
	}
	card := *v.(*WordCard)
	return &card, nil
}

func (c *Cache) generate(ctx context.Context, query string) (*WordCard, error) {
	generateCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.generator.GenerateWordCard(generateCtx, inference.GenerateWordCardRequest{
		Query:           query,
		MeaningLanguage: c.meaningLanguage,
	})
	if err != nil {
		genErr := newGenerationError(query, err)
		slog.Default().Warn("failed to generate a word card",
			"query", query,
			"reason", genErr.Reason,
			"error", err,
		)
		return nil, genErr
	}

	word := NormalizeWord(response.Word)
	if word == "" {
		return nil, &GenerationError{Query: query, Reason: ReasonNotFound}
	}

	now := c.now()
	card := &WordCard{
		Word:         word,
		Phonetic:     strings.TrimSpace(response.Phonetic),
		Meaning:      strings.TrimSpace(response.Meaning),
		Category:     NormalizeCategory(response.Category),
		Mnemonic:     strings.TrimSpace(response.Mnemonic),
		Roots:        strings.TrimSpace(response.Roots),
		Collocations: Strings(response.Collocations),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, sentence := range response.Sentences {
		card.Sentences = append(card.Sentences, Sentence{
			Text:        sentence.Text,
			Translation: sentence.Translation,
		})
	}

	if err := c.repository.Upsert(ctx, card); err != nil {
		return nil, fmt.Errorf("repository.Upsert(%s) > %w", word, err)
	}
	return card, nil
}

// BatchSuggest asks the generator for count words about topic that are not in exclude.
// It returns an empty list on any failure and never writes to the library.
func (c *Cache) BatchSuggest(ctx context.Context, topic string, count int, exclude []string) []string {
	if count <= 0 {
		return []string{}
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, word := range exclude {
		excluded[NormalizeWord(word)] = struct{}{}
	}
	sent := exclude
	if len(sent) > c.maxExclude {
		sent = sent[:c.maxExclude]
	}

	suggestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	response, err := c.generator.SuggestWords(suggestCtx, inference.SuggestWordsRequest{
		Topic:   strings.TrimSpace(topic),
		Count:   count,
		Exclude: sent,
	})
	if err != nil {
		slog.Default().Warn("failed to suggest words",
			"topic", topic,
			"reason", classify(err),
			"error", err,
		)
		return []string{}
	}

	words := make([]string, 0, count)
	for _, word := range response.Words {
		word = NormalizeWord(word)
		if word == "" {
			continue
		}
		if _, ok := excluded[word]; ok {
			continue
		}
		excluded[word] = struct{}{}
		words = append(words, word)
		if len(words) == count {
			break
		}
	}
	return words
}

// ExpandResult is the outcome of materializing one suggested word.
type ExpandResult struct {
	Word string
	Card *WordCard
	Err  error
}

// Expand suggests count new words about topic and fetches a card for each of them.
// Generation failures are reported per word; a store failure stops the expansion.
func (c *Cache) Expand(ctx context.Context, topic string, count int) ([]ExpandResult, error) {
	cards, err := c.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.FindAll() > %w", err)
	}
	known := make([]string, 0, len(cards))
	for _, card := range cards {
		known = append(known, card.Word)
	}

	suggestions := c.BatchSuggest(ctx, topic, count, known)
	results := make([]ExpandResult, 0, len(suggestions))
	for _, word := range suggestions {
		card, err := c.Fetch(ctx, word)
		if err != nil {
			if _, ok := AsGenerationError(err); !ok {
				return results, err
			}
		}
		results = append(results, ExpandResult{Word: word, Card: card, Err: err})
	}
	return results, nil
}

// Find returns the stored card for word without generating one. It returns nil when the word is not in the library.
func (c *Cache) Find(ctx context.Context, word string) (*WordCard, error) {
	word = NormalizeWord(word)
	if word == "" {
		return nil, nil
	}
	card, err := c.repository.FindByWord(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("repository.FindByWord(%s) > %w", word, err)
	}
	return card, nil
}

// Library returns every card in insertion order.
func (c *Cache) Library(ctx context.Context) ([]WordCard, error) {
	cards, err := c.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.FindAll() > %w", err)
	}
	return cards, nil
}
