package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lunaword/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/library/mock_repository.go -package=mock_library

// Repository defines operations for managing word cards.
type Repository interface {
	FindAll(ctx context.Context) ([]WordCard, error)
	FindByWord(ctx context.Context, word string) (*WordCard, error)
	Upsert(ctx context.Context, card *WordCard) error
}

// DBRepository implements Repository on a SQL database.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns all word cards in insertion order.
func (r *DBRepository) FindAll(ctx context.Context) ([]WordCard, error) {
	var cards []WordCard
	if err := r.db.SelectContext(ctx, &cards, "SELECT * FROM library_words ORDER BY id"); err != nil {
		return nil, database.Unavailable(fmt.Errorf("db.SelectContext(library_words) > %w", err))
	}
	return cards, nil
}

// FindByWord returns a word card by its lower-cased word, or nil if not found.
func (r *DBRepository) FindByWord(ctx context.Context, word string) (*WordCard, error) {
	var card WordCard
	err := r.db.GetContext(ctx, &card, r.db.Rebind("SELECT * FROM library_words WHERE word = ?"), word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Unavailable(fmt.Errorf("db.GetContext(library_word) > %w", err))
	}
	return &card, nil
}

// Upsert inserts a word card or overwrites the stored one. The original created_at is kept.
func (r *DBRepository) Upsert(ctx context.Context, card *WordCard) error {
	query := `INSERT INTO library_words (word, phonetic, meaning, category, mnemonic, roots, collocations, sentences, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ` +
		database.UpsertClause(r.db,
			[]string{"word"},
			[]string{"phonetic", "meaning", "category", "mnemonic", "roots", "collocations", "sentences", "updated_at"},
		)
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		card.Word, card.Phonetic, card.Meaning, card.Category, card.Mnemonic, card.Roots,
		card.Collocations, card.Sentences, card.CreatedAt, card.UpdatedAt)
	if err != nil {
		return database.Unavailable(fmt.Errorf("db.ExecContext(upsert library_word) > %w", err))
	}
	return nil
}
