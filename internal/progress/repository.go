package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lunaword/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/progress/mock_repository.go -package=mock_progress

// Repository defines operations for managing progress entries.
type Repository interface {
	FindAll(ctx context.Context, username string) (map[string]Entry, error)
	Find(ctx context.Context, username, word string) (*Entry, error)
	Upsert(ctx context.Context, entry *Entry) error
	UpdateLevel(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, username, word string) error
}

// DBRepository implements Repository on a SQL database.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns a user's entries keyed by word.
func (r *DBRepository) FindAll(ctx context.Context, username string) (map[string]Entry, error) {
	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries,
		r.db.Rebind("SELECT * FROM user_progress WHERE username = ? ORDER BY word"), username); err != nil {
		return nil, database.Unavailable(fmt.Errorf("db.SelectContext(user_progress) > %w", err))
	}

	result := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		result[entry.Word] = entry
	}
	return result, nil
}

// Find returns one entry, or nil if the user has no progress on word.
func (r *DBRepository) Find(ctx context.Context, username, word string) (*Entry, error) {
	var entry Entry
	err := r.db.GetContext(ctx, &entry,
		r.db.Rebind("SELECT * FROM user_progress WHERE username = ? AND word = ?"), username, word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Unavailable(fmt.Errorf("db.GetContext(user_progress) > %w", err))
	}
	return &entry, nil
}

// Upsert inserts an entry or replaces the existing one for the same user and word.
func (r *DBRepository) Upsert(ctx context.Context, entry *Entry) error {
	query := `INSERT INTO user_progress (username, word, level, next_review, updated_at)
		VALUES (?, ?, ?, ?, ?) ` +
		database.UpsertClause(r.db,
			[]string{"username", "word"},
			[]string{"level", "next_review", "updated_at"},
		)
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		entry.Username, entry.Word, entry.Level, entry.NextReview, entry.UpdatedAt); err != nil {
		return database.Unavailable(fmt.Errorf("db.ExecContext(upsert user_progress) > %w", err))
	}
	return nil
}

// UpdateLevel updates the level and next review of a single existing entry.
func (r *DBRepository) UpdateLevel(ctx context.Context, entry *Entry) error {
	if _, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE user_progress SET level = ?, next_review = ?, updated_at = ? WHERE username = ? AND word = ?"),
		entry.Level, entry.NextReview, entry.UpdatedAt, entry.Username, entry.Word); err != nil {
		return database.Unavailable(fmt.Errorf("db.ExecContext(update user_progress) > %w", err))
	}
	return nil
}

// Delete removes a user's entry for word.
func (r *DBRepository) Delete(ctx context.Context, username, word string) error {
	if _, err := r.db.ExecContext(ctx,
		r.db.Rebind("DELETE FROM user_progress WHERE username = ? AND word = ?"), username, word); err != nil {
		return database.Unavailable(fmt.Errorf("db.ExecContext(delete user_progress) > %w", err))
	}
	return nil
}
