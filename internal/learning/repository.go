package learning

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lunaword/internal/database"
)

// Repository defines operations for managing review logs.
type Repository interface {
	FindAll(ctx context.Context) ([]ReviewLog, error)
	FindByUser(ctx context.Context, username string) ([]ReviewLog, error)
	FindByUserSince(ctx context.Context, username string, since time.Time) ([]ReviewLog, error)
	Create(ctx context.Context, log *ReviewLog) error
}

// DBRepository implements Repository on a SQL database.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns all review logs.
func (r *DBRepository) FindAll(ctx context.Context) ([]ReviewLog, error) {
	var logs []ReviewLog
	if err := r.db.SelectContext(ctx, &logs, "SELECT * FROM review_logs ORDER BY id"); err != nil {
		return nil, database.Unavailable(fmt.Errorf("db.SelectContext(review_logs) > %w", err))
	}
	return logs, nil
}

// FindByUser returns the review logs of a user, oldest first.
func (r *DBRepository) FindByUser(ctx context.Context, username string) ([]ReviewLog, error) {
	var logs []ReviewLog
	if err := r.db.SelectContext(ctx, &logs,
		r.db.Rebind("SELECT * FROM review_logs WHERE username = ? ORDER BY reviewed_at, id"),
		username); err != nil {
		return nil, database.Unavailable(fmt.Errorf("db.SelectContext(review_logs by user) > %w", err))
	}
	return logs, nil
}

// FindByUserSince returns the review logs of a user at or after since, oldest first.
func (r *DBRepository) FindByUserSince(ctx context.Context, username string, since time.Time) ([]ReviewLog, error) {
	var logs []ReviewLog
	if err := r.db.SelectContext(ctx, &logs,
		r.db.Rebind("SELECT * FROM review_logs WHERE username = ? AND reviewed_at >= ? ORDER BY reviewed_at, id"),
		username, since); err != nil {
		return nil, database.Unavailable(fmt.Errorf("db.SelectContext(review_logs since) > %w", err))
	}
	return logs, nil
}

// Create inserts a new review log and sets its ID.
func (r *DBRepository) Create(ctx context.Context, log *ReviewLog) error {
	query := r.db.Rebind(`INSERT INTO review_logs (username, word, event, level, reviewed_at)
		VALUES (?, ?, ?, ?, ?)`)
	args := []any{log.Username, log.Word, log.Event, log.Level, log.ReviewedAt}

	// lib/pq does not support LastInsertId.
	if r.db.DriverName() == database.DriverPostgres {
		if err := r.db.QueryRowxContext(ctx, query+" RETURNING id", args...).Scan(&log.ID); err != nil {
			return database.Unavailable(fmt.Errorf("db.QueryRowxContext(insert review_log) > %w", err))
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return database.Unavailable(fmt.Errorf("db.ExecContext(insert review_log) > %w", err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	log.ID = id
	return nil
}
