// Package user stores accounts.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lunaword/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/user/mock_repository.go -package=mock_user

// User is an account. Username is the stable identifier progress is keyed by.
type User struct {
	Username     string    `db:"username" json:"username" yaml:"username"`
	PasswordHash string    `db:"password_hash" json:"-" yaml:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
}

// Repository defines operations for managing users.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// DBRepository implements Repository on a SQL database.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindByUsername returns a user, or nil if not found.
func (r *DBRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, r.db.Rebind("SELECT * FROM users WHERE username = ?"), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Unavailable(fmt.Errorf("db.GetContext(user) > %w", err))
	}
	return &user, nil
}

// Create inserts a new user.
func (r *DBRepository) Create(ctx context.Context, user *User) error {
	if _, err := r.db.ExecContext(ctx,
		r.db.Rebind("INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)"),
		user.Username, user.PasswordHash, user.CreatedAt); err != nil {
		return database.Unavailable(fmt.Errorf("db.ExecContext(insert user) > %w", err))
	}
	return nil
}
