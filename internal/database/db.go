// Package database provides database connection management.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/at-ishikawa/lunaword/internal/config"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrStoreUnavailable marks failures to reach or query the persistent store.
var ErrStoreUnavailable = errors.New("store unavailable")

// Unavailable wraps err so that errors.Is(err, ErrStoreUnavailable) holds.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// Open opens a connection for the configured driver. It does not contact the server.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver, dsn, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

func dataSourceName(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case DriverMySQL, "":
		mysqlCfg := mysql.NewConfig()
		mysqlCfg.User = cfg.Username
		mysqlCfg.Passwd = cfg.Password
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mysqlCfg.DBName = cfg.Database
		mysqlCfg.ParseTime = true
		mysqlCfg.MultiStatements = true
		if cfg.TLS {
			mysqlCfg.TLSConfig = "true"
		}
		if len(cfg.Params) > 0 {
			mysqlCfg.Params = cfg.Params
		}
		return DriverMySQL, mysqlCfg.FormatDSN(), nil

	case DriverPostgres:
		query := url.Values{}
		if cfg.TLS {
			query.Set("sslmode", "require")
		} else {
			query.Set("sslmode", "disable")
		}
		for k, v := range cfg.Params {
			query.Set(k, v)
		}
		dsn := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.Username, cfg.Password),
			Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Path:     "/" + cfg.Database,
			RawQuery: query.Encode(),
		}
		return DriverPostgres, dsn.String(), nil

	case DriverSQLite:
		if cfg.Path == "" {
			return "", "", fmt.Errorf("database.path is required for the sqlite driver")
		}
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return "", "", fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(cfg.Path), err)
			}
		}
		return DriverSQLite, cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", nil

	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// WaitForConnection pings the database until it answers or the attempts run out.
func WaitForConnection(ctx context.Context, db *sqlx.DB, attempts uint) error {
	if attempts == 0 {
		attempts = 1
	}
	if err := retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("database is not reachable yet",
				"driver", db.DriverName(),
				"attempt", n+1,
				"error", err,
			)
		}),
	); err != nil {
		return Unavailable(fmt.Errorf("db.PingContext() > %w", err))
	}
	return nil
}

// IsMySQL reports whether db speaks MySQL's upsert dialect rather than ON CONFLICT.
func IsMySQL(db *sqlx.DB) bool {
	return db.DriverName() == DriverMySQL
}

// UpsertClause returns the dialect specific suffix that turns an INSERT into an upsert.
// Columns in update are overwritten with the inserted values on a key conflict.
func UpsertClause(db *sqlx.DB, conflict []string, update []string) string {
	assignments := make([]string, 0, len(update))
	if IsMySQL(db) {
		for _, column := range update {
			assignments = append(assignments, fmt.Sprintf("%s = VALUES(%s)", column, column))
		}
		return "ON DUPLICATE KEY UPDATE " + strings.Join(assignments, ", ")
	}
	for _, column := range update {
		assignments = append(assignments, fmt.Sprintf("%s = excluded.%s", column, column))
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", strings.Join(conflict, ", "), strings.Join(assignments, ", "))
}
