package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lunaword/internal/auth"
	"github.com/at-ishikawa/lunaword/internal/config"
	"github.com/at-ishikawa/lunaword/internal/database"
	"github.com/at-ishikawa/lunaword/internal/inference/openai"
	"github.com/at-ishikawa/lunaword/internal/learning"
	"github.com/at-ishikawa/lunaword/internal/library"
	"github.com/at-ishikawa/lunaword/internal/progress"
	"github.com/at-ishikawa/lunaword/internal/selection"
	"github.com/at-ishikawa/lunaword/internal/speech"
	"github.com/at-ishikawa/lunaword/internal/user"
)

var errMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is required")

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config > %w", err)
	}
	return cfg, nil
}

// app holds the store-backed services shared by the commands.
type app struct {
	cfg          *config.Config
	db           *sqlx.DB
	libraryRepo  *library.DBRepository
	progressRepo *progress.DBRepository
	learningRepo *learning.DBRepository
	userRepo     *user.DBRepository
	progress     *progress.Store
}

// openApp connects to the database of cfg. A local sqlite file is migrated on open.
func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.WaitForConnection(ctx, db, cfg.Database.ConnectAttempts); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.WaitForConnection() > %w", err)
	}
	if cfg.Database.Driver == database.DriverSQLite {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database.Migrate() > %w", err)
		}
	}

	learningRepo := learning.NewDBRepository(db)
	progressRepo := progress.NewDBRepository(db)
	return &app{
		cfg:          cfg,
		db:           db,
		libraryRepo:  library.NewDBRepository(db),
		progressRepo: progressRepo,
		learningRepo: learningRepo,
		userRepo:     user.NewDBRepository(db),
		progress:     progress.NewStore(progressRepo, progress.WithEventSink(learning.NewSink(learningRepo))),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// newLibrary returns a cache backed by the generator. The returned client must be closed.
func (a *app) newLibrary() (*library.Cache, *openai.Client, error) {
	generator, err := newGenerator(a.cfg.OpenAI)
	if err != nil {
		return nil, nil, err
	}
	cache := library.NewCache(a.libraryRepo, generator,
		library.WithTimeout(a.cfg.OpenAI.Timeout),
		library.WithMaxExclude(a.cfg.Library.MaxExclude),
		library.WithMeaningLanguage(a.cfg.OpenAI.MeaningLanguage),
		library.WithDeduplication(a.cfg.Library.DeduplicateGeneration),
	)
	return cache, generator, nil
}

// newSelector does not need the generator since it only reads the library.
func (a *app) newSelector() *selection.Selector {
	return selection.NewSelector(libraryReader{a.libraryRepo}, a.progress)
}

func (a *app) newAuth() (*auth.Service, error) {
	if a.cfg.Auth.JWTSecret == "" {
		return nil, errors.New("LUNAWORD_JWT_SECRET environment variable is required")
	}
	return auth.NewService(a.userRepo, a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL), nil
}

func newGenerator(cfg config.OpenAIConfig) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, errMissingAPIKey
	}
	return openai.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
}

func newSynthesizer(cfg *config.Config) (*speech.FileCache, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, errMissingAPIKey
	}
	return speech.NewFileCache(
		cfg.Outputs.AudioDirectory,
		speech.NewOpenAISynthesizer(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.SpeechModel, cfg.OpenAI.Voice),
	), nil
}

// libraryReader reads the library straight from the repository.
type libraryReader struct {
	repository library.Repository
}

func (r libraryReader) Library(ctx context.Context) ([]library.WordCard, error) {
	cards, err := r.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.FindAll() > %w", err)
	}
	return cards, nil
}
