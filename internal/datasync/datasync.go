// Package datasync provides import/export orchestration between YAML files and database.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/lunaword/internal/library"
	"github.com/at-ishikawa/lunaword/internal/progress"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	CardsNew         int
	CardsSkipped     int
	CardsUpdated     int
	ProgressNew      int
	ProgressSkipped  int
	ProgressUpdated  int
	ProgressWarnings int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer writes word cards and progress entries to the database.
type Importer struct {
	libraryRepo  library.Repository
	progressRepo progress.Repository
	writer       io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(libraryRepo library.Repository, progressRepo progress.Repository, writer io.Writer) *Importer {
	return &Importer{
		libraryRepo:  libraryRepo,
		progressRepo: progressRepo,
		writer:       writer,
	}
}

// ImportCards adds cards to the library. Existing words are kept unless opts.UpdateExisting is set.
func (imp *Importer) ImportCards(ctx context.Context, cards []library.WordCard, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	for _, card := range cards {
		card.Word = library.NormalizeWord(card.Word)
		card.Category = library.NormalizeCategory(card.Category)
		if card.Word == "" {
			continue
		}

		existing, err := imp.libraryRepo.FindByWord(ctx, card.Word)
		if err != nil {
			return nil, fmt.Errorf("FindByWord(%s) > %w", card.Word, err)
		}

		if existing != nil {
			if !opts.UpdateExisting {
				fmt.Fprintf(imp.writer, "  [SKIP]  %q (%s)\n", card.Word, existing.Category)
				result.CardsSkipped++
				continue
			}
			card.ID = existing.ID
			card.CreatedAt = existing.CreatedAt
			if !opts.DryRun {
				if err := imp.libraryRepo.Upsert(ctx, &card); err != nil {
					return nil, fmt.Errorf("Upsert(%s) > %w", card.Word, err)
				}
			}
			fmt.Fprintf(imp.writer, "  [UPDATE]  %q (%s)\n", card.Word, card.Category)
			result.CardsUpdated++
			continue
		}

		if !opts.DryRun {
			if err := imp.libraryRepo.Upsert(ctx, &card); err != nil {
				return nil, fmt.Errorf("Upsert(%s) > %w", card.Word, err)
			}
		}
		fmt.Fprintf(imp.writer, "  [NEW]  %q (%s)\n", card.Word, card.Category)
		result.CardsNew++
	}

	return &result, nil
}

// ImportProgress restores the progress entries of one user.
// Entries for words missing from the library are reported and skipped.
func (imp *Importer) ImportProgress(ctx context.Context, username string, entries []progress.Entry, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	for _, entry := range entries {
		entry.Username = username
		entry.Word = library.NormalizeWord(entry.Word)

		card, err := imp.libraryRepo.FindByWord(ctx, entry.Word)
		if err != nil {
			return nil, fmt.Errorf("FindByWord(%s) > %w", entry.Word, err)
		}
		if card == nil {
			fmt.Fprintf(imp.writer, "  [WARN]  word card not found for %q\n", entry.Word)
			result.ProgressWarnings++
			continue
		}

		existing, err := imp.progressRepo.Find(ctx, username, entry.Word)
		if err != nil {
			return nil, fmt.Errorf("Find(%s, %s) > %w", username, entry.Word, err)
		}
		if existing != nil && !opts.UpdateExisting {
			result.ProgressSkipped++
			continue
		}

		if !opts.DryRun {
			if err := imp.progressRepo.Upsert(ctx, &entry); err != nil {
				return nil, fmt.Errorf("Upsert(%s, %s) > %w", username, entry.Word, err)
			}
		}
		if existing != nil {
			result.ProgressUpdated++
		} else {
			result.ProgressNew++
		}
	}

	return &result, nil
}

// Import imports a snapshot, cards first so that progress entries can reference them.
func (imp *Importer) Import(ctx context.Context, snapshot Snapshot, username string, opts ImportOptions) (*ImportResult, error) {
	cardsResult, err := imp.ImportCards(ctx, snapshot.Cards, opts)
	if err != nil {
		return nil, fmt.Errorf("ImportCards() > %w", err)
	}
	if username == "" {
		username = snapshot.Username
	}
	if username == "" || len(snapshot.Progress) == 0 {
		return cardsResult, nil
	}

	progressResult, err := imp.ImportProgress(ctx, username, snapshot.Progress, opts)
	if err != nil {
		return nil, fmt.Errorf("ImportProgress() > %w", err)
	}
	progressResult.CardsNew = cardsResult.CardsNew
	progressResult.CardsSkipped = cardsResult.CardsSkipped
	progressResult.CardsUpdated = cardsResult.CardsUpdated
	return progressResult, nil
}

// Exporter reads DB and returns domain structs.
type Exporter struct {
	libraryRepo  library.Repository
	progressRepo progress.Repository
}

// NewExporter creates a new Exporter.
func NewExporter(libraryRepo library.Repository, progressRepo progress.Repository) *Exporter {
	return &Exporter{
		libraryRepo:  libraryRepo,
		progressRepo: progressRepo,
	}
}

// Export reads the library and, when username is set, that user's progress.
func (e *Exporter) Export(ctx context.Context, username string) (*Snapshot, error) {
	cards, err := e.libraryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("libraryRepo.FindAll() > %w", err)
	}

	snapshot := &Snapshot{Cards: cards}
	if username == "" {
		return snapshot, nil
	}

	entries, err := e.progressRepo.FindAll(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("progressRepo.FindAll(%s) > %w", username, err)
	}
	snapshot.Username = username
	snapshot.Progress = progress.SortedEntries(entries)
	return snapshot, nil
}
