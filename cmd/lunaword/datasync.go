package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lunaword/internal/assets"
	"github.com/at-ishikawa/lunaword/internal/datasync"
	"github.com/at-ishikawa/lunaword/internal/importer"
	"github.com/at-ishikawa/lunaword/internal/library"
	"github.com/at-ishikawa/lunaword/internal/pdf"
	"github.com/at-ishikawa/lunaword/internal/selection"
)

func newImportCommand() *cobra.Command {
	importCommand := &cobra.Command{
		Use:   "import",
		Short: "Import word cards and progress into the database",
	}
	var opts datasync.ImportOptions
	flags := importCommand.PersistentFlags()
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Preview changes without modifying the database")
	flags.BoolVar(&opts.UpdateExisting, "update-existing", false, "Update existing records with new data")

	importCommand.AddCommand(
		newImportExcelCommand(&opts),
		newImportYAMLCommand(&opts),
	)
	return importCommand
}

func newImportExcelCommand(opts *datasync.ImportOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "excel <file.xlsx>",
		Short: "Import word cards from a workbook, one category per sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workbook, err := importer.ReadWorkbookFile(args[0])
			if err != nil {
				return fmt.Errorf("importer.ReadWorkbookFile() > %w", err)
			}
			for _, sheet := range workbook.Sheets {
				fmt.Fprintf(cmd.OutOrStdout(), "Sheet %q: %d cards, %d rows skipped\n", sheet.Category, sheet.Cards, sheet.Skipped)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			imp := datasync.NewImporter(a.libraryRepo, a.progressRepo, cmd.OutOrStdout())
			result, err := imp.ImportCards(cmd.Context(), workbook.Cards, *opts)
			if err != nil {
				return fmt.Errorf("importer.ImportCards() > %w", err)
			}
			printImportSummary(cmd.OutOrStdout(), result, *opts)
			return nil
		},
	}
}

func newImportYAMLCommand(opts *datasync.ImportOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "yaml <file.yml>",
		Short: "Import a snapshot written by export yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := datasync.ReadSnapshot(args[0])
			if err != nil {
				return fmt.Errorf("datasync.ReadSnapshot() > %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			targetUser := ""
			if cmd.Flags().Changed("user") {
				targetUser = username
			}
			imp := datasync.NewImporter(a.libraryRepo, a.progressRepo, cmd.OutOrStdout())
			result, err := imp.Import(cmd.Context(), *snapshot, targetUser, *opts)
			if err != nil {
				return fmt.Errorf("importer.Import() > %w", err)
			}
			printImportSummary(cmd.OutOrStdout(), result, *opts)
			return nil
		},
	}
}

func printImportSummary(w io.Writer, result *datasync.ImportResult, opts datasync.ImportOptions) {
	fmt.Fprintln(w, "\nImport Summary:")
	if opts.DryRun {
		fmt.Fprintln(w, "  (dry-run mode, no changes made)")
	}
	fmt.Fprintf(w, "  Cards:    %d new, %d skipped, %d updated\n", result.CardsNew, result.CardsSkipped, result.CardsUpdated)
	fmt.Fprintf(w, "  Progress: %d new, %d skipped, %d updated, %d warnings\n",
		result.ProgressNew, result.ProgressSkipped, result.ProgressUpdated, result.ProgressWarnings)
}

func newExportCommand() *cobra.Command {
	exportCommand := &cobra.Command{
		Use:   "export",
		Short: "Export the library",
	}
	var outputDir string
	exportCommand.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (defaults to outputs.export_directory)")

	exportCommand.AddCommand(
		newExportYAMLCommand(&outputDir),
		newExportPDFCommand(&outputDir),
	)
	return exportCommand
}

func newExportYAMLCommand(outputDir *string) *cobra.Command {
	var withProgress bool
	cmd := &cobra.Command{
		Use:   "yaml",
		Short: "Export the library, and optionally the user's progress, to YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			exportUser := ""
			if withProgress {
				exportUser = username
			}
			snapshot, err := datasync.NewExporter(a.libraryRepo, a.progressRepo).Export(cmd.Context(), exportUser)
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}

			dir := *outputDir
			if dir == "" {
				dir = cfg.Outputs.ExportDirectory
			}
			path, err := datasync.NewYAMLSink(dir).WriteAll(snapshot)
			if err != nil {
				return fmt.Errorf("sink.WriteAll() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cards and %d progress entries to %s\n",
				len(snapshot.Cards), len(snapshot.Progress), path)
			return err
		},
	}
	cmd.Flags().BoolVar(&withProgress, "progress", false, "include the progress of --user")
	return cmd
}

func newExportPDFCommand(outputDir *string) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Export word cards as a printable deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			cards, err := a.libraryRepo.FindAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("libraryRepo.FindAll() > %w", err)
			}
			cards = filterCategory(cards, category)
			if len(cards) == 0 {
				return fmt.Errorf("no cards in category %q", category)
			}

			dir := *outputDir
			if dir == "" {
				dir = cfg.Outputs.ExportDirectory
			}
			pdfPath, err := writeDeck(dir, cfg.Templates.DeckTemplate, category, cards, time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cards to %s\n", len(cards), pdfPath)
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", selection.AllCategories, "category to export")
	return cmd
}

func filterCategory(cards []library.WordCard, category string) []library.WordCard {
	if selection.IsAllCategories(category) {
		return cards
	}
	category = library.NormalizeCategory(category)
	var filtered []library.WordCard
	for _, card := range cards {
		if library.NormalizeCategory(card.Category) == category {
			filtered = append(filtered, card)
		}
	}
	return filtered
}

// writeDeck writes the markdown deck next to its PDF and returns the PDF path.
func writeDeck(dir, templatePath, category string, cards []library.WordCard, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	name := "deck"
	if !selection.IsAllCategories(category) {
		name += "-" + strings.ReplaceAll(library.NormalizeCategory(category), string(filepath.Separator), "_")
	}
	markdownPath := filepath.Join(dir, name+".md")
	f, err := os.Create(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}

	title := "Word deck"
	if !selection.IsAllCategories(category) {
		title = category
	}
	if err := assets.WriteDeck(f, templatePath, assets.NewDeckTemplate(title, now, cards)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("assets.WriteDeck() > %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s > %w", markdownPath, err)
	}

	pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath)
	if err != nil {
		return "", fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
	}
	return pdfPath, nil
}
