package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lunaword/internal/library"
)

func newLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word or phrase>",
		Short: "Show the card of a word, generating it when the library has none",
		Args:  cobra.MinimumNArgs(1),
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
			cache, generator, err := a.newLibrary()
			if err != nil {
				return err
			}
			defer func() {
				_ = generator.Close()
			}()

			query := strings.Join(args, " ")
			card, err := cache.Fetch(cmd.Context(), query)
			if err != nil {
				return reportGenerationError(cmd.OutOrStdout(), err)
			}
			return printCard(cmd.OutOrStdout(), *card)
		},
	}
}

func newSuggestCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "suggest <topic>",
		Short: "Suggest words about a topic that are not in the library yet",
		Args:  cobra.MinimumNArgs(1),
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
			cache, generator, err := a.newLibrary()
			if err != nil {
				return err
			}
			defer func() {
				_ = generator.Close()
			}()

			cards, err := cache.Library(cmd.Context())
			if err != nil {
				return err
			}
			known := make([]string, 0, len(cards))
			for _, card := range cards {
				known = append(known, card.Word)
			}

			words := cache.BatchSuggest(cmd.Context(), strings.Join(args, " "), count, known)
			if len(words) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No suggestions. The generator may be unavailable.")
				return err
			}
			for _, word := range words {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), word); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of words to suggest")
	return cmd
}

func newExpandCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "expand <topic>",
		Short: "Generate cards for new words about a topic",
		Args:  cobra.MinimumNArgs(1),
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
			cache, generator, err := a.newLibrary()
			if err != nil {
				return err
			}
			defer func() {
				_ = generator.Close()
			}()

			results, err := cache.Expand(cmd.Context(), strings.Join(args, " "), count)
			if err != nil {
				return fmt.Errorf("cache.Expand() > %w", err)
			}
			return printExpandResults(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of words to add")
	return cmd
}

// reportGenerationError prints a notice when no card exists for a word.
// Degraded generation and store failures are returned.
func reportGenerationError(w io.Writer, err error) error {
	genErr, ok := library.AsGenerationError(err)
	if !ok {
		return err
	}
	if genErr.Degraded() {
		if genErr.Reason == library.ReasonQuotaExhausted {
			return fmt.Errorf("the generator quota is exhausted, try again later: %w", err)
		}
		return fmt.Errorf("the generator is unavailable (%s): %w", genErr.Reason, err)
	}
	_, writeErr := fmt.Fprintf(w, "No card could be found for %q\n", genErr.Query)
	return writeErr
}

func printCard(w io.Writer, card library.WordCard) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", card.Word)
	if card.Phonetic != "" {
		fmt.Fprintf(&b, " /%s/", card.Phonetic)
	}
	b.WriteString("\n")
	if card.Category != "" {
		fmt.Fprintf(&b, "  category:     %s\n", card.Category)
	}
	fmt.Fprintf(&b, "  meaning:      %s\n", card.Meaning)
	if card.Roots != "" {
		fmt.Fprintf(&b, "  roots:        %s\n", card.Roots)
	}
	if card.Mnemonic != "" {
		fmt.Fprintf(&b, "  mnemonic:     %s\n", card.Mnemonic)
	}
	if len(card.Collocations) > 0 {
		fmt.Fprintf(&b, "  collocations: %s\n", strings.Join(card.Collocations, "; "))
	}
	for i, sentence := range card.Sentences {
		fmt.Fprintf(&b, "  %d. %s\n     %s\n", i+1, sentence.Text, sentence.Translation)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func printExpandResults(w io.Writer, results []library.ExpandResult) error {
	added := 0
	for _, result := range results {
		var err error
		if result.Err != nil {
			_, err = fmt.Fprintf(w, "  [FAIL] %s: %v\n", result.Word, result.Err)
		} else {
			added++
			_, err = fmt.Fprintf(w, "  [ADD]  %s (%s)\n", result.Word, result.Card.Category)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Added %d of %d suggested words\n", added, len(results))
	return err
}
