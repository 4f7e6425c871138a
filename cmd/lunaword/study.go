package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/lunaword/internal/cli"
	"github.com/at-ishikawa/lunaword/internal/progress"
	"github.com/at-ishikawa/lunaword/internal/selection"
)

// OutcomeFlag is a review outcome given on the command line.
type OutcomeFlag progress.Outcome

// Set implements pflag.Value.
func (o *OutcomeFlag) Set(v string) error {
	outcome, err := progress.ParseOutcome(v)
	if err != nil {
		return err
	}
	*o = OutcomeFlag(outcome)
	return nil
}

// String implements pflag.Value.
func (o *OutcomeFlag) String() string {
	if o == nil {
		return ""
	}
	return string(*o)
}

// Type implements pflag.Value.
func (o *OutcomeFlag) Type() string {
	return "outcome"
}

var (
	_ pflag.Value = (*OutcomeFlag)(nil)
)

func newLearnCommand() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn new words of a category",
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

			selector := a.newSelector()
			if category == "" {
				if err := printCategories(cmd, selector); err != nil {
					return err
				}
				category = selection.AllCategories
			}

			learnCLI := cli.NewLearnCLI(username, category, selector, a.progress, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := learnCLI.Run(cmd.Context(), learnCLI); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Learned %d words\n", learnCLI.Learned())
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category to learn (All for every category)")
	return cmd
}

func printCategories(cmd *cobra.Command, selector *selection.Selector) error {
	categories, err := selector.Categories(cmd.Context(), username)
	if err != nil {
		return fmt.Errorf("selector.Categories() > %w", err)
	}
	for _, category := range categories {
		name := category.Category
		if name == "" {
			name = "(uncategorized)"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "  %-20s %d left\n", name, category.Remaining); err != nil {
			return err
		}
	}
	return nil
}

func newReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review the words that are due",
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

			reviewCLI := cli.NewReviewCLI(username, a.newSelector(), a.progress, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := reviewCLI.Run(cmd.Context(), reviewCLI); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Reviewed %d words\n", reviewCLI.Reviewed())
			return err
		},
	}
}

func newRecordCommand() *cobra.Command {
	var outcome OutcomeFlag
	cmd := &cobra.Command{
		Use:   "record <word>",
		Short: "Record a word as learned, or the outcome of its review with --outcome",
		Args:  cobra.ExactArgs(1),
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

			var entry progress.Entry
			if outcome == "" {
				entry, err = a.progress.RecordLearned(cmd.Context(), username, args[0])
			} else {
				entry, err = a.progress.RecordOutcome(cmd.Context(), username, args[0], progress.Outcome(outcome))
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: level %d, next review %s\n",
				entry.Word, entry.Level, time.Unix(entry.NextReview, 0).Format(time.DateTime))
			return err
		},
	}
	cmd.Flags().Var(&outcome, "outcome", "review outcome: forgot, remembered or too_easy")
	return cmd
}
