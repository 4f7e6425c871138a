package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lunaword/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	var year, month int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show daily learning statistics and the current streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 0 || month > 12 {
				return fmt.Errorf("invalid month %d", month)
			}
			if month != 0 && year == 0 {
				year = time.Now().Year()
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

			logs, err := a.learningRepo.FindByUser(cmd.Context(), username)
			if err != nil {
				return fmt.Errorf("learningRepo.FindByUser(%s) > %w", username, err)
			}
			return printStatistics(cmd.OutOrStdout(), statistics.CalculateStatistics(logs, year, month, time.Now()))
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "only count this year")
	cmd.Flags().IntVar(&month, "month", 0, "only count this month (1-12)")
	return cmd
}

func printStatistics(w io.Writer, result statistics.StatisticsResult) error {
	if _, err := fmt.Fprintf(w, "%-12s %8s %8s %8s\n", "day", "learned", "reviewed", "forgot"); err != nil {
		return err
	}
	for _, period := range result.Periods {
		if _, err := fmt.Fprintf(w, "%-12s %8d %8d %8d\n", period.Period, period.LearnedCount, period.ReviewedCount, period.ForgotCount); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d learned (%d words), %d reviewed (%d words)\nStreak: %d days (longest %d)\n",
		result.Aggregate.LearnedCount, result.Aggregate.LearnedUnique,
		result.Aggregate.ReviewedCount, result.Aggregate.ReviewedUnique,
		result.Streak.Current, result.Streak.Longest,
	)
	return err
}
