package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/lunaword/internal/learning"
	"github.com/at-ishikawa/lunaword/internal/progress"
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestCalculateStatistics(t *testing.T) {
	logs := []learning.ReviewLog{
		{Word: "apple", Event: "learned", ReviewedAt: at(2025, 1, 30, 9)},
		{Word: "cat", Event: "learned", ReviewedAt: at(2025, 1, 30, 10)},
		{Word: "apple", Event: "learned", ReviewedAt: at(2025, 1, 31, 9)},
		{Word: "apple", Event: "remembered", ReviewedAt: at(2025, 1, 31, 10)},
		{Word: "cat", Event: "forgot", ReviewedAt: at(2025, 2, 1, 9)},
		{Word: "cat", Event: "too_easy", ReviewedAt: at(2025, 2, 1, 10)},
		{Word: "zero", Event: "learned"},
	}

	tests := []struct {
		name  string
		year  int
		month int
		want  StatisticsResult
	}{
		{
			name: "no filter",
			want: StatisticsResult{
				Periods: []LearningStatistics{
					{Period: "2025-02-01", ReviewedCount: 2, ReviewedUnique: 1, ForgotCount: 1},
					{Period: "2025-01-31", LearnedCount: 1, LearnedUnique: 1, ReviewedCount: 1, ReviewedUnique: 1},
					{Period: "2025-01-30", LearnedCount: 2, LearnedUnique: 2},
				},
				Aggregate: AggregateStatistics{
					LearnedCount:   3,
					LearnedUnique:  2,
					ReviewedCount:  3,
					ReviewedUnique: 2,
					ForgotCount:    1,
				},
				Streak: Streak{Current: 3, Longest: 3, LastDay: "2025-02-01"},
			},
		},
		{
			name:  "month filter keeps the full streak",
			year:  2025,
			month: 1,
			want: StatisticsResult{
				Periods: []LearningStatistics{
					{Period: "2025-01-31", LearnedCount: 1, LearnedUnique: 1, ReviewedCount: 1, ReviewedUnique: 1},
					{Period: "2025-01-30", LearnedCount: 2, LearnedUnique: 2},
				},
				Aggregate: AggregateStatistics{
					LearnedCount:   3,
					LearnedUnique:  2,
					ReviewedCount:  1,
					ReviewedUnique: 1,
				},
				Streak: Streak{Current: 3, Longest: 3, LastDay: "2025-02-01"},
			},
		},
		{
			name: "year filter without data",
			year: 2024,
			want: StatisticsResult{
				Periods: []LearningStatistics{},
				Streak:  Streak{Current: 3, Longest: 3, LastDay: "2025-02-01"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStatistics(logs, tt.year, tt.month, at(2025, 2, 1, 23))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateStreak(t *testing.T) {
	days := func(keys ...string) map[string]struct{} {
		result := make(map[string]struct{})
		for _, key := range keys {
			result[key] = struct{}{}
		}
		return result
	}
	today := at(2025, 3, 10, 12)

	tests := []struct {
		name string
		days map[string]struct{}
		want Streak
	}{
		{
			name: "no activity",
			days: days(),
			want: Streak{},
		},
		{
			name: "active today",
			days: days("2025-03-08", "2025-03-09", "2025-03-10"),
			want: Streak{Current: 3, Longest: 3, LastDay: "2025-03-10"},
		},
		{
			name: "yesterday keeps the streak alive",
			days: days("2025-03-08", "2025-03-09"),
			want: Streak{Current: 2, Longest: 2, LastDay: "2025-03-09"},
		},
		{
			name: "broken streak",
			days: days("2025-03-01", "2025-03-02", "2025-03-03", "2025-03-07"),
			want: Streak{Current: 0, Longest: 3, LastDay: "2025-03-07"},
		},
		{
			name: "across a month boundary",
			days: days("2025-02-28", "2025-03-01", "2025-03-05", "2025-03-10"),
			want: Streak{Current: 1, Longest: 2, LastDay: "2025-03-10"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateStreak(tt.days, today))
		})
	}
}

func TestCalculateStatistics_OutcomeEvents(t *testing.T) {
	logs := []learning.ReviewLog{
		{Word: "cat", Event: learning.EventLearned, ReviewedAt: at(2025, 2, 1, 8)},
		{Word: "cat", Event: string(progress.OutcomeForgot), ReviewedAt: at(2025, 2, 1, 9)},
		{Word: "cat", Event: string(progress.OutcomeRemembered), ReviewedAt: at(2025, 2, 1, 10)},
		{Word: "cat", Event: string(progress.OutcomeTooEasy), ReviewedAt: at(2025, 2, 1, 11)},
	}

	got := CalculateStatistics(logs, 0, 0, at(2025, 2, 1, 23))
	assert.Equal(t, []LearningStatistics{
		{Period: "2025-02-01", LearnedCount: 1, LearnedUnique: 1, ReviewedCount: 3, ReviewedUnique: 1, ForgotCount: 1},
	}, got.Periods)
	assert.Equal(t, 1, got.Aggregate.ForgotCount)
}
