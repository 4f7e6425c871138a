package statistics

import (
	"sort"
	"time"

	"github.com/at-ishikawa/lunaword/internal/learning"
)

const dateLayout = "2006-01-02"

// LearningStatistics holds statistics for a single day
type LearningStatistics struct {
	Period         string `json:"period"` // "2025-01-02"
	LearnedCount   int    `json:"learned_count"`
	LearnedUnique  int    `json:"learned_unique"`
	ReviewedCount  int    `json:"reviewed_count"`
	ReviewedUnique int    `json:"reviewed_unique"`
	ForgotCount    int    `json:"forgot_count"`
}

// AggregateStatistics holds totals across all periods with global unique counts
type AggregateStatistics struct {
	LearnedCount   int `json:"learned_count"`
	LearnedUnique  int `json:"learned_unique"`
	ReviewedCount  int `json:"reviewed_count"`
	ReviewedUnique int `json:"reviewed_unique"`
	ForgotCount    int `json:"forgot_count"`
}

// Streak counts consecutive days with any activity
type Streak struct {
	Current int    `json:"current"`
	Longest int    `json:"longest"`
	LastDay string `json:"last_day,omitempty"`
}

// StatisticsResult holds per-day statistics, totals, and the streak
type StatisticsResult struct {
	Periods   []LearningStatistics `json:"periods"`
	Aggregate AggregateStatistics  `json:"aggregate"`
	Streak    Streak               `json:"streak"`
}

type periodData struct {
	learnedTotal   int
	learnedUnique  map[string]struct{}
	reviewedTotal  int
	reviewedUnique map[string]struct{}
	forgotTotal    int
}

// CalculateStatistics calculates daily statistics from review logs.
// Days are taken in today's location. It accepts optional year and month filters (0 means no filter);
// the streak always uses every log.
func CalculateStatistics(logs []learning.ReviewLog, year, month int, today time.Time) StatisticsResult {
	location := today.Location()
	stats := make(map[string]*periodData)
	globalLearnedUnique := make(map[string]struct{})
	globalReviewedUnique := make(map[string]struct{})
	activeDays := make(map[string]struct{})

	for _, log := range logs {
		if log.ReviewedAt.IsZero() {
			continue
		}
		reviewedAt := log.ReviewedAt.In(location)
		period := reviewedAt.Format(dateLayout)
		activeDays[period] = struct{}{}

		if !matchesFilter(reviewedAt.Year(), int(reviewedAt.Month()), year, month) {
			continue
		}
		data := ensurePeriodExists(stats, period)

		if log.Event == learning.EventLearned {
			data.learnedTotal++
			data.learnedUnique[log.Word] = struct{}{}
			globalLearnedUnique[log.Word] = struct{}{}
			continue
		}
		data.reviewedTotal++
		data.reviewedUnique[log.Word] = struct{}{}
		globalReviewedUnique[log.Word] = struct{}{}
		if log.Event == learning.EventForgot {
			data.forgotTotal++
		}
	}

	result := buildResult(stats, globalLearnedUnique, globalReviewedUnique)
	result.Streak = calculateStreak(activeDays, today.In(location))
	return result
}

func ensurePeriodExists(stats map[string]*periodData, period string) *periodData {
	if stats[period] == nil {
		stats[period] = &periodData{
			learnedUnique:  make(map[string]struct{}),
			reviewedUnique: make(map[string]struct{}),
		}
	}
	return stats[period]
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

// calculateStreak counts the run of active days ending today.
// A run ending yesterday still counts as current until today is over.
func calculateStreak(activeDays map[string]struct{}, today time.Time) Streak {
	if len(activeDays) == 0 {
		return Streak{}
	}

	days := make([]string, 0, len(activeDays))
	for day := range activeDays {
		days = append(days, day)
	}
	sort.Strings(days)

	streak := Streak{LastDay: days[len(days)-1]}
	run := 0
	var previous time.Time
	for _, day := range days {
		date, err := time.ParseInLocation(dateLayout, day, today.Location())
		if err != nil {
			continue
		}
		if run > 0 && date.Equal(previous.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		previous = date
		if run > streak.Longest {
			streak.Longest = run
		}
	}

	todayKey := today.Format(dateLayout)
	yesterdayKey := today.AddDate(0, 0, -1).Format(dateLayout)
	if streak.LastDay == todayKey || streak.LastDay == yesterdayKey {
		streak.Current = run
	}
	return streak
}

func buildResult(stats map[string]*periodData, globalLearnedUnique, globalReviewedUnique map[string]struct{}) StatisticsResult {
	periods := make([]LearningStatistics, 0, len(stats))

	var aggregate AggregateStatistics
	for period, data := range stats {
		periods = append(periods, LearningStatistics{
			Period:         period,
			LearnedCount:   data.learnedTotal,
			LearnedUnique:  len(data.learnedUnique),
			ReviewedCount:  data.reviewedTotal,
			ReviewedUnique: len(data.reviewedUnique),
			ForgotCount:    data.forgotTotal,
		})
		aggregate.LearnedCount += data.learnedTotal
		aggregate.ReviewedCount += data.reviewedTotal
		aggregate.ForgotCount += data.forgotTotal
	}
	aggregate.LearnedUnique = len(globalLearnedUnique)
	aggregate.ReviewedUnique = len(globalReviewedUnique)

	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return StatisticsResult{
		Periods:   periods,
		Aggregate: aggregate,
	}
}
