// Package selection computes which word to learn or review next from the library and a user's progress.
package selection

import (
	"strings"

	"github.com/at-ishikawa/lunaword/internal/library"
	"github.com/at-ishikawa/lunaword/internal/progress"
)

// Category filters that select every category.
const (
	AllCategories        = "All"
	AllCategoriesChinese = "全部"
)

// IsAllCategories reports whether filter selects every category. An empty filter does too.
func IsAllCategories(filter string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || strings.EqualFold(filter, AllCategories) || filter == AllCategoriesChinese
}

// CategoryCount is the number of words a user can still learn in a category.
type CategoryCount struct {
	Category  string `json:"category"`
	Remaining int    `json:"remaining"`
}

// GroupByCategory counts the cards the user has not learned yet, per trimmed category.
func GroupByCategory(cards []library.WordCard, learned map[string]progress.Entry) map[string]int {
	counts := make(map[string]int)
	for _, card := range cards {
		if _, ok := learned[card.Word]; ok {
			continue
		}
		counts[library.NormalizeCategory(card.Category)]++
	}
	return counts
}

// Categories is GroupByCategory ordered by the first appearance of each category in the library.
// Categories with nothing left to learn are omitted.
func Categories(cards []library.WordCard, learned map[string]progress.Entry) []CategoryCount {
	counts := GroupByCategory(cards, learned)
	result := make([]CategoryCount, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, card := range cards {
		category := library.NormalizeCategory(card.Category)
		if seen[category] || counts[category] == 0 {
			continue
		}
		seen[category] = true
		result = append(result, CategoryCount{Category: category, Remaining: counts[category]})
	}
	return result
}

// LearnPool returns the cards the user has not learned in the category, in library order.
func LearnPool(cards []library.WordCard, learned map[string]progress.Entry, filter string) []library.WordCard {
	all := IsAllCategories(filter)
	filter = library.NormalizeCategory(filter)

	pool := make([]library.WordCard, 0)
	for _, card := range cards {
		if _, ok := learned[card.Word]; ok {
			continue
		}
		if !all && library.NormalizeCategory(card.Category) != filter {
			continue
		}
		pool = append(pool, card)
	}
	return pool
}

// CategoryProgress is how many words of a category a user has learned.
type CategoryProgress struct {
	Category string `json:"category"`
	Learned  int    `json:"learned"`
	Total    int    `json:"total"`
}

// ProgressIn computes the learned and total counts of category. The all-categories filter covers the whole library.
func ProgressIn(cards []library.WordCard, learned map[string]progress.Entry, category string) CategoryProgress {
	all := IsAllCategories(category)
	result := CategoryProgress{Category: library.NormalizeCategory(category)}
	for _, card := range cards {
		if !all && library.NormalizeCategory(card.Category) != result.Category {
			continue
		}
		result.Total++
		if _, ok := learned[card.Word]; ok {
			result.Learned++
		}
	}
	return result
}
