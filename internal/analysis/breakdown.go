package analysis

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryAmount is a single categorized value
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// GroupByCategory sums amounts per category and keeps only positive totals
func GroupByCategory(items []CategoryAmount) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, item := range items {
		totals[item.Category] = totals[item.Category].Add(item.Amount)
	}
	for category, total := range totals {
		if !total.IsPositive() {
			delete(totals, category)
		}
	}
	return totals
}

// SortedCategories orders a breakdown by value descending, then by name
func SortedCategories(totals map[string]decimal.Decimal) []CategoryAmount {
	sorted := make([]CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		sorted = append(sorted, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if cmp := sorted[i].Amount.Cmp(sorted[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return sorted[i].Category < sorted[j].Category
	})
	return sorted
}

func sumValues(totals map[string]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range totals {
		sum = sum.Add(v)
	}
	return sum
}
