// Package report computes read-only views over a list of expenses.
package report

import (
	"sort"

	"speselog/internal/core"
)

// Line is one expense in a listing with the sum of it and every earlier expense.
type Line struct {
	Expense      core.Expense
	RunningTotal core.Money
}

// Listing is the full expense listing in store order.
type Listing struct {
	Lines []Line
	Total core.Money
}

// Categories holds per-category totals sorted by category name.
type Categories struct {
	Totals []core.CategoryAmount
	Total  core.Money
}

// FullListing returns every expense in order with running and grand totals.
// ok is false when there is nothing to report.
func FullListing(expenses []core.Expense) (listing Listing, ok bool) {
	if len(expenses) == 0 {
		return Listing{}, false
	}

	total := core.Zero
	lines := make([]Line, 0, len(expenses))
	for _, e := range expenses {
		total = total.Add(e.Amount)
		lines = append(lines, Line{Expense: e, RunningTotal: total})
	}
	return Listing{Lines: lines, Total: total}, true
}

// ByCategory sums amounts per exact category string. Categories are
// compared case-sensitively without trimming and returned in
// lexicographic byte order. ok is false when there is nothing to report.
func ByCategory(expenses []core.Expense) (categories Categories, ok bool) {
	if len(expenses) == 0 {
		return Categories{}, false
	}

	index := make(map[string]int)
	totals := make([]core.CategoryAmount, 0)
	total := core.Zero
	for _, e := range expenses {
		i, exists := index[e.Category]
		if !exists {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, core.CategoryAmount{Name: e.Category, Amount: core.Zero})
		}
		totals[i].Amount = totals[i].Amount.Add(e.Amount)
		totals[i].Count++
		total = total.Add(e.Amount)
	}

	sort.Slice(totals, func(a, b int) bool {
		return totals[a].Name < totals[b].Name
	})
	return Categories{Totals: totals, Total: total}, true
}
