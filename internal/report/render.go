package report

import (
	"fmt"
	"io"
)

// WriteListing prints one "Amount: ..., Category: ..., Description: ..." row
// per expense followed by the grand total.
func WriteListing(w io.Writer, l Listing) error {
	for _, line := range l.Lines {
		if _, err := fmt.Fprintln(w, line.Expense.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total Expenses: %s\n", l.Total)
	return err
}

// WriteCategories prints one "Category: ..., Total: ..." row per category.
func WriteCategories(w io.Writer, c Categories) error {
	for _, ca := range c.Totals {
		if _, err := fmt.Fprintf(w, "Category: %s, Total: %s\n", ca.Name, ca.Amount); err != nil {
			return err
		}
	}
	return nil
}
