package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"speselog/internal/core"
	"speselog/internal/log"
)

const menu = `
=== Daily Expense Tracker ===
1. Add Expense
2. View Expenses
3. View Expenses by Category
4. Exit
Enter your choice: `

const (
	listingHeader    = "\n=== Recorded Expenses ==="
	categoriesHeader = "\n=== Expenses by Category ==="
)

// prompter reads one line per prompt. Text is returned as typed so
// categories keep their exact spelling.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// ask prints label and returns the next input line. ok is false at end of input.
func (p *prompter) ask(label string) (line string, ok bool) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		return "", false
	}
	return p.in.Text(), true
}

// runShell drives the interactive menu until the user exits or input ends.
func (a *app) runShell(cmd *cobra.Command) error {
	logger := log.FromContext(cmd.Context())
	out := cmd.OutOrStdout()
	p := &prompter{in: bufio.NewScanner(cmd.InOrStdin()), out: out}

	for {
		choice, ok := p.ask(menu)
		if !ok {
			fmt.Fprintln(out)
			fmt.Fprintln(out, msgGoodbye)
			return p.in.Err()
		}
		logger.Debug("menu choice", "choice", choice)

		switch strings.TrimSpace(choice) {
		case "1":
			if !a.shellAdd(cmd, p) {
				fmt.Fprintln(out)
				fmt.Fprintln(out, msgGoodbye)
				return p.in.Err()
			}
		case "2":
			if err := a.printListing(cmd, listingHeader); err != nil {
				return err
			}
		case "3":
			if err := a.printCategories(cmd, categoriesHeader); err != nil {
				return err
			}
		case "4":
			fmt.Fprintln(out, msgGoodbye)
			return nil
		default:
			fmt.Fprintln(out, msgInvalidChoice)
		}
	}
}

// shellAdd prompts for one expense. It returns false if input ended mid-way.
func (a *app) shellAdd(cmd *cobra.Command, p *prompter) bool {
	out := cmd.OutOrStdout()

	raw, ok := p.ask("Enter amount: ")
	if !ok {
		return false
	}
	amount, err := core.ParseAmount(raw)
	if err != nil {
		fmt.Fprintln(out, msgInvalidInput)
		return true
	}

	category, ok := p.ask("Enter category (e.g., Food, Travel): ")
	if !ok {
		return false
	}
	description, ok := p.ask("Enter description: ")
	if !ok {
		return false
	}

	e, err := core.NewExpense(amount, category, description)
	if err == nil {
		err = a.service.AddExpense(cmd.Context(), e)
	}
	if err != nil {
		fmt.Fprintln(out, userMessage(err))
		return true
	}
	fmt.Fprintln(out, msgAdded)
	return true
}
