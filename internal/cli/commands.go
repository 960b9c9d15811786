package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"speselog/internal/core"
	"speselog/internal/report"
)

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <amount> <category> [description...]",
		Short: "Record an expense",
		Long: `Record an expense and save it immediately.

The amount must be a positive number; both 12.50 and 12,50 are accepted.
Words after the category are joined into the description.

Example:
  speselog add 4.20 Travel bus ticket`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.Join(args[2:], " ")
			if _, err := a.service.Add(cmd.Context(), args[0], args[1], description); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msgAdded)
			return nil
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show every expense and the total",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printListing(cmd, "")
		},
	}
}

func newCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Aliases: []string{"by-category"},
		Short:   "Show the total spent per category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printCategories(cmd, "")
		},
	}
}

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}
}

// printListing writes the full listing, preceded by header when it is not
// empty. An empty store prints only the empty message.
func (a *app) printListing(cmd *cobra.Command, header string) error {
	out := cmd.OutOrStdout()
	listing, ok := a.service.FullListing()
	if !ok {
		fmt.Fprintln(out, msgNoExpenses)
		return nil
	}
	if header != "" {
		fmt.Fprintln(out, header)
	}
	return report.WriteListing(out, listing)
}

func (a *app) printCategories(cmd *cobra.Command, header string) error {
	out := cmd.OutOrStdout()
	cats, ok := a.service.ByCategory()
	if !ok {
		fmt.Fprintln(out, msgNoExpenses)
		return nil
	}
	if header != "" {
		fmt.Fprintln(out, header)
	}
	return report.WriteCategories(out, cats)
}

// userMessage maps an add failure to the text shown in the menu.
func userMessage(err error) string {
	if core.IsValidation(err) {
		return msgInvalidInput
	}
	return "Error saving expenses: " + err.Error()
}
