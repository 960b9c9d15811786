package cli

import (
	"context"

	"github.com/spf13/cobra"

	"speselog/internal/config"
	"speselog/internal/log"
	"speselog/internal/services"
	"speselog/internal/storage"
)

// Messages shared by the menu and the one-shot commands.
const (
	msgNoExpenses    = "No expenses recorded yet!"
	msgAdded         = "Expense added successfully!"
	msgInvalidInput  = "Invalid input! Please try again."
	msgInvalidChoice = "Invalid choice! Please try again."
	msgGoodbye       = "Exiting... Goodbye!"
)

type options struct {
	dataFile string
	envFile  string
	debug    bool
}

// app holds what every command needs once flags are parsed.
type app struct {
	store   *storage.FileStore
	service *services.ExpenseService
}

// NewRootCommand builds the speselog command tree. Running it without a
// subcommand starts the interactive menu.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	a := &app{}

	root := &cobra.Command{
		Use:   "speselog",
		Short: "Log daily expenses to a plain text file",
		Long: `speselog records expenses (amount, category, description) in a
plain text file, one expense per line, and reports them in full or
grouped by category.

Without a subcommand it starts an interactive menu.

Example:
  speselog add 12.50 Food "pizza with friends"
  speselog list
  speselog categories`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.dataFile, "file", "", "expenses file (default is $EXPENSES_FILE or "+config.DefaultDataFile+")")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "env file to load (default is .env if present)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newAddCommand(a),
		newListCommand(a),
		newCategoriesCommand(a),
		newShellCommand(a),
	)
	return root
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) init(cmd *cobra.Command, opts *options) error {
	cfg, err := LoadAndValidateConfig(opts.envFile, opts.dataFile)
	if err != nil {
		return err
	}
	logger := SetupLogger(cfg, opts.debug, cmd.ErrOrStderr())

	a.store = OpenStore(cfg, logger)
	a.service = services.NewExpenseService(a.store, logger)

	logger.Debug("configuration loaded",
		log.NewFields().WithOperation(log.OpStartup).WithPath(cfg.DataFile).WithCount(a.store.Len()).ToSlice()...)
	cmd.SetContext(log.WithContext(cmd.Context(), logger))
	return nil
}
