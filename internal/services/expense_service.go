package services

import (
	"context"
	"fmt"

	"speselog/internal/core"
	"speselog/internal/log"
	"speselog/internal/report"
)

// Ports for the record store.
type (
	ExpenseWriter interface {
		Add(ctx context.Context, e core.Expense) error
	}

	ExpenseLister interface {
		All() []core.Expense
	}

	ExpenseStore interface {
		ExpenseWriter
		ExpenseLister
	}
)

// ExpenseService exposes the add and report operations over a store.
type ExpenseService struct {
	store  ExpenseStore
	logger *log.Logger
}

func NewExpenseService(store ExpenseStore, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.Discard()
	}
	return &ExpenseService{
		store:  store,
		logger: logger.WithComponent(log.ComponentExpense),
	}
}

// Add parses the raw amount and records a new expense. Validation failures
// match core.ErrValidation and leave the store untouched.
func (s *ExpenseService) Add(ctx context.Context, amount, category, description string) (core.Expense, error) {
	m, err := core.ParseAmount(amount)
	if err != nil {
		return core.Expense{}, err
	}
	e, err := core.NewExpense(m, category, description)
	if err != nil {
		return core.Expense{}, err
	}
	if err := s.AddExpense(ctx, e); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// AddExpense records an already built expense.
func (s *ExpenseService) AddExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		s.logger.Debug("expense rejected",
			log.NewFields().WithOperation(log.OpAppend).WithError(err).ToSlice()...)
		return err
	}
	if err := s.store.Add(ctx, e); err != nil {
		if core.IsValidation(err) {
			return err
		}
		return fmt.Errorf("add expense: %w", err)
	}
	s.logger.Info("expense added",
		log.NewFields().WithExpense(e.Amount.String(), e.Category, e.Description).ToSlice()...)
	return nil
}

// FullListing reports every expense with running and grand totals.
func (s *ExpenseService) FullListing() (report.Listing, bool) {
	listing, ok := report.FullListing(s.store.All())
	s.logger.Debug("listing built",
		log.NewFields().WithOperation(log.OpList).WithCount(len(listing.Lines)).ToSlice()...)
	return listing, ok
}

// ByCategory reports totals per category.
func (s *ExpenseService) ByCategory() (report.Categories, bool) {
	cats, ok := report.ByCategory(s.store.All())
	s.logger.Debug("category totals built",
		log.NewFields().WithOperation(log.OpList).WithCount(len(cats.Totals)).ToSlice()...)
	return cats, ok
}
