package core

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// Expense is one recorded outlay. Values are never mutated after creation.
	Expense struct {
		Amount      Money
		Category    string
		Description string
	}
)

var (
	// ErrValidation is wrapped by every input validation failure.
	ErrValidation = errors.New("invalid input")

	ErrInvalidAmount      = fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	ErrEmptyCategory      = fmt.Errorf("%w: empty category", ErrValidation)
	ErrInvalidCategory    = fmt.Errorf("%w: category cannot contain commas or line breaks", ErrValidation)
	ErrInvalidDescription = fmt.Errorf("%w: description cannot contain line breaks", ErrValidation)
)

// IsValidation reports whether err is a user input error rather than an I/O failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// NewExpense builds an expense and validates it.
func NewExpense(amount Money, category, description string) (Expense, error) {
	e := Expense{Amount: amount, Category: category, Description: description}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	// Categories are grouped by exact match, so only emptiness is checked here.
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.ContainsAny(e.Category, ",\r\n") {
		return ErrInvalidCategory
	}
	if strings.ContainsAny(e.Description, "\r\n") {
		return ErrInvalidDescription
	}
	return nil
}

func (e Expense) String() string {
	return "Amount: " + e.Amount.String() + ", Category: " + e.Category + ", Description: " + e.Description
}
