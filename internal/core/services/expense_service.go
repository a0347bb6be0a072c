package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/adapters/persistence/repositories"
)

// Expense errors
var (
	ErrExpenseTitleMissing  = errors.New("title is required")
	ErrExpenseAmountInvalid = errors.New("amount must be greater than zero")
)

// ExpenseService handles operational expense business logic
type ExpenseService struct {
	expenseRepo repositories.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repositories.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseInput represents expense creation input
type CreateExpenseInput struct {
	Title       string     `json:"title" validate:"required,min=2,max=150"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Category    string     `json:"category"`
	ExpenseDate *time.Time `json:"expense_date"`
}

// Create records an operational expense
func (s *ExpenseService) Create(ctx context.Context, orgID uint, input *CreateExpenseInput) (*models.Expense, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, ErrExpenseTitleMissing
	}
	if input.Amount <= 0 {
		return nil, ErrExpenseAmountInvalid
	}

	expenseDate := time.Now()
	if input.ExpenseDate != nil {
		expenseDate = *input.ExpenseDate
	}

	expense := &models.Expense{
		OrganizationID: orgID,
		Title:          input.Title,
		Amount:         input.Amount,
		Category:       strings.TrimSpace(input.Category),
		ExpenseDate:    expenseDate,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// List returns all expenses of the acting organization, newest first
func (s *ExpenseService) List(ctx context.Context, orgID uint) ([]models.Expense, error) {
	return s.expenseRepo.List(ctx, orgID)
}
