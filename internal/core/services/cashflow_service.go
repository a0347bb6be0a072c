package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/adapters/persistence/repositories"
	"tanzanex-lend/internal/core/domain"
	"tanzanex-lend/internal/core/ledger"
)

// Cash flow errors
var (
	ErrCashFlowTypeInvalid   = errors.New("type must be inflow or outflow")
	ErrCashFlowAmountInvalid = errors.New("amount must be greater than zero")
	ErrCashFlowNoDescription = errors.New("description is required")
)

// CashFlowService handles manual cash movements and the combined
// transaction feed.
type CashFlowService struct {
	cashFlowRepo  repositories.CashFlowRepository
	expenseRepo   repositories.ExpenseRepository
	repaymentRepo repositories.RepaymentRepository
}

// NewCashFlowService creates a new cash flow service
func NewCashFlowService(
	cashFlowRepo repositories.CashFlowRepository,
	expenseRepo repositories.ExpenseRepository,
	repaymentRepo repositories.RepaymentRepository,
) *CashFlowService {
	return &CashFlowService{
		cashFlowRepo:  cashFlowRepo,
		expenseRepo:   expenseRepo,
		repaymentRepo: repaymentRepo,
	}
}

// CreateCashFlowInput represents manual cash-flow input
type CreateCashFlowInput struct {
	Type        string     `json:"type" validate:"required,oneof=inflow outflow"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Description string     `json:"description" validate:"required"`
	Category    string     `json:"category"`
	Date        *time.Time `json:"date"`
}

// Create records a manual capital movement
func (s *CashFlowService) Create(ctx context.Context, orgID uint, input *CreateCashFlowInput) (*models.CashFlow, error) {
	if input.Type != domain.CashFlowInflow && input.Type != domain.CashFlowOutflow {
		return nil, ErrCashFlowTypeInvalid
	}
	if input.Amount <= 0 {
		return nil, ErrCashFlowAmountInvalid
	}
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return nil, ErrCashFlowNoDescription
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "Capital"
	}

	cf := &models.CashFlow{
		OrganizationID: orgID,
		Type:           input.Type,
		Amount:         input.Amount,
		Description:    input.Description,
		Category:       category,
		Date:           date,
	}
	if err := s.cashFlowRepo.Create(ctx, cf); err != nil {
		return nil, err
	}
	return cf, nil
}

// List returns the manual cash-flow entries, newest first
func (s *CashFlowService) List(ctx context.Context, orgID uint) ([]models.CashFlow, error) {
	return s.cashFlowRepo.List(ctx, orgID)
}

// FeedOutput is the combined transaction feed with its totals
type FeedOutput struct {
	Transactions []ledger.FeedEntry `json:"transactions"`
	Summary      ledger.FeedSummary `json:"summary"`
}

// Feed merges manual cash flows, expenses and repayments into one
// date-sorted transaction list.
func (s *CashFlowService) Feed(ctx context.Context, orgID uint) (*FeedOutput, error) {
	cashflows, err := s.cashFlowRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	repayments, err := s.repaymentRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	feed := ledger.MergedFeed(cashflows, expenses, repayments)
	return &FeedOutput{
		Transactions: feed,
		Summary:      ledger.SummarizeFeed(feed),
	}, nil
}
