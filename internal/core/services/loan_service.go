package services

import (
	"context"
	"errors"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/adapters/persistence/repositories"
	"tanzanex-lend/internal/core/domain"
	"tanzanex-lend/internal/core/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Loan errors
var (
	ErrLoanNotFound     = errors.New("loan not found")
	ErrBorrowerRequired = errors.New("borrower_id is required")
	ErrAmountRequired   = errors.New("amount_loaned must be greater than zero")
	ErrRateNegative     = errors.New("interest_rate cannot be negative")
	ErrMonthsInvalid    = errors.New("months must be at least 1")
	ErrRepaymentInvalid = errors.New("amount_paid must be greater than zero")
)

// LoanService handles loan and repayment business logic
type LoanService struct {
	loanRepo      repositories.LoanRepository
	repaymentRepo repositories.RepaymentRepository
	borrowerRepo  repositories.BorrowerRepository
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	repaymentRepo repositories.RepaymentRepository,
	borrowerRepo repositories.BorrowerRepository,
) *LoanService {
	return &LoanService{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		borrowerRepo:  borrowerRepo,
	}
}

// CreateLoanInput represents loan creation input. Amount and
// AmountLoaned are aliases; Duration and Months likewise.
type CreateLoanInput struct {
	BorrowerID   uint     `json:"borrower_id" validate:"required"`
	AmountLoaned float64  `json:"amount_loaned"`
	Amount       float64  `json:"amount"`
	InterestRate *float64 `json:"interest_rate"`
	Months       int      `json:"months"`
	Duration     int      `json:"duration"`
}

// RepaymentInput represents repayment input
type RepaymentInput struct {
	AmountPaid float64    `json:"amount_paid" validate:"required,gt=0"`
	PaidAt     *time.Time `json:"paid_at"`
}

func (in *CreateLoanInput) principal() float64 {
	if in.AmountLoaned > 0 {
		return in.AmountLoaned
	}
	return in.Amount
}

func (in *CreateLoanInput) months() int {
	if in.Months != 0 {
		return in.Months
	}
	return in.Duration
}

// Create books a new loan. Interest is flat: principal * rate / 100,
// added once up front; the whole total is due after the term.
func (s *LoanService) Create(ctx context.Context, orgID uint, input *CreateLoanInput) (*models.Loan, error) {
	if input.BorrowerID == 0 {
		return nil, ErrBorrowerRequired
	}

	principal := input.principal()
	if principal <= 0 {
		return nil, ErrAmountRequired
	}

	rate := float64(domain.DefaultInterestRate)
	if input.InterestRate != nil {
		if *input.InterestRate < 0 {
			return nil, ErrRateNegative
		}
		rate = *input.InterestRate
	}

	months := input.months()
	if months == 0 {
		months = 1
	}
	if months < 1 {
		return nil, ErrMonthsInvalid
	}

	// Borrower must belong to the same organization
	borrower, err := s.borrowerRepo.GetByID(ctx, orgID, input.BorrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBorrowerNotFound
		}
		return nil, err
	}

	interestAmount, totalAmount := ledger.Terms(principal, rate)
	now := time.Now()

	loan := &models.Loan{
		OrganizationID:       borrower.OrganizationID,
		BorrowerID:           borrower.ID,
		ReferenceNo:          uuid.New().String(),
		AmountLoaned:         principal,
		InterestRate:         rate,
		InterestAmount:       interestAmount,
		TotalAmount:          totalAmount,
		PaidAmount:           0,
		PrincipalOutstanding: totalAmount,
		Months:               months,
		DueDate:              now.AddDate(0, months, 0),
		Status:               domain.LoanStatusPending,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	loan.Borrower = borrower
	return loan, nil
}

// GetByID returns one loan within the acting organization
func (s *LoanService) GetByID(ctx context.Context, orgID, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// List returns a page of loans for the acting organization
func (s *LoanService) List(ctx context.Context, orgID uint, offset, limit int) ([]*models.Loan, int64, error) {
	return s.loanRepo.List(ctx, orgID, offset, limit)
}

// Repay applies a payment to a loan. The read-modify-write happens
// inside one storage transaction under a row lock, so concurrent
// repayments serialize and the running balance never loses an
// update. Payments against a settled loan are still recorded; the
// outstanding balance just stays at zero.
func (s *LoanService) Repay(ctx context.Context, orgID, loanID uint, input *RepaymentInput) (*models.Loan, *models.Repayment, error) {
	if input.AmountPaid <= 0 {
		return nil, nil, ErrRepaymentInvalid
	}

	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	loan, repayment, err := s.loanRepo.ApplyRepayment(ctx, orgID, loanID, input.AmountPaid, paidAt)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrLoanNotFound
		}
		return nil, nil, err
	}
	return loan, repayment, nil
}

// ListRepayments returns all repayments for the acting organization
func (s *LoanService) ListRepayments(ctx context.Context, orgID uint) ([]models.Repayment, error) {
	return s.repaymentRepo.List(ctx, orgID)
}
