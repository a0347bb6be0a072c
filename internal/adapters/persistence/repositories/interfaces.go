package repositories

import (
	"context"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
)

// OrganizationRepository defines organization repository interface
type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id uint) (*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
	List(ctx context.Context, includeArchived bool) ([]*models.Organization, error)
	ListByStatus(ctx context.Context, statuses ...string) ([]*models.Organization, error)
}

// UserRepository defines staff account repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, orgID, id uint) error
	List(ctx context.Context, orgID uint) ([]*models.User, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// BorrowerRepository defines borrower repository interface
type BorrowerRepository interface {
	Create(ctx context.Context, borrower *models.Borrower) error
	GetByID(ctx context.Context, orgID, id uint) (*models.Borrower, error)
	List(ctx context.Context, orgID uint, offset, limit int) ([]*models.Borrower, int64, error)
}

// LoanRepository defines loan repository interface. ApplyRepayment
// is the single storage-level operation that mutates a loan's
// running balance.
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, orgID, id uint) (*models.Loan, error)
	List(ctx context.Context, orgID uint, offset, limit int) ([]*models.Loan, int64, error)
	ListAll(ctx context.Context, orgID uint) ([]models.Loan, error)
	ListBetween(ctx context.Context, orgID uint, start, end time.Time) ([]models.Loan, error)
	ListOpenWithBorrowers(ctx context.Context, orgID uint) ([]models.Loan, error)
	ApplyRepayment(ctx context.Context, orgID, loanID uint, amount float64, paidAt time.Time) (*models.Loan, *models.Repayment, error)
}

// RepaymentRepository defines repayment read access; repayment rows
// are written only inside LoanRepository.ApplyRepayment.
type RepaymentRepository interface {
	List(ctx context.Context, orgID uint) ([]models.Repayment, error)
	ListBetween(ctx context.Context, orgID uint, start, end time.Time) ([]models.Repayment, error)
}

// ExpenseRepository defines expense repository interface
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	List(ctx context.Context, orgID uint) ([]models.Expense, error)
	ListBetween(ctx context.Context, orgID uint, start, end time.Time) ([]models.Expense, error)
}

// CashFlowRepository defines manual cash-flow repository interface
type CashFlowRepository interface {
	Create(ctx context.Context, cf *models.CashFlow) error
	List(ctx context.Context, orgID uint) ([]models.CashFlow, error)
	ListBetween(ctx context.Context, orgID uint, start, end time.Time) ([]models.CashFlow, error)
}

// GroupRepository defines collection-group repository interface
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, orgID, id uint) (*models.Group, error)
	List(ctx context.Context, orgID uint) ([]*models.Group, error)
	AddMember(ctx context.Context, group *models.Group, borrower *models.Borrower) error
	RemoveMember(ctx context.Context, group *models.Group, borrower *models.Borrower) error
}
