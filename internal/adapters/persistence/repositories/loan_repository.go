package repositories

import (
	"context"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/core/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLoanRepository handles loan data access
type GormLoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// Create creates a new loan
func (r *GormLoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID within one organization. A loan in
// another organization comes back as gorm.ErrRecordNotFound, same
// as a loan that does not exist.
func (r *GormLoanRepository) GetByID(ctx context.Context, orgID, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Preload("Borrower").
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// List lists loans of one organization with pagination
func (r *GormLoanRepository) List(ctx context.Context, orgID uint, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	r.db.WithContext(ctx).Model(&models.Loan{}).Scopes(tenantScope(orgID)).Count(&total)

	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Preload("Borrower").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error

	return loans, total, err
}

// ListAll loads the full loan book of one organization for
// in-memory aggregation.
func (r *GormLoanRepository) ListAll(ctx context.Context, orgID uint) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.WithContext(ctx).Scopes(tenantScope(orgID)).Find(&loans).Error
	return loans, err
}

// ListBetween loads loans created within [start, end)
func (r *GormLoanRepository) ListBetween(ctx context.Context, orgID uint, start, end time.Time) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&loans).Error
	return loans, err
}

// ListOpenWithBorrowers loads unpaid loans with their borrowers,
// for the aging report.
func (r *GormLoanRepository) ListOpenWithBorrowers(ctx context.Context, orgID uint) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Preload("Borrower").
		Where("status <> ?", "paid").
		Find(&loans).Error
	return loans, err
}

// ApplyRepayment records a repayment and folds it into the loan's
// running balance in one transaction. The loan row is locked for
// the duration, so concurrent repayments against the same loan
// serialize instead of losing updates.
func (r *GormLoanRepository) ApplyRepayment(ctx context.Context, orgID, loanID uint, amount float64, paidAt time.Time) (*models.Loan, *models.Repayment, error) {
	var loan models.Loan
	var repayment *models.Repayment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(tenantScope(orgID)).
			First(&loan, loanID).Error; err != nil {
			return err
		}

		repayment = &models.Repayment{
			OrganizationID: loan.OrganizationID,
			LoanID:         loan.ID,
			AmountPaid:     amount,
			PaidAt:         paidAt,
		}
		if err := tx.Create(repayment).Error; err != nil {
			return err
		}

		newPaid, outstanding, paidOff := ledger.ApplyPayment(loan.TotalAmount, loan.PaidAmount, amount)
		loan.PaidAmount = newPaid
		loan.PrincipalOutstanding = outstanding
		if paidOff {
			loan.Status = "paid"
		}

		return tx.Save(&loan).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &loan, repayment, nil
}

// GormRepaymentRepository handles repayment read access
type GormRepaymentRepository struct {
	db *gorm.DB
}

// NewRepaymentRepository creates a new repayment repository
func NewRepaymentRepository(db *gorm.DB) *GormRepaymentRepository {
	return &GormRepaymentRepository{db: db}
}

// List lists repayments of one organization, newest first
func (r *GormRepaymentRepository) List(ctx context.Context, orgID uint) ([]models.Repayment, error) {
	var repayments []models.Repayment
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Preload("Loan").
		Preload("Loan.Borrower").
		Order("paid_at DESC").
		Find(&repayments).Error
	return repayments, err
}

// ListBetween loads repayments paid within [start, end)
func (r *GormRepaymentRepository) ListBetween(ctx context.Context, orgID uint, start, end time.Time) ([]models.Repayment, error) {
	var repayments []models.Repayment
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Where("paid_at >= ? AND paid_at < ?", start, end).
		Find(&repayments).Error
	return repayments, err
}
