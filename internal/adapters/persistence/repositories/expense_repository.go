package repositories

import (
	"context"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormExpenseRepository handles expense data access
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Create creates a new expense
func (r *GormExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// List lists expenses of one organization, newest first
func (r *GormExpenseRepository) List(ctx context.Context, orgID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Order("expense_date DESC").
		Find(&expenses).Error
	return expenses, err
}

// ListBetween loads expenses dated within [start, end)
func (r *GormExpenseRepository) ListBetween(ctx context.Context, orgID uint, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Where("expense_date >= ? AND expense_date < ?", start, end).
		Find(&expenses).Error
	return expenses, err
}
