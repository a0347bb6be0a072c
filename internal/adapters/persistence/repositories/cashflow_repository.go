package repositories

import (
	"context"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormCashFlowRepository handles manual cash-flow data access
type GormCashFlowRepository struct {
	db *gorm.DB
}

// NewCashFlowRepository creates a new cash-flow repository
func NewCashFlowRepository(db *gorm.DB) *GormCashFlowRepository {
	return &GormCashFlowRepository{db: db}
}

// Create creates a new cash-flow transaction
func (r *GormCashFlowRepository) Create(ctx context.Context, cf *models.CashFlow) error {
	return r.db.WithContext(ctx).Create(cf).Error
}

// List lists cash-flow transactions of one organization, newest first
func (r *GormCashFlowRepository) List(ctx context.Context, orgID uint) ([]models.CashFlow, error) {
	var flows []models.CashFlow
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Order("date DESC").
		Find(&flows).Error
	return flows, err
}

// ListBetween loads cash-flow transactions dated within [start, end)
func (r *GormCashFlowRepository) ListBetween(ctx context.Context, orgID uint, start, end time.Time) ([]models.CashFlow, error) {
	var flows []models.CashFlow
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Where("date >= ? AND date < ?", start, end).
		Find(&flows).Error
	return flows, err
}
