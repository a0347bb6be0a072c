package repositories

import (
	"context"

	"tanzanex-lend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormBorrowerRepository handles borrower data access
type GormBorrowerRepository struct {
	db *gorm.DB
}

// NewBorrowerRepository creates a new borrower repository
func NewBorrowerRepository(db *gorm.DB) *GormBorrowerRepository {
	return &GormBorrowerRepository{db: db}
}

// Create creates a new borrower
func (r *GormBorrowerRepository) Create(ctx context.Context, borrower *models.Borrower) error {
	return r.db.WithContext(ctx).Create(borrower).Error
}

// GetByID gets a borrower by ID within one organization
func (r *GormBorrowerRepository) GetByID(ctx context.Context, orgID, id uint) (*models.Borrower, error) {
	var borrower models.Borrower
	err := r.db.WithContext(ctx).Scopes(tenantScope(orgID)).First(&borrower, id).Error
	if err != nil {
		return nil, err
	}
	return &borrower, nil
}

// List lists borrowers of one organization with pagination
func (r *GormBorrowerRepository) List(ctx context.Context, orgID uint, offset, limit int) ([]*models.Borrower, int64, error) {
	var borrowers []*models.Borrower
	var total int64

	r.db.WithContext(ctx).Model(&models.Borrower{}).Scopes(tenantScope(orgID)).Count(&total)

	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&borrowers).Error

	return borrowers, total, err
}
