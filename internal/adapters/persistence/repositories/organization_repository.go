package repositories

import (
	"context"

	"tanzanex-lend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormOrganizationRepository handles organization data access
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

// GetByID gets an organization by ID
func (r *GormOrganizationRepository) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

// List lists organizations, newest first. Archived organizations
// are excluded unless asked for.
func (r *GormOrganizationRepository) List(ctx context.Context, includeArchived bool) ([]*models.Organization, error) {
	var orgs []*models.Organization
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if !includeArchived {
		query = query.Where("subscription_status <> ?", "archived")
	}
	err := query.Find(&orgs).Error
	return orgs, err
}

// ListByStatus lists organizations in any of the given
// subscription statuses.
func (r *GormOrganizationRepository) ListByStatus(ctx context.Context, statuses ...string) ([]*models.Organization, error) {
	var orgs []*models.Organization
	err := r.db.WithContext(ctx).
		Where("subscription_status IN ?", statuses).
		Find(&orgs).Error
	return orgs, err
}
