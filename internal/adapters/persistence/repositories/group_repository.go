package repositories

import (
	"context"

	"tanzanex-lend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormGroupRepository handles collection-group data access
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// Create creates a new group
func (r *GormGroupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// GetByID gets a group by ID within one organization
func (r *GormGroupRepository) GetByID(ctx context.Context, orgID, id uint) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Preload("Members").
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// List lists groups of one organization with members preloaded
func (r *GormGroupRepository) List(ctx context.Context, orgID uint) ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(orgID)).
		Preload("Members").
		Order("created_at DESC").
		Find(&groups).Error
	return groups, err
}

// AddMember adds a borrower to a group. Appending an existing
// member is a no-op at the association level.
func (r *GormGroupRepository) AddMember(ctx context.Context, group *models.Group, borrower *models.Borrower) error {
	return r.db.WithContext(ctx).Model(group).Association("Members").Append(borrower)
}

// RemoveMember removes a borrower from a group
func (r *GormGroupRepository) RemoveMember(ctx context.Context, group *models.Group, borrower *models.Borrower) error {
	return r.db.WithContext(ctx).Model(group).Association("Members").Delete(borrower)
}
