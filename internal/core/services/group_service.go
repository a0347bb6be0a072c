package services

import (
	"context"
	"errors"
	"strings"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Group errors
var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrGroupNameMissing = errors.New("group name is required")
)

// GroupService handles collection group business logic
type GroupService struct {
	groupRepo    repositories.GroupRepository
	borrowerRepo repositories.BorrowerRepository
}

// NewGroupService creates a new group service
func NewGroupService(
	groupRepo repositories.GroupRepository,
	borrowerRepo repositories.BorrowerRepository,
) *GroupService {
	return &GroupService{
		groupRepo:    groupRepo,
		borrowerRepo: borrowerRepo,
	}
}

// CreateGroupInput represents group creation input
type CreateGroupInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// Create creates a collection group
func (s *GroupService) Create(ctx context.Context, orgID uint, input *CreateGroupInput) (*models.Group, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrGroupNameMissing
	}

	group := &models.Group{
		OrganizationID: orgID,
		Name:           input.Name,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetByID returns one group with its members
func (s *GroupService) GetByID(ctx context.Context, orgID, id uint) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// List returns all groups of the acting organization
func (s *GroupService) List(ctx context.Context, orgID uint) ([]*models.Group, error) {
	return s.groupRepo.List(ctx, orgID)
}

// AddMember puts a borrower into a group. Adding a borrower twice
// is a no-op.
func (s *GroupService) AddMember(ctx context.Context, orgID, groupID, borrowerID uint) (*models.Group, error) {
	group, borrower, err := s.resolve(ctx, orgID, groupID, borrowerID)
	if err != nil {
		return nil, err
	}
	if err := s.groupRepo.AddMember(ctx, group, borrower); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orgID, groupID)
}

// RemoveMember takes a borrower out of a group. Removing a
// non-member is a no-op.
func (s *GroupService) RemoveMember(ctx context.Context, orgID, groupID, borrowerID uint) (*models.Group, error) {
	group, borrower, err := s.resolve(ctx, orgID, groupID, borrowerID)
	if err != nil {
		return nil, err
	}
	if err := s.groupRepo.RemoveMember(ctx, group, borrower); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orgID, groupID)
}

func (s *GroupService) resolve(ctx context.Context, orgID, groupID, borrowerID uint) (*models.Group, *models.Borrower, error) {
	group, err := s.groupRepo.GetByID(ctx, orgID, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGroupNotFound
		}
		return nil, nil, err
	}
	borrower, err := s.borrowerRepo.GetByID(ctx, orgID, borrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBorrowerNotFound
		}
		return nil, nil, err
	}
	return group, borrower, nil
}
