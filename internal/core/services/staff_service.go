package services

import (
	"context"
	"errors"
	"strings"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/adapters/persistence/repositories"
	"tanzanex-lend/internal/core/domain"
	"tanzanex-lend/internal/pkg/password"

	"gorm.io/gorm"
)

// Staff errors
var (
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrStaffRoleInvalid  = errors.New("role must be admin, manager, staff or officer")
	ErrCannotDeleteOwner = errors.New("the organization owner cannot be removed")
	ErrCannotDeleteSelf  = errors.New("cannot delete your own account")
	ErrCannotChangeOwner = errors.New("the owner role cannot be changed")
)

// assignableRoles are the roles an admin may grant inside an
// organization. Super-admin is a platform credential, never
// assignable here.
var assignableRoles = map[string]bool{
	string(domain.RoleAdmin):   true,
	string(domain.RoleManager): true,
	string(domain.RoleStaff):   true,
	string(domain.RoleOfficer): true,
}

// StaffService handles staff account management inside one
// organization.
type StaffService struct {
	userRepo repositories.UserRepository
}

// NewStaffService creates a new staff service
func NewStaffService(userRepo repositories.UserRepository) *StaffService {
	return &StaffService{userRepo: userRepo}
}

// CreateStaffInput represents staff creation input
type CreateStaffInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// UpdateStaffInput represents staff update input
type UpdateStaffInput struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// Create adds a staff account to the acting organization
func (s *StaffService) Create(ctx context.Context, orgID uint, input *CreateStaffInput) (*models.UserResponse, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" || input.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !password.Validate(input.Password) {
		return nil, ErrWeakPassword
	}
	if !assignableRoles[input.Role] {
		return nil, ErrStaffRoleInvalid
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyUsed
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		OrganizationID: orgID,
		Name:           input.Name,
		Email:          input.Email,
		Password:       hashedPassword,
		Role:           input.Role,
		Active:         true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// List returns the staff accounts of the acting organization
func (s *StaffService) List(ctx context.Context, orgID uint) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out, nil
}

// Update changes a staff member's name, role or active flag
func (s *StaffService) Update(ctx context.Context, orgID, id uint, input *UpdateStaffInput) (*models.UserResponse, error) {
	user, err := s.getInOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if user.IsOwner {
			return nil, ErrCannotChangeOwner
		}
		if !assignableRoles[*input.Role] {
			return nil, ErrStaffRoleInvalid
		}
		user.Role = *input.Role
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Delete removes a staff account. The owner account and the acting
// account itself are protected.
func (s *StaffService) Delete(ctx context.Context, orgID, actorID, id uint) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}

	user, err := s.getInOrg(ctx, orgID, id)
	if err != nil {
		return err
	}
	if user.IsOwner {
		return ErrCannotDeleteOwner
	}

	return s.userRepo.Delete(ctx, orgID, id)
}

func (s *StaffService) getInOrg(ctx context.Context, orgID, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	if orgID != 0 && user.OrganizationID != orgID {
		return nil, ErrStaffNotFound
	}
	return user, nil
}
