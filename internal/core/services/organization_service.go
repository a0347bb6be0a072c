package services

import (
	"context"
	"errors"
	"log"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/adapters/persistence/repositories"
	"tanzanex-lend/internal/core/domain"

	"gorm.io/gorm"
)

// Organization admin errors
var (
	ErrOrganizationArchived    = errors.New("organization is archived")
	ErrOrganizationNotArchived = errors.New("organization is not archived")
)

// OrganizationService handles the platform-operator organization
// surface.
type OrganizationService struct {
	orgRepo repositories.OrganizationRepository
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(orgRepo repositories.OrganizationRepository) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo}
}

// List returns every organization on the platform
func (s *OrganizationService) List(ctx context.Context, includeArchived bool) ([]*models.Organization, error) {
	return s.orgRepo.List(ctx, includeArchived)
}

// GetByID returns one organization
func (s *OrganizationService) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	return s.get(ctx, id)
}

// Activate puts an organization on a paid subscription for one
// year from now.
func (s *OrganizationService) Activate(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if org.ArchivedAt != nil {
		return nil, ErrOrganizationArchived
	}

	expiry := time.Now().AddDate(1, 0, 0)
	org.SubscriptionStatus = domain.SubscriptionActive
	org.ExpiryDate = &expiry
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	log.Printf("Organization %d activated until %s", org.ID, expiry.Format("2006-01-02"))
	return org, nil
}

// Suspend locks an organization out immediately
func (s *OrganizationService) Suspend(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if org.ArchivedAt != nil {
		return nil, ErrOrganizationArchived
	}

	org.SubscriptionStatus = domain.SubscriptionSuspended
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// Archive retires an organization. Archived tenants keep their
// data but cannot sign in.
func (s *OrganizationService) Archive(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if org.ArchivedAt != nil {
		return nil, ErrOrganizationArchived
	}

	now := time.Now()
	org.SubscriptionStatus = domain.SubscriptionArchived
	org.ArchivedAt = &now
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// Restore brings an archived organization back on a fresh trial
func (s *OrganizationService) Restore(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if org.ArchivedAt == nil {
		return nil, ErrOrganizationNotArchived
	}

	org.SubscriptionStatus = domain.SubscriptionTrial
	org.TrialStartDate = time.Now()
	org.ExpiryDate = nil
	org.ArchivedAt = nil
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) get(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return org, nil
}
