package services

import (
	"context"
	"errors"
	"strings"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Borrower errors
var (
	ErrBorrowerNotFound    = errors.New("borrower not found")
	ErrBorrowerNameMissing = errors.New("full name is required")
)

// BorrowerService handles borrower business logic
type BorrowerService struct {
	borrowerRepo repositories.BorrowerRepository
}

// NewBorrowerService creates a new borrower service
func NewBorrowerService(borrowerRepo repositories.BorrowerRepository) *BorrowerService {
	return &BorrowerService{borrowerRepo: borrowerRepo}
}

// CreateBorrowerInput represents borrower creation input
type CreateBorrowerInput struct {
	FullName   string `json:"full_name" validate:"required,min=2,max=150"`
	Phone      string `json:"phone"`
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
}

// Create registers a new borrower under the acting organization
func (s *BorrowerService) Create(ctx context.Context, orgID uint, input *CreateBorrowerInput) (*models.Borrower, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	if input.FullName == "" {
		return nil, ErrBorrowerNameMissing
	}

	borrower := &models.Borrower{
		OrganizationID: orgID,
		FullName:       input.FullName,
		Phone:          strings.TrimSpace(input.Phone),
		NationalID:     strings.TrimSpace(input.NationalID),
		Address:        strings.TrimSpace(input.Address),
	}
	if err := s.borrowerRepo.Create(ctx, borrower); err != nil {
		return nil, err
	}
	return borrower, nil
}

// GetByID returns one borrower within the acting organization
func (s *BorrowerService) GetByID(ctx context.Context, orgID, id uint) (*models.Borrower, error) {
	borrower, err := s.borrowerRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBorrowerNotFound
		}
		return nil, err
	}
	return borrower, nil
}

// List returns a page of borrowers for the acting organization
func (s *BorrowerService) List(ctx context.Context, orgID uint, offset, limit int) ([]*models.Borrower, int64, error) {
	return s.borrowerRepo.List(ctx, orgID, offset, limit)
}
