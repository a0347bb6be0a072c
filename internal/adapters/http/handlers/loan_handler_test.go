package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/core/ledger"
	"tanzanex-lend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubLoanRepo holds a single loan and applies payments with the
// same balance rules as the storage transaction.
type stubLoanRepo struct {
	loan       *models.Loan
	repayments int
}

func (s *stubLoanRepo) Create(_ context.Context, l *models.Loan) error { return nil }

func (s *stubLoanRepo) GetByID(_ context.Context, orgID, id uint) (*models.Loan, error) {
	if s.loan == nil || s.loan.ID != id || (orgID != 0 && s.loan.OrganizationID != orgID) {
		return nil, gorm.ErrRecordNotFound
	}
	return s.loan, nil
}

func (s *stubLoanRepo) List(_ context.Context, orgID uint, offset, limit int) ([]*models.Loan, int64, error) {
	return nil, 0, nil
}

func (s *stubLoanRepo) ListAll(_ context.Context, orgID uint) ([]models.Loan, error) {
	return nil, nil
}

func (s *stubLoanRepo) ListBetween(_ context.Context, orgID uint, start, end time.Time) ([]models.Loan, error) {
	return nil, nil
}

func (s *stubLoanRepo) ListOpenWithBorrowers(_ context.Context, orgID uint) ([]models.Loan, error) {
	return nil, nil
}

func (s *stubLoanRepo) ApplyRepayment(ctx context.Context, orgID, loanID uint, amount float64, paidAt time.Time) (*models.Loan, *models.Repayment, error) {
	loan, err := s.GetByID(ctx, orgID, loanID)
	if err != nil {
		return nil, nil, err
	}
	s.repayments++
	repayment := &models.Repayment{
		ID:             uint(s.repayments),
		OrganizationID: loan.OrganizationID,
		LoanID:         loan.ID,
		AmountPaid:     amount,
		PaidAt:         paidAt,
	}
	newPaid, outstanding, paidOff := ledger.ApplyPayment(loan.TotalAmount, loan.PaidAmount, amount)
	loan.PaidAmount = newPaid
	loan.PrincipalOutstanding = outstanding
	if paidOff {
		loan.Status = "paid"
	}
	return loan, repayment, nil
}

type stubBorrowerRepo struct{}

func (stubBorrowerRepo) Create(_ context.Context, b *models.Borrower) error { return nil }
func (stubBorrowerRepo) GetByID(_ context.Context, orgID, id uint) (*models.Borrower, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubBorrowerRepo) List(_ context.Context, orgID uint, offset, limit int) ([]*models.Borrower, int64, error) {
	return nil, 0, nil
}

type stubRepaymentRepo struct{}

func (stubRepaymentRepo) List(_ context.Context, orgID uint) ([]models.Repayment, error) {
	return nil, nil
}
func (stubRepaymentRepo) ListBetween(_ context.Context, orgID uint, start, end time.Time) ([]models.Repayment, error) {
	return nil, nil
}

func newRepaymentTestApp(repo *stubLoanRepo) *fiber.App {
	svc := services.NewLoanService(repo, stubRepaymentRepo{}, stubBorrowerRepo{})
	handler := NewLoanHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		c.Locals("organizationID", uint(1))
		c.Locals("role", "staff")
		return c.Next()
	})
	app.Post("/repayments", handler.CreateRepayment)
	return app
}

func postJSON(app *fiber.App, path, body string) (int, error) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode, nil
}

func TestCreateRepaymentFlatRoute(t *testing.T) {
	repo := &stubLoanRepo{loan: &models.Loan{
		ID:                   4,
		OrganizationID:       1,
		TotalAmount:          12000,
		PrincipalOutstanding: 12000,
		Status:               "pending",
	}}
	app := newRepaymentTestApp(repo)

	status, err := postJSON(app, "/repayments", `{"loan_id":4,"amount_paid":5000}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, 5000.0, repo.loan.PaidAmount)
	assert.Equal(t, 7000.0, repo.loan.PrincipalOutstanding)
	assert.Equal(t, 1, repo.repayments)
}

func TestCreateRepaymentFlatRouteValidation(t *testing.T) {
	repo := &stubLoanRepo{loan: &models.Loan{
		ID:                   4,
		OrganizationID:       1,
		TotalAmount:          12000,
		PrincipalOutstanding: 12000,
		Status:               "pending",
	}}
	app := newRepaymentTestApp(repo)

	status, err := postJSON(app, "/repayments", `{"amount_paid":5000}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, err = postJSON(app, "/repayments", `{"loan_id":99,"amount_paid":5000}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, err = postJSON(app, "/repayments", `{"loan_id":4,"amount_paid":0}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
