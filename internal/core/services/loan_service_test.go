package services

import (
	"context"
	"testing"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/core/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeBorrowerRepo is an in-memory BorrowerRepository
type fakeBorrowerRepo struct {
	borrowers map[uint]*models.Borrower
}

func newFakeBorrowerRepo() *fakeBorrowerRepo {
	return &fakeBorrowerRepo{borrowers: make(map[uint]*models.Borrower)}
}

func (f *fakeBorrowerRepo) Create(_ context.Context, b *models.Borrower) error {
	b.ID = uint(len(f.borrowers) + 1)
	f.borrowers[b.ID] = b
	return nil
}

func (f *fakeBorrowerRepo) GetByID(_ context.Context, orgID, id uint) (*models.Borrower, error) {
	b, ok := f.borrowers[id]
	if !ok || (orgID != 0 && b.OrganizationID != orgID) {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeBorrowerRepo) List(_ context.Context, orgID uint, offset, limit int) ([]*models.Borrower, int64, error) {
	var out []*models.Borrower
	for _, b := range f.borrowers {
		if orgID == 0 || b.OrganizationID == orgID {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

// fakeLoanRepo is an in-memory LoanRepository applying the same
// balance rules as the storage transaction.
type fakeLoanRepo struct {
	loans      map[uint]*models.Loan
	repayments []*models.Repayment
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[uint]*models.Loan)}
}

func (f *fakeLoanRepo) Create(_ context.Context, l *models.Loan) error {
	l.ID = uint(len(f.loans) + 1)
	l.CreatedAt = time.Now()
	f.loans[l.ID] = l
	return nil
}

func (f *fakeLoanRepo) GetByID(_ context.Context, orgID, id uint) (*models.Loan, error) {
	l, ok := f.loans[id]
	if !ok || (orgID != 0 && l.OrganizationID != orgID) {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (f *fakeLoanRepo) List(_ context.Context, orgID uint, offset, limit int) ([]*models.Loan, int64, error) {
	var out []*models.Loan
	for _, l := range f.loans {
		if orgID == 0 || l.OrganizationID == orgID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLoanRepo) ListAll(_ context.Context, orgID uint) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range f.loans {
		if orgID == 0 || l.OrganizationID == orgID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLoanRepo) ListBetween(_ context.Context, orgID uint, start, end time.Time) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range f.loans {
		if (orgID == 0 || l.OrganizationID == orgID) && within(l.CreatedAt, start, end) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLoanRepo) ListOpenWithBorrowers(_ context.Context, orgID uint) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range f.loans {
		if (orgID == 0 || l.OrganizationID == orgID) && l.IsOpen() {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLoanRepo) ApplyRepayment(_ context.Context, orgID, loanID uint, amount float64, paidAt time.Time) (*models.Loan, *models.Repayment, error) {
	loan, ok := f.loans[loanID]
	if !ok || (orgID != 0 && loan.OrganizationID != orgID) {
		return nil, nil, gorm.ErrRecordNotFound
	}
	repayment := &models.Repayment{
		ID:             uint(len(f.repayments) + 1),
		OrganizationID: loan.OrganizationID,
		LoanID:         loan.ID,
		AmountPaid:     amount,
		PaidAt:         paidAt,
	}
	f.repayments = append(f.repayments, repayment)

	newPaid, outstanding, paidOff := ledger.ApplyPayment(loan.TotalAmount, loan.PaidAmount, amount)
	loan.PaidAmount = newPaid
	loan.PrincipalOutstanding = outstanding
	if paidOff {
		loan.Status = "paid"
	}
	return loan, repayment, nil
}

// fakeRepaymentRepo is an in-memory RepaymentRepository
type fakeRepaymentRepo struct {
	loanRepo *fakeLoanRepo
}

func (f *fakeRepaymentRepo) List(_ context.Context, orgID uint) ([]models.Repayment, error) {
	var out []models.Repayment
	for _, r := range f.loanRepo.repayments {
		if orgID == 0 || r.OrganizationID == orgID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepaymentRepo) ListBetween(_ context.Context, orgID uint, start, end time.Time) ([]models.Repayment, error) {
	var out []models.Repayment
	for _, r := range f.loanRepo.repayments {
		if (orgID == 0 || r.OrganizationID == orgID) && within(r.PaidAt, start, end) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func within(ts, start, end time.Time) bool {
	return !ts.Before(start) && ts.Before(end)
}

func newLoanServiceFixture(t *testing.T) (*LoanService, *fakeLoanRepo, *models.Borrower) {
	t.Helper()

	borrowerRepo := newFakeBorrowerRepo()
	loanRepo := newFakeLoanRepo()
	svc := NewLoanService(loanRepo, &fakeRepaymentRepo{loanRepo: loanRepo}, borrowerRepo)

	borrower := &models.Borrower{OrganizationID: 1, FullName: "Neema Juma"}
	require.NoError(t, borrowerRepo.Create(context.Background(), borrower))

	return svc, loanRepo, borrower
}

func TestLoanCreate(t *testing.T) {
	svc, _, borrower := newLoanServiceFixture(t)
	ctx := context.Background()

	loan, err := svc.Create(ctx, 1, &CreateLoanInput{
		BorrowerID:   borrower.ID,
		AmountLoaned: 100000,
		Months:       1,
	})
	require.NoError(t, err)

	assert.Equal(t, 100000.0, loan.AmountLoaned)
	assert.Equal(t, 20.0, loan.InterestRate)
	assert.Equal(t, 20000.0, loan.InterestAmount)
	assert.Equal(t, 120000.0, loan.TotalAmount)
	assert.Equal(t, 120000.0, loan.PrincipalOutstanding)
	assert.Equal(t, 0.0, loan.PaidAmount)
	assert.Equal(t, "pending", loan.Status)
	assert.NotEmpty(t, loan.ReferenceNo)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), loan.DueDate, time.Minute)
}

func TestLoanCreateAliases(t *testing.T) {
	svc, _, borrower := newLoanServiceFixture(t)
	ctx := context.Background()

	rate := 10.0
	loan, err := svc.Create(ctx, 1, &CreateLoanInput{
		BorrowerID:   borrower.ID,
		Amount:       50000,
		InterestRate: &rate,
		Duration:     3,
	})
	require.NoError(t, err)

	assert.Equal(t, 50000.0, loan.AmountLoaned)
	assert.Equal(t, 10.0, loan.InterestRate)
	assert.Equal(t, 55000.0, loan.TotalAmount)
	assert.Equal(t, 3, loan.Months)
}

func TestLoanCreateValidation(t *testing.T) {
	svc, _, borrower := newLoanServiceFixture(t)
	ctx := context.Background()
	negative := -5.0

	tests := []struct {
		name    string
		input   *CreateLoanInput
		wantErr error
	}{
		{"missing borrower", &CreateLoanInput{AmountLoaned: 1000}, ErrBorrowerRequired},
		{"zero amount", &CreateLoanInput{BorrowerID: borrower.ID}, ErrAmountRequired},
		{"negative rate", &CreateLoanInput{BorrowerID: borrower.ID, AmountLoaned: 1000, InterestRate: &negative}, ErrRateNegative},
		{"negative months", &CreateLoanInput{BorrowerID: borrower.ID, AmountLoaned: 1000, Months: -2}, ErrMonthsInvalid},
		{"unknown borrower", &CreateLoanInput{BorrowerID: 999, AmountLoaned: 1000}, ErrBorrowerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoanCreateCrossOrgBorrower(t *testing.T) {
	svc, _, borrower := newLoanServiceFixture(t)

	_, err := svc.Create(context.Background(), 2, &CreateLoanInput{
		BorrowerID:   borrower.ID,
		AmountLoaned: 1000,
	})
	assert.ErrorIs(t, err, ErrBorrowerNotFound)
}

func TestLoanRepay(t *testing.T) {
	svc, _, borrower := newLoanServiceFixture(t)
	ctx := context.Background()

	loan, err := svc.Create(ctx, 1, &CreateLoanInput{
		BorrowerID:   borrower.ID,
		AmountLoaned: 100000,
	})
	require.NoError(t, err)

	// Partial payment keeps the loan open
	updated, repayment, err := svc.Repay(ctx, 1, loan.ID, &RepaymentInput{AmountPaid: 50000})
	require.NoError(t, err)
	assert.Equal(t, 50000.0, repayment.AmountPaid)
	assert.Equal(t, 50000.0, updated.PaidAmount)
	assert.Equal(t, 70000.0, updated.PrincipalOutstanding)
	assert.Equal(t, "pending", updated.Status)

	// Final payment flips to paid at exactly zero
	updated, _, err = svc.Repay(ctx, 1, loan.ID, &RepaymentInput{AmountPaid: 70000})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.PrincipalOutstanding)
	assert.Equal(t, "paid", updated.Status)

	// Payments after settlement are still recorded; the balance
	// never goes negative and the status stays paid
	updated, repayment, err = svc.Repay(ctx, 1, loan.ID, &RepaymentInput{AmountPaid: 100})
	require.NoError(t, err)
	assert.Equal(t, 100.0, repayment.AmountPaid)
	assert.Equal(t, 120100.0, updated.PaidAmount)
	assert.Equal(t, 0.0, updated.PrincipalOutstanding)
	assert.Equal(t, "paid", updated.Status)
}

func TestLoanRepayValidation(t *testing.T) {
	svc, _, borrower := newLoanServiceFixture(t)
	ctx := context.Background()

	loan, err := svc.Create(ctx, 1, &CreateLoanInput{
		BorrowerID:   borrower.ID,
		AmountLoaned: 1000,
	})
	require.NoError(t, err)

	_, _, err = svc.Repay(ctx, 1, loan.ID, &RepaymentInput{AmountPaid: 0})
	assert.ErrorIs(t, err, ErrRepaymentInvalid)

	_, _, err = svc.Repay(ctx, 1, 999, &RepaymentInput{AmountPaid: 100})
	assert.ErrorIs(t, err, ErrLoanNotFound)

	// A loan in another organization is indistinguishable from a
	// missing one
	_, _, err = svc.Repay(ctx, 2, loan.ID, &RepaymentInput{AmountPaid: 100})
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestLoanRepayOverpaymentClamps(t *testing.T) {
	svc, _, borrower := newLoanServiceFixture(t)
	ctx := context.Background()

	loan, err := svc.Create(ctx, 1, &CreateLoanInput{
		BorrowerID:   borrower.ID,
		AmountLoaned: 1000,
	})
	require.NoError(t, err)

	updated, _, err := svc.Repay(ctx, 1, loan.ID, &RepaymentInput{AmountPaid: 5000})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.PrincipalOutstanding)
	assert.Equal(t, 5000.0, updated.PaidAmount)
	assert.Equal(t, "paid", updated.Status)

	updated, _, err = svc.Repay(ctx, 1, loan.ID, &RepaymentInput{AmountPaid: 5000})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.PrincipalOutstanding)
	assert.Equal(t, 10000.0, updated.PaidAmount)
	assert.Equal(t, "paid", updated.Status)
}
