package ledger

import (
	"testing"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestTerms(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		rate         float64
		wantInterest float64
		wantTotal    float64
	}{
		{"default rate", 100000, 20, 20000, 120000},
		{"zero rate", 50000, 0, 0, 50000},
		{"fractional rate", 10000, 12.5, 1250, 11250},
		{"small principal", 100, 20, 20, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interest, total := Terms(tt.principal, tt.rate)
			assert.Equal(t, tt.wantInterest, interest)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestApplyPayment(t *testing.T) {
	t.Run("partial payment", func(t *testing.T) {
		paid, outstanding, paidOff := ApplyPayment(120000, 0, 50000)
		assert.Equal(t, 50000.0, paid)
		assert.Equal(t, 70000.0, outstanding)
		assert.False(t, paidOff)
	})

	t.Run("sequence reaches zero exactly", func(t *testing.T) {
		paid, outstanding, paidOff := ApplyPayment(120000, 50000, 70000)
		assert.Equal(t, 120000.0, paid)
		assert.Equal(t, 0.0, outstanding)
		assert.True(t, paidOff)
	})

	t.Run("overpayment clamps at zero", func(t *testing.T) {
		paid, outstanding, paidOff := ApplyPayment(120000, 100000, 50000)
		assert.Equal(t, 150000.0, paid)
		assert.Equal(t, 0.0, outstanding)
		assert.True(t, paidOff)
	})

	t.Run("outstanding never increases", func(t *testing.T) {
		prev := 120000.0
		paid := 0.0
		for _, amount := range []float64{10000, 35000, 20000, 60000, 5000} {
			var outstanding float64
			paid, outstanding, _ = ApplyPayment(120000, paid, amount)
			assert.LessOrEqual(t, outstanding, prev)
			assert.GreaterOrEqual(t, outstanding, 0.0)
			prev = outstanding
		}
	})
}

func TestComputeMetrics(t *testing.T) {
	loans := []models.Loan{
		{AmountLoaned: 100000, Status: "pending"},
		{AmountLoaned: 50000, Status: "approved"},
		{AmountLoaned: 30000, Status: "paid"},
	}
	repayments := []models.Repayment{
		{AmountPaid: 36000},
		{AmountPaid: 24000},
	}
	expenses := []models.Expense{
		{Amount: 10000},
		{Amount: 5000},
	}

	m := ComputeMetrics(loans, repayments, expenses)

	assert.Equal(t, 3, m.TotalLoans)
	assert.Equal(t, 2, m.ActiveLoans)
	assert.Equal(t, 180000.0, m.TotalLoanPrincipal)
	assert.Equal(t, 60000.0, m.TotalRepaid)
	assert.Equal(t, 120000.0, m.OutstandingBalance)
	assert.Equal(t, 15000.0, m.TotalExpenses)
	assert.Equal(t, 45000.0, m.NetProfit)
}

func TestSummarizeIdentities(t *testing.T) {
	loans := []models.Loan{
		{AmountLoaned: 100000, Status: "pending"},
	}
	repayments := []models.Repayment{
		{AmountPaid: 40000},
	}
	expenses := []models.Expense{
		{Amount: 12000},
	}
	cashflows := []models.CashFlow{
		{Type: "inflow", Amount: 200000},
		{Type: "outflow", Amount: 80000},
		{Type: "inflow", Amount: 15000},
	}

	s := Summarize(loans, repayments, expenses, cashflows)

	assert.Equal(t, 215000.0, s.TotalInflow)
	assert.Equal(t, 80000.0, s.TotalOutflow)
	assert.Equal(t, s.TotalInflow-s.TotalOutflow, s.NetCashFlow)
	assert.Equal(t, s.TotalRepaid-s.TotalExpenses, s.NetProfit)
	assert.Equal(t, s.NetCashFlow+s.NetProfit, s.AvailableCash)
}

func TestDailyBreakdownPartitionsTotals(t *testing.T) {
	start := date(2026, time.March, 1)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	loans := []models.Loan{
		{AmountLoaned: 10000, CreatedAt: date(2026, time.March, 3)},
		{AmountLoaned: 20000, CreatedAt: date(2026, time.March, 17)},
	}
	repayments := []models.Repayment{
		{AmountPaid: 5000, PaidAt: date(2026, time.March, 3)},
		{AmountPaid: 7000, PaidAt: date(2026, time.March, 28)},
	}
	expenses := []models.Expense{
		{Amount: 1500, ExpenseDate: date(2026, time.March, 10)},
	}
	cashflows := []models.CashFlow{
		{Type: "inflow", Amount: 30000, Date: date(2026, time.March, 1)},
		{Type: "outflow", Amount: 4000, Date: date(2026, time.March, 31)},
	}

	buckets := DailyBreakdown(start, end, loans, repayments, expenses, cashflows)
	require.Len(t, buckets, 31)

	var loanCount int
	var loanAmount, repaid, spent, inflow, outflow float64
	for _, b := range buckets {
		loanCount += b.Loans
		loanAmount += b.LoanAmount
		repaid += b.Repayments
		spent += b.Expenses
		inflow += b.Inflow
		outflow += b.Outflow
	}

	summary := Summarize(loans, repayments, expenses, cashflows)
	assert.Equal(t, summary.TotalLoans, loanCount)
	assert.Equal(t, summary.TotalLoanAmount, loanAmount)
	assert.Equal(t, summary.TotalRepaid, repaid)
	assert.Equal(t, summary.TotalExpenses, spent)
	assert.Equal(t, summary.TotalInflow, inflow)
	assert.Equal(t, summary.TotalOutflow, outflow)
}

func TestMonthlyBreakdownPartitionsTotals(t *testing.T) {
	loans := []models.Loan{
		{AmountLoaned: 10000, CreatedAt: date(2026, time.January, 15)},
		{AmountLoaned: 25000, CreatedAt: date(2026, time.August, 2)},
	}
	repayments := []models.Repayment{
		{AmountPaid: 12000, PaidAt: date(2026, time.December, 31)},
	}

	buckets := MonthlyBreakdown(2026, time.UTC, loans, repayments, nil, nil)
	require.Len(t, buckets, 12)

	assert.Equal(t, 1, buckets[0].Loans)
	assert.Equal(t, 10000.0, buckets[0].LoanAmount)
	assert.Equal(t, "August", buckets[7].MonthName)
	assert.Equal(t, 25000.0, buckets[7].LoanAmount)
	assert.Equal(t, 12000.0, buckets[11].Repayments)
}

func TestMergedFeed(t *testing.T) {
	cashflows := []models.CashFlow{
		{ID: 1, Type: "inflow", Amount: 50000, Description: "Seed capital", Category: "Capital", Date: date(2026, time.May, 1)},
	}
	expenses := []models.Expense{
		{ID: 2, Title: "Office rent", Amount: 8000, ExpenseDate: date(2026, time.May, 3)},
	}
	repayments := []models.Repayment{
		{ID: 3, AmountPaid: 12000, PaidAt: date(2026, time.May, 2)},
	}

	feed := MergedFeed(cashflows, expenses, repayments)
	require.Len(t, feed, 3)

	// Sorted date descending
	assert.Equal(t, FeedSourceExpense, feed[0].Source)
	assert.Equal(t, FeedSourceRepayment, feed[1].Source)
	assert.Equal(t, FeedSourceCashFlow, feed[2].Source)

	// Expense maps to an outflow with the title as description and
	// the category fallback
	assert.Equal(t, "outflow", feed[0].Type)
	assert.Equal(t, "Office rent", feed[0].Description)
	assert.Equal(t, "Expense", feed[0].Category)

	// Repayment maps to an inflow
	assert.Equal(t, "inflow", feed[1].Type)
	assert.Equal(t, "Loan Repayment", feed[1].Description)
	assert.Equal(t, "Repayment", feed[1].Category)

	summary := SummarizeFeed(feed)
	assert.Equal(t, 62000.0, summary.Inflows)
	assert.Equal(t, 8000.0, summary.Outflows)
	assert.Equal(t, 54000.0, summary.Net)
	assert.Equal(t, 3, summary.Count)
}

func TestComputeAging(t *testing.T) {
	today := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)
	borrower := &models.Borrower{ID: 7, FullName: "Asha Mollel"}

	loans := []models.Loan{
		// 3 days past due: near_deadline
		{ID: 1, BorrowerID: 7, Borrower: borrower, Status: "pending",
			PrincipalOutstanding: 30000, DueDate: today.AddDate(0, 0, -3)},
		// 10 days past due: overdue
		{ID: 2, BorrowerID: 7, Borrower: borrower, Status: "approved",
			PrincipalOutstanding: 45000, DueDate: today.AddDate(0, 0, -10)},
		// 40 days past due: severely_overdue
		{ID: 3, BorrowerID: 7, Borrower: borrower, Status: "pending",
			PrincipalOutstanding: 12000, DueDate: today.AddDate(0, 0, -40)},
		// Paid loans never age, however late
		{ID: 4, BorrowerID: 7, Borrower: borrower, Status: "paid",
			PrincipalOutstanding: 0, DueDate: today.AddDate(0, 0, -90)},
		// Not due yet: excluded from buckets
		{ID: 5, BorrowerID: 7, Borrower: borrower, Status: "pending",
			PrincipalOutstanding: 9000, DueDate: today.AddDate(0, 0, 10)},
	}

	buckets, collections := ComputeAging(loans, today)

	require.Len(t, buckets.NearDeadline, 1)
	require.Len(t, buckets.Overdue, 1)
	require.Len(t, buckets.SeverelyOverdue, 1)
	assert.Equal(t, uint(1), buckets.NearDeadline[0].LoanID)
	assert.Equal(t, uint(2), buckets.Overdue[0].LoanID)
	assert.Equal(t, uint(3), buckets.SeverelyOverdue[0].LoanID)
	assert.Equal(t, 3, buckets.Total)
	assert.Equal(t, 87000.0, buckets.TotalAmount)
	assert.Equal(t, "Asha Mollel", buckets.Overdue[0].BorrowerName)

	// Every due loan shows up as an expected collection, largest
	// amount first
	assert.Empty(t, collections.Today)
	require.Len(t, collections.Late, 3)
	assert.Equal(t, 45000.0, collections.Late[0].ExpectedAmount)
	assert.Equal(t, 87000.0, collections.TotalExpected)
}

func TestComputeAgingDueToday(t *testing.T) {
	today := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)
	loans := []models.Loan{
		{ID: 1, Status: "pending", PrincipalOutstanding: 5000,
			DueDate: time.Date(2026, time.June, 15, 8, 0, 0, 0, time.UTC)},
	}

	buckets, collections := ComputeAging(loans, today)

	require.Len(t, buckets.NearDeadline, 1)
	assert.Equal(t, 0, buckets.NearDeadline[0].DaysPastDue)
	require.Len(t, collections.Today, 1)
	assert.Empty(t, collections.Late)
}

func TestComputeAgingDueLaterToday(t *testing.T) {
	today := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)
	loans := []models.Loan{
		// Due in 8 hours: not past due, not collectible yet
		{ID: 1, Status: "pending", PrincipalOutstanding: 5000,
			DueDate: time.Date(2026, time.June, 15, 18, 0, 0, 0, time.UTC)},
	}

	buckets, collections := ComputeAging(loans, today)

	assert.Empty(t, buckets.NearDeadline)
	assert.Equal(t, 0, buckets.Total)
	assert.Empty(t, collections.Today)
	assert.Empty(t, collections.Late)
}

func TestMonthlyChart(t *testing.T) {
	loans := []models.Loan{
		{AmountLoaned: 10000, CreatedAt: date(2026, time.February, 10)},
		{AmountLoaned: 15000, CreatedAt: date(2025, time.February, 20)},
	}
	repayments := []models.Repayment{
		{AmountPaid: 4000, PaidAt: date(2026, time.July, 1)},
	}

	points := MonthlyChart(loans, repayments)
	require.Len(t, points, 12)

	// Years collapse into calendar months
	assert.Equal(t, "February", points[1].Month)
	assert.Equal(t, 25000.0, points[1].Loans)
	assert.Equal(t, 4000.0, points[6].Repayments)
	assert.Equal(t, 0.0, points[0].Loans)
}
