// Package ledger holds the pure loan and cash-flow arithmetic. Every
// function reduces in-memory record slices already scoped to one
// tenant; nothing here touches storage, so the math is unit-testable
// on its own.
package ledger

import (
	"math"
	"sort"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
)

// ============================================================
// Loan math
// ============================================================

// Terms computes the flat interest and total for a principal at a
// percentage rate.
func Terms(principal, rate float64) (interestAmount, totalAmount float64) {
	interestAmount = principal * rate / 100
	totalAmount = principal + interestAmount
	return interestAmount, totalAmount
}

// ApplyPayment applies one repayment to a loan's running balance.
// The outstanding is clamped at zero; paidOff is true exactly when
// the clamp fires, and a loan that reached zero stays at zero no
// matter how much more is paid.
func ApplyPayment(totalAmount, paidAmount, amount float64) (newPaid, outstanding float64, paidOff bool) {
	newPaid = paidAmount + amount
	outstanding = totalAmount - newPaid
	if outstanding <= 0 {
		outstanding = 0
		paidOff = true
	}
	return newPaid, outstanding, paidOff
}

// ============================================================
// Portfolio metrics
// ============================================================

// Metrics is the headline dashboard view.
type Metrics struct {
	TotalLoans         int     `json:"total_loans"`
	ActiveLoans        int     `json:"active_loans"`
	TotalLoanPrincipal float64 `json:"total_loan_principal"`
	TotalRepaid        float64 `json:"total_repaid"`
	OutstandingBalance float64 `json:"outstanding_balance"`
	TotalExpenses      float64 `json:"total_expenses"`
	NetProfit          float64 `json:"net_profit"`
}

// ComputeMetrics reduces the full tenant portfolio.
// OutstandingBalance is principal minus repaid; NetProfit is repaid
// minus operational expenses (manual cash-flow outflows excluded).
func ComputeMetrics(loans []models.Loan, repayments []models.Repayment, expenses []models.Expense) Metrics {
	m := Metrics{TotalLoans: len(loans)}

	for i := range loans {
		if loans[i].IsOpen() {
			m.ActiveLoans++
		}
		m.TotalLoanPrincipal += loans[i].AmountLoaned
	}
	for i := range repayments {
		m.TotalRepaid += repayments[i].AmountPaid
	}
	for i := range expenses {
		m.TotalExpenses += expenses[i].Amount
	}

	m.OutstandingBalance = m.TotalLoanPrincipal - m.TotalRepaid
	m.NetProfit = m.TotalRepaid - m.TotalExpenses
	return m
}

// Summary extends Metrics with manual cash-flow totals for the
// report views.
type Summary struct {
	TotalLoans      int     `json:"total_loans"`
	ActiveLoans     int     `json:"active_loans"`
	TotalLoanAmount float64 `json:"total_loan_amount"`
	TotalRepaid     float64 `json:"total_repaid"`
	TotalExpenses   float64 `json:"total_expenses"`
	TotalInflow     float64 `json:"total_inflow"`
	TotalOutflow    float64 `json:"total_outflow"`
	NetCashFlow     float64 `json:"net_cash_flow"`
	NetProfit       float64 `json:"net_profit"`
	AvailableCash   float64 `json:"available_cash"`
}

// Summarize reduces one reporting period. AvailableCash is
// NetCashFlow + NetProfit by construction.
func Summarize(loans []models.Loan, repayments []models.Repayment, expenses []models.Expense, cashflows []models.CashFlow) Summary {
	s := Summary{TotalLoans: len(loans)}

	for i := range loans {
		if loans[i].IsOpen() {
			s.ActiveLoans++
		}
		s.TotalLoanAmount += loans[i].AmountLoaned
	}
	for i := range repayments {
		s.TotalRepaid += repayments[i].AmountPaid
	}
	for i := range expenses {
		s.TotalExpenses += expenses[i].Amount
	}
	for i := range cashflows {
		switch cashflows[i].Type {
		case "inflow":
			s.TotalInflow += cashflows[i].Amount
		case "outflow":
			s.TotalOutflow += cashflows[i].Amount
		}
	}

	s.NetCashFlow = s.TotalInflow - s.TotalOutflow
	s.NetProfit = s.TotalRepaid - s.TotalExpenses
	s.AvailableCash = s.NetCashFlow + s.NetProfit
	return s
}

// ============================================================
// Date-bucketed breakdowns
// ============================================================

// DayBucket is one day's slice of a period report.
type DayBucket struct {
	Date       string  `json:"date"`
	Loans      int     `json:"loans"`
	LoanAmount float64 `json:"loan_amount"`
	Repayments float64 `json:"repayments"`
	Expenses   float64 `json:"expenses"`
	Inflow     float64 `json:"inflow"`
	Outflow    float64 `json:"outflow"`
}

// MonthBucket is one month's slice of a yearly report.
type MonthBucket struct {
	Month      int     `json:"month"`
	MonthName  string  `json:"month_name"`
	Loans      int     `json:"loans"`
	LoanAmount float64 `json:"loan_amount"`
	Repayments float64 `json:"repayments"`
	Expenses   float64 `json:"expenses"`
	Inflow     float64 `json:"inflow"`
	Outflow    float64 `json:"outflow"`
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func reduceBucket(start, end time.Time, loans []models.Loan, repayments []models.Repayment, expenses []models.Expense, cashflows []models.CashFlow) (loanCount int, loanAmount, repaid, spent, inflow, outflow float64) {
	for i := range loans {
		if within(loans[i].CreatedAt, start, end) {
			loanCount++
			loanAmount += loans[i].AmountLoaned
		}
	}
	for i := range repayments {
		if within(repayments[i].PaidAt, start, end) {
			repaid += repayments[i].AmountPaid
		}
	}
	for i := range expenses {
		if within(expenses[i].ExpenseDate, start, end) {
			spent += expenses[i].Amount
		}
	}
	for i := range cashflows {
		if !within(cashflows[i].Date, start, end) {
			continue
		}
		switch cashflows[i].Type {
		case "inflow":
			inflow += cashflows[i].Amount
		case "outflow":
			outflow += cashflows[i].Amount
		}
	}
	return
}

// DailyBreakdown partitions [start, end) into calendar days and
// reduces each day with the same formulas as the period summary, so
// the bucket sums always equal the unbucketed totals.
func DailyBreakdown(start, end time.Time, loans []models.Loan, repayments []models.Repayment, expenses []models.Expense, cashflows []models.CashFlow) []DayBucket {
	var buckets []DayBucket
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		next := day.AddDate(0, 0, 1)
		count, amount, repaid, spent, in, out := reduceBucket(day, next, loans, repayments, expenses, cashflows)
		buckets = append(buckets, DayBucket{
			Date:       day.Format("2006-01-02"),
			Loans:      count,
			LoanAmount: amount,
			Repayments: repaid,
			Expenses:   spent,
			Inflow:     in,
			Outflow:    out,
		})
	}
	return buckets
}

// MonthlyBreakdown partitions one calendar year into months.
func MonthlyBreakdown(year int, loc *time.Location, loans []models.Loan, repayments []models.Repayment, expenses []models.Expense, cashflows []models.CashFlow) []MonthBucket {
	buckets := make([]MonthBucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		start := time.Date(year, m, 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0)
		count, amount, repaid, spent, in, out := reduceBucket(start, end, loans, repayments, expenses, cashflows)
		buckets = append(buckets, MonthBucket{
			Month:      int(m),
			MonthName:  m.String(),
			Loans:      count,
			LoanAmount: amount,
			Repayments: repaid,
			Expenses:   spent,
			Inflow:     in,
			Outflow:    out,
		})
	}
	return buckets
}

// ============================================================
// Combined transaction feed
// ============================================================

// FeedEntry is the shared shape of the transaction feed: manual
// cash-flow entries plus expenses and repayments mapped into it.
type FeedEntry struct {
	ID          uint      `json:"id"`
	Source      string    `json:"source"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

// Feed sources
const (
	FeedSourceCashFlow  = "cashflow"
	FeedSourceExpense   = "expense"
	FeedSourceRepayment = "repayment"
)

// MergedFeed maps expenses to synthetic outflows (description is the
// expense title, category falls back to "Expense") and repayments to
// synthetic inflows, merges them with the manual entries and sorts
// the result by date descending.
func MergedFeed(cashflows []models.CashFlow, expenses []models.Expense, repayments []models.Repayment) []FeedEntry {
	feed := make([]FeedEntry, 0, len(cashflows)+len(expenses)+len(repayments))

	for i := range cashflows {
		feed = append(feed, FeedEntry{
			ID:          cashflows[i].ID,
			Source:      FeedSourceCashFlow,
			Type:        cashflows[i].Type,
			Amount:      cashflows[i].Amount,
			Description: cashflows[i].Description,
			Category:    cashflows[i].Category,
			Date:        cashflows[i].Date,
		})
	}
	for i := range expenses {
		category := expenses[i].Category
		if category == "" {
			category = "Expense"
		}
		feed = append(feed, FeedEntry{
			ID:          expenses[i].ID,
			Source:      FeedSourceExpense,
			Type:        "outflow",
			Amount:      expenses[i].Amount,
			Description: expenses[i].Title,
			Category:    category,
			Date:        expenses[i].ExpenseDate,
		})
	}
	for i := range repayments {
		feed = append(feed, FeedEntry{
			ID:          repayments[i].ID,
			Source:      FeedSourceRepayment,
			Type:        "inflow",
			Amount:      repayments[i].AmountPaid,
			Description: "Loan Repayment",
			Category:    "Repayment",
			Date:        repayments[i].PaidAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	return feed
}

// FeedSummary totals a feed slice.
type FeedSummary struct {
	Inflows  float64 `json:"inflows"`
	Outflows float64 `json:"outflows"`
	Net      float64 `json:"net"`
	Count    int     `json:"count"`
}

// SummarizeFeed sums a feed by direction.
func SummarizeFeed(feed []FeedEntry) FeedSummary {
	s := FeedSummary{Count: len(feed)}
	for i := range feed {
		switch feed[i].Type {
		case "inflow":
			s.Inflows += feed[i].Amount
		case "outflow":
			s.Outflows += feed[i].Amount
		}
	}
	s.Net = s.Inflows - s.Outflows
	return s
}

// ============================================================
// Aging analysis
// ============================================================

// Aging bucket statuses
const (
	AgingNearDeadline    = "near_deadline"
	AgingOverdue         = "overdue"
	AgingSeverelyOverdue = "severely_overdue"
)

// AgingEntry is one past-due loan in the aging report.
type AgingEntry struct {
	BorrowerID   uint      `json:"borrower_id"`
	BorrowerName string    `json:"borrower_name"`
	LoanID       uint      `json:"loan_id"`
	DueDate      time.Time `json:"due_date"`
	DaysPastDue  int       `json:"days_past_due"`
	AmountDue    float64   `json:"amount_due"`
	Status       string    `json:"status"`
}

// AgingBuckets groups past-due loans by how late they are.
type AgingBuckets struct {
	NearDeadline    []AgingEntry `json:"near_deadline"`
	Overdue         []AgingEntry `json:"overdue"`
	SeverelyOverdue []AgingEntry `json:"severely_overdue"`
	Total           int          `json:"total"`
	TotalAmount     float64      `json:"total_amount"`
}

// Collection is one loan whose due date has arrived unpaid.
type Collection struct {
	BorrowerID      uint      `json:"borrower_id"`
	BorrowerName    string    `json:"borrower_name"`
	LoanID          uint      `json:"loan_id"`
	ExpectedAmount  float64   `json:"expected_amount"`
	NextPaymentDate time.Time `json:"next_payment_date"`
}

// Collections splits expected collections into due-today and
// already-late.
type Collections struct {
	Today         []Collection `json:"today"`
	Late          []Collection `json:"late"`
	TotalExpected float64      `json:"total_expected"`
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ComputeAging classifies every open loan with a positive
// outstanding balance by days past due: 0-5 near_deadline, 6-30
// overdue, beyond that severely_overdue. Loans not yet due are
// excluded from the buckets. A loan whose due date is today or
// earlier also shows up as an expected collection. Fully paid loans
// never appear, whatever their due date.
func ComputeAging(loans []models.Loan, today time.Time) (AgingBuckets, Collections) {
	var buckets AgingBuckets
	var collections Collections
	var report []AgingEntry
	var expected []Collection

	for i := range loans {
		loan := &loans[i]
		if !loan.IsOpen() || loan.PrincipalOutstanding <= 0 {
			continue
		}

		// Floor so a loan due later today stays at -1 and out of
		// the buckets until the due date has actually passed.
		daysPastDue := int(math.Floor(today.Sub(loan.DueDate).Hours() / 24))
		name := ""
		if loan.Borrower != nil {
			name = loan.Borrower.FullName
		}

		if daysPastDue >= 0 {
			status := AgingSeverelyOverdue
			switch {
			case daysPastDue <= 5:
				status = AgingNearDeadline
			case daysPastDue <= 30:
				status = AgingOverdue
			}
			report = append(report, AgingEntry{
				BorrowerID:   loan.BorrowerID,
				BorrowerName: name,
				LoanID:       loan.ID,
				DueDate:      loan.DueDate,
				DaysPastDue:  daysPastDue,
				AmountDue:    loan.PrincipalOutstanding,
				Status:       status,
			})
		}

		if !loan.DueDate.After(today) {
			expected = append(expected, Collection{
				BorrowerID:      loan.BorrowerID,
				BorrowerName:    name,
				LoanID:          loan.ID,
				ExpectedAmount:  loan.PrincipalOutstanding,
				NextPaymentDate: loan.DueDate,
			})
		}
	}

	// Most overdue first
	sort.SliceStable(report, func(i, j int) bool {
		return report[i].DaysPastDue > report[j].DaysPastDue
	})
	// Largest expected amount first
	sort.SliceStable(expected, func(i, j int) bool {
		return expected[i].ExpectedAmount > expected[j].ExpectedAmount
	})

	for _, entry := range report {
		switch entry.Status {
		case AgingNearDeadline:
			buckets.NearDeadline = append(buckets.NearDeadline, entry)
		case AgingOverdue:
			buckets.Overdue = append(buckets.Overdue, entry)
		case AgingSeverelyOverdue:
			buckets.SeverelyOverdue = append(buckets.SeverelyOverdue, entry)
		}
		buckets.TotalAmount += entry.AmountDue
	}
	buckets.Total = len(report)

	for _, c := range expected {
		if sameDay(c.NextPaymentDate, today) {
			collections.Today = append(collections.Today, c)
		} else {
			collections.Late = append(collections.Late, c)
		}
		collections.TotalExpected += c.ExpectedAmount
	}

	return buckets, collections
}

// ============================================================
// Loans vs repayments chart
// ============================================================

// MonthPoint is one month of the loans-vs-repayments chart.
type MonthPoint struct {
	Month      string  `json:"month"`
	Loans      float64 `json:"loans"`
	Repayments float64 `json:"repayments"`
}

// MonthlyChart buckets loan principal and repaid amounts by calendar
// month (January..December, years collapsed).
func MonthlyChart(loans []models.Loan, repayments []models.Repayment) []MonthPoint {
	var loanSums, repaySums [12]float64
	for i := range loans {
		loanSums[int(loans[i].CreatedAt.Month())-1] += loans[i].AmountLoaned
	}
	for i := range repayments {
		repaySums[int(repayments[i].PaidAt.Month())-1] += repayments[i].AmountPaid
	}

	points := make([]MonthPoint, 12)
	for m := 0; m < 12; m++ {
		points[m] = MonthPoint{
			Month:      time.Month(m + 1).String(),
			Loans:      loanSums[m],
			Repayments: repaySums[m],
		}
	}
	return points
}
