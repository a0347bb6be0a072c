package services

import (
	"context"
	"errors"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/adapters/persistence/repositories"
	"tanzanex-lend/internal/core/ledger"
)

// Dashboard errors
var (
	ErrInvalidPeriod = errors.New("period must be monthly or yearly")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
)

// Report periods
const (
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// DashboardService builds the reporting views. All aggregation
// happens in memory over tenant-scoped rows, with the same formulas
// everywhere.
type DashboardService struct {
	loanRepo      repositories.LoanRepository
	repaymentRepo repositories.RepaymentRepository
	expenseRepo   repositories.ExpenseRepository
	cashFlowRepo  repositories.CashFlowRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	loanRepo repositories.LoanRepository,
	repaymentRepo repositories.RepaymentRepository,
	expenseRepo repositories.ExpenseRepository,
	cashFlowRepo repositories.CashFlowRepository,
) *DashboardService {
	return &DashboardService{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		expenseRepo:   expenseRepo,
		cashFlowRepo:  cashFlowRepo,
	}
}

// Metrics returns the headline portfolio numbers
func (s *DashboardService) Metrics(ctx context.Context, orgID uint) (*ledger.Metrics, error) {
	loans, repayments, expenses, err := s.loadPortfolio(ctx, orgID)
	if err != nil {
		return nil, err
	}
	m := ledger.ComputeMetrics(loans, repayments, expenses)
	return &m, nil
}

// ReportOutput is one reporting period: its summary plus the
// per-day or per-month breakdown.
type ReportOutput struct {
	Period    string               `json:"period"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Summary   ledger.Summary       `json:"summary"`
	Daily     []ledger.DayBucket   `json:"daily_breakdown,omitempty"`
	Monthly   []ledger.MonthBucket `json:"monthly_breakdown,omitempty"`
}

// Report reduces one period. "monthly" covers one calendar month
// with a daily breakdown; "yearly" covers one year with a monthly
// breakdown. Zero year or month falls back to the current one.
func (s *DashboardService) Report(ctx context.Context, orgID uint, period string, year, month int) (*ReportOutput, error) {
	now := time.Now()
	loc := now.Location()

	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	var start, end time.Time
	switch period {
	case PeriodMonthly:
		start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	case PeriodYearly:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
	default:
		return nil, ErrInvalidPeriod
	}

	loans, err := s.loanRepo.ListBetween(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}
	repayments, err := s.repaymentRepo.ListBetween(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListBetween(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}
	cashflows, err := s.cashFlowRepo.ListBetween(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}

	out := &ReportOutput{
		Period:    period,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.AddDate(0, 0, -1).Format("2006-01-02"),
		Summary:   ledger.Summarize(loans, repayments, expenses, cashflows),
	}
	switch period {
	case PeriodMonthly:
		out.Daily = ledger.DailyBreakdown(start, end, loans, repayments, expenses, cashflows)
	case PeriodYearly:
		out.Monthly = ledger.MonthlyBreakdown(year, loc, loans, repayments, expenses, cashflows)
	}
	return out, nil
}

// AgingOutput is the past-due report plus expected collections
type AgingOutput struct {
	Buckets     ledger.AgingBuckets `json:"buckets"`
	Collections ledger.Collections  `json:"collections"`
	AsOf        string              `json:"as_of"`
}

// Aging classifies open loans by how far past due they are
func (s *DashboardService) Aging(ctx context.Context, orgID uint) (*AgingOutput, error) {
	loans, err := s.loanRepo.ListOpenWithBorrowers(ctx, orgID)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	buckets, collections := ledger.ComputeAging(loans, today)
	return &AgingOutput{
		Buckets:     buckets,
		Collections: collections,
		AsOf:        today.Format("2006-01-02"),
	}, nil
}

// TodayTransactions returns the merged transaction feed restricted
// to the current day, with its totals.
func (s *DashboardService) TodayTransactions(ctx context.Context, orgID uint) (*FeedOutput, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	cashflows, err := s.cashFlowRepo.ListBetween(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListBetween(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}
	repayments, err := s.repaymentRepo.ListBetween(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}

	feed := ledger.MergedFeed(cashflows, expenses, repayments)
	return &FeedOutput{
		Transactions: feed,
		Summary:      ledger.SummarizeFeed(feed),
	}, nil
}

// LoansVsRepayments returns the monthly disbursed-vs-collected
// chart series.
func (s *DashboardService) LoansVsRepayments(ctx context.Context, orgID uint) ([]ledger.MonthPoint, error) {
	loans, err := s.loanRepo.ListAll(ctx, orgID)
	if err != nil {
		return nil, err
	}
	repayments, err := s.repaymentRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return ledger.MonthlyChart(loans, repayments), nil
}

func (s *DashboardService) loadPortfolio(ctx context.Context, orgID uint) ([]models.Loan, []models.Repayment, []models.Expense, error) {
	loans, err := s.loanRepo.ListAll(ctx, orgID)
	if err != nil {
		return nil, nil, nil, err
	}
	repayments, err := s.repaymentRepo.List(ctx, orgID)
	if err != nil {
		return nil, nil, nil, err
	}
	expenses, err := s.expenseRepo.List(ctx, orgID)
	if err != nil {
		return nil, nil, nil, err
	}
	return loans, repayments, expenses, nil
}
