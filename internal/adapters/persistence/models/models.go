package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Tenancy
// ============================================================

// Organization is the tenant boundary. Every other table carries
// an OrganizationID and is filtered by it.
type Organization struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"size:150;not null" json:"name"`
	SubscriptionStatus string         `gorm:"size:20;default:'trial'" json:"subscription_status"`
	TrialStartDate     time.Time      `gorm:"autoCreateTime" json:"trial_start_date"`
	ExpiryDate         *time.Time     `json:"expiry_date"`
	ContactEmail       string         `gorm:"size:100" json:"contact_email,omitempty"`
	PhoneNumber        string         `gorm:"size:30" json:"phone_number,omitempty"`
	Address            string         `gorm:"size:255" json:"address,omitempty"`
	ArchivedAt         *time.Time     `json:"archived_at,omitempty"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Organization) TableName() string {
	return "organizations"
}

// ============================================================
// Auth & Staff
// ============================================================

// User represents a staff account inside one organization.
// Super-admins have OrganizationID = 0 and see every tenant.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"index" json:"organization_id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Email          string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password       string         `gorm:"size:255;not null" json:"-"`
	Role           string         `gorm:"size:20;default:'staff'" json:"role"`
	IsOwner        bool           `gorm:"default:false" json:"is_owner"`
	Active         bool           `gorm:"default:true" json:"active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID             uint      `json:"id"`
	OrganizationID uint      `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	IsOwner        bool      `json:"is_owner"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		IsOwner:        u.IsOwner,
		Active:         u.Active,
		CreatedAt:      u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Portfolio
// ============================================================

// Borrower is a client of the organization.
type Borrower struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"index;not null" json:"organization_id"`
	FullName       string         `gorm:"size:150;not null" json:"full_name"`
	Phone          string         `gorm:"size:30" json:"phone,omitempty"`
	NationalID     string         `gorm:"size:50" json:"national_id,omitempty"`
	Address        string         `gorm:"size:255" json:"address,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Borrower) TableName() string {
	return "borrowers"
}

// Loan carries the running ledger state for one disbursement.
// PrincipalOutstanding = TotalAmount - PaidAmount, floored at zero;
// Status flips to "paid" exactly when the outstanding reaches zero.
// Only repayment application mutates the running fields.
type Loan struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	OrganizationID       uint           `gorm:"index;not null" json:"organization_id"`
	BorrowerID           uint           `gorm:"index;not null" json:"borrower_id"`
	ReferenceNo          string         `gorm:"size:40;uniqueIndex" json:"reference_no"`
	AmountLoaned         float64        `gorm:"not null" json:"amount_loaned"`
	InterestRate         float64        `gorm:"default:20" json:"interest_rate"`
	InterestAmount       float64        `json:"interest_amount"`
	TotalAmount          float64        `json:"total_amount"`
	PaidAmount           float64        `json:"paid_amount"`
	PrincipalOutstanding float64        `json:"principal_outstanding"`
	Months               int            `gorm:"default:1" json:"months"`
	DueDate              time.Time      `json:"due_date"`
	Status               string         `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	Borrower *Borrower `gorm:"foreignKey:BorrowerID" json:"borrower,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// IsOpen reports whether the loan still collects repayments.
// "pending" and "approved" are equivalent open states.
func (l *Loan) IsOpen() bool {
	return l.Status != "paid"
}

// Repayment is an immutable payment record against one loan.
type Repayment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"index;not null" json:"organization_id"`
	LoanID         uint      `gorm:"index;not null" json:"loan_id"`
	AmountPaid     float64   `gorm:"not null" json:"amount_paid"`
	PaidAt         time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Loan *Loan `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
}

func (Repayment) TableName() string {
	return "repayments"
}

// ============================================================
// Ledgers
// ============================================================

// Expense is an operational outflow line.
type Expense struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"index;not null" json:"organization_id"`
	Title          string         `gorm:"size:150;not null" json:"title"`
	Amount         float64        `gorm:"not null" json:"amount"`
	Category       string         `gorm:"size:50" json:"category,omitempty"`
	ExpenseDate    time.Time      `gorm:"not null" json:"expense_date"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Expense) TableName() string {
	return "expenses"
}

// CashFlow is a manual capital movement, distinct from loan and
// expense flows.
type CashFlow struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"index;not null" json:"organization_id"`
	Type           string         `gorm:"size:10;not null" json:"type"`
	Amount         float64        `gorm:"not null" json:"amount"`
	Description    string         `gorm:"size:255;not null" json:"description"`
	Category       string         `gorm:"size:50;default:'Capital'" json:"category"`
	Date           time.Time      `gorm:"not null" json:"date"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CashFlow) TableName() string {
	return "cash_flows"
}

// ============================================================
// Groups
// ============================================================

// Group is an optional collection group of borrowers.
type Group struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"index;not null" json:"organization_id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Members []Borrower `gorm:"many2many:group_members" json:"members,omitempty"`
}

func (Group) TableName() string {
	return "groups"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all application tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Organization{},
		&User{},
		&RefreshToken{},
		&Borrower{},
		&Loan{},
		&Repayment{},
		&Expense{},
		&CashFlow{},
		&Group{},
	)
}
