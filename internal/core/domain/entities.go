package domain

// Role represents a staff role in the system
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleStaff      Role = "staff"
	RoleOfficer    Role = "officer"
	RoleSuperAdmin Role = "super-admin"
)

// Subscription statuses
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionSuspended = "suspended"
	SubscriptionArchived  = "archived"
)

// TrialDays is the fixed trial window after registration.
const TrialDays = 7

// Loan statuses. "pending" and "approved" are equivalent open
// states; nothing in the workflow promotes pending to approved.
const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusPaid     = "paid"
)

// DefaultInterestRate is the flat rate (percent) applied when a
// loan is created without an explicit rate.
const DefaultInterestRate = 20

// Cash flow directions
const (
	CashFlowInflow  = "inflow"
	CashFlowOutflow = "outflow"
)

// Actor is the identity resolved from a bearer token. A zero
// OrganizationID is only valid for the super-admin role, which
// bypasses tenant scoping entirely.
type Actor struct {
	UserID         uint
	OrganizationID uint
	Role           Role
}

// IsSuperAdmin reports whether the actor sees every tenant.
func (a Actor) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// Scope returns the organization filter for data access: the
// actor's organization, or zero (no filter) for super-admins.
func (a Actor) Scope() uint {
	if a.IsSuperAdmin() {
		return 0
	}
	return a.OrganizationID
}
