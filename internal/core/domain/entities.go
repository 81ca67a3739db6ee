package domain

// Role represents user role in the system
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleOfficer Role = "OFFICER"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// CanReview reports whether the role may process applications and payouts.
func (r Role) CanReview() bool {
	return r == RoleOfficer || r == RoleAdmin
}

// User status values
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Program status values (soft delete = inactive)
const (
	ProgramStatusActive   = "active"
	ProgramStatusInactive = "inactive"
)

// Payout batch / item status values
const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusCompleted  = "completed"
	PayoutStatusCancelled  = "cancelled"
)

// ValidPayoutStatus reports whether s is a known batch status.
func ValidPayoutStatus(s string) bool {
	switch s {
	case PayoutStatusPending, PayoutStatusProcessing, PayoutStatusCompleted, PayoutStatusCancelled:
		return true
	}
	return false
}

// Complaint status values
const (
	ComplaintStatusPending    = "pending"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
)

// History actions recorded in application_history
const (
	HistoryActionCreate     = "create"
	HistoryActionStatus     = "status_change"
	HistoryActionSettlement = "payout_settlement"
)
