package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User represents users table
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Address      string    `gorm:"size:255" json:"address"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;default:'CITIZEN'" json:"role"`
	Status       string    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO (password hash is never exposed)
type UserResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// ============================================================
// Support programs (master data)
// ============================================================

// SupportProgram represents support_programs table
type SupportProgram struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Code        string     `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Type        string     `gorm:"size:50" json:"type"`
	Amount      float64    `gorm:"type:decimal(15,2)" json:"amount"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date"`
	Status      string     `gorm:"size:20;default:'active'" json:"status"`
	CreatedBy   uint       `json:"created_by"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SupportProgram) TableName() string {
	return "support_programs"
}

// ============================================================
// Applications
// ============================================================

// Application represents applications table
type Application struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Code                 string     `gorm:"size:20;uniqueIndex;not null" json:"code"`
	UserID               *uint      `gorm:"index" json:"user_id"`
	ProgramID            uint       `gorm:"index;not null" json:"program_id"`
	CitizenID            string     `gorm:"size:20" json:"citizen_id"`
	FullName             string     `gorm:"size:100;not null" json:"full_name"`
	DateOfBirth          *time.Time `gorm:"type:date" json:"date_of_birth"`
	Gender               string     `gorm:"size:10" json:"gender"`
	Phone                string     `gorm:"size:20" json:"phone"`
	Email                string     `gorm:"size:100" json:"email"`
	Address              string     `gorm:"size:255" json:"address"`
	District             string     `gorm:"size:100" json:"district"`
	Commune              string     `gorm:"size:100" json:"commune"`
	Village              string     `gorm:"size:100" json:"village"`
	ApplicationType      string     `gorm:"size:50" json:"application_type"`
	SupportAmount        *float64   `gorm:"type:decimal(15,2)" json:"support_amount"`
	HouseholdMembersData string     `gorm:"type:text" json:"household_members_data"`
	Status               string     `gorm:"size:30;not null;index;default:'pending'" json:"status"`
	AssignedOfficerID    *uint      `json:"assigned_officer_id"`
	Notes                string     `gorm:"type:text" json:"notes"`
	RejectionReason      string     `gorm:"type:text" json:"rejection_reason"`
	SubmittedAt          *time.Time `json:"submitted_at"`
	ReviewedAt           *time.Time `json:"reviewed_at"`
	ApprovedAt           *time.Time `json:"approved_at"`
	RejectedAt           *time.Time `json:"rejected_at"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Program         *SupportProgram `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	AssignedOfficer *User           `gorm:"foreignKey:AssignedOfficerID" json:"assigned_officer,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

// ApplicationResponse DTO
type ApplicationResponse struct {
	ID                uint       `json:"id"`
	Code              string     `json:"code"`
	UserID            *uint      `json:"user_id"`
	ProgramID         uint       `json:"program_id"`
	ProgramName       string     `json:"program_name,omitempty"`
	CitizenID         string     `json:"citizen_id"`
	FullName          string     `json:"full_name"`
	Status            string     `json:"status"`
	SupportAmount     *float64   `json:"support_amount"`
	District          string     `json:"district,omitempty"`
	Commune           string     `json:"commune,omitempty"`
	Village           string     `json:"village,omitempty"`
	AssignedOfficerID *uint      `json:"assigned_officer_id"`
	Notes             string     `json:"notes,omitempty"`
	RejectionReason   string     `json:"rejection_reason,omitempty"`
	SubmittedAt       *time.Time `json:"submitted_at"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	ApprovedAt        *time.Time `json:"approved_at"`
	RejectedAt        *time.Time `json:"rejected_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (a *Application) ToResponse() *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:                a.ID,
		Code:              a.Code,
		UserID:            a.UserID,
		ProgramID:         a.ProgramID,
		CitizenID:         a.CitizenID,
		FullName:          a.FullName,
		Status:            a.Status,
		SupportAmount:     a.SupportAmount,
		District:          a.District,
		Commune:           a.Commune,
		Village:           a.Village,
		AssignedOfficerID: a.AssignedOfficerID,
		Notes:             a.Notes,
		RejectionReason:   a.RejectionReason,
		SubmittedAt:       a.SubmittedAt,
		ReviewedAt:        a.ReviewedAt,
		ApprovedAt:        a.ApprovedAt,
		RejectedAt:        a.RejectedAt,
		CreatedAt:         a.CreatedAt,
	}
	if a.Program != nil {
		resp.ProgramName = a.Program.Name
	}
	return resp
}

// ApplicationHistory represents application_history table (append-only)
type ApplicationHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	Action        string    `gorm:"size:50;not null" json:"action"`
	OldStatus     *string   `gorm:"size:30" json:"old_status"`
	NewStatus     string    `gorm:"size:30;not null" json:"new_status"`
	PerformedBy   uint      `gorm:"not null" json:"performed_by"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Performer   *User        `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (ApplicationHistory) TableName() string {
	return "application_history"
}

// ============================================================
// Payouts
// ============================================================

// Payout represents payouts table (one disbursement batch).
// total_amount/total_recipients are frozen at assembly time.
type Payout struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	BatchCode       string     `gorm:"size:20;uniqueIndex;not null" json:"batch_code"`
	Period          string     `gorm:"size:20" json:"period"`
	Location        string     `gorm:"size:200" json:"location"`
	ProgramID       *uint      `json:"program_id"`
	TotalAmount     float64    `gorm:"type:decimal(15,2)" json:"total_amount"`
	TotalRecipients int        `json:"total_recipients"`
	Status          string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedBy       uint       `json:"created_by"`
	DisbursedAt     *time.Time `json:"disbursed_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Program *SupportProgram `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	Items   []PayoutItem    `gorm:"foreignKey:PayoutID" json:"items,omitempty"`
}

func (Payout) TableName() string {
	return "payouts"
}

// PayoutItem represents payout_items table. The unique index on
// application_id is the hard anti-double-disbursement guarantee: an
// application can be placed into at most one batch, ever.
type PayoutItem struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	PayoutID        uint       `gorm:"not null;index" json:"payout_id"`
	ApplicationID   uint       `gorm:"not null;uniqueIndex" json:"application_id"`
	Amount          float64    `gorm:"type:decimal(15,2)" json:"amount"`
	Status          string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	BeneficiaryName string     `gorm:"size:100" json:"beneficiary_name"`
	CitizenID       string     `gorm:"size:20" json:"citizen_id"`
	PaymentMethod   string     `gorm:"size:50" json:"payment_method"`
	PaidAt          *time.Time `json:"paid_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Payout      *Payout      `gorm:"foreignKey:PayoutID" json:"payout,omitempty"`
	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
}

func (PayoutItem) TableName() string {
	return "payout_items"
}

// ============================================================
// Complaints & notifications
// ============================================================

// Complaint represents complaints table
type Complaint struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Code        string     `gorm:"size:20;uniqueIndex;not null" json:"code"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	AssignedTo  *uint      `json:"assigned_to"`
	Resolution  string     `gorm:"type:text" json:"resolution"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User     *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Assignee *User `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// Notification represents notifications table
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"size:50" json:"type"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ============================================================
// Code sequences
// ============================================================

// CodeSequence backs the sequential identifier generator. Counter is bumped
// with a single UPDATE inside the transaction that inserts the coded row, so
// concurrent callers cannot observe the same value.
type CodeSequence struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Prefix  string `gorm:"size:10;not null" json:"prefix"`
	Width   int    `gorm:"not null" json:"width"`
	Counter int64  `gorm:"not null;default:0" json:"counter"`
}

func (CodeSequence) TableName() string {
	return "code_sequences"
}

// Sequence names
const (
	SeqApplications = "applications"
	SeqPayouts      = "payouts"
	SeqComplaints   = "complaints"
)

// ============================================================
// Auto migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&SupportProgram{},
		&Application{},
		&ApplicationHistory{},
		&Payout{},
		&PayoutItem{},
		&Complaint{},
		&Notification{},
		&CodeSequence{},
	)
}
