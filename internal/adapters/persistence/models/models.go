package models

import (
	"time"

	"gorm.io/gorm"

	"siri-memberfund/internal/core/domain"
)

// ============================================================
// Registry & Auth Tables
// ============================================================

// User represents users table
type User struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Role       string         `gorm:"size:20;default:'MEMBER'" json:"role"`
	JoinedDate time.Time      `gorm:"type:date;not null" json:"joined_date"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain converts the row to the engine's user entity
func (u *User) ToDomain() domain.User {
	return domain.User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       domain.Role(u.Role),
		JoinedDate: u.JoinedDate,
	}
}

// UserResponse DTO
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	JoinedDate time.Time `json:"joined_date"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		JoinedDate: u.JoinedDate,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:36;index;not null" json:"user_id"`
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
// Ledger Tables
// ============================================================

// Contribution represents the append-only contributions ledger
type Contribution struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	Month     string    `gorm:"size:7;not null;index" json:"month"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status    string    `gorm:"size:20;not null;default:'PAID'" json:"status"`
	Kind      string    `gorm:"size:20;not null;default:'CONTRIBUTION';index" json:"kind"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Contribution) TableName() string {
	return "contributions"
}

func (c *Contribution) ToDomain() domain.Contribution {
	return domain.Contribution{
		ID:     c.ID,
		UserID: c.UserID,
		Month:  c.Month,
		Amount: c.Amount,
		Status: domain.ContributionStatus(c.Status),
		Kind:   domain.ContributionKind(c.Kind),
	}
}

// ContributionFromDomain converts an engine-produced ledger entry to a row
func ContributionFromDomain(c domain.Contribution) *Contribution {
	return &Contribution{
		ID:     c.ID,
		UserID: c.UserID,
		Month:  c.Month,
		Amount: c.Amount,
		Status: string(c.Status),
		Kind:   string(c.Kind),
	}
}

// Loan represents loans table
type Loan struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	UserID             string     `gorm:"size:36;not null;index" json:"user_id"`
	Type               string     `gorm:"size:20;not null" json:"type"`
	PrincipalAmount    float64    `gorm:"type:decimal(15,2);not null" json:"principal_amount"`
	PrincipalRemaining float64    `gorm:"type:decimal(15,4);not null" json:"principal_remaining"`
	Status             string     `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	RequestDate        time.Time  `gorm:"type:date;not null" json:"request_date"`
	ApprovalDate       *time.Time `gorm:"type:date" json:"approval_date"`
	RepaidAmount       float64    `gorm:"type:decimal(15,4);not null;default:0" json:"repaid_amount"`
	InterestCollected  float64    `gorm:"type:decimal(15,4);not null;default:0" json:"interest_collected"`
	MonthsElapsed      int        `gorm:"not null;default:0" json:"months_elapsed"`
	LastPaymentMonth   string     `gorm:"size:7" json:"last_payment_month"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) ToDomain() domain.Loan {
	return domain.Loan{
		ID:                 l.ID,
		UserID:             l.UserID,
		Type:               domain.LoanType(l.Type),
		PrincipalAmount:    l.PrincipalAmount,
		PrincipalRemaining: l.PrincipalRemaining,
		Status:             domain.LoanStatus(l.Status),
		RequestDate:        l.RequestDate,
		ApprovalDate:       l.ApprovalDate,
		RepaidAmount:       l.RepaidAmount,
		InterestCollected:  l.InterestCollected,
		MonthsElapsed:      l.MonthsElapsed,
		LastPaymentMonth:   l.LastPaymentMonth,
	}
}

// ApplyDomain copies the engine's replacement loan back onto the row
func (l *Loan) ApplyDomain(d domain.Loan) {
	l.PrincipalRemaining = d.PrincipalRemaining
	l.Status = string(d.Status)
	l.RepaidAmount = d.RepaidAmount
	l.InterestCollected = d.InterestCollected
	l.MonthsElapsed = d.MonthsElapsed
	l.LastPaymentMonth = d.LastPaymentMonth
}

// LoanFromDomain converts a domain loan to a row
func LoanFromDomain(d domain.Loan) *Loan {
	return &Loan{
		ID:                 d.ID,
		UserID:             d.UserID,
		Type:               string(d.Type),
		PrincipalAmount:    d.PrincipalAmount,
		PrincipalRemaining: d.PrincipalRemaining,
		Status:             string(d.Status),
		RequestDate:        d.RequestDate,
		ApprovalDate:       d.ApprovalDate,
		RepaidAmount:       d.RepaidAmount,
		InterestCollected:  d.InterestCollected,
		MonthsElapsed:      d.MonthsElapsed,
		LastPaymentMonth:   d.LastPaymentMonth,
	}
}

// FundMeta is the single-row table holding the out-of-band fund figures:
// the historical interest seed, the manually entered bank interest, and the
// snapshot version stamp used by replication.
type FundMeta struct {
	ID                    uint    `gorm:"primaryKey" json:"id"`
	InitialInterestEarned float64 `gorm:"type:decimal(15,2);not null;default:0" json:"initial_interest_earned"`
	BankInterest          float64 `gorm:"type:decimal(15,2);not null;default:0" json:"bank_interest"`
	LastUpdated           int64   `gorm:"not null;default:0" json:"last_updated"` // unix milliseconds
}

func (FundMeta) TableName() string {
	return "fund_meta"
}

// FundSnapshot is the shared replication row: the whole ledger state as one
// JSON document plus its version stamp. Adoption is wholesale, newest wins.
type FundSnapshot struct {
	ID        string `gorm:"primaryKey;size:50" json:"id"`
	Data      string `gorm:"type:longtext;not null" json:"data"`
	UpdatedAt int64  `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"` // unix milliseconds
}

func (FundSnapshot) TableName() string {
	return "fund_snapshots"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Contribution{},
		&Loan{},
		&FundMeta{},
		&FundSnapshot{},
	)
}
