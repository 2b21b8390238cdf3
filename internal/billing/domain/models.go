package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"

	// StatusOverdue is never stored. It is derived at read time for
	// pending payments past their due date.
	StatusOverdue = "OVERDUE"
)

// Payment is one monthly fee owed by a student for a category. ClubID
// is denormalized so listings and ownership checks avoid a two-level
// JOIN. The pair (user, category, period) is unique per
// ux_payments_user_category_period, which also closes the race between
// concurrent generation runs.
type Payment struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	ClubID     snowflake.ID `json:"club_id" gorm:"index:ix_payments_club_period"`
	UserID     snowflake.ID `json:"user_id" gorm:"uniqueIndex:ux_payments_user_category_period"`
	CategoryID snowflake.ID `json:"category_id" gorm:"uniqueIndex:ux_payments_user_category_period"`
	Period     time.Time    `json:"period" gorm:"uniqueIndex:ux_payments_user_category_period;index:ix_payments_club_period"`
	DueDate    time.Time    `json:"due_date"`
	Amount     int64        `json:"amount"`
	Status     string       `json:"status"`
	ReceiptURL *string      `json:"receipt_url,omitempty"`
	PaidAt     *time.Time   `json:"paid_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// EffectiveStatus reports the status a reader should see. A pending
// payment past its due date reads as OVERDUE.
func (p Payment) EffectiveStatus(now time.Time) string {
	if p.Status == StatusPending && now.After(p.DueDate) {
		return StatusOverdue
	}
	return p.Status
}

// PaymentAudit snapshots a payment deleted by a forced regeneration,
// field for field. Rows are written in the same transaction that
// deletes the originals and are never mutated.
type PaymentAudit struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	PaymentID   snowflake.ID `json:"payment_id"`
	ClubID      snowflake.ID `json:"club_id"`
	UserID      snowflake.ID `json:"user_id"`
	CategoryID  snowflake.ID `json:"category_id"`
	Period      time.Time    `json:"period"`
	DueDate     time.Time    `json:"due_date"`
	Amount      int64        `json:"amount"`
	Status      string       `json:"status"`
	ReceiptURL  *string      `json:"receipt_url,omitempty"`
	Action      string       `json:"action"`
	PerformedBy snowflake.ID `json:"performed_by"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (PaymentAudit) TableName() string {
	return "payment_audits"
}

const ActionRegenerateDelete = "REGENERATE_DELETE"

// PaymentDetail is a payment joined with its student and category for
// list responses. Status carries the derived value.
type PaymentDetail struct {
	ID             snowflake.ID `json:"id"`
	UserID         snowflake.ID `json:"user_id"`
	UserName       string       `json:"user_name"`
	CategoryID     snowflake.ID `json:"category_id"`
	CategoryName   string       `json:"category_name"`
	DisciplineID   snowflake.ID `json:"discipline_id"`
	DisciplineName string       `json:"discipline_name"`
	Period         time.Time    `json:"period"`
	DueDate        time.Time    `json:"due_date"`
	Amount         int64        `json:"amount"`
	Status         string       `json:"status"`
	ReceiptURL     *string      `json:"receipt_url,omitempty"`
	PaidAt         *time.Time   `json:"paid_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
