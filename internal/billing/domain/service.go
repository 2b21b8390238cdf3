package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidPeriod      = errors.New("invalid_period")
	ErrInvalidDueDate     = errors.New("invalid_due_date")
	ErrInvalidDiscipline  = errors.New("invalid_discipline")
	ErrPaidPaymentsExist  = errors.New("paid_payments_exist")
	ErrPaymentNotFound    = errors.New("payment_not_found")
	ErrGenerationConflict = errors.New("generation_conflict")
)

// Generation outcomes.
const (
	GenerateCreated         = "created"
	GenerateConfirmRequired = "confirmation_required"
	GenerateRegenerated     = "regenerated"
	GenerateNoop            = "noop"
)

// GenerateResult reports what a generation run did. Callers that get
// ConfirmRequired retry with Force set once the operator confirms.
type GenerateResult struct {
	Status   string `json:"status"`
	Created  int    `json:"created"`
	Existing int    `json:"existing"`
	Audited  int    `json:"audited"`
}

// GenerateFeesRequest covers one generation run for a club and period.
// A nil DisciplineID bills every discipline in the club. A zero
// DueDate defaults to one month after the period.
type GenerateFeesRequest struct {
	Period       time.Time     `json:"period"`
	DueDate      time.Time     `json:"due_date"`
	DisciplineID *snowflake.ID `json:"discipline_id,omitempty"`
	Force        bool          `json:"force"`
}

type RegisterPaymentRequest struct {
	PaymentID  snowflake.ID `json:"payment_id"`
	ReceiptURL string       `json:"receipt_url"`
}

// ListFilter narrows a club payment listing. CategoryIDs restricts to
// an explicit set and is used to scope professors to the categories
// they teach.
type ListFilter struct {
	DisciplineID *snowflake.ID
	CategoryID   *snowflake.ID
	UserID       *snowflake.ID
	Period       *time.Time
	CategoryIDs  []snowflake.ID
}

type Service interface {
	// GenerateFees creates one pending payment per active enrollment in
	// the club (optionally one discipline) for the period. When payments
	// already exist it returns a ConfirmRequired result unless Force is
	// set, in which case the existing unpaid rows are audited, deleted
	// and recreated for the current roster in a single transaction.
	GenerateFees(ctx context.Context, clubID, actorID snowflake.ID, req GenerateFeesRequest) (*GenerateResult, error)

	// RegisterPayment attaches a receipt to a payment. A non-empty
	// receipt URL marks the payment PAID; an empty one only touches
	// the row.
	RegisterPayment(ctx context.Context, clubID snowflake.ID, req RegisterPaymentRequest) (*Payment, error)

	ListPayments(ctx context.Context, clubID snowflake.ID, filter ListFilter) ([]PaymentDetail, error)
	ListStudentPayments(ctx context.Context, userID snowflake.ID) ([]PaymentDetail, error)
	ListAudits(ctx context.Context, clubID snowflake.ID, paymentID *snowflake.ID) ([]PaymentAudit, error)
}
