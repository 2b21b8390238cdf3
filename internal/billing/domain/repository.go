package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListByClubPeriod(ctx context.Context, clubID snowflake.ID, period time.Time, disciplineID *snowflake.ID) ([]Payment, error)
	CreatePayments(ctx context.Context, payments []Payment) error
	DeletePayments(ctx context.Context, ids []snowflake.ID) error
	CreateAudits(ctx context.Context, audits []PaymentAudit) error

	GetByID(ctx context.Context, clubID, id snowflake.ID) (*Payment, error)
	UpdateReceipt(ctx context.Context, id snowflake.ID, receiptURL *string, status string, paidAt *time.Time, updatedAt time.Time) error

	List(ctx context.Context, clubID snowflake.ID, filter ListFilter) ([]PaymentDetail, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]PaymentDetail, error)
	ListAudits(ctx context.Context, clubID snowflake.ID, paymentID *snowflake.ID) ([]PaymentAudit, error)
}
