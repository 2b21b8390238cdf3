package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/billing/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) ListByClubPeriod(ctx context.Context, clubID snowflake.ID, period time.Time, disciplineID *snowflake.ID) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).
		Table("payments").
		Where("club_id = ? AND period = ?", clubID, period)

	if disciplineID != nil {
		q = q.Where("category_id IN (SELECT id FROM categories WHERE discipline_id = ?)", *disciplineID)
	}

	var payments []domain.Payment
	if err := q.Order("id ASC").Scan(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) CreatePayments(ctx context.Context, payments []domain.Payment) error {
	for _, p := range payments {
		err := r.db.WithContext(ctx).Exec(
			`INSERT INTO payments (id, club_id, user_id, category_id, period, due_date, amount, status, receipt_url, paid_at, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID,
			p.ClubID,
			p.UserID,
			p.CategoryID,
			p.Period,
			p.DueDate,
			p.Amount,
			p.Status,
			p.ReceiptURL,
			p.PaidAt,
			p.CreatedAt,
			p.UpdatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) DeletePayments(ctx context.Context, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(`DELETE FROM payments WHERE id IN ?`, ids).Error
}

func (r *repository) CreateAudits(ctx context.Context, audits []domain.PaymentAudit) error {
	for _, a := range audits {
		err := r.db.WithContext(ctx).Exec(
			`INSERT INTO payment_audits (id, payment_id, club_id, user_id, category_id, period, due_date, amount, status, receipt_url, action, performed_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID,
			a.PaymentID,
			a.ClubID,
			a.UserID,
			a.CategoryID,
			a.Period,
			a.DueDate,
			a.Amount,
			a.Status,
			a.ReceiptURL,
			a.Action,
			a.PerformedBy,
			a.CreatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, clubID, id snowflake.ID) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, club_id, user_id, category_id, period, due_date, amount, status, receipt_url, paid_at, created_at, updated_at
		 FROM payments
		 WHERE id = ? AND club_id = ?
		 LIMIT 1`,
		id,
		clubID,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repository) UpdateReceipt(ctx context.Context, id snowflake.ID, receiptURL *string, status string, paidAt *time.Time, updatedAt time.Time) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE payments SET receipt_url = ?, status = ?, paid_at = ?, updated_at = ? WHERE id = ?`,
		receiptURL,
		status,
		paidAt,
		updatedAt,
		id,
	).Error
}

func (r *repository) List(ctx context.Context, clubID snowflake.ID, filter domain.ListFilter) ([]domain.PaymentDetail, error) {
	q := r.db.WithContext(ctx).
		Table("payments AS p").
		Select(`p.id, p.user_id, u.name AS user_name,
			p.category_id, c.name AS category_name,
			d.id AS discipline_id, d.name AS discipline_name,
			p.period, p.due_date, p.amount, p.status, p.receipt_url, p.paid_at, p.created_at`).
		Joins("JOIN users u ON u.id = p.user_id").
		Joins("JOIN categories c ON c.id = p.category_id").
		Joins("JOIN disciplines d ON d.id = c.discipline_id").
		Where("p.club_id = ?", clubID)

	if filter.DisciplineID != nil {
		q = q.Where("d.id = ?", *filter.DisciplineID)
	}
	if filter.CategoryID != nil {
		q = q.Where("c.id = ?", *filter.CategoryID)
	}
	if filter.UserID != nil {
		q = q.Where("p.user_id = ?", *filter.UserID)
	}
	if filter.Period != nil {
		q = q.Where("p.period = ?", *filter.Period)
	}
	if filter.CategoryIDs != nil {
		q = q.Where("p.category_id IN ?", filter.CategoryIDs)
	}

	var rows []domain.PaymentDetail
	if err := q.Order("p.period DESC, p.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.PaymentDetail, error) {
	var rows []domain.PaymentDetail
	err := r.db.WithContext(ctx).Raw(
		`SELECT p.id, p.user_id, u.name AS user_name,
		        p.category_id, c.name AS category_name,
		        d.id AS discipline_id, d.name AS discipline_name,
		        p.period, p.due_date, p.amount, p.status, p.receipt_url, p.paid_at, p.created_at
		 FROM payments p
		 JOIN users u ON u.id = p.user_id
		 JOIN categories c ON c.id = p.category_id
		 JOIN disciplines d ON d.id = c.discipline_id
		 WHERE p.user_id = ?
		 ORDER BY p.period DESC, p.id ASC`,
		userID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListAudits(ctx context.Context, clubID snowflake.ID, paymentID *snowflake.ID) ([]domain.PaymentAudit, error) {
	q := r.db.WithContext(ctx).
		Table("payment_audits").
		Where("club_id = ?", clubID)

	if paymentID != nil {
		q = q.Where("payment_id = ?", *paymentID)
	}

	var rows []domain.PaymentAudit
	if err := q.Order("created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
