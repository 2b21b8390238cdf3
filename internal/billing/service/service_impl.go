package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/billing/domain"
	"github.com/smallbiznis/clubhub/internal/clock"
	disciplinedomain "github.com/smallbiznis/clubhub/internal/discipline/domain"
	membershipdomain "github.com/smallbiznis/clubhub/internal/membership/domain"
	"github.com/smallbiznis/clubhub/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          domain.Repository
	MembershipSvc membershipdomain.Service
	DisciplineSvc disciplinedomain.Service
}

type service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	membershipSvc membershipdomain.Service
	disciplineSvc disciplinedomain.Service
}

func NewService(p Params) domain.Service {
	return &service{
		db:            p.DB,
		log:           p.Log.Named("billing"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		membershipSvc: p.MembershipSvc,
		disciplineSvc: p.DisciplineSvc,
	}
}

// normalizePeriod validates that t is the first day of a month and
// returns it truncated to midnight UTC so equal periods compare equal
// regardless of the caller's zone.
func normalizePeriod(t time.Time) (time.Time, error) {
	u := t.UTC()
	if u.Day() != 1 {
		return time.Time{}, domain.ErrInvalidPeriod
	}
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// normalizeDueDate truncates the due date to midnight UTC. A zero due
// date defaults to one month after the period; one before the period
// is rejected.
func normalizeDueDate(t, period time.Time) (time.Time, error) {
	if t.IsZero() {
		return period.AddDate(0, 1, 0), nil
	}
	u := t.UTC()
	due := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	if due.Before(period) {
		return time.Time{}, domain.ErrInvalidDueDate
	}
	return due, nil
}

func (s *service) GenerateFees(ctx context.Context, clubID, actorID snowflake.ID, req domain.GenerateFeesRequest) (*domain.GenerateResult, error) {
	period, err := normalizePeriod(req.Period)
	if err != nil {
		return nil, err
	}
	dueDate, err := normalizeDueDate(req.DueDate, period)
	if err != nil {
		return nil, err
	}

	if req.DisciplineID != nil {
		if _, err := s.disciplineSvc.GetDiscipline(ctx, clubID, *req.DisciplineID); err != nil {
			return nil, domain.ErrInvalidDiscipline
		}
	}

	enrollments, err := s.membershipSvc.ListBillableEnrollments(ctx, clubID, req.DisciplineID)
	if err != nil {
		return nil, err
	}

	var result domain.GenerateResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.ListByClubPeriod(ctx, clubID, period, req.DisciplineID)
		if err != nil {
			return err
		}
		result.Existing = len(existing)

		if len(existing) > 0 && !req.Force {
			result.Status = domain.GenerateConfirmRequired
			return nil
		}

		if len(existing) > 0 {
			for _, p := range existing {
				if p.Status == domain.StatusPaid {
					return domain.ErrPaidPaymentsExist
				}
			}
			audits := make([]domain.PaymentAudit, 0, len(existing))
			ids := make([]snowflake.ID, 0, len(existing))
			for _, p := range existing {
				audits = append(audits, domain.PaymentAudit{
					ID:          s.genID.Generate(),
					PaymentID:   p.ID,
					ClubID:      p.ClubID,
					UserID:      p.UserID,
					CategoryID:  p.CategoryID,
					Period:      p.Period,
					DueDate:     p.DueDate,
					Amount:      p.Amount,
					Status:      p.Status,
					ReceiptURL:  p.ReceiptURL,
					Action:      domain.ActionRegenerateDelete,
					PerformedBy: actorID,
					CreatedAt:   s.clock.Now(),
				})
				ids = append(ids, p.ID)
			}
			if err := repo.CreateAudits(ctx, audits); err != nil {
				return err
			}
			if err := repo.DeletePayments(ctx, ids); err != nil {
				return err
			}
			result.Audited = len(audits)
		}

		if len(enrollments) == 0 {
			result.Status = domain.GenerateNoop
			return nil
		}

		now := s.clock.Now()
		payments := make([]domain.Payment, 0, len(enrollments))
		for _, e := range enrollments {
			amount := e.MonthlyFee
			if amount <= 0 {
				amount = disciplinedomain.DefaultMonthlyFee
			}
			payments = append(payments, domain.Payment{
				ID:         s.genID.Generate(),
				ClubID:     clubID,
				UserID:     e.UserID,
				CategoryID: e.CategoryID,
				Period:     period,
				DueDate:    dueDate,
				Amount:     amount,
				Status:     domain.StatusPending,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
		if err := repo.CreatePayments(ctx, payments); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrGenerationConflict
			}
			return err
		}
		result.Created = len(payments)

		if result.Audited > 0 {
			result.Status = domain.GenerateRegenerated
		} else {
			result.Status = domain.GenerateCreated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("fees generated",
		zap.Int64("club_id", int64(clubID)),
		zap.Time("period", period),
		zap.String("status", result.Status),
		zap.Int("created", result.Created),
		zap.Int("audited", result.Audited),
	)
	return &result, nil
}

func (s *service) RegisterPayment(ctx context.Context, clubID snowflake.ID, req domain.RegisterPaymentRequest) (*domain.Payment, error) {
	payment, err := s.repo.GetByID(ctx, clubID, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}

	now := s.clock.Now()
	if req.ReceiptURL != "" {
		url := req.ReceiptURL
		payment.ReceiptURL = &url
		payment.Status = domain.StatusPaid
		payment.PaidAt = &now
	}
	payment.UpdatedAt = now

	err = s.repo.UpdateReceipt(ctx, payment.ID, payment.ReceiptURL, payment.Status, payment.PaidAt, payment.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.log.Info("payment registered",
		zap.Int64("payment_id", int64(payment.ID)),
		zap.String("status", payment.Status),
	)
	return payment, nil
}

func (s *service) ListPayments(ctx context.Context, clubID snowflake.ID, filter domain.ListFilter) ([]domain.PaymentDetail, error) {
	rows, err := s.repo.List(ctx, clubID, filter)
	if err != nil {
		return nil, err
	}
	s.deriveStatuses(rows)
	return rows, nil
}

func (s *service) ListStudentPayments(ctx context.Context, userID snowflake.ID) ([]domain.PaymentDetail, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.deriveStatuses(rows)
	return rows, nil
}

func (s *service) ListAudits(ctx context.Context, clubID snowflake.ID, paymentID *snowflake.ID) ([]domain.PaymentAudit, error) {
	return s.repo.ListAudits(ctx, clubID, paymentID)
}

func (s *service) deriveStatuses(rows []domain.PaymentDetail) {
	now := s.clock.Now()
	for i := range rows {
		p := domain.Payment{Status: rows[i].Status, DueDate: rows[i].DueDate}
		rows[i].Status = p.EffectiveStatus(now)
	}
}
