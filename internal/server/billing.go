package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/clubhub/internal/audit/domain"
	billingdomain "github.com/smallbiznis/clubhub/internal/billing/domain"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
)

type generateFeesRequest struct {
	Period       string `json:"period"`
	DueDate      string `json:"due_date"`
	DisciplineID string `json:"discipline_id"`
	Force        bool   `json:"force"`
}

// parsePeriod accepts a billing month as "2006-01" or "2006-01-02".
func parsePeriod(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, billingdomain.ErrInvalidPeriod
}

func (s *Server) GenerateFees(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	identity, ok := s.identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req generateFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	period, err := parsePeriod(req.Period)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var dueDate time.Time
	if raw := strings.TrimSpace(req.DueDate); raw != "" {
		dueDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			AbortWithError(c, billingdomain.ErrInvalidDueDate)
			return
		}
	}

	// "ALL" (or omitting the field) bills every discipline in the club.
	var disciplineID *snowflake.ID
	if raw := strings.TrimSpace(req.DisciplineID); raw != "" && !strings.EqualFold(raw, "ALL") {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			AbortWithError(c, newValidationError("discipline_id", "invalid_discipline", "invalid discipline"))
			return
		}
		disciplineID = &id
	}

	result, err := s.billingSvc.GenerateFees(c.Request.Context(), clubID, identity.UserID, billingdomain.GenerateFeesRequest{
		Period:       period,
		DueDate:      dueDate,
		DisciplineID: disciplineID,
		Force:        req.Force,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveGeneration("error")
		}
		AbortWithError(c, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveGeneration(result.Status)
	}
	if s.auditSvc != nil && result.Status == billingdomain.GenerateRegenerated {
		actorID := identity.UserID.String()
		targetID := clubID.String()
		metadata := map[string]any{
			"period":  period.Format("2006-01"),
			"audited": result.Audited,
			"created": result.Created,
		}
		if disciplineID != nil {
			metadata["discipline_id"] = disciplineID.String()
		}
		_ = s.auditSvc.AuditLog(c.Request.Context(), &clubID, auditdomain.ActorTypeUser, &actorID, "payment.regenerated", "club", &targetID, metadata)
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

type registerPaymentRequest struct {
	ReceiptURL string `json:"receipt_url"`
}

func (s *Server) RegisterPayment(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	paymentID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || paymentID == 0 {
		AbortWithError(c, newValidationError("id", "invalid_payment", "invalid payment"))
		return
	}

	var req registerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	payment, err := s.billingSvc.RegisterPayment(c.Request.Context(), clubID, billingdomain.RegisterPaymentRequest{
		PaymentID:  paymentID,
		ReceiptURL: strings.TrimSpace(req.ReceiptURL),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payment})
}

func (s *Server) ListPayments(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	identity, ok := s.identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		DisciplineID string `form:"discipline_id"`
		CategoryID   string `form:"category_id"`
		UserID       string `form:"user_id"`
		Period       string `form:"period"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var filter billingdomain.ListFilter
	if raw := strings.TrimSpace(query.DisciplineID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			AbortWithError(c, newValidationError("discipline_id", "invalid_discipline", "invalid discipline"))
			return
		}
		filter.DisciplineID = &id
	}
	if raw := strings.TrimSpace(query.CategoryID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			AbortWithError(c, newValidationError("category_id", "invalid_category", "invalid category"))
			return
		}
		filter.CategoryID = &id
	}
	if raw := strings.TrimSpace(query.UserID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			AbortWithError(c, newValidationError("user_id", "invalid_user", "invalid user"))
			return
		}
		filter.UserID = &id
	}
	if raw := strings.TrimSpace(query.Period); raw != "" {
		period, err := parsePeriod(raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		normalized := time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, time.UTC)
		filter.Period = &normalized
	}

	// Professors only see payments for the categories they teach.
	if identity.Role == userdomain.RoleProfessor {
		categoryIDs, err := s.membershipSvc.AssignedCategoryIDs(c.Request.Context(), identity.UserID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if len(categoryIDs) == 0 {
			c.JSON(http.StatusOK, gin.H{"data": []billingdomain.PaymentDetail{}})
			return
		}
		filter.CategoryIDs = categoryIDs
	}

	payments, err := s.billingSvc.ListPayments(c.Request.Context(), clubID, filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func (s *Server) ListMyPayments(c *gin.Context) {
	identity, ok := s.identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	payments, err := s.billingSvc.ListStudentPayments(c.Request.Context(), identity.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func (s *Server) ListPaymentAudits(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var query struct {
		PaymentID string `form:"payment_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var paymentID *snowflake.ID
	if raw := strings.TrimSpace(query.PaymentID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			AbortWithError(c, newValidationError("payment_id", "invalid_payment", "invalid payment"))
			return
		}
		paymentID = &id
	}

	audits, err := s.billingSvc.ListAudits(c.Request.Context(), clubID, paymentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": audits})
}
