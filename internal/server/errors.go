package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/clubhub/internal/audit/domain"
	authdomain "github.com/smallbiznis/clubhub/internal/auth/domain"
	"github.com/smallbiznis/clubhub/internal/authorization"
	billingdomain "github.com/smallbiznis/clubhub/internal/billing/domain"
	clubdomain "github.com/smallbiznis/clubhub/internal/club/domain"
	disciplinedomain "github.com/smallbiznis/clubhub/internal/discipline/domain"
	membershipdomain "github.com/smallbiznis/clubhub/internal/membership/domain"
	receiptdomain "github.com/smallbiznis/clubhub/internal/receipt/domain"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, authdomain.ErrUserInactive):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, receiptdomain.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, errorPayload{
			Type:    "file_too_large",
			Message: "file too large",
		}
	case errors.Is(err, receiptdomain.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, errorPayload{
			Type:    "unsupported_file_type",
			Message: "unsupported file type",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, receiptdomain.ErrMissingFile):
		return true
	case isClubValidationError(err),
		isUserValidationError(err),
		isDisciplineValidationError(err),
		isMembershipValidationError(err),
		isBillingValidationError(err),
		isAuditValidationError(err):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, clubdomain.ErrSlugTaken),
		errors.Is(err, userdomain.ErrEmailTaken),
		errors.Is(err, userdomain.ErrNationalIDTaken),
		errors.Is(err, membershipdomain.ErrAlreadyEnrolled),
		errors.Is(err, membershipdomain.ErrAlreadyAssigned),
		errors.Is(err, billingdomain.ErrPaidPaymentsExist),
		errors.Is(err, billingdomain.ErrGenerationConflict):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, billingdomain.ErrPaidPaymentsExist):
		return "paid payments exist for this period"
	case errors.Is(err, billingdomain.ErrGenerationConflict):
		return "fees already generated by a concurrent request"
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, clubdomain.ErrNotFound),
		errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, billingdomain.ErrPaymentNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isClubValidationError(err error) bool {
	switch err {
	case clubdomain.ErrInvalidName,
		clubdomain.ErrInvalidSlug:
		return true
	default:
		return false
	}
}

func isUserValidationError(err error) bool {
	switch err {
	case userdomain.ErrInvalidName,
		userdomain.ErrInvalidEmail,
		userdomain.ErrInvalidPassword,
		userdomain.ErrInvalidRole,
		userdomain.ErrInvalidStatus,
		userdomain.ErrInvalidClub:
		return true
	default:
		return false
	}
}

func isDisciplineValidationError(err error) bool {
	switch err {
	case disciplinedomain.ErrInvalidName,
		disciplinedomain.ErrInvalidDiscipline,
		disciplinedomain.ErrInvalidCategory:
		return true
	default:
		return false
	}
}

func isMembershipValidationError(err error) bool {
	switch err {
	case membershipdomain.ErrUnknownUser,
		membershipdomain.ErrUnknownCategory,
		membershipdomain.ErrNotStudent,
		membershipdomain.ErrNotProfessor:
		return true
	default:
		return false
	}
}

func isBillingValidationError(err error) bool {
	switch err {
	case billingdomain.ErrInvalidPeriod,
		billingdomain.ErrInvalidDueDate,
		billingdomain.ErrInvalidDiscipline:
		return true
	default:
		return false
	}
}

func isAuditValidationError(err error) bool {
	switch err {
	case auditdomain.ErrInvalidPageToken,
		auditdomain.ErrInvalidTimeRange,
		auditdomain.ErrInvalidAction:
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
