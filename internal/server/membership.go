package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/clubhub/internal/audit/domain"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
)

type membershipRequest struct {
	UserID     string `json:"user_id"`
	CategoryID string `json:"category_id"`
}

func (r membershipRequest) parse() (snowflake.ID, snowflake.ID, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(r.UserID))
	if err != nil || userID == 0 {
		return 0, 0, newValidationError("user_id", "invalid_user", "invalid user")
	}
	categoryID, err := snowflake.ParseString(strings.TrimSpace(r.CategoryID))
	if err != nil || categoryID == 0 {
		return 0, 0, newValidationError("category_id", "invalid_category", "invalid category")
	}
	return userID, categoryID, nil
}

func (s *Server) Enroll(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	userID, categoryID, err := req.parse()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	enrollment, err := s.membershipSvc.Enroll(c.Request.Context(), clubID, userID, categoryID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": enrollment})
}

func (s *Server) AssignProfessor(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	userID, categoryID, err := req.parse()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	assignment, err := s.membershipSvc.AssignProfessor(c.Request.Context(), clubID, userID, categoryID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": assignment})
}

func (s *Server) RemoveEnrollment(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || id == 0 {
		AbortWithError(c, newValidationError("id", "invalid_enrollment", "invalid enrollment"))
		return
	}

	if err := s.membershipSvc.RemoveEnrollment(c.Request.Context(), clubID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditMembershipRemoval(c, clubID, "enrollment.removed", "enrollment", id)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) RemoveAssignment(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || id == 0 {
		AbortWithError(c, newValidationError("id", "invalid_assignment", "invalid assignment"))
		return
	}

	if err := s.membershipSvc.RemoveAssignment(c.Request.Context(), clubID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditMembershipRemoval(c, clubID, "teaching_assignment.removed", "teaching_assignment", id)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListStudentEnrollments serves both the admin view of any student and
// a student's view of their own enrollments.
func (s *Server) ListStudentEnrollments(c *gin.Context) {
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

	userID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || userID == 0 {
		AbortWithError(c, newValidationError("id", "invalid_user", "invalid user"))
		return
	}

	if identity.Role == userdomain.RoleStudent && identity.UserID != userID {
		AbortWithError(c, ErrForbidden)
		return
	}

	// Cross-tenant reads are rejected before touching the rows.
	target, err := s.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if target == nil || target.ClubID == nil || *target.ClubID != clubID {
		AbortWithError(c, userdomain.ErrNotFound)
		return
	}

	enrollments, err := s.membershipSvc.ListEnrollmentsByStudent(c.Request.Context(), clubID, userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": enrollments})
}

func (s *Server) auditMembershipRemoval(c *gin.Context, clubID snowflake.ID, action, targetType string, id snowflake.ID) {
	if s.auditSvc == nil {
		return
	}
	identity, _ := s.identityFromContext(c)
	var actorID *string
	if identity != nil {
		aid := identity.UserID.String()
		actorID = &aid
	}
	targetID := id.String()
	_ = s.auditSvc.AuditLog(c.Request.Context(), &clubID, auditdomain.ActorTypeUser, actorID, action, targetType, &targetID, nil)
}
