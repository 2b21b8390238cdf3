package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/clubhub/internal/audit/domain"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
)

type createUserRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	NationalID *string `json:"national_id"`
	Sex        *string `json:"sex"`
	Phone      *string `json:"phone"`
}

func (s *Server) CreateUser(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == userdomain.RoleSuperAdmin {
		AbortWithError(c, ErrForbidden)
		return
	}

	resp, err := s.userSvc.Create(c.Request.Context(), userdomain.CreateUserRequest{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Password:   req.Password,
		Role:       role,
		ClubID:     &clubID,
		NationalID: req.NationalID,
		Sex:        req.Sex,
		Phone:      req.Phone,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		identity, _ := s.identityFromContext(c)
		var actorID *string
		if identity != nil {
			id := identity.UserID.String()
			actorID = &id
		}
		targetID := resp.ID
		_ = s.auditSvc.AuditLog(c.Request.Context(), &clubID, auditdomain.ActorTypeUser, actorID, "user.created", "user", &targetID, map[string]any{
			"role": resp.Role,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListUsers(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var query struct {
		Role   string `form:"role"`
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	users, err := s.userSvc.List(c.Request.Context(), userdomain.ListFilter{
		ClubID: &clubID,
		Role:   strings.ToUpper(strings.TrimSpace(query.Role)),
		Status: strings.ToUpper(strings.TrimSpace(query.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

type updateUserStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateUserStatus(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || id == 0 {
		AbortWithError(c, newValidationError("id", "invalid_user", "invalid user"))
		return
	}

	var req updateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// Cross-tenant updates are rejected before touching the row.
	target, err := s.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if target == nil || target.ClubID == nil || *target.ClubID != clubID {
		AbortWithError(c, userdomain.ErrNotFound)
		return
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if err := s.userSvc.UpdateStatus(c.Request.Context(), id, status); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		identity, _ := s.identityFromContext(c)
		var actorID *string
		if identity != nil {
			aid := identity.UserID.String()
			actorID = &aid
		}
		targetID := id.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), &clubID, auditdomain.ActorTypeUser, actorID, "user.status_updated", "user", &targetID, map[string]any{
			"status": status,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
