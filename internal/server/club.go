package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/clubhub/internal/audit/domain"
	clubdomain "github.com/smallbiznis/clubhub/internal/club/domain"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
)

type createClubRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	PrimaryColor string `json:"primary_color"`
}

// CreateClub provisions a tenant. Only super admins may call it, so it
// is gated on the role directly instead of a club-scoped policy.
func (s *Server) CreateClub(c *gin.Context) {
	identity, ok := s.identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if identity.Role != userdomain.RoleSuperAdmin {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req createClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clubSvc.Create(c.Request.Context(), clubdomain.CreateClubRequest{
		Name:         strings.TrimSpace(req.Name),
		Slug:         strings.TrimSpace(req.Slug),
		PrimaryColor: strings.TrimSpace(req.PrimaryColor),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		userID := identity.UserID.String()
		targetID := resp.ID
		_ = s.auditSvc.AuditLog(c.Request.Context(), nil, auditdomain.ActorTypeUser, &userID, "club.created", "club", &targetID, map[string]any{
			"name": resp.Name,
			"slug": resp.Slug,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListClubs(c *gin.Context) {
	identity, ok := s.identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if identity.Role == userdomain.RoleSuperAdmin {
		clubs, err := s.clubSvc.List(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": clubs})
		return
	}

	if identity.ClubID == nil {
		c.JSON(http.StatusOK, gin.H{"data": []clubdomain.ClubResponse{}})
		return
	}
	club, err := s.clubSvc.GetByID(c.Request.Context(), *identity.ClubID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": []clubdomain.ClubResponse{*club}})
}

func (s *Server) GetClub(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || id == 0 {
		AbortWithError(c, newValidationError("id", "invalid_club", "invalid club"))
		return
	}

	identity, ok := s.identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if identity.Role != userdomain.RoleSuperAdmin {
		if identity.ClubID == nil || *identity.ClubID != id {
			AbortWithError(c, ErrForbidden)
			return
		}
	}

	club, err := s.clubSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": club})
}
