package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	disciplinedomain "github.com/smallbiznis/clubhub/internal/discipline/domain"
)

type createDisciplineRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) CreateDiscipline(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req createDisciplineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.disciplineSvc.CreateDiscipline(c.Request.Context(), clubID, disciplinedomain.CreateDisciplineRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDisciplines(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	disciplines, err := s.disciplineSvc.ListDisciplines(c.Request.Context(), clubID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": disciplines})
}

type createCategoryRequest struct {
	DisciplineID string `json:"discipline_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	MonthlyFee   int64  `json:"monthly_fee"`
}

func (s *Server) CreateCategory(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	disciplineID, err := snowflake.ParseString(strings.TrimSpace(req.DisciplineID))
	if err != nil || disciplineID == 0 {
		AbortWithError(c, newValidationError("discipline_id", "invalid_discipline", "invalid discipline"))
		return
	}

	resp, err := s.disciplineSvc.CreateCategory(c.Request.Context(), clubID, disciplinedomain.CreateCategoryRequest{
		DisciplineID: disciplineID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		MonthlyFee:   req.MonthlyFee,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MonthlyFee  int64  `json:"monthly_fee"`
}

func (s *Server) UpdateCategory(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || id == 0 {
		AbortWithError(c, newValidationError("id", "invalid_category", "invalid category"))
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.disciplineSvc.UpdateCategory(c.Request.Context(), clubID, id, disciplinedomain.UpdateCategoryRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		MonthlyFee:  req.MonthlyFee,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCategories(c *gin.Context) {
	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var query struct {
		DisciplineID string `form:"discipline_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var disciplineID *snowflake.ID
	if raw := strings.TrimSpace(query.DisciplineID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil || parsed == 0 {
			AbortWithError(c, newValidationError("discipline_id", "invalid_discipline", "invalid discipline"))
			return
		}
		disciplineID = &parsed
	}

	categories, err := s.disciplineSvc.ListCategories(c.Request.Context(), clubID, disciplineID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}
