package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	CreateDiscipline(ctx context.Context, clubID snowflake.ID, req CreateDisciplineRequest) (*Discipline, error)
	ListDisciplines(ctx context.Context, clubID snowflake.ID) ([]Discipline, error)
	GetDiscipline(ctx context.Context, clubID, id snowflake.ID) (*Discipline, error)
	CreateCategory(ctx context.Context, clubID snowflake.ID, req CreateCategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, clubID, categoryID snowflake.ID, req UpdateCategoryRequest) (*Category, error)
	ListCategories(ctx context.Context, clubID snowflake.ID, disciplineID *snowflake.ID) ([]Category, error)
	GetCategory(ctx context.Context, clubID, categoryID snowflake.ID) (*Category, error)
	ResolveCategoryClub(ctx context.Context, categoryID snowflake.ID) (snowflake.ID, error)
}

type CreateDisciplineRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateCategoryRequest struct {
	DisciplineID snowflake.ID `json:"discipline_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	MonthlyFee   int64        `json:"monthly_fee"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MonthlyFee  int64  `json:"monthly_fee"`
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidDiscipline = errors.New("invalid_discipline")
	ErrInvalidCategory   = errors.New("invalid_category")
)
