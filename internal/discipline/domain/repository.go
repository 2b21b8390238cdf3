package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// CategoryWithClub carries the transitively resolved club for tenant checks.
type CategoryWithClub struct {
	Category
	ClubID snowflake.ID `gorm:"column:club_id"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateDiscipline(ctx context.Context, discipline Discipline) error
	GetDiscipline(ctx context.Context, id snowflake.ID) (*Discipline, error)
	ListDisciplines(ctx context.Context, clubID snowflake.ID) ([]Discipline, error)
	CreateCategory(ctx context.Context, category Category) error
	UpdateCategory(ctx context.Context, category Category) error
	GetCategoryWithClub(ctx context.Context, id snowflake.ID) (*CategoryWithClub, error)
	ListCategories(ctx context.Context, clubID snowflake.ID, disciplineID *snowflake.ID) ([]Category, error)
}
