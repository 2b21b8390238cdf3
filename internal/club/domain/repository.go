package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, club Club) error
	GetByID(ctx context.Context, id snowflake.ID) (*Club, error)
	List(ctx context.Context) ([]Club, error)
}
