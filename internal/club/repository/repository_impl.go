package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/club/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, club domain.Club) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO clubs (id, name, slug, primary_color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		club.ID,
		club.Name,
		club.Slug,
		club.PrimaryColor,
		club.CreatedAt,
		club.UpdatedAt,
	).Error
}

func (r *repository) GetByID(ctx context.Context, id snowflake.ID) (*domain.Club, error) {
	var club domain.Club
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, name, slug, primary_color, created_at, updated_at
		 FROM clubs
		 WHERE id = ?
		 LIMIT 1`,
		id,
	).Scan(&club).Error
	if err != nil {
		return nil, err
	}
	if club.ID == 0 {
		return nil, nil
	}
	return &club, nil
}

func (r *repository) List(ctx context.Context) ([]domain.Club, error) {
	var clubs []domain.Club
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, name, slug, primary_color, created_at, updated_at
		 FROM clubs
		 ORDER BY created_at ASC`,
	).Scan(&clubs).Error
	if err != nil {
		return nil, err
	}
	return clubs, nil
}
