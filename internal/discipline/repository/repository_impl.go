package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/discipline/domain"
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

func (r *repository) CreateDiscipline(ctx context.Context, discipline domain.Discipline) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO disciplines (id, club_id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		discipline.ID,
		discipline.ClubID,
		discipline.Name,
		discipline.Description,
		discipline.CreatedAt,
		discipline.UpdatedAt,
	).Error
}

func (r *repository) GetDiscipline(ctx context.Context, id snowflake.ID) (*domain.Discipline, error) {
	var discipline domain.Discipline
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, club_id, name, description, created_at, updated_at
		 FROM disciplines
		 WHERE id = ?
		 LIMIT 1`,
		id,
	).Scan(&discipline).Error
	if err != nil {
		return nil, err
	}
	if discipline.ID == 0 {
		return nil, nil
	}
	return &discipline, nil
}

func (r *repository) ListDisciplines(ctx context.Context, clubID snowflake.ID) ([]domain.Discipline, error) {
	var disciplines []domain.Discipline
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, club_id, name, description, created_at, updated_at
		 FROM disciplines
		 WHERE club_id = ?
		 ORDER BY created_at ASC`,
		clubID,
	).Scan(&disciplines).Error
	if err != nil {
		return nil, err
	}
	return disciplines, nil
}

func (r *repository) CreateCategory(ctx context.Context, category domain.Category) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO categories (id, discipline_id, name, description, monthly_fee, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		category.ID,
		category.DisciplineID,
		category.Name,
		category.Description,
		category.MonthlyFee,
		category.CreatedAt,
		category.UpdatedAt,
	).Error
}

func (r *repository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE categories
		 SET name = ?, description = ?, monthly_fee = ?, updated_at = ?
		 WHERE id = ?`,
		category.Name,
		category.Description,
		category.MonthlyFee,
		category.UpdatedAt,
		category.ID,
	).Error
}

func (r *repository) GetCategoryWithClub(ctx context.Context, id snowflake.ID) (*domain.CategoryWithClub, error) {
	var row domain.CategoryWithClub
	err := r.db.WithContext(ctx).Raw(
		`SELECT c.id, c.discipline_id, c.name, c.description, c.monthly_fee,
			c.created_at, c.updated_at, d.club_id
		 FROM categories c
		 JOIN disciplines d ON d.id = c.discipline_id
		 WHERE c.id = ?
		 LIMIT 1`,
		id,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repository) ListCategories(ctx context.Context, clubID snowflake.ID, disciplineID *snowflake.ID) ([]domain.Category, error) {
	query := `SELECT c.id, c.discipline_id, c.name, c.description, c.monthly_fee,
			c.created_at, c.updated_at
		 FROM categories c
		 JOIN disciplines d ON d.id = c.discipline_id
		 WHERE d.club_id = ?`
	args := []any{clubID}
	if disciplineID != nil {
		query += ` AND c.discipline_id = ?`
		args = append(args, *disciplineID)
	}
	query += ` ORDER BY c.created_at ASC`

	var categories []domain.Category
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
