package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/membership/domain"
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

func (r *repository) CreateEnrollment(ctx context.Context, e domain.Enrollment) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO enrollments (id, user_id, category_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		e.ID,
		e.UserID,
		e.CategoryID,
		e.CreatedAt,
	).Error
}

func (r *repository) DeleteEnrollment(ctx context.Context, clubID, id snowflake.ID) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`DELETE FROM enrollments
		 WHERE id = ?
		   AND category_id IN (
		     SELECT c.id FROM categories c
		     JOIN disciplines d ON d.id = c.discipline_id
		     WHERE d.club_id = ?
		   )`,
		id,
		clubID,
	)
	return res.RowsAffected, res.Error
}

func (r *repository) ListEnrollmentsByUser(ctx context.Context, clubID, userID snowflake.ID) ([]domain.EnrollmentDetail, error) {
	var rows []domain.EnrollmentDetail
	err := r.db.WithContext(ctx).Raw(
		`SELECT e.id, e.user_id, e.category_id, c.name AS category_name,
		        d.id AS discipline_id, d.name AS discipline_name,
		        c.monthly_fee, e.created_at
		 FROM enrollments e
		 JOIN categories c ON c.id = e.category_id
		 JOIN disciplines d ON d.id = c.discipline_id
		 WHERE d.club_id = ? AND e.user_id = ?
		 ORDER BY e.created_at ASC`,
		clubID,
		userID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListEnrollmentsByCategory(ctx context.Context, categoryID snowflake.ID) ([]domain.Enrollment, error) {
	var rows []domain.Enrollment
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, user_id, category_id, created_at
		 FROM enrollments
		 WHERE category_id = ?
		 ORDER BY created_at ASC`,
		categoryID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListBillableEnrollments(ctx context.Context, clubID snowflake.ID, disciplineID *snowflake.ID) ([]domain.BillableEnrollment, error) {
	query := `SELECT e.user_id, e.category_id, c.monthly_fee
		 FROM enrollments e
		 JOIN users u ON u.id = e.user_id AND u.status = 'ACTIVE'
		 JOIN categories c ON c.id = e.category_id
		 JOIN disciplines d ON d.id = c.discipline_id
		 WHERE d.club_id = ?`
	args := []any{clubID}
	if disciplineID != nil {
		query += ` AND d.id = ?`
		args = append(args, *disciplineID)
	}
	query += ` ORDER BY e.user_id ASC, e.category_id ASC`

	var rows []domain.BillableEnrollment
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CreateAssignment(ctx context.Context, a domain.TeachingAssignment) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO teaching_assignments (id, user_id, category_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		a.ID,
		a.UserID,
		a.CategoryID,
		a.CreatedAt,
	).Error
}

func (r *repository) DeleteAssignment(ctx context.Context, clubID, id snowflake.ID) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`DELETE FROM teaching_assignments
		 WHERE id = ?
		   AND category_id IN (
		     SELECT c.id FROM categories c
		     JOIN disciplines d ON d.id = c.discipline_id
		     WHERE d.club_id = ?
		   )`,
		id,
		clubID,
	)
	return res.RowsAffected, res.Error
}

func (r *repository) ListAssignmentsByUser(ctx context.Context, userID snowflake.ID) ([]domain.TeachingAssignment, error) {
	var rows []domain.TeachingAssignment
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, user_id, category_id, created_at
		 FROM teaching_assignments
		 WHERE user_id = ?
		 ORDER BY created_at ASC`,
		userID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListAssignedCategoryIDs(ctx context.Context, userID snowflake.ID) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := r.db.WithContext(ctx).Raw(
		`SELECT category_id FROM teaching_assignments WHERE user_id = ?`,
		userID,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
