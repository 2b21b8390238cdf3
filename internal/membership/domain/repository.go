package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateEnrollment(ctx context.Context, e Enrollment) error
	DeleteEnrollment(ctx context.Context, clubID, id snowflake.ID) (int64, error)
	ListEnrollmentsByUser(ctx context.Context, clubID, userID snowflake.ID) ([]EnrollmentDetail, error)
	ListEnrollmentsByCategory(ctx context.Context, categoryID snowflake.ID) ([]Enrollment, error)
	ListBillableEnrollments(ctx context.Context, clubID snowflake.ID, disciplineID *snowflake.ID) ([]BillableEnrollment, error)

	CreateAssignment(ctx context.Context, a TeachingAssignment) error
	DeleteAssignment(ctx context.Context, clubID, id snowflake.ID) (int64, error)
	ListAssignmentsByUser(ctx context.Context, userID snowflake.ID) ([]TeachingAssignment, error)
	ListAssignedCategoryIDs(ctx context.Context, userID snowflake.ID) ([]snowflake.ID, error)
}
