package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrUnknownUser     = errors.New("unknown_user")
	ErrUnknownCategory = errors.New("unknown_category")
	ErrNotStudent      = errors.New("user_not_student")
	ErrNotProfessor    = errors.New("user_not_professor")
	ErrAlreadyEnrolled = errors.New("already_enrolled")
	ErrAlreadyAssigned = errors.New("already_assigned")
)

type Service interface {
	// Enroll registers a student into a category within the club.
	Enroll(ctx context.Context, clubID, userID, categoryID snowflake.ID) (*Enrollment, error)

	// AssignProfessor registers a professor as teacher of a category.
	AssignProfessor(ctx context.Context, clubID, userID, categoryID snowflake.ID) (*TeachingAssignment, error)

	// RemoveEnrollment deletes an enrollment. Removing an enrollment
	// that does not exist is a no-op, not an error.
	RemoveEnrollment(ctx context.Context, clubID, enrollmentID snowflake.ID) error

	// RemoveAssignment deletes a teaching assignment. Removing an
	// assignment that does not exist is a no-op, not an error.
	RemoveAssignment(ctx context.Context, clubID, assignmentID snowflake.ID) error

	// ListEnrollmentsByStudent reads a student's enrollments scoped to
	// one club. Rows from other tenants are never returned.
	ListEnrollmentsByStudent(ctx context.Context, clubID, userID snowflake.ID) ([]EnrollmentDetail, error)
	ListEnrollmentsByCategory(ctx context.Context, categoryID snowflake.ID) ([]Enrollment, error)

	// ListBillableEnrollments reports the enrollments of ACTIVE students
	// in the club, optionally narrowed to one discipline, with each
	// category's configured fee. Fee generation consumes it.
	ListBillableEnrollments(ctx context.Context, clubID snowflake.ID, disciplineID *snowflake.ID) ([]BillableEnrollment, error)
	ListAssignmentsByProfessor(ctx context.Context, userID snowflake.ID) ([]TeachingAssignment, error)

	// AssignedCategoryIDs reports the categories a professor teaches,
	// used to scope payment listings.
	AssignedCategoryIDs(ctx context.Context, userID snowflake.ID) ([]snowflake.ID, error)
}
