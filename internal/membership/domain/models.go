package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Enrollment links a student to a category. A student can hold at most
// one enrollment per category, enforced by ux_enrollments_user_category.
type Enrollment struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID     snowflake.ID `json:"user_id" gorm:"uniqueIndex:ux_enrollments_user_category"`
	CategoryID snowflake.ID `json:"category_id" gorm:"uniqueIndex:ux_enrollments_user_category"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// TeachingAssignment links a professor to a category they teach.
type TeachingAssignment struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID     snowflake.ID `json:"user_id" gorm:"uniqueIndex:ux_assignments_user_category"`
	CategoryID snowflake.ID `json:"category_id" gorm:"uniqueIndex:ux_assignments_user_category"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (TeachingAssignment) TableName() string {
	return "teaching_assignments"
}

// BillableEnrollment is one fee-generation input: an ACTIVE student's
// enrollment with the category's configured fee.
type BillableEnrollment struct {
	UserID     snowflake.ID `json:"user_id"`
	CategoryID snowflake.ID `json:"category_id"`
	MonthlyFee int64        `json:"monthly_fee"`
}

// EnrollmentDetail is an enrollment joined with its category and
// discipline for list responses.
type EnrollmentDetail struct {
	ID             snowflake.ID `json:"id"`
	UserID         snowflake.ID `json:"user_id"`
	CategoryID     snowflake.ID `json:"category_id"`
	CategoryName   string       `json:"category_name"`
	DisciplineID   snowflake.ID `json:"discipline_id"`
	DisciplineName string       `json:"discipline_name"`
	MonthlyFee     int64        `json:"monthly_fee"`
	CreatedAt      time.Time    `json:"created_at"`
}
