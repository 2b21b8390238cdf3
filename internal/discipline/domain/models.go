// Package domain contains persistence models for disciplines and categories.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DefaultMonthlyFee is charged when a category carries no positive fee,
// in minor currency units.
const DefaultMonthlyFee int64 = 5000

// Discipline groups categories under one club.
type Discipline struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ClubID      snowflake.ID `gorm:"not null;index" json:"club_id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Discipline) TableName() string { return "disciplines" }

// Category is a billable class within a discipline. Its club is the
// discipline's club.
type Category struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	DisciplineID snowflake.ID `gorm:"not null;index" json:"discipline_id"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	Description  string       `gorm:"type:text" json:"description"`
	MonthlyFee   int64        `gorm:"not null;default:0" json:"monthly_fee"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Category) TableName() string { return "categories" }

// EffectiveFee returns the fee billed for the category, falling back to
// DefaultMonthlyFee when no positive fee is set.
func (c Category) EffectiveFee() int64 {
	if c.MonthlyFee > 0 {
		return c.MonthlyFee
	}
	return DefaultMonthlyFee
}
