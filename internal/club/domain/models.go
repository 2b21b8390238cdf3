// Package domain contains persistence models for the club service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Club represents a tenant. All disciplines, categories, enrollments and
// payments resolve to exactly one club.
type Club struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	Slug         string       `gorm:"type:text;not null;uniqueIndex:ux_clubs_slug" json:"slug"`
	PrimaryColor string       `gorm:"type:text;not null;default:'#000000'" json:"primary_color"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Club) TableName() string { return "clubs" }
