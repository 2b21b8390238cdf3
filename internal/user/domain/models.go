// Package domain contains core types for the user service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleClubAdmin  = "CLUB_ADMIN"
	RoleProfessor  = "PROFESSOR"
	RoleStudent    = "STUDENT"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusPending  = "PENDING"
)

// User represents an account. ClubID is nil only for SUPER_ADMIN; every other
// role belongs to exactly one club.
type User struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"type:text;not null" json:"name"`
	Email        string        `gorm:"type:text;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string        `gorm:"type:text;not null" json:"-"`
	Role         string        `gorm:"type:text;not null" json:"role"`
	Status       string        `gorm:"type:text;not null" json:"status"`
	ClubID       *snowflake.ID `gorm:"index" json:"club_id"`
	NationalID   *string       `gorm:"type:text;uniqueIndex:ux_users_national_id" json:"national_id"`
	Sex          *string       `gorm:"type:text" json:"sex"`
	Phone        *string       `gorm:"type:text" json:"phone"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleClubAdmin, RoleProfessor, RoleStudent:
		return true
	default:
		return false
	}
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusPending:
		return true
	default:
		return false
	}
}
