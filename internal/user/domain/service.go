package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]UserResponse, error)
	UpdateStatus(ctx context.Context, id snowflake.ID, status string) error
}

type CreateUserRequest struct {
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Password   string        `json:"password"`
	Role       string        `json:"role"`
	ClubID     *snowflake.ID `json:"club_id"`
	NationalID *string       `json:"national_id"`
	Sex        *string       `json:"sex"`
	Phone      *string       `json:"phone"`
}

type ListFilter struct {
	ClubID *snowflake.ID
	Role   string
	Status string
}

type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	ClubID     *string   `json:"club_id,omitempty"`
	NationalID *string   `json:"national_id,omitempty"`
	Sex        *string   `json:"sex,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidClub     = errors.New("invalid_club")
	ErrEmailTaken      = errors.New("email_taken")
	ErrNationalIDTaken = errors.New("national_id_taken")
	ErrNotFound        = errors.New("user_not_found")
)
