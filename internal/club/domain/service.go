package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateClubRequest) (*ClubResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (*ClubResponse, error)
	List(ctx context.Context) ([]ClubResponse, error)
}

type CreateClubRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	PrimaryColor string `json:"primary_color"`
}

type ClubResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	PrimaryColor string    `json:"primary_color"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidSlug = errors.New("invalid_slug")
	ErrSlugTaken   = errors.New("slug_taken")
	ErrNotFound    = errors.New("club_not_found")
)
