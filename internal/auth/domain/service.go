package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Identity, error)
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

type LoginResult struct {
	User      *userdomain.User
	SessionID snowflake.ID
	RawToken  string
	ExpiresAt time.Time
}

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	UserID snowflake.ID
	Role   string
	ClubID *snowflake.ID
}
