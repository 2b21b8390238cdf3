package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/auth/password"
	"github.com/smallbiznis/clubhub/internal/clock"
	"github.com/smallbiznis/clubhub/internal/user/domain"
	"github.com/smallbiznis/clubhub/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
	clock clock.Clock
}

func NewService(conn *gorm.DB, log *zap.Logger, repo domain.Repository, genID *snowflake.Node, clk clock.Clock) domain.Service {
	return &service{
		db:    conn,
		log:   log.Named("user.service"),
		repo:  repo,
		genID: genID,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return nil, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	if len(req.Password) < 6 {
		return nil, domain.ErrInvalidPassword
	}

	if !domain.ValidRole(req.Role) {
		return nil, domain.ErrInvalidRole
	}

	// Only SUPER_ADMIN accounts live outside a club.
	if req.Role == domain.RoleSuperAdmin {
		if req.ClubID != nil {
			return nil, domain.ErrInvalidClub
		}
	} else if req.ClubID == nil || *req.ClubID == 0 {
		return nil, domain.ErrInvalidClub
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := domain.User{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		Status:       domain.StatusActive,
		ClubID:       req.ClubID,
		NationalID:   normalize(req.NationalID),
		Sex:          normalize(req.Sex),
		Phone:        normalize(req.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			if strings.Contains(err.Error(), "national_id") {
				return nil, domain.ErrNationalIDTaken
			}
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return toResponse(user), nil
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *service) List(ctx context.Context, filter domain.ListFilter) ([]domain.UserResponse, error) {
	if filter.Role != "" && !domain.ValidRole(filter.Role) {
		return nil, domain.ErrInvalidRole
	}
	if filter.Status != "" && !domain.ValidStatus(filter.Status) {
		return nil, domain.ErrInvalidStatus
	}

	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, *toResponse(user))
	}
	return resp, nil
}

func (s *service) UpdateStatus(ctx context.Context, id snowflake.ID, status string) error {
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}

	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func normalize(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toResponse(user domain.User) *domain.UserResponse {
	resp := &domain.UserResponse{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Status:     user.Status,
		NationalID: user.NationalID,
		Sex:        user.Sex,
		Phone:      user.Phone,
		CreatedAt:  user.CreatedAt,
	}
	if user.ClubID != nil {
		clubID := user.ClubID.String()
		resp.ClubID = &clubID
	}
	return resp
}
