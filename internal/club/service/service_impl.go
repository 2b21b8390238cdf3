package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/clubhub/internal/clock"
	"github.com/smallbiznis/clubhub/internal/club/domain"
	"github.com/smallbiznis/clubhub/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

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
		log:   log.Named("club.service"),
		repo:  repo,
		genID: genID,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateClubRequest) (*domain.ClubResponse, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 3 {
		return nil, domain.ErrInvalidName
	}

	clubSlug := strings.TrimSpace(req.Slug)
	if clubSlug == "" {
		clubSlug = slug.Make(name)
	}
	if len(clubSlug) < 3 || !slugPattern.MatchString(clubSlug) {
		return nil, domain.ErrInvalidSlug
	}

	color := strings.TrimSpace(req.PrimaryColor)
	if color == "" {
		color = "#000000"
	}

	now := s.clock.Now()
	club := domain.Club{
		ID:           s.genID.Generate(),
		Name:         name,
		Slug:         clubSlug,
		PrimaryColor: color,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, club); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}

	s.log.Info("club created", zap.String("club_id", club.ID.String()), zap.String("slug", clubSlug))
	return toResponse(club), nil
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.ClubResponse, error) {
	club, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(*club), nil
}

func (s *service) List(ctx context.Context) ([]domain.ClubResponse, error) {
	clubs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.ClubResponse, 0, len(clubs))
	for _, club := range clubs {
		resp = append(resp, *toResponse(club))
	}
	return resp, nil
}

func toResponse(club domain.Club) *domain.ClubResponse {
	return &domain.ClubResponse{
		ID:           club.ID.String(),
		Name:         club.Name,
		Slug:         club.Slug,
		PrimaryColor: club.PrimaryColor,
		CreatedAt:    club.CreatedAt,
	}
}
