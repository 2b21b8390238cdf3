package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/clock"
	"github.com/smallbiznis/clubhub/internal/discipline/domain"
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
		log:   log.Named("discipline.service"),
		repo:  repo,
		genID: genID,
		clock: clk,
	}
}

func (s *service) CreateDiscipline(ctx context.Context, clubID snowflake.ID, req domain.CreateDisciplineRequest) (*domain.Discipline, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := s.clock.Now()
	discipline := domain.Discipline{
		ID:          s.genID.Generate(),
		ClubID:      clubID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateDiscipline(ctx, discipline); err != nil {
		return nil, err
	}

	s.log.Info("discipline created",
		zap.String("discipline_id", discipline.ID.String()),
		zap.String("club_id", clubID.String()),
	)
	return &discipline, nil
}

func (s *service) ListDisciplines(ctx context.Context, clubID snowflake.ID) ([]domain.Discipline, error) {
	return s.repo.ListDisciplines(ctx, clubID)
}

func (s *service) GetDiscipline(ctx context.Context, clubID, id snowflake.ID) (*domain.Discipline, error) {
	discipline, err := s.repo.GetDiscipline(ctx, id)
	if err != nil {
		return nil, err
	}
	if discipline == nil || discipline.ClubID != clubID {
		return nil, domain.ErrInvalidDiscipline
	}
	return discipline, nil
}

func (s *service) CreateCategory(ctx context.Context, clubID snowflake.ID, req domain.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	// Cross-tenant protection: the discipline must belong to the caller's club.
	discipline, err := s.repo.GetDiscipline(ctx, req.DisciplineID)
	if err != nil {
		return nil, err
	}
	if discipline == nil || discipline.ClubID != clubID {
		return nil, domain.ErrInvalidDiscipline
	}

	fee := req.MonthlyFee
	if fee <= 0 {
		fee = domain.DefaultMonthlyFee
	}

	now := s.clock.Now()
	category := domain.Category{
		ID:           s.genID.Generate(),
		DisciplineID: discipline.ID,
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		MonthlyFee:   fee,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info("category created",
		zap.String("category_id", category.ID.String()),
		zap.String("discipline_id", discipline.ID.String()),
	)
	return &category, nil
}

func (s *service) UpdateCategory(ctx context.Context, clubID, categoryID snowflake.ID, req domain.UpdateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	existing, err := s.repo.GetCategoryWithClub(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.ClubID != clubID {
		return nil, domain.ErrInvalidCategory
	}

	fee := req.MonthlyFee
	if fee <= 0 {
		fee = domain.DefaultMonthlyFee
	}

	category := existing.Category
	category.Name = name
	category.Description = strings.TrimSpace(req.Description)
	category.MonthlyFee = fee
	category.UpdatedAt = s.clock.Now()

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *service) ListCategories(ctx context.Context, clubID snowflake.ID, disciplineID *snowflake.ID) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx, clubID, disciplineID)
}

func (s *service) GetCategory(ctx context.Context, clubID, categoryID snowflake.ID) (*domain.Category, error) {
	row, err := s.repo.GetCategoryWithClub(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if row == nil || row.ClubID != clubID {
		return nil, domain.ErrInvalidCategory
	}
	return &row.Category, nil
}

func (s *service) ResolveCategoryClub(ctx context.Context, categoryID snowflake.ID) (snowflake.ID, error) {
	category, err := s.repo.GetCategoryWithClub(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, domain.ErrInvalidCategory
	}
	return category.ClubID, nil
}
