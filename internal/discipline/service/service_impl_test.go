package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/clock"
	"github.com/smallbiznis/clubhub/internal/discipline/domain"
	disciplinerepo "github.com/smallbiznis/clubhub/internal/discipline/repository"
	disciplineservice "github.com/smallbiznis/clubhub/internal/discipline/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	schema := []string{
		`CREATE TABLE disciplines (
			id BIGINT PRIMARY KEY,
			club_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE categories (
			id BIGINT PRIMARY KEY,
			discipline_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			monthly_fee BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func newService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()
	db := setupTestDB(t)
	node, err := snowflake.NewNode(22)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC))
	return disciplineservice.NewService(db, zap.NewNop(), disciplinerepo.NewRepository(db), node, clk), node
}

func TestCreateDisciplineAndCategory(t *testing.T) {
	ctx := context.Background()
	svc, node := newService(t)
	clubID := node.Generate()

	discipline, err := svc.CreateDiscipline(ctx, clubID, domain.CreateDisciplineRequest{
		Name:        "Karate",
		Description: "Martial arts",
	})
	require.NoError(t, err)
	assert.Equal(t, clubID, discipline.ClubID)

	category, err := svc.CreateCategory(ctx, clubID, domain.CreateCategoryRequest{
		DisciplineID: discipline.ID,
		Name:         "Beginners",
		MonthlyFee:   7500,
	})
	require.NoError(t, err)
	assert.Equal(t, discipline.ID, category.DisciplineID)
	assert.Equal(t, int64(7500), category.MonthlyFee)

	categories, err := svc.ListCategories(ctx, clubID, &discipline.ID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Beginners", categories[0].Name)
}

func TestCreateDisciplineStampsClockTime(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	node, err := snowflake.NewNode(27)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC))
	svc := disciplineservice.NewService(db, zap.NewNop(), disciplinerepo.NewRepository(db), node, clk)

	discipline, err := svc.CreateDiscipline(ctx, node.Generate(), domain.CreateDisciplineRequest{Name: "Chess"})
	require.NoError(t, err)
	assert.True(t, discipline.CreatedAt.Equal(clk.Now()))
	assert.True(t, discipline.UpdatedAt.Equal(clk.Now()))
}

func TestCreateDisciplineRequiresName(t *testing.T) {
	ctx := context.Background()
	svc, node := newService(t)

	_, err := svc.CreateDiscipline(ctx, node.Generate(), domain.CreateDisciplineRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestCreateCategoryForeignDiscipline(t *testing.T) {
	ctx := context.Background()
	svc, node := newService(t)
	clubID := node.Generate()
	otherClubID := node.Generate()

	discipline, err := svc.CreateDiscipline(ctx, clubID, domain.CreateDisciplineRequest{Name: "Tennis"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, otherClubID, domain.CreateCategoryRequest{
		DisciplineID: discipline.ID,
		Name:         "Adults",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscipline)
}

func TestEffectiveFeeFallsBack(t *testing.T) {
	zero := domain.Category{MonthlyFee: 0}
	assert.Equal(t, domain.DefaultMonthlyFee, zero.EffectiveFee())

	set := domain.Category{MonthlyFee: 9000}
	assert.Equal(t, int64(9000), set.EffectiveFee())
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	svc, node := newService(t)
	clubID := node.Generate()

	discipline, err := svc.CreateDiscipline(ctx, clubID, domain.CreateDisciplineRequest{Name: "Chess"})
	require.NoError(t, err)
	category, err := svc.CreateCategory(ctx, clubID, domain.CreateCategoryRequest{
		DisciplineID: discipline.ID,
		Name:         "Blitz",
		MonthlyFee:   3000,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateCategory(ctx, clubID, category.ID, domain.UpdateCategoryRequest{
		Name:       "Rapid",
		MonthlyFee: 4000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rapid", updated.Name)
	assert.Equal(t, int64(4000), updated.MonthlyFee)
}

func TestUpdateCategoryForeignClub(t *testing.T) {
	ctx := context.Background()
	svc, node := newService(t)
	clubID := node.Generate()
	otherClubID := node.Generate()

	discipline, err := svc.CreateDiscipline(ctx, clubID, domain.CreateDisciplineRequest{Name: "Rowing"})
	require.NoError(t, err)
	category, err := svc.CreateCategory(ctx, clubID, domain.CreateCategoryRequest{
		DisciplineID: discipline.ID,
		Name:         "Pairs",
	})
	require.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, otherClubID, category.ID, domain.UpdateCategoryRequest{Name: "Pairs"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestGetCategoryScopedToClub(t *testing.T) {
	ctx := context.Background()
	svc, node := newService(t)
	clubID := node.Generate()

	discipline, err := svc.CreateDiscipline(ctx, clubID, domain.CreateDisciplineRequest{Name: "Judo"})
	require.NoError(t, err)
	category, err := svc.CreateCategory(ctx, clubID, domain.CreateCategoryRequest{
		DisciplineID: discipline.ID,
		Name:         "Cadets",
	})
	require.NoError(t, err)

	got, err := svc.GetCategory(ctx, clubID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, got.ID)

	_, err = svc.GetCategory(ctx, node.Generate(), category.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	owner, err := svc.ResolveCategoryClub(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, clubID, owner)
}
