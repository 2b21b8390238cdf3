package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/clock"
	disciplinerepo "github.com/smallbiznis/clubhub/internal/discipline/repository"
	disciplineservice "github.com/smallbiznis/clubhub/internal/discipline/service"
	"github.com/smallbiznis/clubhub/internal/membership/domain"
	membershiprepo "github.com/smallbiznis/clubhub/internal/membership/repository"
	membershipservice "github.com/smallbiznis/clubhub/internal/membership/service"
	userrepo "github.com/smallbiznis/clubhub/internal/user/repository"
	userservice "github.com/smallbiznis/clubhub/internal/user/service"
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
		`CREATE TABLE users (
			id BIGINT PRIMARY KEY,
			club_id BIGINT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'ACTIVE',
			national_id TEXT,
			sex TEXT,
			phone TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
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
		`CREATE TABLE enrollments (
			id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			category_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE UNIQUE INDEX ux_enrollments_user_category ON enrollments(user_id, category_id)`,
		`CREATE TABLE teaching_assignments (
			id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			category_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE UNIQUE INDEX ux_assignments_user_category ON teaching_assignments(user_id, category_id)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

type fixture struct {
	db          *gorm.DB
	node        *snowflake.Node
	svc         domain.Service
	clubID      snowflake.ID
	otherClubID snowflake.ID
	categoryID  snowflake.ID
	studentID   snowflake.ID
	professorID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	node, err := snowflake.NewNode(21)
	require.NoError(t, err)
	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC))

	userSvc := userservice.NewService(db, log, userrepo.NewRepository(db), node, clk)
	disciplineSvc := disciplineservice.NewService(db, log, disciplinerepo.NewRepository(db), node, clk)
	svc := membershipservice.NewService(membershipservice.Params{
		Log:           log,
		GenID:         node,
		Clock:         clk,
		Repo:          membershiprepo.NewRepository(db),
		UserSvc:       userSvc,
		DisciplineSvc: disciplineSvc,
	})

	f := &fixture{db: db, node: node, svc: svc}
	now := clk.Now()

	f.clubID = node.Generate()
	f.otherClubID = node.Generate()

	disciplineID := node.Generate()
	require.NoError(t, db.Exec(
		`INSERT INTO disciplines (id, club_id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		disciplineID, f.clubID, "Swimming", "", now, now,
	).Error)
	f.categoryID = node.Generate()
	require.NoError(t, db.Exec(
		`INSERT INTO categories (id, discipline_id, name, description, monthly_fee, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.categoryID, disciplineID, "Juniors", "", 6000, now, now,
	).Error)

	f.studentID = f.seedUser(t, "student@club.test", "STUDENT", f.clubID, now)
	f.professorID = f.seedUser(t, "coach@club.test", "PROFESSOR", f.clubID, now)
	return f
}

func (f *fixture) seedUser(t *testing.T, email, role string, clubID snowflake.ID, now time.Time) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Exec(
		`INSERT INTO users (id, club_id, name, email, password_hash, role, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, 'ACTIVE', ?, ?)`,
		id, clubID, email, email, "x", role, now, now,
	).Error)
	return id
}

func TestEnrollStudent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	enrollment, err := f.svc.Enroll(ctx, f.clubID, f.studentID, f.categoryID)
	require.NoError(t, err)
	assert.Equal(t, f.studentID, enrollment.UserID)
	assert.Equal(t, f.categoryID, enrollment.CategoryID)

	details, err := f.svc.ListEnrollmentsByStudent(ctx, f.clubID, f.studentID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Juniors", details[0].CategoryName)
	assert.Equal(t, "Swimming", details[0].DisciplineName)
	assert.Equal(t, int64(6000), details[0].MonthlyFee)
}

func TestEnrollTwiceIsConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Enroll(ctx, f.clubID, f.studentID, f.categoryID)
	require.NoError(t, err)

	_, err = f.svc.Enroll(ctx, f.clubID, f.studentID, f.categoryID)
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
}

func TestEnrollRejectsProfessor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Enroll(ctx, f.clubID, f.professorID, f.categoryID)
	assert.ErrorIs(t, err, domain.ErrNotStudent)
}

func TestEnrollRejectsForeignClubUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	outsider := f.seedUser(t, "outsider@club.test", "STUDENT", f.otherClubID, time.Now().UTC())
	_, err := f.svc.Enroll(ctx, f.clubID, outsider, f.categoryID)
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestEnrollRejectsForeignClubCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Student belongs to the other club, category does not.
	outsider := f.seedUser(t, "other-student@club.test", "STUDENT", f.otherClubID, time.Now().UTC())
	_, err := f.svc.Enroll(ctx, f.otherClubID, outsider, f.categoryID)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestAssignProfessor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assignment, err := f.svc.AssignProfessor(ctx, f.clubID, f.professorID, f.categoryID)
	require.NoError(t, err)
	assert.Equal(t, f.professorID, assignment.UserID)

	ids, err := f.svc.AssignedCategoryIDs(ctx, f.professorID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, f.categoryID, ids[0])
}

func TestAssignProfessorTwiceIsConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.AssignProfessor(ctx, f.clubID, f.professorID, f.categoryID)
	require.NoError(t, err)

	_, err = f.svc.AssignProfessor(ctx, f.clubID, f.professorID, f.categoryID)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)
}

func TestAssignRejectsStudent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.AssignProfessor(ctx, f.clubID, f.studentID, f.categoryID)
	assert.ErrorIs(t, err, domain.ErrNotProfessor)
}

func TestRemoveEnrollment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	enrollment, err := f.svc.Enroll(ctx, f.clubID, f.studentID, f.categoryID)
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveEnrollment(ctx, f.clubID, enrollment.ID))

	details, err := f.svc.ListEnrollmentsByStudent(ctx, f.clubID, f.studentID)
	require.NoError(t, err)
	assert.Len(t, details, 0)
}

func TestRemoveMissingEnrollmentIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.NoError(t, f.svc.RemoveEnrollment(ctx, f.clubID, f.node.Generate()))
	assert.NoError(t, f.svc.RemoveAssignment(ctx, f.clubID, f.node.Generate()))
}

func TestListEnrollmentsScopedToClub(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Enroll(ctx, f.clubID, f.studentID, f.categoryID)
	require.NoError(t, err)

	// Reading through another club's scope must return nothing, even
	// when the caller names a valid student of the first club.
	details, err := f.svc.ListEnrollmentsByStudent(ctx, f.otherClubID, f.studentID)
	require.NoError(t, err)
	assert.Len(t, details, 0)

	details, err = f.svc.ListEnrollmentsByStudent(ctx, f.clubID, f.studentID)
	require.NoError(t, err)
	assert.Len(t, details, 1)
}

func TestRemoveEnrollmentForeignClubIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	enrollment, err := f.svc.Enroll(ctx, f.clubID, f.studentID, f.categoryID)
	require.NoError(t, err)

	// The delete is scoped to the caller's club, so a foreign club
	// cannot remove it.
	require.NoError(t, f.svc.RemoveEnrollment(ctx, f.otherClubID, enrollment.ID))

	details, err := f.svc.ListEnrollmentsByStudent(ctx, f.clubID, f.studentID)
	require.NoError(t, err)
	assert.Len(t, details, 1)
}
