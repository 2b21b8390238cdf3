package authorization_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/authorization"
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

	// The casbin adapter creates its own table; only users is needed
	// for actor resolution.
	if err := db.Exec(`CREATE TABLE users (
		id BIGINT PRIMARY KEY,
		club_id BIGINT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

type fixture struct {
	db           *gorm.DB
	node         *snowflake.Node
	svc          authorization.Service
	clubID       snowflake.ID
	otherClubID  snowflake.ID
	superAdminID snowflake.ID
	adminID      snowflake.ID
	professorID  snowflake.ID
	studentID    snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	node, err := snowflake.NewNode(26)
	require.NoError(t, err)

	enforcer, err := authorization.NewEnforcer(db)
	require.NoError(t, err)
	svc := authorization.NewService(authorization.Params{
		DB:       db,
		Log:      zap.NewNop(),
		Enforcer: enforcer,
	})

	f := &fixture{db: db, node: node, svc: svc}
	f.clubID = node.Generate()
	f.otherClubID = node.Generate()
	f.superAdminID = f.seedUser(t, "root@platform.test", "SUPER_ADMIN", "ACTIVE", nil)
	f.adminID = f.seedUser(t, "admin@club.test", "CLUB_ADMIN", "ACTIVE", &f.clubID)
	f.professorID = f.seedUser(t, "coach@club.test", "PROFESSOR", "ACTIVE", &f.clubID)
	f.studentID = f.seedUser(t, "student@club.test", "STUDENT", "ACTIVE", &f.clubID)
	return f
}

func (f *fixture) seedUser(t *testing.T, email, role, status string, clubID *snowflake.ID) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	now := time.Now().UTC()
	require.NoError(t, f.db.Exec(
		`INSERT INTO users (id, club_id, name, email, password_hash, role, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, clubID, email, email, "x", role, status, now, now,
	).Error)
	return id
}

func (f *fixture) authorize(userID snowflake.ID, clubID snowflake.ID, object, action string) error {
	return f.svc.Authorize(context.Background(), "user:"+userID.String(), clubID.String(), object, action)
}

func TestSuperAdminManagesClubsAndUsersOnly(t *testing.T) {
	f := newFixture(t)

	allowed := [][2]string{
		{authorization.ObjectClub, authorization.ActionClubCreate},
		{authorization.ObjectClub, authorization.ActionClubUpdate},
		{authorization.ObjectUser, authorization.ActionUserCreate},
		{authorization.ObjectUser, authorization.ActionUserUpdate},
		{authorization.ObjectUser, authorization.ActionUserView},
	}
	for _, p := range allowed {
		assert.NoError(t, f.authorize(f.superAdminID, f.clubID, p[0], p[1]), p[1])
	}

	// In-club operations stay with the club's own roles.
	denied := [][2]string{
		{authorization.ObjectDiscipline, authorization.ActionDisciplineCreate},
		{authorization.ObjectCategory, authorization.ActionCategoryCreate},
		{authorization.ObjectEnrollment, authorization.ActionEnrollmentCreate},
		{authorization.ObjectAssignment, authorization.ActionAssignmentCreate},
		{authorization.ObjectPayment, authorization.ActionPaymentGenerate},
		{authorization.ObjectPayment, authorization.ActionPaymentRegister},
		{authorization.ObjectReceipt, authorization.ActionReceiptUpload},
	}
	for _, p := range denied {
		assert.ErrorIs(t, f.authorize(f.superAdminID, f.clubID, p[0], p[1]), authorization.ErrForbidden, p[1])
	}
}

func TestClubAdminFullAccessInOwnClub(t *testing.T) {
	f := newFixture(t)

	allowed := [][2]string{
		{authorization.ObjectDiscipline, authorization.ActionDisciplineCreate},
		{authorization.ObjectEnrollment, authorization.ActionEnrollmentCreate},
		{authorization.ObjectPayment, authorization.ActionPaymentGenerate},
		{authorization.ObjectPayment, authorization.ActionPaymentRegister},
		{authorization.ObjectReceipt, authorization.ActionReceiptUpload},
		{authorization.ObjectAuditLog, authorization.ActionAuditLogView},
	}
	for _, p := range allowed {
		assert.NoError(t, f.authorize(f.adminID, f.clubID, p[0], p[1]), p[1])
	}

	// Club admins never create clubs.
	assert.ErrorIs(t,
		f.authorize(f.adminID, f.clubID, authorization.ObjectClub, authorization.ActionClubCreate),
		authorization.ErrForbidden)
}

func TestClubAdminDeniedInForeignClub(t *testing.T) {
	f := newFixture(t)

	err := f.authorize(f.adminID, f.otherClubID, authorization.ObjectPayment, authorization.ActionPaymentGenerate)
	assert.ErrorIs(t, err, authorization.ErrForbidden)
}

func TestProfessorMatrix(t *testing.T) {
	f := newFixture(t)

	allowed := [][2]string{
		{authorization.ObjectDiscipline, authorization.ActionDisciplineView},
		{authorization.ObjectCategory, authorization.ActionCategoryView},
		{authorization.ObjectEnrollment, authorization.ActionEnrollmentView},
		{authorization.ObjectPayment, authorization.ActionPaymentView},
		{authorization.ObjectPayment, authorization.ActionPaymentRegister},
		{authorization.ObjectReceipt, authorization.ActionReceiptUpload},
	}
	for _, p := range allowed {
		assert.NoError(t, f.authorize(f.professorID, f.clubID, p[0], p[1]), p[1])
	}

	denied := [][2]string{
		{authorization.ObjectDiscipline, authorization.ActionDisciplineCreate},
		{authorization.ObjectEnrollment, authorization.ActionEnrollmentCreate},
		{authorization.ObjectEnrollment, authorization.ActionEnrollmentDelete},
		{authorization.ObjectPayment, authorization.ActionPaymentGenerate},
		{authorization.ObjectUser, authorization.ActionUserCreate},
	}
	for _, p := range denied {
		assert.ErrorIs(t, f.authorize(f.professorID, f.clubID, p[0], p[1]), authorization.ErrForbidden, p[1])
	}
}

func TestStudentViewsOwnPaymentsOnly(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.authorize(f.studentID, f.clubID, authorization.ObjectPayment, authorization.ActionPaymentViewOwn))
	assert.NoError(t, f.authorize(f.studentID, f.clubID, authorization.ObjectDiscipline, authorization.ActionDisciplineView))

	denied := [][2]string{
		{authorization.ObjectPayment, authorization.ActionPaymentView},
		{authorization.ObjectPayment, authorization.ActionPaymentGenerate},
		{authorization.ObjectPayment, authorization.ActionPaymentRegister},
		{authorization.ObjectEnrollment, authorization.ActionEnrollmentCreate},
		{authorization.ObjectReceipt, authorization.ActionReceiptUpload},
		{authorization.ObjectUser, authorization.ActionUserView},
	}
	for _, p := range denied {
		assert.ErrorIs(t, f.authorize(f.studentID, f.clubID, p[0], p[1]), authorization.ErrForbidden, p[1])
	}
}

func TestInactiveUserDenied(t *testing.T) {
	f := newFixture(t)

	frozen := f.seedUser(t, "frozen@club.test", "CLUB_ADMIN", "INACTIVE", &f.clubID)
	err := f.authorize(frozen, f.clubID, authorization.ObjectDiscipline, authorization.ActionDisciplineView)
	assert.ErrorIs(t, err, authorization.ErrForbidden)
}

func TestMalformedActorRejected(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Authorize(context.Background(), "banana", f.clubID.String(), authorization.ObjectClub, authorization.ActionClubView)
	assert.ErrorIs(t, err, authorization.ErrInvalidActor)

	err = f.svc.Authorize(context.Background(), "user:"+f.adminID.String(), "", authorization.ObjectClub, authorization.ActionClubView)
	assert.ErrorIs(t, err, authorization.ErrInvalidClub)
}
