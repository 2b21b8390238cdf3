package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/auth/domain"
	authservice "github.com/smallbiznis/clubhub/internal/auth/service"
	"github.com/smallbiznis/clubhub/internal/clock"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
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
		`CREATE UNIQUE INDEX ux_users_email ON users(email)`,
		`CREATE TABLE sessions (
			id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			session_token_hash TEXT NOT NULL,
			user_agent TEXT,
			ip_address TEXT,
			expires_at TIMESTAMP NOT NULL,
			revoked_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			last_seen_at TIMESTAMP NOT NULL
		)`,
		`CREATE UNIQUE INDEX ux_sessions_token_hash ON sessions(session_token_hash)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

type fixture struct {
	svc     domain.Service
	userSvc userdomain.Service
	clk     *clock.FakeClock
	node    *snowflake.Node
	clubID  snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	node, err := snowflake.NewNode(25)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	userSvc := userservice.NewService(db, log, userrepo.NewRepository(db), node, clk)
	svc := authservice.NewService(authservice.Params{
		DB:      db,
		Log:     log,
		GenID:   node,
		Clock:   clk,
		UserSvc: userSvc,
	})
	return &fixture{svc: svc, userSvc: userSvc, clk: clk, node: node, clubID: node.Generate()}
}

func (f *fixture) seedUser(t *testing.T, email, pass string) *userdomain.UserResponse {
	t.Helper()
	resp, err := f.userSvc.Create(context.Background(), userdomain.CreateUserRequest{
		Name:     "Test Member",
		Email:    email,
		Password: pass,
		Role:     userdomain.RoleStudent,
		ClubID:   &f.clubID,
	})
	require.NoError(t, err)
	return resp
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "ana@club.test", "secret123")

	result, err := f.svc.Login(ctx, domain.LoginRequest{
		Email:    "Ana@Club.Test",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RawToken)
	assert.True(t, result.ExpiresAt.After(f.clk.Now()))

	identity, err := f.svc.Authenticate(ctx, result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, identity.UserID)
	assert.Equal(t, userdomain.RoleStudent, identity.Role)
	require.NotNil(t, identity.ClubID)
	assert.Equal(t, f.clubID, *identity.ClubID)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "ana@club.test", "secret123")

	_, err := f.svc.Login(ctx, domain.LoginRequest{Email: "ana@club.test", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Login(ctx, domain.LoginRequest{Email: "ghost@club.test", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	resp := f.seedUser(t, "ana@club.test", "secret123")

	user, err := f.userSvc.GetByEmail(ctx, resp.Email)
	require.NoError(t, err)
	require.NoError(t, f.userSvc.UpdateStatus(ctx, user.ID, userdomain.StatusInactive))

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "ana@club.test", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "ana@club.test", "secret123")

	result, err := f.svc.Login(ctx, domain.LoginRequest{Email: "ana@club.test", Password: "secret123"})
	require.NoError(t, err)

	f.clk.Advance(73 * time.Hour)

	_, err = f.svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "ana@club.test", "secret123")

	result, err := f.svc.Login(ctx, domain.LoginRequest{Email: "ana@club.test", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, result.RawToken))

	_, err = f.svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = f.svc.Authenticate(ctx, "not-a-real-token")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
