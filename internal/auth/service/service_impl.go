package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/auth/domain"
	"github.com/smallbiznis/clubhub/internal/auth/password"
	"github.com/smallbiznis/clubhub/internal/clock"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	UserSvc    userdomain.Service
	SessionTTL time.Duration `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	userSvc    userdomain.Service
	sessionTTL time.Duration
}

func NewService(p Params) domain.Service {
	ttl := p.SessionTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("auth.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		userSvc:    p.UserSvc,
		sessionTTL: ttl,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userSvc.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status != userdomain.StatusActive {
		return nil, domain.ErrUserInactive
	}

	rawToken, tokenHash, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: tokenHash,
		UserAgent:        req.UserAgent,
		IPAddress:        req.IPAddress,
		ExpiresAt:        now.Add(s.sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}

	if err := s.db.WithContext(ctx).Exec(
		`INSERT INTO sessions (
			id, user_id, session_token_hash, user_agent, ip_address,
			expires_at, revoked_at, created_at, last_seen_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.SessionTokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		nil,
		session.CreatedAt,
		session.LastSeenAt,
	).Error; err != nil {
		return nil, err
	}

	s.log.Info("user logged in", zap.String("user_id", user.ID.String()))
	return &domain.LoginResult{
		User:      user,
		SessionID: session.ID,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	tokenHash, ok := hashToken(rawToken)
	if !ok {
		return domain.ErrInvalidSession
	}

	now := s.clock.Now()
	return s.db.WithContext(ctx).Exec(
		`UPDATE sessions
		 SET revoked_at = ?
		 WHERE session_token_hash = ? AND revoked_at IS NULL`,
		now,
		tokenHash,
	).Error
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Identity, error) {
	tokenHash, ok := hashToken(rawToken)
	if !ok {
		return nil, domain.ErrInvalidSession
	}

	var session domain.Session
	if err := s.db.WithContext(ctx).Raw(
		`SELECT id, user_id, session_token_hash, expires_at, revoked_at
		 FROM sessions
		 WHERE session_token_hash = ?
		 LIMIT 1`,
		tokenHash,
	).Scan(&session).Error; err != nil {
		return nil, err
	}
	if session.ID == 0 {
		return nil, domain.ErrSessionNotFound
	}
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}

	now := s.clock.Now()
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userSvc.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user.Status != userdomain.StatusActive {
		return nil, domain.ErrUserInactive
	}

	_ = s.db.WithContext(ctx).Exec(
		`UPDATE sessions SET last_seen_at = ? WHERE id = ?`,
		now,
		session.ID,
	).Error

	return &domain.Identity{
		UserID: user.ID,
		Role:   user.Role,
		ClubID: user.ClubID,
	}, nil
}

func newSessionToken() (string, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)
	hash, _ := hashToken(raw)
	return raw, hash, nil
}

func hashToken(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:]), true
}
