package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/auth/password"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
	"gorm.io/gorm"
)

// EnsureBootstrapAdmin creates the initial super admin so a fresh
// install can be administered. It is a no-op when the email already
// exists or no bootstrap credentials are configured.
func EnsureBootstrapAdmin(db *gorm.DB, email, rawPassword string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || rawPassword == "" {
		return nil
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).
			Table("users").
			Where("email = ?", email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hashed, err := password.Hash(rawPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		return tx.WithContext(ctx).Exec(
			`INSERT INTO users (id, club_id, name, email, password_hash, role, status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			node.Generate(),
			nil,
			"Administrator",
			email,
			hashed,
			userdomain.RoleSuperAdmin,
			userdomain.StatusActive,
			now,
			now,
		).Error
	})
}
