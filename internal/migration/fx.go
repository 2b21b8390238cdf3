package migration

import (
	"github.com/smallbiznis/clubhub/internal/config"
	"github.com/smallbiznis/clubhub/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The migrator drives postgres; other dialects (sqlite in
		// development) get their schema from the test harness or
		// an external tool.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		}

		return seed.EnsureBootstrapAdmin(conn, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
	}),
)
