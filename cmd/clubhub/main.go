package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/clock"
	"github.com/smallbiznis/clubhub/internal/config"
	"github.com/smallbiznis/clubhub/internal/logger"
	"github.com/smallbiznis/clubhub/internal/migration"
	"github.com/smallbiznis/clubhub/internal/server"
	"github.com/smallbiznis/clubhub/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
