package club

import (
	"github.com/smallbiznis/clubhub/internal/club/repository"
	"github.com/smallbiznis/clubhub/internal/club/service"
	"go.uber.org/fx"
)

var Module = fx.Module("club.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
