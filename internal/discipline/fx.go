package discipline

import (
	"github.com/smallbiznis/clubhub/internal/discipline/repository"
	"github.com/smallbiznis/clubhub/internal/discipline/service"
	"go.uber.org/fx"
)

var Module = fx.Module("discipline.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
