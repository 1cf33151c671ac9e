package service

import (
	"github.com/artmafra/notas/internal/service/repository"
	"github.com/artmafra/notas/internal/service/service"
	"go.uber.org/fx"
)

var Module = fx.Module("service.registry",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
