package auth

import (
	"github.com/artmafra/notas/internal/auth/repository"
	"github.com/artmafra/notas/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
