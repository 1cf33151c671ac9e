package audit

import (
	"github.com/artmafra/notas/internal/audit/repository"
	"github.com/artmafra/notas/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
