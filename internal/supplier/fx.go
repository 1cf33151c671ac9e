package supplier

import (
	"github.com/artmafra/notas/internal/supplier/repository"
	"github.com/artmafra/notas/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
