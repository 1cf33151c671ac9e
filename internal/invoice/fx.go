package invoice

import (
	"github.com/artmafra/notas/internal/invoice/repository"
	"github.com/artmafra/notas/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
