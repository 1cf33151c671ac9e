package migration

import (
	auditdomain "github.com/artmafra/notas/internal/audit/domain"
	authdomain "github.com/artmafra/notas/internal/auth/domain"
	"github.com/artmafra/notas/internal/config"
	invoicedomain "github.com/artmafra/notas/internal/invoice/domain"
	"github.com/artmafra/notas/internal/seed"
	servicedomain "github.com/artmafra/notas/internal/service/domain"
	supplierdomain "github.com/artmafra/notas/internal/supplier/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite are supported for local development only.
			if err := conn.AutoMigrate(
				&supplierdomain.Supplier{},
				&servicedomain.Service{},
				&invoicedomain.Invoice{},
				&authdomain.User{},
				&authdomain.Session{},
				&auditdomain.AuditLog{},
			); err != nil {
				return err
			}
		}

		if err := seed.EnsureDefaultServices(conn); err != nil {
			return err
		}
		return seed.EnsureAdminUser(conn)
	}),
)
