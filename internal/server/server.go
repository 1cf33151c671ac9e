package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/artmafra/notas/internal/audit"
	auditdomain "github.com/artmafra/notas/internal/audit/domain"
	"github.com/artmafra/notas/internal/auth"
	authdomain "github.com/artmafra/notas/internal/auth/domain"
	"github.com/artmafra/notas/internal/auth/session"
	"github.com/artmafra/notas/internal/config"
	"github.com/artmafra/notas/internal/invoice"
	invoicedomain "github.com/artmafra/notas/internal/invoice/domain"
	"github.com/artmafra/notas/internal/observability"
	obsmiddleware "github.com/artmafra/notas/internal/observability/logger"
	obsmetrics "github.com/artmafra/notas/internal/observability/metrics"
	"github.com/artmafra/notas/internal/ratelimit"
	"github.com/artmafra/notas/internal/service"
	servicedomain "github.com/artmafra/notas/internal/service/domain"
	"github.com/artmafra/notas/internal/supplier"
	supplierdomain "github.com/artmafra/notas/internal/supplier/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	audit.Module,
	auth.Module,
	session.Module,
	supplier.Module,
	service.Module,
	invoice.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// ipLimiter admits requests per client IP. Satisfied by
// *ratelimit.RequestLimiter; a nil limiter admits everything.
type ipLimiter interface {
	Enabled() bool
	AllowIP(ctx context.Context, ip string) (*ratelimit.Result, error)
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	authsvc     authdomain.Service
	sessions    *session.Manager
	suppliersvc supplierdomain.Service
	servicesvc  servicedomain.ServiceRegistry
	invoicesvc  invoicedomain.Service
	auditsvc    auditdomain.Service
	limiter     ipLimiter
	obsMetrics  *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Authsvc     authdomain.Service
	Sessions    *session.Manager
	SupplierSvc supplierdomain.Service
	ServiceSvc  servicedomain.ServiceRegistry
	InvoiceSvc  invoicedomain.Service
	AuditSvc    auditdomain.Service
	Limiter     *ratelimit.RequestLimiter `optional:"true"`
	ObsMetrics  *obsmetrics.Metrics       `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		authsvc:     p.Authsvc,
		sessions:    p.Sessions,
		suppliersvc: p.SupplierSvc,
		servicesvc:  p.ServiceSvc,
		invoicesvc:  p.InvoiceSvc,
		auditsvc:    p.AuditSvc,
		obsMetrics:  p.ObsMetrics,
	}
	if p.Limiter != nil {
		svc.limiter = p.Limiter
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.RateLimit(), s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.RateLimit())
	api.Use(s.SessionRequired())

	api.GET("/suppliers", s.ListSuppliers)
	api.POST("/suppliers", s.CreateSupplier)
	api.PATCH("/suppliers", s.UpdateSupplier)
	api.DELETE("/suppliers", s.DeleteSupplier)

	api.GET("/services", s.ListServices)
	api.POST("/services", s.CreateService)
	api.PATCH("/services", s.UpdateService)
	api.DELETE("/services", s.DeleteService)

	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.PATCH("/invoices", s.UpdateInvoice)
	api.DELETE("/invoices", s.DeleteInvoice)

	api.GET("/users", s.ListUsers)
	api.POST("/users", s.CreateUser)
	api.PATCH("/users", s.UpdateUser)
	api.DELETE("/users", s.DeleteUser)

	api.GET("/audit-logs", s.ListAuditLogs)
}
