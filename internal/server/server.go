package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/backoffice/internal/client"
	clientdomain "github.com/smallbiznis/backoffice/internal/client/domain"
	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/history"
	historydomain "github.com/smallbiznis/backoffice/internal/history/domain"
	"github.com/smallbiznis/backoffice/internal/importer"
	importerdomain "github.com/smallbiznis/backoffice/internal/importer/domain"
	"github.com/smallbiznis/backoffice/internal/observability"
	obsmiddleware "github.com/smallbiznis/backoffice/internal/observability/logger"
	obstracing "github.com/smallbiznis/backoffice/internal/observability/tracing"
	"github.com/smallbiznis/backoffice/internal/report"
	reportdomain "github.com/smallbiznis/backoffice/internal/report/domain"
	"github.com/smallbiznis/backoffice/internal/resource"
	resourcedomain "github.com/smallbiznis/backoffice/internal/resource/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	client.Module,
	history.Module,
	importer.Module,
	resource.Module,
	report.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, log *zap.Logger) *gin.Engine {
	if obsCfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Log:   log.Named("http"),
		Debug: obsCfg.Environment == "development",
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, log *zap.Logger) *gin.Engine {
	return NewEngine(obsCfg, log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	importCfg   *config.ImportConfigHolder
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clientSvc   clientdomain.Service
	importSvc   importerdomain.Service
	historySvc  historydomain.Service
	resourceSvc resourcedomain.Service
	reportSvc   reportdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	ImportCfg   *config.ImportConfigHolder
	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	ClientSvc   clientdomain.Service
	ImportSvc   importerdomain.Service
	HistorySvc  historydomain.Service
	ResourceSvc resourcedomain.Service
	ReportSvc   reportdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		importCfg:   p.ImportCfg,
		db:          p.DB,
		log:         p.Log.Named("http.server"),
		genID:       p.GenID,
		clientSvc:   p.ClientSvc,
		importSvc:   p.ImportSvc,
		historySvc:  p.HistorySvc,
		resourceSvc: p.ResourceSvc,
		reportSvc:   p.ReportSvc,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.Health)

	api := s.engine.Group("/api")

	api.POST("/migrate/upload", s.UploadMigrationFile)

	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)
	api.PUT("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)

	api.GET("/history/:email", s.GetClientHistory)
	api.POST("/history/rebuild", s.RebuildHistories)

	api.GET("/reports/total-paid-by-client", s.ReportTotalPaidByClient)
	api.GET("/reports/pending-invoices", s.ReportPendingInvoices)
	api.GET("/reports/transactions-by-platform", s.ReportTransactionsByPlatform)

	api.GET("/resources", s.ListResourceSchemas)
	api.GET("/resources/:resource", s.ListResourceRecords)
	api.POST("/resources/:resource", s.CreateResourceRecord)
	api.GET("/resources/:resource/:id", s.GetResourceRecord)
	api.PUT("/resources/:resource/:id", s.UpdateResourceRecord)
	api.DELETE("/resources/:resource/:id", s.DeleteResourceRecord)
}
