package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/docs"
	"github.com/natashawa225/sea-catering/internal/app/api/handlers"
	mw "github.com/natashawa225/sea-catering/internal/app/api/middleware"
	"github.com/natashawa225/sea-catering/internal/app/service/pricing"
	"github.com/natashawa225/sea-catering/internal/app/service/role"
	"github.com/natashawa225/sea-catering/internal/app/service/statistics"
	subsvc "github.com/natashawa225/sea-catering/internal/app/service/subscription"
	"github.com/natashawa225/sea-catering/internal/app/service/testimonial"
	"github.com/natashawa225/sea-catering/internal/platform/db"
	cfgpkg "github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// request logger and access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeParams struct {
	fx.In

	LC           fx.Lifecycle
	Log          *zap.SugaredLogger
	Cfg          *cfgpkg.Config
	Engine       *gin.Engine
	Guard        *db.Guard
	Pricing      *pricing.Calculator
	Subs         *subsvc.Service
	Stats        *statistics.Service
	Testimonials *testimonial.Service
	Roles        *role.Service
}

func routeLabel(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return "unmatched"
}

func registerRoutes(p routeParams) {
	r, log := p.Engine, p.Log

	if p.Cfg.MetricsAddr != "" {
		prom := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			MetricsList:             []*metrics.Metric{metrics.MetricsBusinessProcess},
			ReqCntURLLabelMappingFn: routeLabel,
			Logger:                  log,
		})
		prom.SetListenAddress(p.Cfg.MetricsAddr)
		prom.Use(r)
		p.LC.Append(fx.Hook{OnStop: func(context.Context) error { return prom.Shutdown() }})
	}

	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub, p.Guard)
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterCatalogRoutes(apiV1, p.Pricing)
	handlers.RegisterTestimonialRoutes(apiV1, p.Testimonials, log)

	authed := apiV1.Group("", mw.AuthMiddleware(p.Cfg, log))
	handlers.RegisterUserRoutes(authed, p.Roles, log)
	handlers.RegisterSubscriptionRoutes(authed, p.Subs, log)

	admin := authed.Group("/admin", mw.RequireAdmin(p.Roles))
	handlers.RegisterAdminRoutes(admin, p.Stats, p.Subs, p.Testimonials, log)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine, shutdowner fx.Shutdowner) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("server error", "err", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
