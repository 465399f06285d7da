package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/natashawa225/sea-catering/internal/app/api/server"
	"github.com/natashawa225/sea-catering/internal/app/service/pricing"
	"github.com/natashawa225/sea-catering/internal/app/service/role"
	"github.com/natashawa225/sea-catering/internal/app/service/scheduler"
	"github.com/natashawa225/sea-catering/internal/app/service/statistics"
	"github.com/natashawa225/sea-catering/internal/app/service/subscription"
	"github.com/natashawa225/sea-catering/internal/app/service/testimonial"
	"github.com/natashawa225/sea-catering/internal/platform/cache"
	"github.com/natashawa225/sea-catering/internal/platform/db"
	"github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

// Infra is everything the CLI subcommands need without serving HTTP.
var Infra = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	cache.Module,
)

var Services = fx.Options(
	pricing.Module,
	subscription.Module,
	statistics.Module,
	testimonial.Module,
	role.Module,
)

var Module = fx.Options(
	Infra,
	Services,
	fx.Provide(fx.Annotate(
		func(s *subscription.Service) *subscription.Service { return s },
		fx.As(new(scheduler.Resumer)),
	)),
	scheduler.Module,
	server.Module,
)
