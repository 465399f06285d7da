package subscription

import "go.uber.org/fx"

// Module provides *Service to the HTTP handlers and, as scheduler.Resumer, to the cron job.
var Module = fx.Options(
	fx.Provide(NewService),
)
