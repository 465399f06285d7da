package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/pkg/config"
)

const defaultResumeSpec = "@every 1h"

// Resumer reactivates paused subscriptions whose pause window ended before today.
type Resumer interface {
	ResumeDuePaused(ctx context.Context, today time.Time) (int, error)
}

// Scheduler owns the background jobs. It is the only component that runs outside a request.
type Scheduler struct {
	cron    *cron.Cron
	log     *zap.SugaredLogger
	resumer Resumer
	loc     *time.Location
	now     func() time.Time
	timeout time.Duration
}

func New(cfg *config.Config, log *zap.SugaredLogger, resumer Resumer) (*Scheduler, error) {
	loc := cfg.Location()
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cron.DiscardLogger))),
		log:     log.With("component", "scheduler"),
		resumer: resumer,
		loc:     loc,
		now:     time.Now,
		timeout: time.Minute,
	}
	spec := cfg.Scheduler.ResumeSpec
	if spec == "" {
		spec = defaultResumeSpec
	}
	if _, err := s.cron.AddFunc(spec, func() { _ = s.ResumeDue(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid scheduler.resume_spec %q: %w", spec, err)
	}
	return s, nil
}

// ResumeDue runs one auto-resume pass using today's date in the configured timezone.
func (s *Scheduler) ResumeDue(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	today := s.now().In(s.loc)
	n, err := s.resumer.ResumeDuePaused(ctx, today)
	if err != nil {
		s.log.Errorw("auto-resume failed", "err", err)
		return err
	}
	s.log.Infow("auto-resume finished", "resumed", n, "today", today.Format(time.DateOnly))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func register(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start()
			s.log.Infow("scheduler started", "jobs", len(s.cron.Entries()))
			return nil
		},
		OnStop: s.Stop,
	})
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(register),
)
