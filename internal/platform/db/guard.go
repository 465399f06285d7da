package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	cfgpkg "github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/logctx"
	"github.com/natashawa225/sea-catering/pkg/types"
)

// Guard runs store calls behind a circuit breaker and normalises their errors:
// gorm.ErrRecordNotFound becomes types.ErrNotFound, domain errors returned by the callback
// pass through, everything else becomes types.ErrPersistenceUnavailable.
type Guard struct {
	cb  *gobreaker.CircuitBreaker[any]
	log *zap.SugaredLogger
}

func NewGuard(cfg *cfgpkg.Config, log *zap.SugaredLogger) *Guard {
	bc := cfg.StoreBreaker
	threshold := bc.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	settings := gobreaker.Settings{
		Name:        "store",
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// not-found and domain errors say nothing about store health
		IsSuccessful: func(err error) bool {
			return err == nil || isDomainError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &Guard{cb: gobreaker.NewCircuitBreaker[any](settings), log: log}
}

// Do executes fn. op names the operation in logs and error messages.
func (g *Guard) Do(ctx context.Context, op string, fn func() error) error {
	_, err := g.cb.Execute(func() (any, error) {
		if err := fn(); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%s: %w", op, types.ErrNotFound)
			}
			return nil, err
		}
		return nil, nil
	})
	if err == nil || isDomainError(err) {
		return err
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logctx.FromCtx(ctx, g.log).Warnw("store call rejected by circuit breaker", "op", op)
	} else {
		logctx.FromCtx(ctx, g.log).Errorw("store call failed", "op", op, "err", err)
	}
	return fmt.Errorf("%s: %w", op, types.ErrPersistenceUnavailable)
}

// State exposes the breaker state for health reporting.
func (g *Guard) State() gobreaker.State {
	return g.cb.State()
}

func isDomainError(err error) bool {
	return errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrValidation) ||
		errors.Is(err, types.ErrInvalidTransition)
}
