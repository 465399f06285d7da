package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/types"
)

type fakeResumer struct {
	days []time.Time
	n    int
	err  error
}

func (f *fakeResumer) ResumeDuePaused(_ context.Context, today time.Time) (int, error) {
	f.days = append(f.days, today)
	return f.n, f.err
}

func TestScheduler_ResumeDueUsesConfiguredTimezone(t *testing.T) {
	fr := &fakeResumer{n: 2}
	cfg := &config.Config{Timezone: "UTC"}
	s, err := New(cfg, zap.NewNop().Sugar(), fr)
	require.NoError(t, err)
	s.loc = time.FixedZone("WIB", 7*3600)
	s.now = func() time.Time { return time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC) }

	require.NoError(t, s.ResumeDue(context.Background()))
	require.Len(t, fr.days, 1)
	require.Equal(t, "2025-06-11", fr.days[0].Format(time.DateOnly))
}

func TestScheduler_ResumeDuePropagatesErrors(t *testing.T) {
	fr := &fakeResumer{err: types.ErrPersistenceUnavailable}
	s, err := New(&config.Config{}, zap.NewNop().Sugar(), fr)
	require.NoError(t, err)
	require.True(t, errors.Is(s.ResumeDue(context.Background()), types.ErrPersistenceUnavailable))
}

func TestScheduler_RejectsInvalidSpec(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{ResumeSpec: "every now and then"}}
	_, err := New(cfg, zap.NewNop().Sugar(), &fakeResumer{})
	require.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := New(&config.Config{}, zap.NewNop().Sugar(), &fakeResumer{})
	require.NoError(t, err)
	require.Len(t, s.cron.Entries(), 1)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}
