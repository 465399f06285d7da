package logctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromCtx_EnrichesWithUserID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core).Sugar()

	ctx := WithUserID(context.Background(), "user-1")
	FromCtx(ctx, base).Info("hello")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "user-1", logs.All()[0].ContextMap()["user_id"])
}

func TestFromCtx_PrefersAttachedLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	attached := zap.New(core).Sugar().With("scope", "request")

	ctx := WithLogger(context.Background(), attached)
	FromCtx(ctx, zap.NewNop().Sugar()).Info("hello")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "request", logs.All()[0].ContextMap()["scope"])
}

func TestUserID_EmptyWhenMissing(t *testing.T) {
	require.Empty(t, UserID(context.Background()))
	require.Empty(t, UserID(nil)) //nolint:staticcheck
}
