package testimonial

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/internal/platform/db/dbtest"
	"github.com/natashawa225/sea-catering/pkg/types"
)

func TestSubmitRequest_Validate(t *testing.T) {
	cases := []struct {
		name  string
		req   SubmitRequest
		field string
	}{
		{"blank name", SubmitRequest{CustomerName: "  ", ReviewMessage: "tasty", Rating: 5}, "customer_name"},
		{"blank message", SubmitRequest{CustomerName: "Budi", ReviewMessage: "\n", Rating: 5}, "review_message"},
		{"rating zero", SubmitRequest{CustomerName: "Budi", ReviewMessage: "tasty", Rating: 0}, "rating"},
		{"rating six", SubmitRequest{CustomerName: "Budi", ReviewMessage: "tasty", Rating: 6}, "rating"},
		{"long message", SubmitRequest{CustomerName: "Budi", ReviewMessage: strings.Repeat("a", 2001), Rating: 4}, "review_message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.validate()
			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestService_SubmitAndPublish(t *testing.T) {
	svc := NewService(zap.NewNop().Sugar(), dbtest.NewSQLite(t), dbtest.NewGuard())
	ctx := context.Background()

	item, err := svc.Submit(ctx, &SubmitRequest{CustomerName: " Budi ", ReviewMessage: " Fresh and on time. ", Rating: 5})
	require.NoError(t, err)
	require.Equal(t, "Budi", item.CustomerName)
	require.Equal(t, "Fresh and on time.", item.ReviewMessage)
	require.Equal(t, types.TestimonialStatusPending, item.Status)

	require.Equal(t, types.ResultEmpty, svc.ListPublished(ctx, 10).Kind, "pending reviews are not public")
	pending := svc.List(ctx, types.TestimonialStatusPending, 10)
	require.Equal(t, types.ResultOK, pending.Kind)
	require.Len(t, pending.Data, 1)

	published, err := svc.Publish(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, types.TestimonialStatusPublished, published.Status)

	res := svc.ListPublished(ctx, 10)
	require.Equal(t, types.ResultOK, res.Kind)
	require.Len(t, res.Data, 1)
	require.Equal(t, item.ID, res.Data[0].ID)

	_, err = svc.Publish(ctx, item.ID)
	require.ErrorIs(t, err, types.ErrInvalidTransition)
	_, err = svc.Publish(ctx, "0191b7a4-0000-7000-8000-000000000000")
	require.ErrorIs(t, err, types.ErrNotFound)
	_, err = svc.Publish(ctx, "nope")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestService_SubmitRejectsBeforeStore(t *testing.T) {
	gdb, mock := dbtest.NewSQLMock(t)
	svc := NewService(zap.NewNop().Sugar(), gdb, dbtest.NewGuard())

	_, err := svc.Submit(context.Background(), &SubmitRequest{CustomerName: "Budi", ReviewMessage: "ok", Rating: 0})
	require.ErrorIs(t, err, types.ErrValidation)
	_, err = svc.Submit(context.Background(), nil)
	require.ErrorIs(t, err, types.ErrValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestService_StoreUnavailable(t *testing.T) {
	gdb, mock := dbtest.NewSQLMock(t)
	svc := NewService(zap.NewNop().Sugar(), gdb, dbtest.NewGuard())
	ctx := context.Background()
	down := errors.New("i/o timeout")

	mock.ExpectBegin().WillReturnError(down)
	_, err := svc.Submit(ctx, &SubmitRequest{CustomerName: "Budi", ReviewMessage: "ok", Rating: 3})
	require.ErrorIs(t, err, types.ErrPersistenceUnavailable)

	mock.ExpectQuery(`SELECT \* FROM "testimonials"`).WillReturnError(down)
	res := svc.ListPublished(ctx, 5)
	require.Equal(t, types.ResultUnavailable, res.Kind)

	require.NoError(t, mock.ExpectationsWereMet())
}
