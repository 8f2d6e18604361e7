package service_test

import (
	"context"
	"net/http"
	"svim/internal/domains/availability/model"
	"svim/internal/domains/availability/model/dto"
	"svim/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListServices(t *testing.T) {
	f := newFixture(t)
	visible := true

	f.store.EXPECT().
		ListServices(gomock.Any(), model.ServiceFilter{Name: "escova progressiva", Category: "Cabelo", VisibleOnly: &visible}).
		Return(salonCatalog(), nil)

	res, err := f.svc.ListServices(context.Background(), dto.ListServicesRequest{Name: "Progressiva", Category: " Cabelo ", VisibleOnly: &visible})

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Nil(t, res[0].Price)
	assert.Equal(t, "Corte de Cabelo", res[0].Name)
}

func TestListServices_WithPrice(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().ListServices(gomock.Any(), model.ServiceFilter{}).Return(salonCatalog(), nil)

	res, err := f.svc.ListServices(context.Background(), dto.ListServicesRequest{IncludePrice: true})

	require.NoError(t, err)
	require.NotNil(t, res[0].Price)
	assert.InDelta(t, 60.0, *res[0].Price, 0.001)
}

func TestListStaff(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().ListStaff(gomock.Any()).Return(salonRoster(), nil)

	res, err := f.svc.ListStaff(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []dto.StaffResponse{{ID: 10, Name: "Ana"}, {ID: 20, Name: "Bia"}}, res)
}

func TestListStaffServices(t *testing.T) {
	t.Run("valid id", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListStaffServices(gomock.Any(), int64(10)).Return(salonCatalog(), nil)

		res, err := f.svc.ListStaffServices(context.Background(), "10", false)

		require.NoError(t, err)
		assert.Len(t, res, 2)
	})

	for _, id := range []string{"0", "-1", "abc", ""} {
		t.Run("rejects "+id, func(t *testing.T) {
			f := newFixture(t)

			res, err := f.svc.ListStaffServices(context.Background(), id, false)

			assert.Nil(t, res)
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}

	t.Run("upstream failure", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListStaffServices(gomock.Any(), int64(10)).Return(nil, errUpstream)

		_, err := f.svc.ListStaffServices(context.Background(), "10", false)

		assert.ErrorIs(t, err, model.ErrUpstreamFetch)
		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	})
}

func TestListBookings(t *testing.T) {
	t.Run("defaults to the search window from today", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListBookings(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, from, to time.Time) ([]model.Booking, error) {
				assert.True(t, from.Equal(at(20, 0, 0)))
				assert.True(t, to.Equal(time.Date(2026, 2, 3, 0, 0, 0, 0, saoPaulo)))

				return []model.Booking{{ID: 1, StaffID: 10, StartAt: at(20, 14, 0), DurationMinutes: 30, Status: "confirmed"}}, nil
			})

		res, err := f.svc.ListBookings(context.Background(), dto.ListBookingsRequest{})

		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "2026-01-20T14:00:00-03:00", res[0].Start)
		assert.Equal(t, "2026-01-20T14:30:00-03:00", res[0].End)
	})

	t.Run("reversed range", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListBookings(context.Background(), dto.ListBookingsRequest{From: "2026-01-21T00:00:00-03:00", To: "2026-01-20T00:00:00-03:00"})

		assert.ErrorIs(t, err, model.ErrInvalidArgument)
	})

	t.Run("range wider than the search limit", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListBookings(context.Background(), dto.ListBookingsRequest{From: "2026-01-01T00:00:00-03:00", To: "2026-06-01T00:00:00-03:00"})

		assert.ErrorIs(t, err, model.ErrInvalidArgument)
	})
}
