package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"svim/config"
	"svim/infras/catalogapi"
	"svim/infras/otel"
	"svim/infras/postgres"
	"svim/internal/domains/availability/model"
	"time"
)

// Store is the read-only view of the salon catalog and agenda.
type Store interface {
	ListServices(ctx context.Context, filter model.ServiceFilter) ([]model.Service, error)
	ListStaff(ctx context.Context) ([]model.Staff, error)
	ListStaffServices(ctx context.Context, staffID int64) ([]model.Service, error)
	// ListBookings returns bookings starting in [from, to). Cancelled bookings may be included.
	ListBookings(ctx context.Context, from, to time.Time) ([]model.Booking, error)
}

// NewStore builds the store selected by STORE_DRIVER. The returned func releases its resources.
func NewStore(cfg *config.Config, otel otel.Otel) (Store, func(), error) {
	switch cfg.Store.Driver {
	case "", config.StoreDriverAPI:
		return NewAPI(catalogapi.New(cfg, otel)), func() {}, nil
	case config.StoreDriverPostgres:
		db, err := postgres.New(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}

		return NewPostgres(db, otel), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown store driver %q", model.ErrInvalidArgument, cfg.Store.Driver)
	}
}
