package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dechbar/kpause/internal/domain"
)

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = errors.New("not found")

type MeasurementRepo interface {
	Create(ctx context.Context, m *domain.Measurement) error
	GetByID(ctx context.Context, id string) (*domain.Measurement, error)
	ListRecent(ctx context.Context, days int) ([]*domain.Measurement, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Measurement, error)
	Delete(ctx context.Context, id string) error
}
