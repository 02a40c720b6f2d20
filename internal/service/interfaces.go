package service

import (
	"context"
	"time"

	"github.com/dechbar/kpause/internal/domain"
)

// SaveRequest carries a finished timer session to be stored.
type SaveRequest struct {
	// Attempts is the session's attempt slots in order; nil entries were
	// never reached.
	Attempts []*int
	// Configured is how many attempts the session was set up for.
	Configured int
	MeasuredAt time.Time
	Note       string
}

// Summary aggregates measurements over a window.
type Summary struct {
	Days       int
	Count      int
	ValidCount int
	// Best and Mean consider only valid (morning) measurements when any
	// exist, otherwise all of them.
	Best      int
	Mean      int
	Latest    *domain.Measurement
	Rating    domain.Rating
	ValidOnly bool
}

// ExportFormat selects the Export encoding.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

type MeasurementService interface {
	Save(ctx context.Context, req SaveRequest) (*domain.Measurement, error)
	Get(ctx context.Context, id string) (*domain.Measurement, error)
	ListRecent(ctx context.Context, days int) ([]*domain.Measurement, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, days int) (*Summary, error)
	Export(ctx context.Context, days int, format ExportFormat) ([]byte, error)
}
