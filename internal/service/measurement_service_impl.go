package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dechbar/kpause/internal/db"
	"github.com/dechbar/kpause/internal/domain"
	"github.com/dechbar/kpause/internal/events"
	"github.com/dechbar/kpause/internal/repository"
	"github.com/google/uuid"
)

// MeasurementOption configures the measurement service.
type MeasurementOption func(*measurementService)

// WithPublisher sets where stored measurements are announced.
func WithPublisher(p Publisher) MeasurementOption {
	return func(s *measurementService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithMetrics records Prometheus metrics for saves, deletes and use cases.
func WithMetrics(m *Metrics) MeasurementOption {
	return func(s *measurementService) { s.metrics = m }
}

// WithObservers adds use-case observers.
func WithObservers(observers ...UseCaseObserver) MeasurementOption {
	return func(s *measurementService) { s.observers = append(s.observers, observers...) }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) MeasurementOption {
	return func(s *measurementService) { s.now = now }
}

type measurementService struct {
	measurements repository.MeasurementRepo
	uow          db.UnitOfWork
	publisher    Publisher
	metrics      *Metrics
	observers    []UseCaseObserver
	observer     UseCaseObserver
	now          func() time.Time
}

func NewMeasurementService(measurements repository.MeasurementRepo, uow db.UnitOfWork, opts ...MeasurementOption) MeasurementService {
	s := &measurementService{
		measurements: measurements,
		uow:          uow,
		publisher:    NoopPublisher{},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	observers := s.observers
	if s.metrics != nil {
		observers = append(observers, s.metrics)
	}
	s.observer = useCaseObserverOrNoop(observers)
	return s
}

func (s *measurementService) Save(ctx context.Context, req SaveRequest) (saved *domain.Measurement, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"recorded":   len(domain.Compact(req.Attempts)),
		"configured": req.Configured,
	}
	defer func() {
		s.observe(ctx, "save-measurement", startedAt, err, fields)
	}()

	measuredAt := req.MeasuredAt
	if measuredAt.IsZero() {
		measuredAt = s.now()
	}
	m, err := domain.NewMeasurement(req.Attempts, req.Configured, measuredAt, strings.TrimSpace(req.Note))
	if err != nil {
		return nil, fmt.Errorf("building measurement: %w", err)
	}
	m.ID = uuid.New().String()
	m.CreatedAt = s.now().UTC().Truncate(time.Second)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteMeasurementRepo(tx).Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	fields["id"] = m.ID
	fields["score"] = m.Score
	fields["valid"] = m.Valid
	s.metrics.RecordSaved(m)
	s.publishMeasured(ctx, m)
	return m, nil
}

func (s *measurementService) Get(ctx context.Context, id string) (*domain.Measurement, error) {
	return s.measurements.GetByID(ctx, id)
}

func (s *measurementService) ListRecent(ctx context.Context, days int) ([]*domain.Measurement, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	return s.measurements.ListRecent(ctx, days)
}

func (s *measurementService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "delete-measurement", startedAt, err, map[string]any{"id": id})
	}()

	if err = s.measurements.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.RecordDeleted()

	pubErr := s.publisher.PublishDeleted(ctx, events.KPDeleted{
		MeasurementID: id,
		DeletedAt:     s.now().UTC(),
		Version:       events.KPMeasuredVersion,
	})
	s.metrics.RecordPublish(pubErr)
	if pubErr != nil {
		s.observe(ctx, "publish-deleted", time.Now().UTC(), pubErr, map[string]any{"id": id})
	}
	return nil
}

func (s *measurementService) Stats(ctx context.Context, days int) (*Summary, error) {
	list, err := s.ListRecent(ctx, days)
	if err != nil {
		return nil, err
	}
	return Summarize(list, days), nil
}

func (s *measurementService) Export(ctx context.Context, days int, format ExportFormat) ([]byte, error) {
	list, err := s.ListRecent(ctx, days)
	if err != nil {
		return nil, err
	}
	return EncodeMeasurements(list, format)
}

// publishMeasured announces m. A failed publish is logged and counted but
// does not undo the save.
func (s *measurementService) publishMeasured(ctx context.Context, m *domain.Measurement) {
	startedAt := time.Now().UTC()
	err := s.publisher.PublishMeasured(ctx, events.KPMeasured{
		MeasurementID: m.ID,
		MeasuredAt:    m.MeasuredAt,
		Attempts:      append([]int(nil), m.Attempts...),
		AttemptCount:  m.AttemptCount,
		Score:         m.Score,
		TimeOfDay:     string(m.TimeOfDay),
		Valid:         m.Valid,
		Rating:        string(m.Rating()),
		Version:       events.KPMeasuredVersion,
	})
	s.metrics.RecordPublish(err)
	if err != nil {
		s.observe(ctx, "publish-measured", startedAt, err, map[string]any{"id": m.ID})
	}
}

func (s *measurementService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
