package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dechbar/kpause/internal/db"
	"github.com/dechbar/kpause/internal/domain"
)

// SQLiteMeasurementRepo implements MeasurementRepo. Create writes two tables
// and should run inside a UnitOfWork.
type SQLiteMeasurementRepo struct {
	db db.DBTX
}

// NewSQLiteMeasurementRepo creates a repo over a *sql.DB or a *sql.Tx.
func NewSQLiteMeasurementRepo(db db.DBTX) *SQLiteMeasurementRepo {
	return &SQLiteMeasurementRepo{db: db}
}

const measurementColumns = `id, measured_at, timezone, attempt_count, score, time_of_day, valid, note, created_at`

func (r *SQLiteMeasurementRepo) Create(ctx context.Context, m *domain.Measurement) error {
	query := `INSERT INTO measurements (` + measurementColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		formatTime(m.MeasuredAt),
		locationName(m.MeasuredAt),
		m.AttemptCount,
		m.Score,
		string(m.TimeOfDay),
		boolToInt(m.Valid),
		m.Note,
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting measurement: %w", err)
	}

	for i, seconds := range m.Attempts {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO measurement_attempts (measurement_id, ordinal, seconds) VALUES (?, ?, ?)`,
			m.ID, i+1, seconds)
		if err != nil {
			return fmt.Errorf("inserting attempt %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *SQLiteMeasurementRepo) GetByID(ctx context.Context, id string) (*domain.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements WHERE id = ?`
	m, err := scanMeasurement(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("measurement %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadAttempts(ctx, []*domain.Measurement{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// ListRecent returns measurements from the last days days, newest first.
func (r *SQLiteMeasurementRepo) ListRecent(ctx context.Context, days int) ([]*domain.Measurement, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	query := `SELECT ` + measurementColumns + ` FROM measurements
		WHERE julianday(measured_at) >= julianday(?)
		ORDER BY julianday(measured_at) DESC`
	return r.list(ctx, query, formatTime(cutoff))
}

// ListBetween returns measurements in [from, to), oldest first.
func (r *SQLiteMeasurementRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements
		WHERE julianday(measured_at) >= julianday(?)
		  AND julianday(measured_at) < julianday(?)
		ORDER BY julianday(measured_at)`
	return r.list(ctx, query, formatTime(from.UTC()), formatTime(to.UTC()))
}

func (r *SQLiteMeasurementRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM measurements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting measurement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting measurement: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("measurement %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteMeasurementRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Measurement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing measurements: %w", err)
	}
	defer rows.Close()

	var out []*domain.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating measurements: %w", err)
	}
	// Close before the follow-up query; an in-memory store has one connection.
	rows.Close()

	if err := r.loadAttempts(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadAttempts fills Attempts for all of ms with one query.
func (r *SQLiteMeasurementRepo) loadAttempts(ctx context.Context, ms []*domain.Measurement) error {
	if len(ms) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Measurement, len(ms))
	args := make([]any, 0, len(ms))
	for _, m := range ms {
		byID[m.ID] = m
		m.Attempts = []int{}
		args = append(args, m.ID)
	}

	query := `SELECT measurement_id, seconds FROM measurement_attempts
		WHERE measurement_id IN (` + placeholders(len(ms)) + `)
		ORDER BY measurement_id, ordinal`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("loading attempts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var seconds int
		if err := rows.Scan(&id, &seconds); err != nil {
			return fmt.Errorf("scanning attempt row: %w", err)
		}
		if m, ok := byID[id]; ok {
			m.Attempts = append(m.Attempts, seconds)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating attempts: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeasurement(row rowScanner) (*domain.Measurement, error) {
	var m domain.Measurement
	var measuredAt, zone, tod, createdAt string
	var valid int

	err := row.Scan(&m.ID, &measuredAt, &zone, &m.AttemptCount, &m.Score, &tod, &valid, &m.Note, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning measurement: %w", err)
	}

	m.MeasuredAt, err = parseStoredTime(measuredAt, zone)
	if err != nil {
		return nil, fmt.Errorf("parsing measured_at: %w", err)
	}
	m.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	m.TimeOfDay = domain.TimeOfDay(tod)
	m.Valid = intToBool(valid)
	return &m, nil
}
