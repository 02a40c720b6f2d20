package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dechbar/kpause/internal/domain"
	"github.com/dechbar/kpause/internal/repository"
)

// resolveLookbackDays bounds the prefix search for short IDs.
const resolveLookbackDays = 3650

// resolveMeasurement finds a measurement by full ID or by a unique ID prefix
// such as the eight characters shown by 'kpause list'.
func resolveMeasurement(ctx context.Context, app *App, input string) (*domain.Measurement, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("measurement ID is required")
	}

	m, err := app.Measurements.Get(ctx, input)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	recent, err := app.Measurements.ListRecent(ctx, resolveLookbackDays)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Measurement
	for _, candidate := range recent {
		if strings.HasPrefix(candidate.ID, input) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("measurement %q: %w", input, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("measurement ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
