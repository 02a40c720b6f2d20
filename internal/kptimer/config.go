package kptimer

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid timer config")

const (
	DefaultAttempts      = 3
	DefaultPauseDuration = 15 * time.Second
	DefaultPrepareDelay  = 500 * time.Millisecond
	DefaultTickInterval  = 10 * time.Millisecond

	// countdownResolution is the tick period while paused between attempts.
	countdownResolution = time.Second
	// maxTickInterval keeps the measuring display at 100Hz or better.
	maxTickInterval = 10 * time.Millisecond
)

// Config controls how a measurement session is sequenced.
type Config struct {
	Attempts      int
	PauseDuration time.Duration
	PrepareDelay  time.Duration
	TickInterval  time.Duration
}

// DefaultConfig returns the three-attempt morning measurement setup.
func DefaultConfig() Config {
	return Config{
		Attempts:      DefaultAttempts,
		PauseDuration: DefaultPauseDuration,
		PrepareDelay:  DefaultPrepareDelay,
		TickInterval:  DefaultTickInterval,
	}
}

// Validate checks the config. A zero TickInterval is accepted and treated as
// the default.
func (c Config) Validate() error {
	if c.Attempts < 1 {
		return fmt.Errorf("%w: attempts must be positive, got %d", ErrInvalidConfig, c.Attempts)
	}
	if c.PauseDuration < 0 {
		return fmt.Errorf("%w: pause duration must not be negative", ErrInvalidConfig)
	}
	if c.PrepareDelay < 0 {
		return fmt.Errorf("%w: prepare delay must not be negative", ErrInvalidConfig)
	}
	if c.TickInterval < 0 || c.TickInterval > maxTickInterval {
		return fmt.Errorf("%w: tick interval must be within (0, %s]", ErrInvalidConfig, maxTickInterval)
	}
	return nil
}

func (c Config) tickInterval() time.Duration {
	if c.TickInterval <= 0 {
		return DefaultTickInterval
	}
	return c.TickInterval
}
