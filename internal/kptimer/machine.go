package kptimer

import (
	"time"

	"github.com/dechbar/kpause/internal/domain"
)

// Machine sequences breath-hold attempts. It is not safe for concurrent use
// and never reads a clock: every transition takes the current time from the
// caller. Transitions that are not valid from the current phase are no-ops
// and return no events.
type Machine struct {
	cfg Config

	phase    domain.Phase
	attempts []*int
	current  int

	// phaseStart is when the current phase began. While measuring it is the
	// instant the hold started.
	phaseStart     time.Time
	elapsed        time.Duration
	pauseRemaining int
	// pauseLeft is the exact pause time left as of the last transition.
	pauseLeft time.Duration
}

// NewMachine returns an idle machine for cfg.
func NewMachine(cfg Config) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Machine{
		cfg:      cfg,
		phase:    domain.PhaseIdle,
		attempts: make([]*int, cfg.Attempts),
	}, nil
}

// Config returns the machine's configuration.
func (m *Machine) Config() Config {
	return m.cfg
}

// Phase returns the current phase.
func (m *Machine) Phase() domain.Phase {
	return m.phase
}

// State returns a snapshot that shares no memory with the machine.
func (m *Machine) State() domain.TimerState {
	attempts := make([]*int, len(m.attempts))
	for i, a := range m.attempts {
		if a != nil {
			attempts[i] = domain.IntPtr(*a)
		}
	}
	return domain.TimerState{
		Phase:          m.phase,
		Elapsed:        m.elapsed,
		CurrentAttempt: m.current,
		PauseRemaining: m.pauseRemaining,
		Attempts:       attempts,
	}
}

// Start moves idle to preparing. With no prepare delay the first hold begins
// immediately.
func (m *Machine) Start(now time.Time) []Event {
	if m.phase != domain.PhaseIdle {
		return nil
	}
	m.phase = domain.PhasePreparing
	m.phaseStart = now
	m.elapsed = 0
	events := []Event{phaseEvent(domain.PhasePreparing)}
	if m.cfg.PrepareDelay <= 0 {
		events = append(events, m.beginMeasuring(now)...)
	}
	return events
}

// Stop records the running hold. It pauses before the next attempt or
// completes the session on the last one.
func (m *Machine) Stop(now time.Time) []Event {
	if m.phase != domain.PhaseMeasuring {
		return nil
	}
	m.elapsed = sinceNonNegative(now, m.phaseStart)
	seconds := domain.RoundHalfUp(m.elapsed.Seconds())
	m.attempts[m.current] = domain.IntPtr(seconds)

	events := []Event{{Kind: EventAttemptRecorded, Attempt: m.current, Seconds: seconds}}
	if m.current >= len(m.attempts)-1 {
		return append(events, m.complete()...)
	}

	m.current++
	if m.cfg.PauseDuration <= 0 {
		return append(events, m.beginMeasuring(now)...)
	}
	m.phase = domain.PhasePaused
	m.phaseStart = now
	m.elapsed = 0
	m.pauseLeft = m.cfg.PauseDuration
	m.pauseRemaining = ceilSeconds(m.pauseLeft)
	return append(events, phaseEvent(domain.PhasePaused))
}

// ContinueNext ends the pause early and starts the next hold.
func (m *Machine) ContinueNext(now time.Time) []Event {
	if m.phase != domain.PhasePaused {
		return nil
	}
	return m.beginMeasuring(now)
}

// FinishEarly ends the session during a pause, keeping only the attempts
// recorded so far.
func (m *Machine) FinishEarly(time.Time) []Event {
	if m.phase != domain.PhasePaused {
		return nil
	}
	return m.complete()
}

// Reset discards all progress and returns to idle.
func (m *Machine) Reset() []Event {
	prev := m.phase
	m.phase = domain.PhaseIdle
	m.attempts = make([]*int, m.cfg.Attempts)
	m.current = 0
	m.elapsed = 0
	m.pauseRemaining = 0
	m.pauseLeft = 0
	m.phaseStart = time.Time{}
	if prev == domain.PhaseIdle {
		return nil
	}
	return []Event{phaseEvent(domain.PhaseIdle)}
}

// Advance applies the passage of time: it ends the prepare delay, refreshes
// the running hold and counts down the pause. A hold that began automatically
// starts at the deadline, not at now.
func (m *Machine) Advance(now time.Time) []Event {
	switch m.phase {
	case domain.PhasePreparing:
		due := m.phaseStart.Add(m.cfg.PrepareDelay)
		if now.Before(due) {
			return nil
		}
		events := m.beginMeasuring(due)
		m.elapsed = sinceNonNegative(now, due)
		return events
	case domain.PhaseMeasuring:
		m.elapsed = sinceNonNegative(now, m.phaseStart)
		return nil
	case domain.PhasePaused:
		passed := sinceNonNegative(now, m.phaseStart)
		if passed >= m.cfg.PauseDuration {
			due := m.phaseStart.Add(m.cfg.PauseDuration)
			events := m.beginMeasuring(due)
			m.elapsed = sinceNonNegative(now, due)
			return events
		}
		m.pauseLeft = m.cfg.PauseDuration - passed
		m.pauseRemaining = ceilSeconds(m.pauseLeft)
		return nil
	default:
		return nil
	}
}

// TickInterval is the wakeup period the current phase needs, or zero when
// nothing is time driven. While paused it never overshoots the end of the
// pause as of the last Advance.
func (m *Machine) TickInterval() time.Duration {
	switch m.phase {
	case domain.PhasePreparing:
		return m.cfg.PrepareDelay
	case domain.PhaseMeasuring:
		return m.cfg.tickInterval()
	case domain.PhasePaused:
		return min(countdownResolution, m.pauseLeft)
	default:
		return 0
	}
}

func (m *Machine) beginMeasuring(start time.Time) []Event {
	m.phase = domain.PhaseMeasuring
	m.phaseStart = start
	m.elapsed = 0
	m.pauseRemaining = 0
	m.pauseLeft = 0
	return []Event{phaseEvent(domain.PhaseMeasuring)}
}

func (m *Machine) complete() []Event {
	m.phase = domain.PhaseCompleted
	m.pauseRemaining = 0
	m.pauseLeft = 0
	return []Event{
		phaseEvent(domain.PhaseCompleted),
		{Kind: EventCompleted, Results: domain.Compact(m.attempts)},
	}
}

func phaseEvent(p domain.Phase) Event {
	return Event{Kind: EventPhaseChanged, Phase: p}
}

func sinceNonNegative(now, start time.Time) time.Duration {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

func ceilSeconds(d time.Duration) int {
	s := int(d / time.Second)
	if d%time.Second != 0 {
		s++
	}
	return s
}
