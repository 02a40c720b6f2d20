package kptimer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dechbar/kpause/internal/domain"
)

// ErrClosed is returned by Engine methods after Close.
var ErrClosed = errors.New("timer engine closed")

// Callbacks receive engine notifications. They run on the engine goroutine
// and must not call back into the Engine synchronously.
type Callbacks struct {
	// OnAttempt receives the zero-based attempt index and the recorded
	// whole seconds.
	OnAttempt func(index, seconds int)
	// OnComplete receives the recorded values in attempt order.
	OnComplete func(results []int)
	// OnPhase is called on every phase change.
	OnPhase func(phase domain.Phase)
	// OnTick is called after each clock wakeup with the refreshed state.
	OnTick func(state domain.TimerState)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCallbacks registers notification callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(e *Engine) { e.cb = cb }
}

// Engine runs a Machine on its own goroutine. All transitions and ticks are
// serialized through that goroutine, and at most one ticker is live at a
// time. Public methods block until the transition has been applied and
// return the resulting state.
type Engine struct {
	machine *Machine
	clock   Clock
	logger  *slog.Logger
	cb      Callbacks

	cmds    chan command
	results chan []int

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once

	// Owned by the run goroutine.
	ticker      Ticker
	tickerEvery time.Duration
	tickerPhase domain.Phase
	lastNow     time.Time
}

type command struct {
	apply func(m *Machine, now time.Time) []Event
	reply chan domain.TimerState
}

// New validates cfg and starts the engine goroutine. Call Close to release it.
func New(cfg Config, opts ...Option) (*Engine, error) {
	machine, err := NewMachine(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		machine: machine,
		clock:   RealClock{},
		logger:  slog.New(slog.DiscardHandler),
		cmds:    make(chan command),
		results: make(chan []int, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	go e.run(ctx)
	return e, nil
}

// Start begins a session. No-op unless idle.
func (e *Engine) Start() (domain.TimerState, error) {
	return e.do(func(m *Machine, now time.Time) []Event { return m.Start(now) })
}

// Stop ends the running attempt. No-op unless measuring.
func (e *Engine) Stop() (domain.TimerState, error) {
	return e.do(func(m *Machine, now time.Time) []Event { return m.Stop(now) })
}

// ContinueNext skips the rest of the pause. No-op unless paused.
func (e *Engine) ContinueNext() (domain.TimerState, error) {
	return e.do(func(m *Machine, now time.Time) []Event { return m.ContinueNext(now) })
}

// FinishEarly completes the session with the attempts recorded so far.
// No-op unless paused.
func (e *Engine) FinishEarly() (domain.TimerState, error) {
	return e.do(func(m *Machine, now time.Time) []Event { return m.FinishEarly(now) })
}

// Reset discards the session and returns to idle.
func (e *Engine) Reset() (domain.TimerState, error) {
	return e.do(func(m *Machine, _ time.Time) []Event { return m.Reset() })
}

// State returns the current state, refreshed against the clock.
func (e *Engine) State() (domain.TimerState, error) {
	return e.do(func(*Machine, time.Time) []Event { return nil })
}

// Results delivers each completed session's recorded values. Only the most
// recent undelivered result is buffered.
func (e *Engine) Results() <-chan []int {
	return e.results
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.machine.Config()
}

// Close stops the engine. When it returns no callback will fire again and
// no ticker remains. Close is idempotent.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.cancel()
		<-e.done
		e.logger.Debug("kp_engine_closed")
	})
	return nil
}

func (e *Engine) do(apply func(m *Machine, now time.Time) []Event) (domain.TimerState, error) {
	cmd := command{apply: apply, reply: make(chan domain.TimerState, 1)}
	select {
	case e.cmds <- cmd:
	case <-e.done:
		return domain.TimerState{}, ErrClosed
	}
	select {
	case st := <-cmd.reply:
		return st, nil
	case <-e.done:
		return domain.TimerState{}, ErrClosed
	}
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)
	defer e.disarm()

	for {
		var tick <-chan time.Time
		if e.ticker != nil {
			tick = e.ticker.C()
		}

		select {
		case <-ctx.Done():
			return
		case cmd := <-e.cmds:
			// Catch up first so a command never acts on a deadline that
			// already passed between ticks.
			now := e.observe(e.clock.Now())
			e.dispatch(e.machine.Advance(now))
			e.dispatch(cmd.apply(e.machine, now))
			e.rearm()
			cmd.reply <- e.machine.State()
		case now := <-tick:
			// Cancellation wins over a tick that raced it.
			if ctx.Err() != nil {
				return
			}
			now = e.observe(now)
			e.dispatch(e.machine.Advance(now))
			e.rearm()
			if e.cb.OnTick != nil {
				e.cb.OnTick(e.machine.State())
			}
		}
	}
}

// observe keeps the machine's view of time monotonic when a delayed tick
// arrives after a command already saw a later instant.
func (e *Engine) observe(now time.Time) time.Time {
	if now.Before(e.lastNow) {
		return e.lastNow
	}
	e.lastNow = now
	return now
}

func (e *Engine) dispatch(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventPhaseChanged:
			e.logger.Debug("kp_phase_changed", "phase", ev.Phase)
			if e.cb.OnPhase != nil {
				e.cb.OnPhase(ev.Phase)
			}
		case EventAttemptRecorded:
			e.logger.Info("kp_attempt_recorded", "attempt", ev.Attempt+1, "seconds", ev.Seconds)
			if e.cb.OnAttempt != nil {
				e.cb.OnAttempt(ev.Attempt, ev.Seconds)
			}
		case EventCompleted:
			e.logger.Info("kp_session_completed", "attempts", len(ev.Results))
			if e.cb.OnComplete != nil {
				e.cb.OnComplete(append([]int(nil), ev.Results...))
			}
			e.publish(append([]int(nil), ev.Results...))
		}
	}
}

func (e *Engine) publish(results []int) {
	select {
	case e.results <- results:
	default:
		select {
		case <-e.results:
		default:
		}
		e.results <- results
	}
}

// rearm makes the live ticker match what the machine needs, stopping the
// old one before creating a replacement.
func (e *Engine) rearm() {
	every := e.machine.TickInterval()
	phase := e.machine.Phase()
	if e.ticker != nil && every == e.tickerEvery && phase == e.tickerPhase {
		return
	}
	e.disarm()
	if every <= 0 {
		return
	}
	e.ticker = e.clock.NewTicker(every)
	e.tickerEvery = every
	e.tickerPhase = phase
}

func (e *Engine) disarm() {
	if e.ticker == nil {
		return
	}
	e.ticker.Stop()
	e.ticker = nil
	e.tickerEvery = 0
	e.tickerPhase = ""
}
