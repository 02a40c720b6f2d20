package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dechbar/kpause/internal/cli/formatter"
	"github.com/dechbar/kpause/internal/domain"
	"github.com/dechbar/kpause/internal/kptimer"
)

// measurePollInterval is how often the view refreshes from the engine.
const measurePollInterval = 50 * time.Millisecond

type measureKeyMap struct {
	Start  key.Binding
	Stop   key.Binding
	Next   key.Binding
	Finish key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func newMeasureKeyMap() measureKeyMap {
	return measureKeyMap{
		Start:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start")),
		Stop:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "stop")),
		Next:   key.NewBinding(key.WithKeys(" ", "enter", "n"), key.WithHelp("space", "next attempt")),
		Finish: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish early")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k measureKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Next, k.Finish, k.Reset, k.Quit}
}

func (k measureKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// enableFor turns on only the bindings that apply in phase.
func (k *measureKeyMap) enableFor(phase domain.Phase) {
	k.Start.SetEnabled(phase == domain.PhaseIdle)
	k.Stop.SetEnabled(phase == domain.PhaseMeasuring)
	k.Next.SetEnabled(phase == domain.PhasePaused)
	k.Finish.SetEnabled(phase == domain.PhasePaused)
	k.Reset.SetEnabled(phase != domain.PhaseIdle && phase != domain.PhaseCompleted)
}

type pollMsg struct{}

func pollCmd() tea.Cmd {
	return tea.Tick(measurePollInterval, func(time.Time) tea.Msg { return pollMsg{} })
}

// measureModel drives a kptimer.Engine. It never registers engine callbacks;
// it polls State and acts on the state each command returns.
type measureModel struct {
	engine *kptimer.Engine
	cfg    kptimer.Config
	now    func() time.Time

	state     domain.TimerState
	startedAt time.Time
	results   []int
	completed bool
	aborted   bool
	err       error

	keys  measureKeyMap
	help  help.Model
	pause progress.Model
}

func newMeasureModel(engine *kptimer.Engine, now func() time.Time) measureModel {
	keys := newMeasureKeyMap()
	keys.enableFor(domain.PhaseIdle)
	cfg := engine.Config()
	return measureModel{
		engine: engine,
		cfg:    cfg,
		now:    now,
		state:  domain.TimerState{Phase: domain.PhaseIdle, Attempts: make([]*int, cfg.Attempts)},
		keys:   keys,
		help:   help.New(),
		pause: progress.New(
			progress.WithSolidFill(string(formatter.ColorBlue)),
			progress.WithoutPercentage(),
			progress.WithWidth(30),
		),
	}
}

func (m measureModel) Init() tea.Cmd {
	return pollCmd()
}

func (m measureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case pollMsg:
		if m.completed || m.aborted {
			return m, nil
		}
		next := m.apply(m.engine.State)
		if m.completed || m.err != nil {
			return next, tea.Quit
		}
		return next, pollCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m measureModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var op func() (domain.TimerState, error)
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		m.startedAt = m.now()
		op = m.engine.Start
	case key.Matches(msg, m.keys.Stop):
		op = m.engine.Stop
	case key.Matches(msg, m.keys.Next):
		op = m.engine.ContinueNext
	case key.Matches(msg, m.keys.Finish):
		op = m.engine.FinishEarly
	case key.Matches(msg, m.keys.Reset):
		op = m.engine.Reset
	default:
		return m, nil
	}

	next := m.apply(op)
	if next.completed || next.err != nil {
		return next, tea.Quit
	}
	return next, nil
}

// apply runs one engine operation and folds its result into the model.
func (m measureModel) apply(op func() (domain.TimerState, error)) measureModel {
	st, err := op()
	if err != nil {
		m.err = err
		return m
	}
	m.state = st
	m.keys.enableFor(st.Phase)
	if st.Phase == domain.PhaseCompleted && !m.completed {
		m.completed = true
		m.results = m.takeResults(st)
	}
	return m
}

// takeResults prefers the engine's result channel and falls back to the
// snapshot when the result was already consumed.
func (m measureModel) takeResults(st domain.TimerState) []int {
	select {
	case r := <-m.engine.Results():
		return r
	default:
		return domain.Compact(st.Attempts)
	}
}

func (m measureModel) View() string {
	if m.aborted {
		return ""
	}

	var b strings.Builder
	title := formatter.StyleHeader.Render("CONTROL PAUSE")
	attempt := min(m.state.CurrentAttempt+1, m.cfg.Attempts)
	fmt.Fprintf(&b, "%s  %s\n\n", title, formatter.Dim(fmt.Sprintf("attempt %d of %d", attempt, m.cfg.Attempts)))

	switch m.state.Phase {
	case domain.PhaseIdle:
		b.WriteString("Breathe normally, exhale, pinch your nose.\n")
		b.WriteString(formatter.Dim("Press space to start the hold.") + "\n")
	case domain.PhasePreparing:
		b.WriteString(formatter.StyleYellow.Render("Get ready...") + "\n")
	case domain.PhaseMeasuring:
		b.WriteString(formatter.StyleBold.Render(formatter.FormatStopwatch(m.state.Elapsed)) + "\n")
		b.WriteString(formatter.Dim("Press space at the first urge to breathe.") + "\n")
	case domain.PhasePaused:
		fmt.Fprintf(&b, "Rest  %s\n", formatter.StyleBlue.Render(formatter.FormatSeconds(m.state.PauseRemaining)))
		b.WriteString(m.pause.ViewAs(m.pauseFraction()) + "\n")
	case domain.PhaseCompleted:
		avg, err := domain.AverageInts(m.results)
		if err == nil {
			fmt.Fprintf(&b, "Done. Average %s  %s\n", formatter.FormatSeconds(avg), formatter.RatingBadge(domain.RateScore(avg)))
		}
	}

	b.WriteString("\n" + m.attemptsLine() + "\n")
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m measureModel) attemptsLine() string {
	parts := make([]string, len(m.state.Attempts))
	for i, a := range m.state.Attempts {
		if a == nil {
			parts[i] = formatter.Dim("--")
			continue
		}
		parts[i] = fmt.Sprintf("%ds", *a)
	}
	return formatter.Dim("Attempts  ") + strings.Join(parts, formatter.Dim(" · "))
}

func (m measureModel) pauseFraction() float64 {
	total := m.cfg.PauseDuration.Seconds()
	if total <= 0 {
		return 0
	}
	return min(float64(m.state.PauseRemaining)/total, 1)
}
