package cli

import (
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dechbar/kpause/internal/config"
	"github.com/dechbar/kpause/internal/domain"
	"github.com/dechbar/kpause/internal/kptimer"
	"github.com/dechbar/kpause/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// App holds the dependencies CLI commands run against.
type App struct {
	Measurements service.MeasurementService
	Config       config.Config

	// Gatherer backs serve-metrics. Nil disables the command.
	Gatherer prometheus.Gatherer
	Metrics  *service.Metrics
	Logger   *slog.Logger

	// Clock drives the measurement timer. Nil means the wall clock.
	Clock kptimer.Clock
	Now   func() time.Time

	IsInteractive func() bool

	// Terminal interaction, replaceable in tests.
	RunTimer      func(m tea.Model, in io.Reader, out io.Writer) (tea.Model, error)
	AskNote       func() (string, error)
	ConfirmDelete func(m *domain.Measurement) (bool, error)
}

// NewRootCmd creates the top-level "kpause" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "kpause",
		Short:         "Control pause (breath-hold) timer and log",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMeasureCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newRemoveCmd(app),
		newStatsCmd(app),
		newClassifyCmd(app),
		newExportCmd(app),
		newServeMetricsCmd(app),
	)

	return root
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) clock() kptimer.Clock {
	if a.Clock != nil {
		return a.Clock
	}
	return kptimer.RealClock{}
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runTimer(m tea.Model, in io.Reader, out io.Writer) (tea.Model, error) {
	if a.RunTimer != nil {
		return a.RunTimer(m, in, out)
	}
	return tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
}

func (a *App) askNote() (string, error) {
	if a.AskNote != nil {
		return a.AskNote()
	}
	var note string
	if err := noteForm(&note).Run(); err != nil {
		return "", err
	}
	return note, nil
}

func (a *App) confirmDelete(m *domain.Measurement) (bool, error) {
	if a.ConfirmDelete != nil {
		return a.ConfirmDelete(m)
	}
	var ok bool
	title := "Delete the " + m.MeasuredAt.Format("Jan 2 15:04") + " measurement?"
	if err := confirmForm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
