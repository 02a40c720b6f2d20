package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dechbar/kpause/internal/cli/formatter"
	"github.com/dechbar/kpause/internal/domain"
	"github.com/dechbar/kpause/internal/kptimer"
	"github.com/dechbar/kpause/internal/service"
	"github.com/spf13/cobra"
)

func newMeasureCmd(app *App) *cobra.Command {
	var (
		attempts int
		pause    time.Duration
		prepare  time.Duration
		note     string
		noSave   bool
	)

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Run a timed control pause session",
		Long: `Run a control pause session: hold your breath after a normal exhale and
press space at the first urge to breathe. Attempts are separated by a rest
pause; the session score is the rounded average of the recorded holds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.Timer()
			if cmd.Flags().Changed("attempts") {
				cfg.Attempts = attempts
			}
			if cmd.Flags().Changed("pause") {
				cfg.PauseDuration = pause
			}
			if cmd.Flags().Changed("prepare") {
				cfg.PrepareDelay = prepare
			}
			if err := validateNote(note); err != nil {
				return err
			}

			engine, err := kptimer.New(cfg,
				kptimer.WithClock(app.clock()),
				kptimer.WithLogger(app.logger()),
			)
			if err != nil {
				return err
			}
			defer engine.Close()

			final, err := app.runTimer(newMeasureModel(engine, app.now), cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("running timer: %w", err)
			}
			m, ok := final.(measureModel)
			if !ok {
				return fmt.Errorf("unexpected timer model %T", final)
			}
			return finishMeasurement(cmd, app, m, cfg, note, noSave)
		},
	}

	cmd.Flags().IntVarP(&attempts, "attempts", "n", kptimer.DefaultAttempts, "Number of breath-hold attempts")
	cmd.Flags().DurationVar(&pause, "pause", kptimer.DefaultPauseDuration, "Rest between attempts")
	cmd.Flags().DurationVar(&prepare, "prepare", kptimer.DefaultPrepareDelay, "Delay before each session's first hold")
	cmd.Flags().StringVar(&note, "note", "", "Note stored with the measurement")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Show the result without storing it")

	return cmd
}

// finishMeasurement stores and prints a finished session.
func finishMeasurement(cmd *cobra.Command, app *App, m measureModel, cfg kptimer.Config, note string, noSave bool) error {
	out := cmd.OutOrStdout()
	if m.err != nil {
		return m.err
	}
	if !m.completed || len(m.results) == 0 {
		fmt.Fprintln(out, formatter.Dim("Session discarded."))
		return nil
	}

	measuredAt := m.startedAt
	if measuredAt.IsZero() {
		measuredAt = app.now()
	}

	if noSave {
		preview, err := domain.NewMeasurement(m.state.Attempts, cfg.Attempts, measuredAt, note)
		if err != nil {
			return err
		}
		fmt.Fprint(out, formatter.FormatSessionResult(preview, false))
		return nil
	}

	if note == "" && app.interactive() {
		asked, err := app.askNote()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("reading note: %w", err)
		}
		note = strings.TrimSpace(asked)
	}

	saved, err := app.Measurements.Save(context.Background(), service.SaveRequest{
		Attempts:   m.state.Attempts,
		Configured: cfg.Attempts,
		MeasuredAt: measuredAt,
		Note:       note,
	})
	if err != nil {
		return fmt.Errorf("saving measurement: %w", err)
	}
	fmt.Fprint(out, formatter.FormatSessionResult(saved, true))
	return nil
}
