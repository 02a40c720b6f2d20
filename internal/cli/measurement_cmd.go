package cli

import (
	"context"
	"fmt"

	"github.com/dechbar/kpause/internal/cli/formatter"
	"github.com/dechbar/kpause/internal/service"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDays(days); err != nil {
				return err
			}
			ms, err := app.Measurements.ListRecent(context.Background(), days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMeasurementList(ms, app.now()))
			return nil
		},
	}

	addDaysFlag(cmd.Flags(), &days)
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one measurement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := resolveMeasurement(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMeasurement(m, app.now()))
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a measurement",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMeasurement(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete without confirmation; pass --yes")
				}
				ok, err := app.confirmDelete(m)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Kept."))
					return nil
				}
			}

			if err := app.Measurements.Delete(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted measurement %s\n", m.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize recent measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDays(days); err != nil {
				return err
			}
			summary, err := app.Measurements.Stats(context.Background(), days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(summary, app.now()))
			return nil
		},
	}

	addDaysFlag(cmd.Flags(), &days)
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var days int
	format := newFormatValue(service.FormatJSON)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write measurements as JSON or YAML to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDays(days); err != nil {
				return err
			}
			data, err := app.Measurements.Export(context.Background(), days, format.format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	addDaysFlag(cmd.Flags(), &days)
	cmd.Flags().VarP(format, "format", "f", "Output format: json or yaml")
	return cmd
}
