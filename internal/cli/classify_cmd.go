package cli

import (
	"fmt"

	"github.com/dechbar/kpause/internal/cli/formatter"
	"github.com/dechbar/kpause/internal/domain"
	"github.com/spf13/cobra"
)

func newClassifyCmd(app *App) *cobra.Command {
	at := newTimeValue(app.now)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Tell whether a moment falls in the morning measurement window",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := app.now()
			if at.set {
				t = at.t
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClassification(domain.Classify(t), t))
			return nil
		},
	}

	cmd.Flags().Var(at, "at", "Time to classify (RFC3339 or HH:MM, default now)")
	return cmd
}
