package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const (
	metricsWindowDays = 30
	metricsRefresh    = time.Minute
)

func newServeMetricsCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Serve Prometheus metrics until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Gatherer == nil {
				return fmt.Errorf("metrics are not configured")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving metrics on http://%s/metrics\n", ln.Addr())
			return serveMetrics(ctx, app, ln, metricsRefresh)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Config.MetricsAddr, "Listen address")
	return cmd
}

// serveMetrics serves /metrics on ln until ctx is done, refreshing the
// window gauges from the store every refresh.
func serveMetrics(ctx context.Context, app *App, ln net.Listener, refresh time.Duration) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(app.Gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	refreshWindow(ctx, app)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ticker.C:
			refreshWindow(ctx, app)
		case <-ctx.Done():
			app.logger().Info("metrics_server_stopping")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
}

func refreshWindow(ctx context.Context, app *App) {
	if app.Metrics == nil {
		return
	}
	summary, err := app.Measurements.Stats(ctx, metricsWindowDays)
	if err != nil {
		app.logger().Warn("metrics_refresh_failed", "error", err)
		return
	}
	app.Metrics.RecordSummary(summary)
}
