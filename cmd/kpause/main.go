package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dechbar/kpause/internal/cli"
	"github.com/dechbar/kpause/internal/config"
	"github.com/dechbar/kpause/internal/db"
	"github.com/dechbar/kpause/internal/repository"
	"github.com/dechbar/kpause/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := slog.New(slog.DiscardHandler)
	var observers []service.UseCaseObserver
	if cfg.Log {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(reg)

	var publisher service.Publisher = service.NoopPublisher{}
	if cfg.KafkaEnabled() {
		publisher = service.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	defer publisher.Close()

	measurements := service.NewMeasurementService(
		repository.NewSQLiteMeasurementRepo(database),
		db.NewSQLiteUnitOfWork(database),
		service.WithPublisher(publisher),
		service.WithMetrics(metrics),
		service.WithObservers(observers...),
	)

	app := &cli.App{
		Measurements: measurements,
		Config:       cfg,
		Gatherer:     reg,
		Metrics:      metrics,
		Logger:       logger,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
