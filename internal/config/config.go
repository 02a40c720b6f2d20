package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dechbar/kpause/internal/kptimer"
	"gopkg.in/yaml.v3"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath       string   `yaml:"db_path"`
	Attempts     int      `yaml:"attempts"`
	PauseSeconds int      `yaml:"pause_seconds"`
	PrepareMs    int      `yaml:"prepare_ms"`
	Log          bool     `yaml:"log"`
	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`
	MetricsAddr  string   `yaml:"metrics_addr"`
}

// Default returns the built-in configuration rooted at home.
func Default(home string) Config {
	return Config{
		DBPath:       filepath.Join(home, ".kpause", "kpause.db"),
		Attempts:     kptimer.DefaultAttempts,
		PauseSeconds: int(kptimer.DefaultPauseDuration / time.Second),
		PrepareMs:    int(kptimer.DefaultPrepareDelay / time.Millisecond),
		KafkaTopic:   "kp.measurements",
		MetricsAddr:  ":9464",
	}
}

// Load resolves configuration from the process environment.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return LoadFrom(os.Getenv, home)
}

// LoadFrom applies, in order: defaults, the YAML file named by
// KPAUSE_CONFIG (or ~/.kpause/config.yaml when present), then KPAUSE_*
// environment overrides.
func LoadFrom(getenv func(string) string, home string) (Config, error) {
	cfg := Default(home)

	path := getenv("KPAUSE_CONFIG")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, ".kpause", "config.yaml")
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if v := getenv("KPAUSE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("KPAUSE_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Attempts = n
		}
	}
	if v := getenv("KPAUSE_PAUSE_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.PauseSeconds = n
		}
	}
	if v := getenv("KPAUSE_PREPARE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.PrepareMs = n
		}
	}
	if v := getenv("KPAUSE_LOG"); v != "" {
		cfg.Log, _ = strconv.ParseBool(v)
	}
	if v := getenv("KPAUSE_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = splitList(v)
	}
	if v := getenv("KPAUSE_KAFKA_TOPIC"); v != "" {
		cfg.KafkaTopic = v
	}
	if v := getenv("KPAUSE_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}

	if err := cfg.Timer().Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Timer returns the timer settings.
func (c Config) Timer() kptimer.Config {
	return kptimer.Config{
		Attempts:      c.Attempts,
		PauseDuration: time.Duration(c.PauseSeconds) * time.Second,
		PrepareDelay:  time.Duration(c.PrepareMs) * time.Millisecond,
		TickInterval:  kptimer.DefaultTickInterval,
	}
}

// KafkaEnabled reports whether events should be published.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
