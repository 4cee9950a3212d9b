package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so values can be written as "750ms" or "2s"
// in the YAML file.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	Storage  string `yaml:"storage"` // "memory" or "sqlite"
	DBPath   string `yaml:"db_path"`

	WebhookSecret   string   `yaml:"webhook_secret"`
	ProcessingDelay Duration `yaml:"processing_delay"`
	FailureRate     float64  `yaml:"failure_rate"`

	MaxDeliveryAttempts int      `yaml:"max_delivery_attempts"`
	BackoffBase         Duration `yaml:"backoff_base"`

	WindowThreshold  string `yaml:"window_threshold"`
	WindowCutoffHour int    `yaml:"window_cutoff_hour"`

	SettlementWorkers int `yaml:"settlement_workers"`
	SettlementQueue   int `yaml:"settlement_queue"`
	WebhookWorkers    int `yaml:"webhook_workers"`
	WebhookQueue      int `yaml:"webhook_queue"`

	OutboxPollInterval Duration `yaml:"outbox_poll_interval"`
	OutboxBatchSize    int      `yaml:"outbox_batch_size"`
}

func Default() Config {
	return Config{
		HTTPAddr:            ":8080",
		Storage:             "sqlite",
		DBPath:              "fiadopay.db",
		WebhookSecret:       "dev-secret",
		ProcessingDelay:     Duration(750 * time.Millisecond),
		FailureRate:         0.3,
		MaxDeliveryAttempts: 5,
		BackoffBase:         Duration(time.Second),
		WindowThreshold:     "10000",
		WindowCutoffHour:    22,
		SettlementWorkers:   4,
		SettlementQueue:     256,
		WebhookWorkers:      4,
		WebhookQueue:        256,
		OutboxPollInterval:  Duration(200 * time.Millisecond),
		OutboxBatchSize:     50,
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error: the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}
