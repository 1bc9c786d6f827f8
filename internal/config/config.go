package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LadderStep is one rung of the category ladder. A step with UpTo unset (nil)
// is the final catch-all bucket and must come last.
type LadderStep struct {
	UpTo  *float64 `yaml:"upTo"`
	Label string   `yaml:"label"`
}

// Config defines fatigue service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"FATIGUE_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"FATIGUE_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"FATIGUE_REDIS_ADDR"`
		Password string `yaml:"password" env:"FATIGUE_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Model struct {
		Path string `yaml:"path" env:"FATIGUE_MODEL_PATH"`
	} `yaml:"model"`
	Audit struct {
		Workers         int `yaml:"workers" env:"FATIGUE_AUDIT_WORKERS"`
		QueueSize       int `yaml:"queueSize" env:"FATIGUE_AUDIT_QUEUE_SIZE"`
		MaxAttempts     int `yaml:"maxAttempts" env:"FATIGUE_AUDIT_MAX_ATTEMPTS"`
		RetryDelayMs    int `yaml:"retryDelayMs" env:"FATIGUE_AUDIT_RETRY_DELAY_MS"`
		WriteTimeoutSec int `yaml:"writeTimeoutSeconds" env:"FATIGUE_AUDIT_WRITE_TIMEOUT"`
	} `yaml:"audit"`
	Policy struct {
		ScreenTimeThresholdHours  float64      `yaml:"screenTimeThresholdHours" env:"FATIGUE_SCREEN_TIME_THRESHOLD"`
		HighFatigueScore          float64      `yaml:"highFatigueScore" env:"FATIGUE_HIGH_FATIGUE_SCORE"`
		SocialMediaThresholdHours float64      `yaml:"socialMediaThresholdHours" env:"FATIGUE_SOCIAL_MEDIA_THRESHOLD"`
		SocialMediaAdvisory       bool         `yaml:"socialMediaAdvisory" env:"FATIGUE_SOCIAL_MEDIA_ADVISORY"`
		Ladder                    []LadderStep `yaml:"ladder" env:"-"`
	} `yaml:"policy"`
}

// Load reads configuration via the shared helper and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Model.Path = "fatigue_model.yaml"
	cfg.Audit.Workers = 2
	cfg.Audit.QueueSize = 128
	cfg.Audit.MaxAttempts = 3
	cfg.Audit.RetryDelayMs = 500
	cfg.Audit.WriteTimeoutSec = 5
	cfg.Policy.ScreenTimeThresholdHours = 8
	cfg.Policy.HighFatigueScore = 6
	cfg.Policy.SocialMediaThresholdHours = 5

	if err := loadInto(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Model.Path) == "" {
		return nil, errors.New("config: model path required")
	}
	if len(cfg.Policy.Ladder) == 0 {
		cfg.Policy.Ladder = defaultLadder()
	}
	if err := validateLadder(cfg.Policy.Ladder); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultLadder() []LadderStep {
	low := 3.5
	avg := 6.5
	return []LadderStep{
		{UpTo: &low, Label: "Low"},
		{UpTo: &avg, Label: "Average"},
		{Label: "High"},
	}
}

func validateLadder(steps []LadderStep) error {
	if len(steps) < 2 {
		return errors.New("config: ladder needs at least two steps")
	}
	last := len(steps) - 1
	prev := 0.0
	for i, step := range steps {
		if strings.TrimSpace(step.Label) == "" {
			return fmt.Errorf("config: ladder step %d missing label", i)
		}
		if i == last {
			if step.UpTo != nil {
				return errors.New("config: final ladder step must be unbounded")
			}
			continue
		}
		if step.UpTo == nil {
			return fmt.Errorf("config: ladder step %d missing upTo bound", i)
		}
		if i > 0 && *step.UpTo <= prev {
			return fmt.Errorf("config: ladder bounds must be strictly ascending at step %d", i)
		}
		prev = *step.UpTo
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// AuditRetryDelay returns the inter-attempt delay as a duration.
func (c *Config) AuditRetryDelay() time.Duration {
	if c.Audit.RetryDelayMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.Audit.RetryDelayMs) * time.Millisecond
}

// AuditWriteTimeout returns the per-attempt sink timeout as a duration.
func (c *Config) AuditWriteTimeout() time.Duration {
	if c.Audit.WriteTimeoutSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Audit.WriteTimeoutSec) * time.Second
}
