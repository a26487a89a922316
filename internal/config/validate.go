package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Validate checks the structural validity of a Config. It verifies the
// version field, the log settings, the provider cascade order, the
// probability ranges, and the retention schedule. All problems are
// reported at once.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	errs = append(errs, validateLog(cfg.Log)...)
	errs = append(errs, validateProviders(cfg.Providers)...)
	errs = append(errs, validateCulture(cfg.Culture)...)
	errs = append(errs, validateRetention(cfg.Retention)...)

	if err := cfg.Storage.SQLite.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("config: storage.sqlite: %w", err))
	}
	if cfg.Gateway.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("config: gateway.max_body_bytes must not be negative"))
	}

	return errors.Join(errs...)
}

// ParseLevel converts the configured log level string to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", level)
	}
}

func validateLog(l LogConfig) []error {
	var errs []error
	if _, err := ParseLevel(l.Level); err != nil {
		errs = append(errs, err)
	}
	if l.Format != "" && l.Format != "text" && l.Format != "json" {
		errs = append(errs, fmt.Errorf("config: log.format %q (supported: text, json)", l.Format))
	}
	return errs
}

func validateProviders(p ProvidersConfig) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, name := range p.Order {
		if !knownProviders[name] {
			errs = append(errs, fmt.Errorf("config: providers.order[%d]: unknown provider %q", i, name))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("config: providers.order[%d]: duplicate provider %q", i, name))
		}
		seen[name] = true
	}
	if p.AttemptTimeoutSeconds < 0 {
		errs = append(errs, errors.New("config: providers.attempt_timeout_seconds must not be negative"))
	}
	return errs
}

func validateCulture(c CultureConfig) []error {
	var errs []error
	probs := map[string]float64{
		"greeting":    c.Probabilities.Greeting,
		"proverb":     c.Probabilities.Proverb,
		"affirmation": c.Probabilities.Affirmation,
		"resource":    c.Probabilities.Resource,
	}
	for name, v := range probs {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("config: culture.probabilities.%s %v out of range [0, 1]", name, v))
		}
	}
	return errs
}

func validateRetention(r RetentionConfig) []error {
	if !r.Enabled {
		return nil
	}
	var errs []error
	if r.MaxAgeDays < 1 {
		errs = append(errs, errors.New("config: retention.max_age_days must be at least 1 when retention is enabled"))
	}
	if _, err := cron.ParseStandard(r.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("config: retention.schedule %q: %w", r.Schedule, err))
	}
	return errs
}
