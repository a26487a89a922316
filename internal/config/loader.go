package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/safespace-sl/safespace/internal/culture"
)

// envPattern matches ${VAR} and ${VAR:-default} expressions.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-((?:[^}\\]|\\.)*))?\}`)

// Load reads a YAML configuration file, expands environment variables,
// parses it into a Config struct, and applies defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	expanded, err := expandEnv(raw)
	if err != nil {
		return nil, fmt.Errorf("config: expanding variables in %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.Defaults()
	return &cfg, nil
}

// Defaults fills zero-valued fields with the shipped defaults.
func (c *Config) Defaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Gateway.Listen == "" {
		c.Gateway.Listen = ":8080"
	}
	if c.Gateway.ReadTimeoutSeconds == 0 {
		c.Gateway.ReadTimeoutSeconds = 15
	}
	if c.Gateway.WriteTimeoutSeconds == 0 {
		c.Gateway.WriteTimeoutSeconds = 60
	}
	if c.Gateway.ShutdownTimeoutSeconds == 0 {
		c.Gateway.ShutdownTimeoutSeconds = 10
	}
	if len(c.Providers.Order) == 0 {
		c.Providers.Order = []string{"gemini", "groq", "anthropic"}
	}
	if c.Providers.AttemptTimeoutSeconds == 0 {
		c.Providers.AttemptTimeoutSeconds = 30
	}
	if c.Culture.Probabilities == (culture.Probabilities{}) {
		c.Culture.Probabilities = culture.DefaultProbabilities()
	}
	if c.Knowledge.FactLimit == 0 {
		c.Knowledge.FactLimit = 3
	}
	if c.Retention.Schedule == "" {
		c.Retention.Schedule = "0 3 * * *"
	}
	if c.Retention.MaxAgeDays == 0 {
		c.Retention.MaxAgeDays = 90
	}
	c.Counselor.Defaults()
}

// expandEnv replaces ${VAR} and ${VAR:-default} patterns in raw YAML
// bytes. Returns an error listing all unresolved variables (no default,
// no env value).
func expandEnv(raw []byte) ([]byte, error) {
	var errs []error

	result := envPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		subs := envPattern.FindSubmatch(match)
		name := string(subs[1])
		hasDefault := len(subs) > 2 && subs[2] != nil
		defaultVal := ""
		if hasDefault {
			defaultVal = string(subs[2])
		}

		value, ok := os.LookupEnv(name)
		if ok {
			return []byte(value)
		}

		if hasDefault {
			return []byte(defaultVal)
		}

		errs = append(errs, fmt.Errorf("unresolved variable: %s", name))
		return match
	})

	return result, errors.Join(errs...)
}
