// Package config handles YAML configuration loading, environment
// variable expansion, and structural validation for safespace.
package config

import (
	"github.com/safespace-sl/safespace/internal/counselor"
	"github.com/safespace-sl/safespace/internal/culture"
	"github.com/safespace-sl/safespace/modules/memory/sqlite"
	"github.com/safespace-sl/safespace/modules/provider/anthropic"
	"github.com/safespace-sl/safespace/modules/provider/gemini"
	"github.com/safespace-sl/safespace/modules/provider/groq"
)

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is
	// supported.
	Version string `yaml:"version"`

	Log       LogConfig        `yaml:"log"`
	Gateway   GatewayConfig    `yaml:"gateway"`
	Storage   StorageConfig    `yaml:"storage"`
	Providers ProvidersConfig  `yaml:"providers"`
	Culture   CultureConfig    `yaml:"culture"`
	Counselor counselor.Config `yaml:"counselor"`
	Knowledge KnowledgeConfig  `yaml:"knowledge"`
	Retention RetentionConfig  `yaml:"retention"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// GatewayConfig controls the HTTP gateway.
type GatewayConfig struct {
	// Listen is the bind address, e.g. ":8080".
	Listen string `yaml:"listen"`

	// MaxBodyBytes caps the request body size. Zero means the
	// built-in default.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// ReadTimeoutSeconds and WriteTimeoutSeconds bound the HTTP
	// server's per-request I/O.
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`

	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	SQLite sqlite.Config `yaml:"sqlite"`
}

// ProvidersConfig configures the generation cascade. Order lists
// provider names in priority order; unknown names are a validation
// error, and listed providers missing credentials are skipped at
// runtime by the cascade itself.
type ProvidersConfig struct {
	// Order is the cascade priority, e.g. [gemini, groq, anthropic].
	Order []string `yaml:"order"`

	// AttemptTimeoutSeconds bounds one provider attempt.
	AttemptTimeoutSeconds int `yaml:"attempt_timeout_seconds"`

	Gemini    gemini.Config    `yaml:"gemini"`
	Groq      groq.Config      `yaml:"groq"`
	Anthropic anthropic.Config `yaml:"anthropic"`
}

// CultureConfig tunes the cultural adaptation layer.
type CultureConfig struct {
	Probabilities culture.Probabilities `yaml:"probabilities"`
}

// KnowledgeConfig tunes retrieval.
type KnowledgeConfig struct {
	// FactLimit is the retrieval top-k handed to providers.
	FactLimit int `yaml:"fact_limit"`
}

// RetentionConfig controls the scheduled purge of old chat messages.
// Summaries are never purged.
type RetentionConfig struct {
	Enabled bool `yaml:"enabled"`

	// Schedule is a cron expression, e.g. "0 3 * * *".
	Schedule string `yaml:"schedule"`

	// MaxAgeDays is how long messages are kept.
	MaxAgeDays int `yaml:"max_age_days"`
}

// knownProviders are the names accepted in providers.order.
var knownProviders = map[string]bool{
	"gemini":    true,
	"groq":      true,
	"anthropic": true,
}
