package anthropic

// Config holds the configuration for the Anthropic provider.
type Config struct {
	APIKey      string   `yaml:"api_key"`
	Model       string   `yaml:"model"`
	BaseURL     string   `yaml:"base_url"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
}

// defaults fills zero-valued fields with sensible defaults.
func (c *Config) defaults() {
	if c.Model == "" {
		c.Model = "claude-3-5-haiku-latest"
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 1200
	}
	if c.Temperature == nil {
		t := 0.7
		c.Temperature = &t
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return nil
}
