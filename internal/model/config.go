package model

import "time"

// Config is the complete runtime configuration.
// Hierarchy (highest to lowest priority): CLI flags, RAPIDDOCS_* environment
// variables, ~/.rapiddocs/config.yaml, defaults.
type Config struct {
	LLM    LLMConfig    `yaml:"llm" json:"llm" mapstructure:"llm"`
	Image  ImageConfig  `yaml:"image" json:"image" mapstructure:"image"`
	Chart  ChartConfig  `yaml:"chart" json:"chart" mapstructure:"chart"`
	Cache  CacheConfig  `yaml:"cache" json:"cache" mapstructure:"cache"`
	Output OutputConfig `yaml:"output" json:"output" mapstructure:"output"`
}

// LLMConfig configures the text-generation provider
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string `yaml:"provider" json:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" json:"model" mapstructure:"model"`

	// APIKey for OpenAI/Anthropic
	APIKey string `yaml:"api_key" json:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url" json:"base_url,omitempty" mapstructure:"base_url"`

	// Timeout for API requests, seconds
	Timeout int `yaml:"timeout" json:"timeout" mapstructure:"timeout"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens" json:"max_tokens" mapstructure:"max_tokens"`

	// Temperature for free-text generation
	Temperature float32 `yaml:"temperature" json:"temperature" mapstructure:"temperature"`
}

// ImageConfig configures the illustration provider
type ImageConfig struct {
	// Provider name: "imagen", "" (disabled; placeholders are used)
	Provider string `yaml:"provider" json:"provider" mapstructure:"provider"`

	Model  string `yaml:"model" json:"model" mapstructure:"model"`
	APIKey string `yaml:"api_key" json:"api_key,omitempty" mapstructure:"api_key"`

	Width  int `yaml:"width" json:"width" mapstructure:"width"`
	Height int `yaml:"height" json:"height" mapstructure:"height"`

	// BatchSize is the number of concurrent image requests per batch
	BatchSize int `yaml:"batch_size" json:"batch_size" mapstructure:"batch_size"`

	// BatchDelay is the pause between batches (provider throttling headroom)
	BatchDelay time.Duration `yaml:"batch_delay" json:"batch_delay" mapstructure:"batch_delay"`
}

// ChartConfig configures chart rendering
type ChartConfig struct {
	// Colors is the palette applied to chart series, hex strings
	Colors []string `yaml:"colors" json:"colors" mapstructure:"colors"`

	Width  int `yaml:"width" json:"width" mapstructure:"width"`
	Height int `yaml:"height" json:"height" mapstructure:"height"`
}

// CacheConfig configures the in-memory extraction cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl" mapstructure:"ttl"`
}

// OutputConfig configures artifact output
type OutputConfig struct {
	Dir          string `yaml:"dir" json:"dir" mapstructure:"dir"`
	Verbose      bool   `yaml:"verbose" json:"verbose" mapstructure:"verbose"`
	IncludeCover bool   `yaml:"include_cover" json:"include_cover" mapstructure:"include_cover"`
	LogoPath     string `yaml:"logo_path" json:"logo_path,omitempty" mapstructure:"logo_path"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "", // Disabled by default; regex-only extraction
			Timeout:     60,
			MaxTokens:   4000,
			Temperature: 0.7,
		},
		Image: ImageConfig{
			Provider:   "",
			Model:      "imagen-3.0-generate-002",
			Width:      1024,
			Height:     768,
			BatchSize:  3,
			BatchDelay: 2 * time.Second,
		},
		Chart: ChartConfig{
			Colors: []string{"#4472C4", "#ED7D31", "#A5A5A5", "#FFC000", "#5B9BD5"},
			Width:  640,
			Height: 400,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Output: OutputConfig{
			Dir:          "out",
			IncludeCover: true,
		},
	}
}
