package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log        LogConfig        `mapstructure:"log" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all document store settings.
type DatabaseConfig struct {
	// Driver selects the backend: postgres, sqlite3 or memory (dry run).
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite3 memory"`
	// URL is a postgres connection URL or a sqlite file path/DSN.
	URL             string        `mapstructure:"url" validate:"required_unless=Driver memory"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// Provider selects the completion backend: gemini or openai.
	Provider     string `mapstructure:"provider" validate:"required,oneof=gemini openai"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	OpenAIAPIKey string `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	// BaseURL overrides the OpenAI-compatible endpoint.
	BaseURL   string `mapstructure:"base_url" validate:"omitempty,url"`
	ModelName string `mapstructure:"model_name" validate:"required"`
	// MaxRetries bounds retries of a single completion call on transient errors.
	MaxRetries        int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int           `mapstructure:"retry_delay_seconds" validate:"gte=0"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
}

// GenerationConfig controls the daily run.
type GenerationConfig struct {
	ArticleCount int `mapstructure:"article_count" validate:"gt=0,lte=100"`
	// MaxAttempts caps completion requests per run; 0 means no cap.
	MaxAttempts int           `mapstructure:"max_attempts" validate:"gte=0"`
	BackoffBase time.Duration `mapstructure:"backoff_base" validate:"gt=0"`
	BackoffMax  time.Duration `mapstructure:"backoff_max" validate:"gtefield=BackoffBase"`
	// PromptsPath points at a YAML file overriding the built-in prompts.
	PromptsPath string `mapstructure:"prompts_path" validate:"omitempty,file"`
	// Timezone is an IANA zone name used to compute the theme date ("Local" by default).
	Timezone string `mapstructure:"timezone" validate:"required"`
}

// Location resolves the configured time zone.
func (g GenerationConfig) Location() (*time.Location, error) {
	return time.LoadLocation(g.Timezone)
}
