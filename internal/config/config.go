// Package config provides application configuration management with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.botforge/config.yaml)
//  3. Default values
//
// Security: provider credentials are never logged; MarshalJSON masks them.
//
// Error Handling:
//   - Sentinel errors for Go-idiomatic checking with errors.Is()
//   - Wrapped with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidExtractionMode indicates the extraction mode is not recognized.
	ErrInvalidExtractionMode = errors.New("invalid extraction mode")

	// ErrInvalidSearchLimit indicates the search result limit is out of range.
	ErrInvalidSearchLimit = errors.New("invalid search result limit")

	// ErrInvalidMaxTurns indicates the agent turn limit is out of range.
	ErrInvalidMaxTurns = errors.New("invalid max turns")

	// ErrInvalidTimeout indicates the request timeout is out of range.
	ErrInvalidTimeout = errors.New("invalid request timeout")
)

// Extraction modes for turning a conversation trace into the final answer.
const (
	// ExtractAll joins the text of every assistant message in trace order.
	ExtractAll = "all"

	// ExtractLast returns the text of the last assistant message only.
	ExtractLast = "last"
)

const (
	// DefaultSearchResultLimit bounds how many web search results a single
	// tool call may return.
	DefaultSearchResultLimit = 3

	// MaxSearchResultLimit is the upper bound accepted from configuration.
	MaxSearchResultLimit = 10

	// DefaultMaxTurns bounds the agent's reason/act loop.
	DefaultMaxTurns = 5

	// DefaultRequestTimeout bounds one full agent invocation.
	DefaultRequestTimeout = 120 * time.Second
)

// Credentials holds the process-wide provider secrets, loaded once at startup
// and immutable thereafter. A missing secret is not a load error: requests
// routed to that provider fail individually instead.
type Credentials struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" json:"gemini_api_key"` // SENSITIVE: masked in MarshalJSON
	OpenAIAPIKey string `mapstructure:"openai_api_key" json:"openai_api_key"` // SENSITIVE: masked in MarshalJSON
	TavilyAPIKey string `mapstructure:"tavily_api_key" json:"tavily_api_key"` // SENSITIVE: masked in MarshalJSON
}

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
// When adding new secrets, update MarshalJSON.
type Config struct {
	// Default model selection used by the CLI when the caller does not
	// specify a provider/model pair. HTTP requests carry their own.
	Provider  string `mapstructure:"provider" json:"provider"`     // "gemini" (default) or "openai"
	ModelName string `mapstructure:"model_name" json:"model_name"` // e.g. "models/gemini-flash-latest", "gpt-4o-mini"

	// Agent behavior
	ExtractionMode    string        `mapstructure:"extraction_mode" json:"extraction_mode"`       // "all" (default) or "last"
	SearchResultLimit int           `mapstructure:"search_result_limit" json:"search_result_limit"`
	MaxTurns          int           `mapstructure:"max_turns" json:"max_turns"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout" json:"request_timeout"`

	// Provider credentials (env-bound)
	Credentials Credentials `mapstructure:",squash" json:"credentials"`

	// HTTP server
	ServeAddr   string   `mapstructure:"serve_addr" json:"serve_addr"`
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".botforge")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Also support current directory

	setDefaults(v)
	bindEnvVariables(v)

	// Read configuration file (if exists)
	if err := v.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// Validate immediately (fail-fast)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "gemini")
	v.SetDefault("model_name", "models/gemini-flash-latest")

	v.SetDefault("extraction_mode", ExtractAll)
	v.SetDefault("search_result_limit", DefaultSearchResultLimit)
	v.SetDefault("max_turns", DefaultMaxTurns)
	v.SetDefault("request_timeout", DefaultRequestTimeout)

	v.SetDefault("serve_addr", "127.0.0.1:9999")
	v.SetDefault("cors_origins", []string{})
}

// bindEnvVariables binds environment variables explicitly.
// Credentials use the conventional vendor variable names so existing
// deployments keep working; tunables use the BOTFORGE_ prefix.
func bindEnvVariables(v *viper.Viper) {
	// Helper to panic on unexpected bind errors (hardcoded strings can't fail).
	// If this panics, it's a BUG in our code, not a runtime error.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("gemini_api_key", "GEMINI_API_KEY")
	mustBind("openai_api_key", "OPENAI_API_KEY")
	mustBind("tavily_api_key", "TAVILY_API_KEY")

	mustBind("provider", "BOTFORGE_PROVIDER")
	mustBind("model_name", "BOTFORGE_MODEL_NAME")
	mustBind("extraction_mode", "BOTFORGE_EXTRACTION_MODE")
	mustBind("search_result_limit", "BOTFORGE_SEARCH_RESULT_LIMIT")
	mustBind("serve_addr", "BOTFORGE_SERVE_ADDR")
	mustBind("cors_origins", "BOTFORGE_CORS_ORIGINS")
}

// Validate checks configuration values that have a bounded domain.
// Credentials are deliberately not required here: a missing provider secret
// only fails requests routed to that provider.
func (c *Config) Validate() error {
	switch c.ExtractionMode {
	case ExtractAll, ExtractLast:
	default:
		return fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidExtractionMode, c.ExtractionMode, ExtractAll, ExtractLast)
	}

	if c.SearchResultLimit < 1 || c.SearchResultLimit > MaxSearchResultLimit {
		return fmt.Errorf("%w: %d (want 1-%d)", ErrInvalidSearchLimit, c.SearchResultLimit, MaxSearchResultLimit)
	}

	if c.MaxTurns < 1 || c.MaxTurns > 25 {
		return fmt.Errorf("%w: %d (want 1-25)", ErrInvalidMaxTurns, c.MaxTurns)
	}

	if c.RequestTimeout < time.Second || c.RequestTimeout > 10*time.Minute {
		return fmt.Errorf("%w: %s (want 1s-10m)", ErrInvalidTimeout, c.RequestTimeout)
	}

	return nil
}

// maskedValue is the placeholder for masked sensitive data.
// Full-width blocks avoid substring matching against real secret characters.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging.
// Secrets of 8 characters or fewer are fully masked; longer secrets keep the
// first and last two characters for debug utility.
//
// THREAT MODEL: this defends against accidental logging of real secrets.
// It is NOT cryptographically secure. If logs are compromised, rotate secrets.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive field masking.
func (c Credentials) MarshalJSON() ([]byte, error) {
	type alias Credentials
	a := alias(c)
	a.GeminiAPIKey = maskSecret(a.GeminiAPIKey)
	a.OpenAIAPIKey = maskSecret(a.OpenAIAPIKey)
	a.TavilyAPIKey = maskSecret(a.TavilyAPIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
