// Package config loads application settings from an optional vetprep.yaml
// and VETPREP_-prefixed environment variables, env taking precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abonetti/vetprep/internal/backup"
	"github.com/abonetti/vetprep/internal/llm"
	"github.com/abonetti/vetprep/internal/quizgen"
)

// Config is the full application configuration.
type Config struct {
	// Provider selects the generation backend.
	Provider string `mapstructure:"provider" validate:"oneof=gemini openai anthropic mock"`

	Gemini struct {
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"gemini"`

	OpenAI struct {
		APIKey  string `mapstructure:"api_key"`
		Model   string `mapstructure:"model"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"openai"`

	Anthropic struct {
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"anthropic"`

	Generation struct {
		MaxTokens     int     `mapstructure:"max_tokens" validate:"gt=0"`
		Temperature   float64 `mapstructure:"temperature" validate:"gte=0,lte=1"`
		MaxExclusions int     `mapstructure:"max_exclusions" validate:"gt=0"`
	} `mapstructure:"generation"`

	Drive struct {
		Token string `mapstructure:"token"`
	} `mapstructure:"drive"`

	// DBPath overrides the default database location.
	DBPath string `mapstructure:"db_path"`

	// LogFile overrides the default log file location.
	LogFile string `mapstructure:"log_file"`
}

// Load reads vetprep.yaml (if present, from the working directory or
// ~/.config/vetprep) and the environment, then validates.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("vetprep")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/vetprep")

	v.SetDefault("provider", "gemini")
	v.SetDefault("gemini.model", "gemini-flash")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("anthropic.model", "claude-haiku")
	gen := quizgen.DefaultConfig()
	v.SetDefault("generation.max_tokens", gen.MaxTokens)
	v.SetDefault("generation.temperature", gen.Temperature)
	v.SetDefault("generation.max_exclusions", gen.MaxExclusions)

	v.SetEnvPrefix("VETPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit bindings for keys AutomaticEnv cannot discover before the
	// struct is unmarshalled.
	bindings := []string{
		"provider", "gemini.api_key", "gemini.model",
		"openai.api_key", "openai.model", "openai.base_url",
		"anthropic.api_key", "anthropic.model",
		"generation.max_tokens", "generation.temperature", "generation.max_exclusions",
		"drive.token", "db_path", "log_file",
	}
	for _, key := range bindings {
		env := "VETPREP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, env)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LLM maps the app config onto the provider layer's config.
func (c *Config) LLM() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.Provider
	out.Gemini.APIKey = c.Gemini.APIKey
	out.Gemini.Model = c.Gemini.Model
	out.OpenAI.APIKey = c.OpenAI.APIKey
	out.OpenAI.Model = c.OpenAI.Model
	out.OpenAI.BaseURL = c.OpenAI.BaseURL
	out.Anthropic.APIKey = c.Anthropic.APIKey
	out.Anthropic.Model = c.Anthropic.Model
	return out
}

// Quizgen maps the app config onto the gateway's config.
func (c *Config) Quizgen() quizgen.Config {
	return quizgen.Config{
		MaxTokens:     c.Generation.MaxTokens,
		Temperature:   c.Generation.Temperature,
		MaxExclusions: c.Generation.MaxExclusions,
	}
}

// Backup maps the app config onto the Drive client's config.
func (c *Config) Backup() backup.Config {
	out := backup.DefaultConfig()
	out.Token = c.Drive.Token
	out.Timeout = 30 * time.Second
	return out
}
