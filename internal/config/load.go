package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Secrets holds credentials that only ever come from the environment.
type Secrets struct {
	GeminiAPIKeys []string `env:"GEMINI_API_KEYS" envSeparator:","`
	WhisperAPIKey string   `env:"WHISPER_API_KEY"`
}

// Load reads the YAML config at path, then the environment (.env first when
// present), and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	secrets, err := LoadSecrets(".env")
	if err != nil {
		return nil, err
	}
	cfg.Secrets = secrets

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadSecrets loads envFile into the process environment (skipped if missing)
// and parses the secret variables. A file that exists but does not parse is an error.
func LoadSecrets(envFile string) (Secrets, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Secrets{}, fmt.Errorf("load .env: %w", err)
			}
		}
	}

	var s Secrets
	if err := env.Parse(&s); err != nil {
		return Secrets{}, fmt.Errorf("parse environment: %w", err)
	}
	return s, nil
}
