package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Environment selecciona base URL y timeout del API remoto.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

func ParseEnvironment(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "staging":
		return EnvStaging
	case "production", "prod":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

type Config struct {
	Env     string `env:"APP_ENV,default=development"`
	AppName string `env:"APP_NAME,default=pets-app"`

	// Server
	Port  string `env:"PORT,default=8080"`
	DBDSN string `env:"DB_DSN"`

	// Cliente remoto. APIBaseURL vacío => default por environment.
	APIBaseURL string `env:"API_BASE_URL"`

	// Store local (petsctl)
	DataDir string `env:"PETS_DATA_DIR"`
}

// Load lee .env (si existe) y luego el environment.
func Load() (Config, error) {
	_ = godotenv.Load() // en staging/prod no hay .env y está bien

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) Environment() Environment {
	return ParseEnvironment(c.Env)
}

// BaseURL es la URL del API remoto, incluyendo el prefijo /api.
func (c Config) BaseURL() string {
	if v := strings.TrimSpace(c.APIBaseURL); v != "" {
		return v
	}
	switch c.Environment() {
	case EnvStaging:
		return "https://staging-pets-api.example.com/api"
	case EnvProduction:
		return "https://pets-api.example.com/api"
	default:
		return "http://localhost:8080/api"
	}
}

// Timeout del request remoto: 30s en dev, 15s en staging/prod.
func (c Config) Timeout() time.Duration {
	if c.Environment() == EnvDevelopment {
		return 30 * time.Second
	}
	return 15 * time.Second
}
