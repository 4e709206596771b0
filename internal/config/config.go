package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings read from the environment.
type Config struct {
	Port      string `env:"PORT"       envDefault:"8080"`
	DBPath    string `env:"DB_PATH"`                      // SQLite snapshot; empty means read DataDir
	DataDir   string `env:"DATA_DIR"   envDefault:"./seeds"`
	ImagesDir string `env:"IMAGES_DIR" envDefault:"./images"`
	// TrustData disables escaping of names and link text.
	TrustData      bool     `env:"TRUST_DATA"      envDefault:"false"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:*" envSeparator:","`
}

// Load parses the environment, applying defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
