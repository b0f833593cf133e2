package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type (
	Config struct {
		Port      string `env:"PORT" envDefault:"8000"`
		Env       string `env:"APP_ENV" envDefault:"development"`
		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
		JWTSecret string `env:"JWT_SECRET" envDefault:"fallback-secret-key"`

		Mongo MongoConfig `envPrefix:"MONGO_"`
		S3    S3Config    `envPrefix:"S3_"`
	}

	MongoConfig struct {
		URL      string `env:"URL" envDefault:"mongodb://localhost:27017"`
		Database string `env:"DB" envDefault:"chirper"`
	}

	S3Config struct {
		Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"chirper-media"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	}
)

// Read parses the process environment into a Config.
func Read() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the server runs in a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
