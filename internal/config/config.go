package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// ServerConfig holds process-wide configuration, parsed once at startup.
type ServerConfig struct {
	ServiceName   string `env:"SERVICE_NAME"   envDefault:"student-registry-api"`
	HTTPAddr      string `env:"HTTP_ADDR"      envDefault:":8080"`
	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"student_registry"`
	JWTSecret     string `env:"JWT_SECRET"`
	JWTIssuer     string `env:"JWT_ISSUER"     envDefault:"student-registry-api"`
	ConsulAddr    string `env:"CONSUL_ADDR"`
}

// NewServerConfig creates a ServerConfig instance from environment
// variables. When JWT_SECRET is unset a random secret is generated for the
// lifetime of the process; a restart then invalidates all outstanding
// session tokens.
func NewServerConfig(logger *zerolog.Logger) *ServerConfig {
	cfg, err := env.ParseAs[ServerConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if cfg.JWTSecret == "" {
		secret, err := generateSecret()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to generate signing secret")
		}

		cfg.JWTSecret = secret
		logger.Warn().Msg("JWT_SECRET not set, generated a process-local signing secret")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate server configuration")
	}

	return &cfg
}

// validate checks if the server configuration is valid.
func (c *ServerConfig) validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("missing HTTP_ADDR environment variable")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.MongoDatabase == "" {
		return fmt.Errorf("missing MONGO_DATABASE environment variable")
	}

	return nil
}

func generateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
