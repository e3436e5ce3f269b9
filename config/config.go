package config

import (
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type (
	// MongoConfig holds the connection settings for the document store
	MongoConfig struct {
		URI            string        `env:"MONGODB_URI,default=mongodb://localhost:27017"`
		Database       string        `env:"MONGODB_DATABASE,default=netpulse"`
		Timeout        time.Duration `env:"MONGODB_TIMEOUT,default=10s"`
		WaitForConnect time.Duration `env:"MONGODB_WAIT_CONNECT_INTERVAL,default=5s"`
	}

	// ServiceConfig holds the configuration for the `netpulse-api` service
	ServiceConfig struct {
		Addr            string        `env:"NETPULSE_API_ADDR,default=:4000"`
		MaxBodyBytes    int64         `env:"NETPULSE_API_MAX_BODY_BYTES,default=10485760"`
		ShutdownTimeout time.Duration `env:"NETPULSE_API_SHUTDOWN_TIMEOUT,default=10s"`
		AllowedOrigins  []string      `env:"NETPULSE_API_ALLOWED_ORIGINS,default=*"`
		Mongo           MongoConfig
	}
)

// FromEnv builds the service configuration from the environment, reading an
// optional .env file first. Missing variables fall back to their defaults.
func FromEnv() (*ServiceConfig, error) {
	// .env is optional, env vars win when both are set
	_ = godotenv.Load()

	var cfg ServiceConfig
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
