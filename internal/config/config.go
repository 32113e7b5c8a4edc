package config

import (
	"fmt"
	"os"
)

type Config struct {
	DatabaseURL     string
	TemporalAddress string
	RedisAddr       string
	HTTPListenAddr  string
	MetricsAddr     string
	// SecretsKey is the base64-encoded 32-byte key used to encrypt stored
	// team credentials. Required by the api (credential CRUD) and the worker
	// (provisioning activity).
	SecretsKey  string
	ServiceName string
	LogLevel    string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		TemporalAddress: getEnv("TEMPORAL_ADDRESS", "localhost:7233"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPListenAddr:  getEnv("HTTP_LISTEN_ADDR", ":8080"),
		MetricsAddr:     getEnv("METRICS_LISTEN_ADDR", ":9090"),
		SecretsKey:      getEnv("SECRETS_KEY", ""),
		ServiceName:     getEnv("SERVICE_NAME", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// Validate checks that the settings required by the given process are set.
func (c *Config) Validate(process string) error {
	switch process {
	case "api", "worker":
		if c.DatabaseURL == "" {
			return fmt.Errorf("%s: DATABASE_URL is required", process)
		}
		if c.SecretsKey == "" {
			return fmt.Errorf("%s: SECRETS_KEY is required", process)
		}
	default:
		return fmt.Errorf("unknown process %q", process)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
