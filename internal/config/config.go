package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the LARP server configuration.
type Config struct {
	Port     string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	// Secret field, loaded from a secret file, no envconfig tag.
	DBPassword string

	RabbitMQURL           string `envconfig:"RABBITMQ_URL" required:"true"`
	NotificationQueueName string `envconfig:"NOTIFICATION_QUEUE_NAME" default:"larp_notifications"`

	// Secret field, loaded from a secret file, no envconfig tag.
	JWTSecret string
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig loads configuration from environment variables and secret files.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load larp-server configuration: %w", err)
	}

	var loadErr error
	cfg.DBPassword, loadErr = readSecret("db_password", "DB_PASSWORD")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.JWTSecret, loadErr = readSecret("jwt_secret", "JWT_SECRET")
	if loadErr != nil {
		return nil, loadErr
	}

	return &cfg, nil
}

// readSecret reads a Docker secret from the standard path, falling back to
// the given environment variable outside container deployments.
func readSecret(secretName, envFallback string) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err == nil {
		secret := strings.TrimSpace(string(secretBytes))
		if secret == "" {
			return "", fmt.Errorf("secret file %s is empty", filePath)
		}
		return secret, nil
	}

	if value := os.Getenv(envFallback); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("failed to read secret %s (file %s missing, env %s unset): %w",
		secretName, filePath, envFallback, err)
}
