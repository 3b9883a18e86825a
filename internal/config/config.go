package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// RelayConfig holds the local WebSocket bridge settings
type RelayConfig struct {
	Port    int
	Version string
}

// ClientConfig holds game-client discovery settings
type ClientConfig struct {
	ExecutableName string
	RetryInterval  time.Duration
	ReconnectWait  time.Duration
}

// LiveConfig holds live-data polling settings
type LiveConfig struct {
	BaseURL      string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
}

// Config holds all companion configuration
type Config struct {
	Relay    RelayConfig
	Client   ClientConfig
	Live     LiveConfig
	LogLevel string
}

// Load reads configuration from a .env file (if present) and the environment
func Load() *Config {
	// .env is optional; real installs run on plain env vars
	_ = godotenv.Load()

	return &Config{
		Relay: RelayConfig{
			Port:    getEnvInt("RELAY_PORT", 4090),
			Version: getEnv("RELAY_VERSION", "1.0"),
		},
		Client: ClientConfig{
			ExecutableName: getEnv("CLIENT_EXECUTABLE", "LeagueClientUx"),
			RetryInterval:  getEnvDuration("CLIENT_RETRY_INTERVAL", 5*time.Second),
			ReconnectWait:  getEnvDuration("CLIENT_RECONNECT_WAIT", 3*time.Second),
		},
		Live: LiveConfig{
			BaseURL:      getEnv("LIVE_BASE_URL", "https://127.0.0.1:2999"),
			PollInterval: getEnvDuration("LIVE_POLL_INTERVAL", 3*time.Second),
			HTTPTimeout:  getEnvDuration("LIVE_HTTP_TIMEOUT", 2*time.Second),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
