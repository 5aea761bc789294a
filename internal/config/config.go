package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Workspace WorkspaceConfig
	Scorer    ScorerConfig
	State     StateConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// WorkspaceConfig identifies the cloud workspace and how its management API
// is reached.
type WorkspaceConfig struct {
	SubscriptionID string
	ResourceGroup  string
	Region         string
	Name           string
	APIBaseURL     string
	APIToken       string
	Timeout        time.Duration
	PollInterval   time.Duration
	MaxRetries     int
}

type ScorerConfig struct {
	ModelPath string
}

type StateConfig struct {
	DBPath string
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("WORKSPACE_SUBSCRIPTION_ID", "")
	v.SetDefault("WORKSPACE_RESOURCE_GROUP", "")
	v.SetDefault("WORKSPACE_REGION", "eastus")
	v.SetDefault("WORKSPACE_NAME", "")
	v.SetDefault("WORKSPACE_API_BASE_URL", "http://localhost:8090")
	v.SetDefault("WORKSPACE_API_TOKEN", "")
	v.SetDefault("WORKSPACE_TIMEOUT", "30s")
	v.SetDefault("WORKSPACE_POLL_INTERVAL", "5s")
	v.SetDefault("WORKSPACE_MAX_RETRIES", 3)
	v.SetDefault("SCORER_MODEL_PATH", "outputs/image_classifier.json")
	v.SetDefault("STATE_DB_PATH", "deployments.db")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	timeout, err := time.ParseDuration(v.GetString("WORKSPACE_TIMEOUT"))
	if err != nil {
		timeout = 30 * time.Second
	}
	pollInterval, err := time.ParseDuration(v.GetString("WORKSPACE_POLL_INTERVAL"))
	if err != nil {
		pollInterval = 5 * time.Second
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Workspace: WorkspaceConfig{
			SubscriptionID: v.GetString("WORKSPACE_SUBSCRIPTION_ID"),
			ResourceGroup:  v.GetString("WORKSPACE_RESOURCE_GROUP"),
			Region:         v.GetString("WORKSPACE_REGION"),
			Name:           v.GetString("WORKSPACE_NAME"),
			APIBaseURL:     v.GetString("WORKSPACE_API_BASE_URL"),
			APIToken:       v.GetString("WORKSPACE_API_TOKEN"),
			Timeout:        timeout,
			PollInterval:   pollInterval,
			MaxRetries:     v.GetInt("WORKSPACE_MAX_RETRIES"),
		},
		Scorer: ScorerConfig{
			ModelPath: v.GetString("SCORER_MODEL_PATH"),
		},
		State: StateConfig{
			DBPath: v.GetString("STATE_DB_PATH"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}
