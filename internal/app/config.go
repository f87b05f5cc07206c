package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageSQLite = "sqlite"
	StorageMongo  = "mongo"
)

// Config is read from the environment after an optional .env file.
type Config struct {
	DBPath  string
	Storage string

	MongoURI      string
	MongoDatabase string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	EstimatorURL  string

	HTTPAddr string

	LogLevel  string
	LogFormat string
}

// LoadConfig reads configuration from the environment. envFile, when set,
// must exist; otherwise a .env in the working directory is loaded if present.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		DBPath:        getEnv("GRIT_DB_PATH", ""),
		Storage:       strings.ToLower(getEnv("GRIT_STORAGE", StorageSQLite)),
		MongoURI:      getEnv("GRIT_MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("GRIT_MONGO_DB", "grit"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", ""),
		EstimatorURL:  getEnv("GRIT_ESTIMATOR_URL", ""),
		HTTPAddr:      getEnv("GRIT_HTTP_ADDR", ":3000"),
		LogLevel:      getEnv("GRIT_LOG_LEVEL", "info"),
		LogFormat:     getEnv("GRIT_LOG_FORMAT", "console"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite:
	case StorageMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("GRIT_MONGO_URI is required when GRIT_STORAGE=mongo")
		}
	default:
		return fmt.Errorf("invalid GRIT_STORAGE %q (use sqlite or mongo)", c.Storage)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid GRIT_LOG_FORMAT %q (use console or json)", c.LogFormat)
	}
	return nil
}

// RequireOpenAI reports a missing API key for commands that call the model directly.
func (c *Config) RequireOpenAI() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}
