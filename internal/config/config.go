package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/subosito/gotenv"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendMySQL  = "mysql"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendMemory, BackendFile, BackendMySQL, BackendSQLite}

type Config struct {
	AppEnv   string
	LogLevel string
	LogDir   string
	Port     string

	// Storage
	StorageBackend string
	DataDir        string
	SQLiteDBPath   string
	DBUser         string
	DBPass         string
	DBHost         string
	DBPort         string
	DBName         string
	FullDSN        string

	// AMQP; publishing is disabled when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// bcrypt hash of the API key; the API is open when empty.
	APIKeyHash string
}

// Load reads .env files (if present) into the environment and builds the config from it.
func Load(envFiles ...string) (*Config, error) {
	if err := gotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}
	return FromEnv(), nil
}

func FromEnv() *Config {
	return &Config{
		AppEnv:   strings.ToLower(getEnv("APP_ENV", "development")),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", "./logging/logs"),
		Port:     getEnv("APP_PORT", "8080"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		DataDir:        getEnv("DATA_DIR", "./data"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/ledger.db"),
		DBUser:         getEnv("DB_USER", ""),
		DBPass:         getEnv("DB_PASS", ""),
		DBHost:         getEnv("DB_HOST", ""),
		DBPort:         getEnv("DB_PORT", ""),
		DBName:         getEnv("DB_NAME", "budget_ledger"),
		FullDSN:        getEnv("FULL_DSN", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "budget_ledger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		APIKeyHash: getEnv("API_KEY_HASH", ""),
	}
}

// Validate reports every problem found, not just the first.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	isValidBackend := false
	for _, backend := range validBackends {
		if c.StorageBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.StorageBackend, validBackends))
	}

	switch c.StorageBackend {
	case BackendFile:
		if c.DataDir == "" {
			problems = append(problems, "data directory cannot be empty when using file backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		}
	case BackendMySQL:
		if c.FullDSN == "" && (c.DBUser == "" || c.DBPass == "" || c.DBHost == "" || c.DBPort == "") {
			problems = append(problems, "either FULL_DSN or DB_USER, DB_PASS, DB_HOST and DB_PORT must be provided for mysql backend")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.APIKeyHash != "" && !strings.HasPrefix(c.APIKeyHash, "$2") {
		problems = append(problems, "API_KEY_HASH must be a bcrypt hash")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
