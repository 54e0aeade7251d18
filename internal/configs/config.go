package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RESTconfig struct {
	PORT               string
	CORSAllowedOrigins []string
}

// MarketplaceAPIConfig - подключение к REST API маркетплейса
type MarketplaceAPIConfig struct {
	URL          string
	Prefix       string
	DefaultLang  string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

type ViewsConfig struct {
	DefaultPageSize int
	IdleTTL         time.Duration
}

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	Enabled bool
	URL     string
}

type AuditConfig struct {
	Enabled     bool
	DatabaseURL string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName        string
	Rest           RESTconfig
	MarketplaceAPI MarketplaceAPIConfig
	Views          ViewsConfig
	RabbitMQ       RabbitMQConfig
	Audit          AuditConfig
	FluentBit      FluentBitConfig
	StdoutLogger   StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env необязателен: в контейнере переменные приходят из окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: .env file not found (path: %v), using process environment.\n", envPath)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "joytop-admin-service")

	cfg.Rest.PORT = getEnvAsString("PORT", "8090")
	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	cfg.MarketplaceAPI.URL = os.Getenv("MARKETPLACE_API_URL")
	if cfg.MarketplaceAPI.URL == "" {
		return nil, fmt.Errorf("MARKETPLACE_API_URL environment variable is required")
	}
	cfg.MarketplaceAPI.Prefix = getEnvAsString("MARKETPLACE_API_PREFIX", "/api/website/v1")
	cfg.MarketplaceAPI.DefaultLang = getEnvAsString("DEFAULT_LANG", "uz")
	cfg.MarketplaceAPI.Timeout = time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second
	cfg.MarketplaceAPI.RetryMax = getEnvAsInt("RETRY_MAX", 2)
	cfg.MarketplaceAPI.RetryWaitMin = time.Duration(getEnvAsInt("RETRY_WAIT_MIN_MS", 200)) * time.Millisecond
	cfg.MarketplaceAPI.RetryWaitMax = time.Duration(getEnvAsInt("RETRY_WAIT_MAX_MS", 2000)) * time.Millisecond

	cfg.Views.DefaultPageSize = getEnvAsInt("DEFAULT_PAGE_SIZE", 20)
	if cfg.Views.DefaultPageSize < 1 {
		return nil, fmt.Errorf("DEFAULT_PAGE_SIZE must be positive, got %d", cfg.Views.DefaultPageSize)
	}
	cfg.Views.IdleTTL = getEnvAsDuration("VIEW_IDLE_TTL", 30*time.Minute)

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
	}

	cfg.Audit.Enabled = getEnvAsBool("AUDIT_ENABLED", false)
	if cfg.Audit.Enabled {
		cfg.Audit.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.Audit.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required when AUDIT_ENABLED is true")
		}
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration понимает формат time.ParseDuration ("30m", "1h30m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList - список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
