// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront client
type Config struct {
	App      AppConfig
	Server   ServerConfig
	API      APIConfig
	Storage  StorageConfig
	Checkout CheckoutConfig
	Receipt  ReceiptConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains configuration for the local HTTP facade
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
}

// APIConfig contains configuration for the remote storefront backend
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageBackend identifies a persistence substrate implementation
type StorageBackend string

const (
	StorageBackendMemory   StorageBackend = "memory"
	StorageBackendFile     StorageBackend = "file"
	StorageBackendRedis    StorageBackend = "redis"
	StorageBackendPostgres StorageBackend = "postgres"
)

// StorageConfig contains persistence substrate configuration
type StorageConfig struct {
	Backend  StorageBackend
	FilePath string
	Redis    RedisConfig
	Database DatabaseConfig
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	KeyPrefix    string
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// CheckoutConfig contains checkout pricing rules.
// Amounts are in minor currency units (paisa).
type CheckoutConfig struct {
	FreeShippingThreshold int64
	ShippingFee           int64
	Currency              string
}

// ReceiptConfig contains order receipt generation configuration
type ReceiptConfig struct {
	Enabled   bool
	OutputDir string
	ShopName  string
	ShopEmail string
	ShopPhone string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront Client"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:               getEnv("APP_PORT", "3000"),
			ReadTimeout:        getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:       getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:        getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Backend:  StorageBackend(getEnv("STORAGE_BACKEND", "file")),
			FilePath: getEnv("STORAGE_FILE_PATH", "./data"),
			Redis: RedisConfig{
				Host:         getEnv("REDIS_HOST", "localhost"),
				Port:         getEnv("REDIS_PORT", "6379"),
				Password:     getEnv("REDIS_PASSWORD", ""),
				DB:           getEnvAsInt("REDIS_DB", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
				KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "storefront:"),
			},
			Database: DatabaseConfig{
				Host:         getEnv("DB_HOST", "localhost"),
				Port:         getEnv("DB_PORT", "5432"),
				Name:         getEnv("DB_NAME", "storefront_db"),
				User:         getEnv("DB_USER", "storefront_user"),
				Password:     getEnv("DB_PASSWORD", "storefront_password"),
				SSLMode:      getEnv("DB_SSL_MODE", "disable"),
				MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
				MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
				MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
			},
		},
		Checkout: CheckoutConfig{
			FreeShippingThreshold: getEnvAsInt64("FREE_SHIPPING_THRESHOLD", 200000), // Rs 2000.00
			ShippingFee:           getEnvAsInt64("SHIPPING_FEE", 20000),             // Rs 200.00
			Currency:              getEnv("CURRENCY", "pkr"),
		},
		Receipt: ReceiptConfig{
			Enabled:   getEnvAsBool("RECEIPT_ENABLED", false),
			OutputDir: getEnv("RECEIPT_OUTPUT_DIR", "./receipts"),
			ShopName:  getEnv("SHOP_NAME", "The Linen Closet"),
			ShopEmail: getEnv("SHOP_EMAIL", "orders@example.com"),
			ShopPhone: getEnv("SHOP_PHONE", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}

	switch c.Storage.Backend {
	case StorageBackendMemory, StorageBackendFile:
		// No external service required
	case StorageBackendRedis:
		if c.Storage.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis storage backend")
		}
	case StorageBackendPostgres:
		if c.Storage.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for the postgres storage backend")
		}
		if c.Storage.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required for the postgres storage backend")
		}
		if c.Storage.Database.User == "" {
			return fmt.Errorf("DB_USER is required for the postgres storage backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}

	if c.Checkout.ShippingFee < 0 || c.Checkout.FreeShippingThreshold < 0 {
		return fmt.Errorf("checkout amounts cannot be negative")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Storage.Database.Host,
		c.Storage.Database.Port,
		c.Storage.Database.User,
		c.Storage.Database.Password,
		c.Storage.Database.Name,
		c.Storage.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Storage.Redis.Host, c.Storage.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
