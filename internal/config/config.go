package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"SERVER_PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		MaxUploadSize int64  `yaml:"max_upload_size" env:"SERVER_MAX_UPLOAD_SIZE"`

		// TrustedProxies may be set as a comma separated list.
		TrustedProxies []string `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
		CleanupSchedule       string `yaml:"cleanup_schedule" env:"JWT_CLEANUP_SCHEDULE"`
	} `yaml:"jwt"`

	Storage struct {
		Driver    string `yaml:"driver" env:"STORAGE_DRIVER"` // local or s3
		LocalPath string `yaml:"local_path" env:"STORAGE_LOCAL_PATH"`
		S3        struct {
			Endpoint  string `yaml:"endpoint" env:"STORAGE_S3_ENDPOINT"`
			Region    string `yaml:"region" env:"STORAGE_S3_REGION"`
			Bucket    string `yaml:"bucket" env:"STORAGE_S3_BUCKET"`
			AccessKey string `yaml:"access_key" env:"STORAGE_S3_ACCESS_KEY"`
			SecretKey string `yaml:"secret_key" env:"STORAGE_S3_SECRET_KEY"`
		} `yaml:"s3"`
	} `yaml:"storage"`

	Seed struct {
		SuperadminEmail    string `yaml:"superadmin_email" env:"SEED_SUPERADMIN_EMAIL"`
		SuperadminPassword string `yaml:"superadmin_password" env:"SEED_SUPERADMIN_PASSWORD"`
	} `yaml:"seed"`

	Import struct {
		// Policies maps an import entity to fail_fast or collect_errors, e.g.
		// IMPORT_POLICIES=authors=collect_errors,books=fail_fast.
		Policies map[string]string `yaml:"policies" env:"IMPORT_POLICIES"`
	} `yaml:"import"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

var importEntities = map[string]bool{
	"authors": true, "research": true, "services": true, "books": true,
	"hkis": true, "publications": true, "google-publications": true,
}

// LoadConfig loads configuration from a file, a .env file and environment variables,
// in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env is normal in containers.
	_ = godotenv.Load()

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.MaxUploadSize = 10 << 20
	config.Server.TrustedProxies = []string{"127.0.0.1"}

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "lppm"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "lppm.portal"
	config.JWT.CleanupSchedule = "@daily"

	config.Storage.Driver = "local"
	config.Storage.LocalPath = "storage/imports"

	config.Seed.SuperadminEmail = "superadmin@lppm.local"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func loadFromEnv(config *Config) error {
	return applyEnv(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	switch strings.ToLower(config.Storage.Driver) {
	case "local":
		if config.Storage.LocalPath == "" {
			return fmt.Errorf("storage local_path is required for the local driver")
		}
	case "s3":
		if config.Storage.S3.Bucket == "" || config.Storage.S3.Region == "" {
			return fmt.Errorf("storage s3 bucket and region are required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("server max_upload_size must be positive")
	}

	for entity, policy := range config.Import.Policies {
		if !importEntities[entity] {
			return fmt.Errorf("unknown import entity %q", entity)
		}
		switch strings.ToLower(policy) {
		case "fail_fast", "collect_errors":
		default:
			return fmt.Errorf("import policy for %s must be fail_fast or collect_errors, got %q", entity, policy)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
