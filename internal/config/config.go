package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
	Storage      StorageConfig
	Payroll      PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	BaseURL     string
	FrontendURL string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// StorageConfig holds file storage configuration for avatars and
// leave attachments.
type StorageConfig struct {
	UploadDir string
	MaxSizeMB int
}

// PayrollConfig holds the knobs for payslip generation. DailyRateDivisor
// is the number of days a monthly wage is spread over when pricing a
// single unpaid day.
type PayrollConfig struct {
	DailyRateDivisor decimal.Decimal
}

func Load() (*Config, error) {
	// .env is optional; environment variables alone are fine in
	// containerized deployments.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr-backend"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BaseURL:     getEnv("APP_BASE_URL", fmt.Sprintf("http://localhost:%d", appPort)),
		FrontendURL: getEnv("APP_FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	jwtRefreshExpiration := getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h")
	jwtAccessExpiration := getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h")

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: jwtRefreshExpiration,
		AccessExpiration:  jwtAccessExpiration,
	}

	// OAuth2 Google configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		Scopes:       getEnvSlice("GOOGLE_SCOPES"),
	}

	// Storage configuration
	maxSizeMB, err := strconv.Atoi(getEnv("STORAGE_MAX_SIZE_MB", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_MAX_SIZE_MB: %w", err)
	}

	config.Storage = StorageConfig{
		UploadDir: getEnv("STORAGE_UPLOAD_DIR", "uploads"),
		MaxSizeMB: maxSizeMB,
	}

	// Payroll configuration
	divisor, err := strconv.Atoi(getEnv("PAYROLL_DAILY_RATE_DIVISOR", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DAILY_RATE_DIVISOR: %w", err)
	}
	if divisor <= 0 {
		return nil, fmt.Errorf("PAYROLL_DAILY_RATE_DIVISOR must be positive, got %d", divisor)
	}

	config.Payroll = PayrollConfig{
		DailyRateDivisor: decimal.NewFromInt(int64(divisor)),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// GoogleEnabled reports whether Google OAuth2 login is configured.
// The credential flow keeps working without it.
func (c *Config) GoogleEnabled() bool {
	return c.OAuth2Google.ClientID != "" && c.OAuth2Google.ClientSecret != "" && c.OAuth2Google.RedirectURL != ""
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
