package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"salon_reports_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Data sources accepted in DATA_SOURCE.
const (
	DataSourcePostgres = "postgres"
	DataSourceMemory   = "memory"
)

const defaultJWTSecret = "dev-only-jwt-secret-change-me-0123456789"

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	SchemaPath  string
	ApplySchema bool
}

// DSN renders the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string // host:port
	SampleRatio  float64
}

type Config struct {
	Port            string
	DataSource      string
	Database        DatabaseConfig
	JWTSecret       string
	JWTAccessTTL    time.Duration
	CORSOrigins     []string
	ReportLocation  *time.Location
	AdminUsername   string
	AdminPassword   string
	LogLevel        string
	LogFormat       string
	Telemetry       TelemetryConfig
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// when one exists in the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Port:       utils.Getenv("PORT", "8080"),
		DataSource: strings.ToLower(utils.Getenv("DATA_SOURCE", DataSourcePostgres)),
		Database: DatabaseConfig{
			Host:        utils.Getenv("DB_HOST", "localhost"),
			Port:        utils.Getenv("DB_PORT", "5432"),
			User:        utils.Getenv("DB_USER", "salon_user"),
			Password:    utils.Getenv("DB_PASSWORD", "salon_password"),
			Name:        utils.Getenv("DB_NAME", "salon_reports_db"),
			SSLMode:     utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath:  utils.Getenv("DB_SCHEMA_PATH", ""),
			ApplySchema: utils.GetenvBool("DB_APPLY_SCHEMA", false),
		},
		JWTSecret:     utils.Getenv("JWT_SECRET", ""),
		JWTAccessTTL:  utils.GetenvDuration("JWT_ACCESS_TTL", utils.DefaultAccessTokenTTL),
		CORSOrigins:   splitList(utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		AdminUsername: utils.Getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: utils.Getenv("ADMIN_PASSWORD", ""),
		LogLevel:      utils.Getenv("LOG_LEVEL", "info"),
		LogFormat:     utils.Getenv("LOG_FORMAT", "console"),
		Telemetry: TelemetryConfig{
			Enabled:      utils.GetenvBool("OTEL_ENABLED", false),
			ServiceName:  utils.Getenv("OTEL_SERVICE_NAME", "salon-reports-backend"),
			OTLPEndpoint: utils.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			SampleRatio:  utils.GetenvFloat("OTEL_SAMPLING_RATIO", 1),
		},
		ShutdownTimeout: utils.GetenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if p, err := strconv.Atoi(cfg.Port); err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("PORT must be a valid TCP port (got %q)", cfg.Port)
	}

	switch cfg.DataSource {
	case DataSourcePostgres, DataSourceMemory:
	default:
		return nil, fmt.Errorf("DATA_SOURCE must be %q or %q (got %q)", DataSourcePostgres, DataSourceMemory, cfg.DataSource)
	}

	loc, err := time.LoadLocation(utils.Getenv("REPORT_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE: %w", err)
	}
	cfg.ReportLocation = loc

	if ratio := cfg.Telemetry.SampleRatio; ratio < 0 || ratio > 1 {
		return nil, fmt.Errorf("OTEL_SAMPLING_RATIO must be within [0,1] (got %v)", ratio)
	}

	if cfg.JWTSecret == "" {
		if cfg.DataSource != DataSourceMemory {
			return nil, errors.New("JWT_SECRET is required")
		}
		utils.LogWarn("JWT_SECRET not set, using the development secret for the in-memory data source")
		cfg.JWTSecret = defaultJWTSecret
	}

	return cfg, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
