package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	SERVER_REQUEST_TIMEOUT=10s
//	RATE_LIMIT_PER_MINUTE=60
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=sharecgt
//	POSTGRES_SSLMODE=disable
//	UPLOAD_MAX_FILES=10
//	UPLOAD_MAX_FILE_BYTES=5242880
//	PARSE_PARALLEL=0
type Config struct {
	Server     ServerConfig     // HTTP server configuration
	Postgres   PostgresConfig   // PostgreSQL connection settings
	Upload     UploadConfig     // Limits applied to uploaded trade files
	Calculator CalculatorConfig // Calculation tuning
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout time.Duration // Upper bound for one request, parsing included
	RateLimit      int           // Requests per client IP per minute; 0 disables limiting
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// UploadConfig bounds a single capital gains upload.
type UploadConfig struct {
	MaxFiles     int   // Files accepted in one request
	MaxFileBytes int64 // Size limit for each file
}

// CalculatorConfig tunes how trade files are processed.
type CalculatorConfig struct {
	ParseParallel int // Files parsed concurrently; 0 picks min(NumCPU, 8)
}

// AppConfig is the globally accessible configuration instance, populated once by LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or out of range, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "sharecgt")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("UPLOAD_MAX_FILES", 10)
	viper.SetDefault("UPLOAD_MAX_FILE_BYTES", 5<<20)

	viper.SetDefault("PARSE_PARALLEL", 0)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
			RateLimit:      viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Upload: UploadConfig{
			MaxFiles:     viper.GetInt("UPLOAD_MAX_FILES"),
			MaxFileBytes: viper.GetInt64("UPLOAD_MAX_FILE_BYTES"),
		},
		Calculator: CalculatorConfig{
			ParseParallel: viper.GetInt("PARSE_PARALLEL"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the database/sql connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig terminates the application with log.Fatalf when required
// variables are missing or numeric limits are out of range.
func validateConfig() {
	if problems := AppConfig.problems(); len(problems) > 0 {
		log.Fatalf("❌ Invalid configuration: %v\n", problems)
	}
}

// problems lists every missing or invalid setting by its environment name.
func (c Config) problems() []string {
	var out []string

	if c.Server.Port == "" {
		out = append(out, "SERVER_PORT")
	}
	if c.Server.RequestTimeout <= 0 {
		out = append(out, "SERVER_REQUEST_TIMEOUT")
	}
	if c.Server.RateLimit < 0 {
		out = append(out, "RATE_LIMIT_PER_MINUTE")
	}
	if c.Postgres.Host == "" {
		out = append(out, "POSTGRES_HOST")
	}
	if c.Postgres.Port == 0 {
		out = append(out, "POSTGRES_PORT")
	}
	if c.Postgres.User == "" {
		out = append(out, "POSTGRES_USER")
	}
	if c.Postgres.Password == "" {
		out = append(out, "POSTGRES_PASSWORD")
	}
	if c.Postgres.DBName == "" {
		out = append(out, "POSTGRES_DB")
	}
	if c.Upload.MaxFiles < 1 {
		out = append(out, "UPLOAD_MAX_FILES")
	}
	if c.Upload.MaxFileBytes < 1 {
		out = append(out, "UPLOAD_MAX_FILE_BYTES")
	}
	if c.Calculator.ParseParallel < 0 {
		out = append(out, "PARSE_PARALLEL")
	}

	return out
}
