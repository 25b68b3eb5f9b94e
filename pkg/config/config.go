// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"

	"go.uber.org/multierr"
)

// Config represents the application configuration. It is built once at
// startup, validated, and passed explicitly into the pipeline; nothing in
// the run mutates it afterwards.
type Config struct {
	// Database connection
	Postgres *PostgresConfig

	// Raw inputs
	DataDir       string
	CustomersFile string
	ProductsFile  string
	SalesFile     string

	// Cleaning rules
	CountryCode  string
	DefaultEmail string

	// Report output
	ReportPath string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		DataDir:       getEnv("DATA_DIR", "."),
		CustomersFile: getEnv("CUSTOMERS_FILE", "customers_raw.csv"),
		ProductsFile:  getEnv("PRODUCTS_FILE", "products_raw.csv"),
		SalesFile:     getEnv("SALES_FILE", "sales_raw.csv"),
		CountryCode:   getEnv("COUNTRY_CODE", "+91"),
		DefaultEmail:  getEnv("DEFAULT_EMAIL", "unknown@fleximart.com"),
		ReportPath:    getEnv("REPORT_PATH", "data_quality_report.txt"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	pgConfig, err := LoadPostgresConfig()
	if err != nil {
		return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
	}
	cfg.Postgres = pgConfig

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid.
// All problems are reported at once rather than one per run.
func (c *Config) Validate() error {
	var err error

	if c.Postgres == nil {
		err = multierr.Append(err, errors.New("postgreSQL configuration is required"))
	}
	if c.DataDir == "" {
		err = multierr.Append(err, errors.New("data directory is required"))
	}
	if c.CustomersFile == "" || c.ProductsFile == "" || c.SalesFile == "" {
		err = multierr.Append(err, errors.New("all three input file names are required"))
	}
	if c.CountryCode == "" {
		err = multierr.Append(err, errors.New("country code prefix is required"))
	}
	if c.ReportPath == "" {
		err = multierr.Append(err, errors.New("report path is required"))
	}

	return err
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
