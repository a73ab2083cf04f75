//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-retail-report.
// Configuration is loaded from config files and CLI flags. The only
// environment variable consulted is DB_URL, which selects the summary
// store (a .env file in the working directory is honoured for it).
// CLI flags take precedence over config file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for pgedge-retail-report.
type Config struct {
	// Connection is the PostgreSQL connection string for the retail report.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`

	// Summary holds configuration for the summary subcommand.
	Summary SummaryConfig `mapstructure:"summary"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`
}

// LoadConfig holds configuration for loading the transactions snapshot.
type LoadConfig struct {
	// CSVPath is the retail transactions CSV file.
	CSVPath string `mapstructure:"csv_path"`

	// BatchSize is the number of rows copied per COPY round trip.
	BatchSize int `mapstructure:"batch_size"`

	// DropExisting drops and recreates the table before loading.
	DropExisting bool `mapstructure:"drop_existing"`
}

// ReportConfig holds configuration for running the query catalog.
type ReportConfig struct {
	// OutputDir is where chart images are written.
	OutputDir string `mapstructure:"output_dir"`

	// Format is the chart image format: png or svg.
	Format string `mapstructure:"format"`

	// Width and Height are the chart dimensions in pixels.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`

	// Show opens each chart in the platform viewer after it is written.
	Show bool `mapstructure:"show"`

	// Queries restricts the run to the named catalog entries (empty = all).
	Queries []string `mapstructure:"queries"`

	// Describe prints a dataset overview before the queries run.
	Describe bool `mapstructure:"describe"`

	// LoadFirst loads the CSV snapshot before running the queries.
	LoadFirst bool `mapstructure:"load_first"`
}

// SummaryConfig holds configuration for the sales summary.
type SummaryConfig struct {
	// DatabaseURL locates the sales store. Overridden by DB_URL.
	DatabaseURL string `mapstructure:"database_url"`

	// ChartPath is where the summary chart is written.
	ChartPath string `mapstructure:"chart_path"`

	// Show opens the summary chart in the platform viewer.
	Show bool `mapstructure:"show"`
}

// GenerateConfig holds configuration for synthetic CSV generation.
type GenerateConfig struct {
	// Output is the CSV file to write.
	Output string `mapstructure:"output"`

	// Rows is the number of transactions to generate.
	Rows int `mapstructure:"rows"`

	// Seed makes the output reproducible; 0 picks a random seed.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultSalesURL is the summary store used when nothing else is configured.
const DefaultSalesURL = "sqlite:///sales.db"

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Load: LoadConfig{
			CSVPath:   "Retail_Transactions_Dataset.csv",
			BatchSize: 5000,
		},
		Report: ReportConfig{
			OutputDir: "charts",
			Format:    "png",
			Width:     1024,
			Height:    600,
		},
		Summary: SummaryConfig{
			DatabaseURL: DefaultSalesURL,
			ChartPath:   "sales_sql_demo/sales_summary.png",
		},
		Generate: GenerateConfig{
			Output: "Retail_Transactions_Dataset.csv",
			Rows:   10000,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-retail-report.yaml
// 3. ~/.config/pgedge-retail-report/config.yaml
func Load(configFile string) (*Config, error) {
	// A missing .env is the common case
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("pgedge-retail-report")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-retail-report"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.BindEnv("summary.database_url", "DB_URL"); err != nil {
		return nil, fmt.Errorf("error binding DB_URL: %w", err)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that a PostgreSQL connection is configured.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Load.CSVPath == "" {
		return fmt.Errorf("csv path is required for load")
	}
	if c.Load.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Report.LoadFirst {
		if err := c.ValidateLoad(); err != nil {
			return err
		}
	}
	if c.Report.OutputDir == "" {
		return fmt.Errorf("output_dir is required for report")
	}
	if c.Report.Format != "png" && c.Report.Format != "svg" {
		return fmt.Errorf("format must be 'png' or 'svg'")
	}
	if c.Report.Width < 1 || c.Report.Height < 1 {
		return fmt.Errorf("width and height must be positive")
	}
	return nil
}

// ValidateSummary checks configuration required for the summary command.
func (c *Config) ValidateSummary() error {
	if c.Summary.DatabaseURL == "" {
		return fmt.Errorf("database_url is required for summary")
	}
	if c.Summary.ChartPath == "" {
		return fmt.Errorf("chart_path is required for summary")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.Generate.Output == "" {
		return fmt.Errorf("output path is required for generate")
	}
	if c.Generate.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	return nil
}
