// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main processor configuration struct.
type Config struct {
	App       AppConfig              `mapstructure:"app"`
	Runtime   RuntimeConfig          `mapstructure:"runtime"`
	Stages    map[string]StageConfig `mapstructure:"stages"`
	Logging   LoggingConfig          `mapstructure:"logging"`
	Metrics   MetricsConfig          `mapstructure:"metrics"`
	ResultLog ResultLogConfig        `mapstructure:"result_log"`
	Seed      SeedConfig             `mapstructure:"seed"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// RuntimeConfig holds the pairing convention shared by every stage.
type RuntimeConfig struct {
	PropertiesSuffixes []string `mapstructure:"properties_suffixes"`
}

// StageConfig holds the settings applicable to a single stage.
type StageConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the Prometheus textfile written at the end of a run.
type MetricsConfig struct {
	TextfileDir string `mapstructure:"textfile_dir"`
}

type ResultLogConfig struct {
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	Namespace string `mapstructure:"namespace"`
	TTL       int    `mapstructure:"ttl"` // seconds
}

type PostgresConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	Table    string `mapstructure:"table"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// SeedConfig holds settings for the ingest seeder.
type SeedConfig struct {
	Count int `mapstructure:"count"`
}
