// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MINNOW_LOGGING_LEVEL.
const EnvPrefix = "MINNOW"

// SumDateStage is the deliberately slow reference stage; its pause defaults
// to the ten minutes the reference processor sleeps.
const (
	SumDateStage        = "sum-date"
	DefaultSumDateDelay = 10 * time.Minute
)

// Load reads configuration from path, or from MINNOW_CONFIG, or from
// ./configs/config.yaml when present. A missing default file is not an error:
// a processor must run with nothing but its two directory arguments.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading base config: %w", err)
			}
		}
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	readStageDelays(v, &cfg)

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration a processor runs with when no file or
// environment override is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "minnow")
	v.SetDefault("app.environment", "development")
	v.SetDefault("runtime.properties_suffixes", []string{".properties"})
	v.SetDefault("stages."+SumDateStage+".delay", DefaultSumDateDelay.String())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("metrics.textfile_dir", "")
	v.SetDefault("result_log.redis.enabled", false)
	v.SetDefault("result_log.redis.address", "")
	v.SetDefault("result_log.redis.password", "")
	v.SetDefault("result_log.redis.db", 0)
	v.SetDefault("result_log.redis.namespace", "minnow")
	v.SetDefault("result_log.redis.ttl", 86400)
	v.SetDefault("result_log.postgres.enabled", false)
	v.SetDefault("result_log.postgres.host", "")
	v.SetDefault("result_log.postgres.port", 5432)
	v.SetDefault("result_log.postgres.database", "")
	v.SetDefault("result_log.postgres.user", "")
	v.SetDefault("result_log.postgres.password", "")
	v.SetDefault("result_log.postgres.sslmode", "disable")
	v.SetDefault("result_log.postgres.table", "processor_runs")
	v.SetDefault("seed.count", 10)
}

// readStageDelays resolves stage delays through viper's key lookup. Unmarshal
// decodes the stages map from the merged maps only and misses env overrides.
func readStageDelays(v *viper.Viper, cfg *Config) {
	if cfg.Stages == nil {
		cfg.Stages = map[string]StageConfig{}
	}
	if _, ok := cfg.Stages[SumDateStage]; !ok {
		cfg.Stages[SumDateStage] = StageConfig{}
	}
	for name, stage := range cfg.Stages {
		key := "stages." + name + ".delay"
		if v.IsSet(key) {
			stage.Delay = v.GetDuration(key)
			cfg.Stages[name] = stage
		}
	}
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override if credentials are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.ResultLog.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.ResultLog.Postgres.User = val
		}
	}
	if cfg.ResultLog.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.ResultLog.Postgres.Password = val
		}
	}
	if cfg.ResultLog.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.ResultLog.Redis.Password = val
		}
	}
}

// applyDefaults sets default values for fields left empty by a config file
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "minnow"
	}
	if len(cfg.Runtime.PropertiesSuffixes) == 0 {
		cfg.Runtime.PropertiesSuffixes = []string{".properties"}
	}
	if cfg.Stages == nil {
		cfg.Stages = map[string]StageConfig{}
	}
	if _, ok := cfg.Stages[SumDateStage]; !ok {
		cfg.Stages[SumDateStage] = StageConfig{Delay: DefaultSumDateDelay}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	if cfg.ResultLog.Redis.Namespace == "" {
		cfg.ResultLog.Redis.Namespace = "minnow"
	}
	if cfg.ResultLog.Postgres.Port == 0 {
		cfg.ResultLog.Postgres.Port = 5432
	}
	if cfg.ResultLog.Postgres.SSLMode == "" {
		cfg.ResultLog.Postgres.SSLMode = "disable"
	}
	if cfg.ResultLog.Postgres.Table == "" {
		cfg.ResultLog.Postgres.Table = "processor_runs"
	}

	if cfg.Seed.Count == 0 {
		cfg.Seed.Count = 10
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	for _, suffix := range cfg.Runtime.PropertiesSuffixes {
		if strings.TrimSpace(suffix) == "" {
			return fmt.Errorf("runtime.properties_suffixes must not contain empty entries")
		}
	}

	for name, stage := range cfg.Stages {
		if stage.Delay < 0 {
			return fmt.Errorf("stages.%s.delay must not be negative", name)
		}
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}

	if cfg.ResultLog.Redis.Enabled && cfg.ResultLog.Redis.Address == "" {
		return fmt.Errorf("result_log.redis.address is required when redis result log is enabled")
	}
	if cfg.ResultLog.Redis.TTL < 0 {
		return fmt.Errorf("result_log.redis.ttl must not be negative")
	}

	if cfg.ResultLog.Postgres.Enabled {
		if cfg.ResultLog.Postgres.Host == "" {
			return fmt.Errorf("result_log.postgres.host is required")
		}
		if cfg.ResultLog.Postgres.Database == "" {
			return fmt.Errorf("result_log.postgres.database is required")
		}
		if cfg.ResultLog.Postgres.User == "" {
			return fmt.Errorf("result_log.postgres.user is required")
		}
	}

	if cfg.Seed.Count < 0 {
		return fmt.Errorf("seed.count must not be negative")
	}

	return nil
}

// GetStageConfig retrieves stage-specific configuration with fallback to the zero value
func GetStageConfig(cfg *Config, taskType string) StageConfig {
	if stage, exists := cfg.Stages[taskType]; exists {
		return stage
	}
	return StageConfig{}
}
