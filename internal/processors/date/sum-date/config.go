// internal/processors/date/sum-date/config.go
package sumdate

import (
	"fmt"
	"time"

	"minnow/internal/common/config"
)

type Config struct {
	OutputName string
	// Delay is the pause between writing the properties and the data file.
	Delay time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		OutputName: "summed_date",
		Delay:      config.DefaultSumDateDelay,
	}
}

// LoadConfig applies the `stages.sum-date` section of cfg.
func LoadConfig(cfg *config.Config) *Config {
	c := DefaultConfig()
	if cfg != nil {
		c.Delay = config.GetStageConfig(cfg, TaskType).Delay
	}
	return c
}

func (c *Config) Validate() error {
	if c.OutputName == "" {
		return fmt.Errorf("output name is required")
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative")
	}
	return nil
}
