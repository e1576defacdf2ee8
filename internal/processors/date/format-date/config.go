// internal/processors/date/format-date/config.go
package formatdate

import "fmt"

type Config struct {
	OutputName string
}

func DefaultConfig() *Config {
	return &Config{
		OutputName: "formatted_date",
	}
}

func (c *Config) Validate() error {
	if c.OutputName == "" {
		return fmt.Errorf("output name is required")
	}
	return nil
}
