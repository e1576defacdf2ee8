// internal/processors/date/parse-date/config.go
package parsedate

import "fmt"

type Config struct {
	OutputName string
}

func DefaultConfig() *Config {
	return &Config{
		OutputName: "parsed_date",
	}
}

func (c *Config) Validate() error {
	if c.OutputName == "" {
		return fmt.Errorf("output name is required")
	}
	return nil
}
