package nominatim

import (
	"fmt"
	"time"
)

type Config struct {
	BaseURL   string
	UserAgent string // Nominatim usage policy bắt buộc User-Agent định danh app
	Timeout   time.Duration
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent is required")
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	return nil
}
