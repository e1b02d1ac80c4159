package config

import (
	"fmt"
	"time"
)

// Browser drivers
const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"
)

// BrowserConfig holds configuration for the browser that drives the shop
type BrowserConfig struct {
	BaseURL   string
	Driver    string
	Headless  bool
	SlowMo    time.Duration
	Timeout   time.Duration
	ChromeURL string // remote debugging URL, chromedp only
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		BaseURL:   getenv("BASE_URL"),
		Driver:    envString(getenv, "BROWSER_DRIVER", DriverPlaywright),
		ChromeURL: getenv("CHROMEDP_URL"),
	}

	var err error
	if config.Headless, err = envBool(getenv, "HEADLESS", true); err != nil {
		return nil, err
	}
	if config.SlowMo, err = envMillis(getenv, "SLOW_MO_MS", 0); err != nil {
		return nil, err
	}
	if config.Timeout, err = envMillis(getenv, "TIMEOUT_MS", 30*time.Second); err != nil {
		return nil, err
	}

	// Validate required fields
	if config.BaseURL == "" {
		return nil, fmt.Errorf("BASE_URL is required")
	}
	switch config.Driver {
	case DriverPlaywright:
	case DriverChromedp:
		if config.ChromeURL == "" {
			return nil, fmt.Errorf("CHROMEDP_URL is required for the %s driver", DriverChromedp)
		}
	default:
		return nil, fmt.Errorf("unknown BROWSER_DRIVER %q", config.Driver)
	}
	if config.Timeout == 0 {
		return nil, fmt.Errorf("TIMEOUT_MS must be positive")
	}

	return config, nil
}
