// Package browser implements services.ViewPort on real browsers. Playwright
// is the default backend; chromedp drives an already running Chrome through
// its remote debugging URL.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/soar-qa/juiceshop-e2e/internal/config"
	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// Session owns a browser and hands out viewports with isolated cookies and
// storage, one per scenario
type Session interface {
	// NewViewPort opens a fresh browser context. The returned func closes it.
	NewViewPort(ctx context.Context) (services.ViewPort, func() error, error)
	Close() error
}

// Open starts the browser selected by cfg.Driver
func Open(ctx context.Context, cfg *config.BrowserConfig, selectors page.Selectors) (Session, error) {
	switch cfg.Driver {
	case config.DriverPlaywright:
		return StartPlaywright(cfg, selectors)
	case config.DriverChromedp:
		return StartChrome(ctx, cfg, selectors)
	default:
		return nil, fmt.Errorf("unknown browser driver %q", cfg.Driver)
	}
}

// budget returns how long a browser call may take: what is left of the ctx
// deadline, or def without one
func budget(ctx context.Context, def time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return def
	}
	left := time.Until(deadline)
	if left < time.Millisecond {
		return time.Millisecond
	}
	return left
}

func timeoutError(action string, target fmt.Stringer, err error) error {
	return fmt.Errorf("%w: %s %s: %v", models.ErrPreconditionTimeout, action, target, err)
}
