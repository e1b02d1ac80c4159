package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/soar-qa/juiceshop-e2e/internal/config"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// PlaywrightSession is a Chromium browser launched through Playwright
type PlaywrightSession struct {
	pw        *playwright.Playwright
	browser   playwright.Browser
	cfg       *config.BrowserConfig
	selectors page.Selectors
}

// StartPlaywright launches Chromium. The browsers must have been installed
// with the playwright CLI beforehand.
func StartPlaywright(cfg *config.BrowserConfig, selectors page.Selectors) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &PlaywrightSession{
		pw:        pw,
		browser:   browser,
		cfg:       cfg,
		selectors: selectors,
	}, nil
}

// NewViewPort opens a new browser context with a single page
func (s *PlaywrightSession) NewViewPort(ctx context.Context) (services.ViewPort, func() error, error) {
	bctx, err := s.browser.NewContext()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	p, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, nil, fmt.Errorf("failed to open page: %w", err)
	}

	view := NewPlaywrightViewPort(p, s.cfg.BaseURL, s.selectors, s.cfg.Timeout)
	return view, func() error { return bctx.Close() }, nil
}

// Close shuts the browser and the Playwright driver down
func (s *PlaywrightSession) Close() error {
	if err := s.browser.Close(); err != nil {
		log.Printf("Error closing browser: %v", err)
	}
	return s.pw.Stop()
}

// PlaywrightViewPort reads and drives one Playwright page
type PlaywrightViewPort struct {
	page      playwright.Page
	baseURL   string
	selectors page.Selectors
	timeout   time.Duration
}

// NewPlaywrightViewPort wraps p. Calls without a ctx deadline wait up to
// timeout.
func NewPlaywrightViewPort(p playwright.Page, baseURL string, selectors page.Selectors, timeout time.Duration) *PlaywrightViewPort {
	return &PlaywrightViewPort{
		page:      p,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		selectors: selectors,
		timeout:   timeout,
	}
}

func (v *PlaywrightViewPort) timeoutMS(ctx context.Context) *float64 {
	return playwright.Float(float64(budget(ctx, v.timeout).Milliseconds()))
}

// locate turns a target into a locator. Scoped selectors search inside the
// first scope element containing the filter text.
func (v *PlaywrightViewPort) locate(t page.Target) (playwright.Locator, error) {
	sel, err := v.selectors.Resolve(t)
	if err != nil {
		return nil, err
	}
	filter := sel.Filter(t)

	if sel.Scope != "" {
		scope := v.page.Locator(sel.Scope)
		if filter != "" {
			scope = scope.Filter(playwright.LocatorFilterOptions{HasText: filter})
		}
		return scope.First().Locator(sel.CSS), nil
	}

	loc := v.page.Locator(sel.CSS)
	if filter != "" {
		loc = loc.Filter(playwright.LocatorFilterOptions{HasText: filter})
	}
	return loc, nil
}

// wrap maps Playwright timeouts onto models.ErrPreconditionTimeout
func (v *PlaywrightViewPort) wrap(action string, target fmt.Stringer, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return timeoutError(action, target, err)
	}
	return fmt.Errorf("failed to %s %s: %w", action, target, err)
}

type pathTarget string

func (p pathTarget) String() string { return string(p) }

func (v *PlaywrightViewPort) Goto(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := v.page.Goto(v.baseURL+path, playwright.PageGotoOptions{
		Timeout:   v.timeoutMS(ctx),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return v.wrap("open", pathTarget(path), err)
}

func (v *PlaywrightViewPort) Title(ctx context.Context) (string, error) {
	return v.page.Title()
}

func (v *PlaywrightViewPort) URL(ctx context.Context) (string, error) {
	return v.page.URL(), nil
}

func (v *PlaywrightViewPort) Text(ctx context.Context, target page.Target) (string, error) {
	loc, err := v.locate(target)
	if err != nil {
		return "", err
	}
	text, err := loc.First().TextContent(playwright.LocatorTextContentOptions{Timeout: v.timeoutMS(ctx)})
	return text, v.wrap("read", target, err)
}

func (v *PlaywrightViewPort) Texts(ctx context.Context, target page.Target) ([]string, error) {
	loc, err := v.locate(target)
	if err != nil {
		return nil, err
	}
	texts, err := loc.AllTextContents()
	return texts, v.wrap("read", target, err)
}

func (v *PlaywrightViewPort) Attribute(ctx context.Context, target page.Target, name string) (string, error) {
	loc, err := v.locate(target)
	if err != nil {
		return "", err
	}
	value, err := loc.First().GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: v.timeoutMS(ctx)})
	return value, v.wrap("read "+name+" of", target, err)
}

func (v *PlaywrightViewPort) Count(ctx context.Context, target page.Target) (int, error) {
	loc, err := v.locate(target)
	if err != nil {
		return 0, err
	}
	n, err := loc.Count()
	return n, v.wrap("count", target, err)
}

func (v *PlaywrightViewPort) Click(ctx context.Context, target page.Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	loc, err := v.locate(target)
	if err != nil {
		return err
	}
	return v.wrap("click", target, loc.First().Click(playwright.LocatorClickOptions{Timeout: v.timeoutMS(ctx)}))
}

func (v *PlaywrightViewPort) Fill(ctx context.Context, target page.Target, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	loc, err := v.locate(target)
	if err != nil {
		return err
	}
	return v.wrap("fill", target, loc.First().Fill(value, playwright.LocatorFillOptions{Timeout: v.timeoutMS(ctx)}))
}

func (v *PlaywrightViewPort) Select(ctx context.Context, target page.Target, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	loc, err := v.locate(target)
	if err != nil {
		return err
	}
	_, err = loc.First().SelectOption(playwright.SelectOptionValues{Values: &[]string{value}},
		playwright.LocatorSelectOptionOptions{Timeout: v.timeoutMS(ctx)})
	return v.wrap("select "+value+" in", target, err)
}

func (v *PlaywrightViewPort) WaitFor(ctx context.Context, target page.Target, state page.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	loc, err := v.locate(target)
	if err != nil {
		return err
	}
	waitState, err := waitForState(state)
	if err != nil {
		return err
	}
	err = loc.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   waitState,
		Timeout: v.timeoutMS(ctx),
	})
	return v.wrap("wait for "+string(state), target, err)
}

func (v *PlaywrightViewPort) WaitForURL(ctx context.Context, pattern string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := v.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{Timeout: v.timeoutMS(ctx)})
	return v.wrap("wait for url", pathTarget(pattern), err)
}

func waitForState(state page.State) (*playwright.WaitForSelectorState, error) {
	switch state {
	case page.Visible:
		return playwright.WaitForSelectorStateVisible, nil
	case page.Hidden:
		return playwright.WaitForSelectorStateHidden, nil
	case page.Attached:
		return playwright.WaitForSelectorStateAttached, nil
	default:
		return nil, fmt.Errorf("unknown element state %q", state)
	}
}
