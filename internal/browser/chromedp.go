package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/soar-qa/juiceshop-e2e/internal/config"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// chromePoll is how often element and URL waits re-check the page
const chromePoll = 100 * time.Millisecond

// ChromeSession is a remote Chrome reached through its debugging URL
type ChromeSession struct {
	alloc     context.Context
	cancel    context.CancelFunc
	cfg       *config.BrowserConfig
	selectors page.Selectors
}

// StartChrome connects to the Chrome at cfg.ChromeURL. Tabs are opened
// lazily by NewViewPort.
func StartChrome(ctx context.Context, cfg *config.BrowserConfig, selectors page.Selectors) (*ChromeSession, error) {
	if cfg.ChromeURL == "" {
		return nil, errors.New("chrome remote debugging URL is required")
	}
	alloc, cancel := chromedp.NewRemoteAllocator(ctx, cfg.ChromeURL)
	return &ChromeSession{
		alloc:     alloc,
		cancel:    cancel,
		cfg:       cfg,
		selectors: selectors,
	}, nil
}

// NewViewPort opens a tab in a new browser context with no cookies. JS
// console errors and exceptions of the tab are logged.
func (s *ChromeSession) NewViewPort(ctx context.Context) (services.ViewPort, func() error, error) {
	tab, cancel := chromedp.NewContext(s.alloc,
		chromedp.WithNewBrowserContext(),
		chromedp.WithLogf(log.Printf),
		chromedp.WithErrorf(log.Printf),
	)

	chromedp.ListenTarget(tab, func(ev interface{}) {
		switch ev := ev.(type) {
		case *runtime.EventConsoleAPICalled:
			if ev.Type == runtime.APITypeError {
				args := make([]string, len(ev.Args))
				for i, arg := range ev.Args {
					args[i] = string(arg.Value)
				}
				log.Printf("JS console error: %s", strings.Join(args, " "))
			}
		case *runtime.EventExceptionThrown:
			log.Printf("JS exception: %s", ev.ExceptionDetails.Text)
		}
	})

	// the first run allocates the tab and must use the tab context itself
	if err := chromedp.Run(tab, network.ClearBrowserCookies()); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to open tab: %w", err)
	}

	view := NewChromeViewPort(tab, s.cfg.BaseURL, s.selectors, s.cfg.Timeout)
	return view, func() error {
		cancel()
		return nil
	}, nil
}

// Close disconnects from Chrome
func (s *ChromeSession) Close() error {
	s.cancel()
	return nil
}

// ChromeViewPort reads and drives one chromedp tab. Elements are resolved by
// evaluating the selector table in the page.
type ChromeViewPort struct {
	tab       context.Context
	baseURL   string
	selectors page.Selectors
	timeout   time.Duration
}

// NewChromeViewPort wraps an allocated chromedp tab context
func NewChromeViewPort(tab context.Context, baseURL string, selectors page.Selectors, timeout time.Duration) *ChromeViewPort {
	return &ChromeViewPort{
		tab:       tab,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		selectors: selectors,
		timeout:   timeout,
	}
}

// run executes actions on the tab, bounded by ctx's deadline and cancelled
// with ctx
func (v *ChromeViewPort) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(v.tab, budget(ctx, v.timeout))
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// queryJS evaluates to the elements matched by a scope, a CSS selector and a
// text filter, mirroring Selector's semantics
const queryJS = `(function (scope, css, filter) {
	var matches = function (el) { return !filter || el.textContent.indexOf(filter) >= 0; };
	if (scope) {
		var roots = Array.prototype.filter.call(document.querySelectorAll(scope), matches);
		return roots.length ? Array.prototype.slice.call(roots[0].querySelectorAll(css)) : [];
	}
	return Array.prototype.filter.call(document.querySelectorAll(css), matches);
})(%s, %s, %s)`

// stateJS classifies the first match as detached, hidden or visible
const stateJS = `(function (els) {
	if (!els.length) return "detached";
	var el = els[0], style = window.getComputedStyle(el), box = el.getBoundingClientRect();
	var shown = style.display !== "none" && style.visibility !== "hidden" && box.width > 0 && box.height > 0;
	return shown ? "visible" : "hidden";
})(%s)`

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func (v *ChromeViewPort) query(t page.Target) (string, error) {
	sel, err := v.selectors.Resolve(t)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(queryJS, jsString(sel.Scope), jsString(sel.CSS), jsString(sel.Filter(t))), nil
}

// poll re-runs check until it reports true or the ctx budget runs out. Check
// errors are retried since the page may be navigating.
func (v *ChromeViewPort) poll(ctx context.Context, action string, target fmt.Stringer, check func(ctx context.Context) (bool, error)) error {
	deadline := time.Now().Add(budget(ctx, v.timeout))
	var lastErr error
	for {
		ok, err := check(ctx)
		if err == nil && ok {
			return nil
		}
		if err != nil {
			lastErr = err
		}
		if time.Now().After(deadline) {
			if lastErr == nil {
				lastErr = errors.New("condition not met")
			}
			return timeoutError(action, target, lastErr)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(chromePoll):
		}
	}
}

func (v *ChromeViewPort) state(ctx context.Context, query string) (page.State, error) {
	var state string
	if err := v.run(ctx, chromedp.Evaluate(fmt.Sprintf(stateJS, query), &state)); err != nil {
		return "", err
	}
	if state == "detached" {
		return "", nil
	}
	return page.State(state), nil
}

func satisfies(got, want page.State) bool {
	switch want {
	case page.Visible:
		return got == page.Visible
	case page.Hidden:
		return got != page.Visible
	case page.Attached:
		return got != ""
	}
	return false
}

func (v *ChromeViewPort) Goto(ctx context.Context, path string) error {
	if err := v.run(ctx, chromedp.Navigate(v.baseURL+path)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return timeoutError("open", pathTarget(path), err)
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

func (v *ChromeViewPort) Title(ctx context.Context) (string, error) {
	var title string
	err := v.run(ctx, chromedp.Title(&title))
	return title, err
}

func (v *ChromeViewPort) URL(ctx context.Context) (string, error) {
	var url string
	err := v.run(ctx, chromedp.Location(&url))
	return url, err
}

func (v *ChromeViewPort) Text(ctx context.Context, target page.Target) (string, error) {
	if err := v.WaitFor(ctx, target, page.Attached); err != nil {
		return "", err
	}
	query, err := v.query(target)
	if err != nil {
		return "", err
	}
	var text string
	err = v.run(ctx, chromedp.Evaluate(fmt.Sprintf(`(function (els) { return els.length ? els[0].textContent : ""; })(%s)`, query), &text))
	return text, err
}

func (v *ChromeViewPort) Texts(ctx context.Context, target page.Target) ([]string, error) {
	query, err := v.query(target)
	if err != nil {
		return nil, err
	}
	texts := []string{}
	err = v.run(ctx, chromedp.Evaluate(query+`.map(function (el) { return el.textContent; })`, &texts))
	return texts, err
}

func (v *ChromeViewPort) Attribute(ctx context.Context, target page.Target, name string) (string, error) {
	if err := v.WaitFor(ctx, target, page.Attached); err != nil {
		return "", err
	}
	query, err := v.query(target)
	if err != nil {
		return "", err
	}
	var value string
	err = v.run(ctx, chromedp.Evaluate(fmt.Sprintf(`(function (els) { return els.length ? (els[0].getAttribute(%s) || "") : ""; })(%s)`, jsString(name), query), &value))
	return value, err
}

func (v *ChromeViewPort) Count(ctx context.Context, target page.Target) (int, error) {
	query, err := v.query(target)
	if err != nil {
		return 0, err
	}
	var n int
	err = v.run(ctx, chromedp.Evaluate(query+`.length`, &n))
	return n, err
}

// act waits for target to be visible and runs script with the element bound
// to el
func (v *ChromeViewPort) act(ctx context.Context, action string, target page.Target, script string) error {
	if err := v.WaitFor(ctx, target, page.Visible); err != nil {
		return err
	}
	query, err := v.query(target)
	if err != nil {
		return err
	}
	var done bool
	expr := fmt.Sprintf(`(function (els) { if (!els.length) return false; var el = els[0]; el.scrollIntoView({block: "center"}); %s; return true; })(%s)`, script, query)
	if err := v.run(ctx, chromedp.Evaluate(expr, &done)); err != nil {
		return fmt.Errorf("failed to %s %s: %w", action, target, err)
	}
	if !done {
		return fmt.Errorf("failed to %s %s: element went away", action, target)
	}
	return nil
}

func (v *ChromeViewPort) Click(ctx context.Context, target page.Target) error {
	return v.act(ctx, "click", target, `el.click()`)
}

func (v *ChromeViewPort) Fill(ctx context.Context, target page.Target, value string) error {
	return v.act(ctx, "fill", target, fmt.Sprintf(
		`el.focus(); el.value = %s; el.dispatchEvent(new Event("input", {bubbles: true})); el.dispatchEvent(new Event("change", {bubbles: true}))`,
		jsString(value)))
}

func (v *ChromeViewPort) Select(ctx context.Context, target page.Target, value string) error {
	return v.act(ctx, "select "+value+" in", target, fmt.Sprintf(
		`el.value = %s; el.dispatchEvent(new Event("change", {bubbles: true}))`,
		jsString(value)))
}

func (v *ChromeViewPort) WaitFor(ctx context.Context, target page.Target, state page.State) error {
	query, err := v.query(target)
	if err != nil {
		return err
	}
	return v.poll(ctx, "wait for "+string(state), target, func(ctx context.Context) (bool, error) {
		got, err := v.state(ctx, query)
		if err != nil {
			return false, err
		}
		return satisfies(got, state), nil
	})
}

func (v *ChromeViewPort) WaitForURL(ctx context.Context, pattern string) error {
	return v.poll(ctx, "wait for url", pathTarget(pattern), func(ctx context.Context) (bool, error) {
		url, err := v.URL(ctx)
		if err != nil {
			return false, err
		}
		return page.MatchURL(pattern, url), nil
	})
}
