package services

import (
	"context"

	"github.com/soar-qa/juiceshop-e2e/internal/page"
)

// ViewPort is the rendered shop as seen by a browser session. Reads and
// actions address named elements; implementations resolve the names to
// selectors. Waits that expire return an error wrapping
// models.ErrPreconditionTimeout.
type ViewPort interface {
	// Goto navigates to a path relative to the shop base URL
	Goto(ctx context.Context, path string) error
	Title(ctx context.Context) (string, error)
	URL(ctx context.Context) (string, error)

	// Text returns the text of the first match of target
	Text(ctx context.Context, target page.Target) (string, error)
	// Texts returns the text of every match of target in document order
	Texts(ctx context.Context, target page.Target) ([]string, error)
	Attribute(ctx context.Context, target page.Target, name string) (string, error)
	Count(ctx context.Context, target page.Target) (int, error)

	Click(ctx context.Context, target page.Target) error
	Fill(ctx context.Context, target page.Target, value string) error
	Select(ctx context.Context, target page.Target, value string) error

	WaitFor(ctx context.Context, target page.Target, state page.State) error
	WaitForURL(ctx context.Context, pattern string) error
}
