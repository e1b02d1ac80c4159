package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
)

// ShopTitle is the text every shop page title contains
const ShopTitle = "OWASP Juice Shop"

var reviewCountPattern = regexp.MustCompile(`\((\d+)\)`)

// HomeFlow covers the catalog page: overlays, paging and the product popup
type HomeFlow struct {
	view        ViewPort
	overlayWait time.Duration
	settle      SettleOptions
}

// NewHomeFlow creates a home page flow. overlayWait bounds how long optional
// overlays are waited for before they are assumed absent.
func NewHomeFlow(view ViewPort, overlayWait time.Duration, settle SettleOptions) *HomeFlow {
	return &HomeFlow{
		view:        view,
		overlayWait: overlayWait,
		settle:      settle,
	}
}

// Open navigates to the home page and checks the title
func (h *HomeFlow) Open(ctx context.Context) error {
	if err := h.view.Goto(ctx, "/"); err != nil {
		return fmt.Errorf("failed to open home page: %w", err)
	}
	title, err := h.view.Title(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(title, ShopTitle) {
		return fmt.Errorf("%w: title %q does not contain %q", models.ErrUnexpectedContent, title, ShopTitle)
	}
	return nil
}

// DismissOverlays closes the welcome banner and the cookie notice when they
// show up. Neither is required.
func (h *HomeFlow) DismissOverlays(ctx context.Context) {
	h.dismiss(ctx, page.WelcomeBannerClose, "Welcome banner")
	h.dismiss(ctx, page.CookieDismiss, "Cookie consent")
}

func (h *HomeFlow) dismiss(ctx context.Context, element page.Element, label string) {
	waitCtx, cancel := context.WithTimeout(ctx, h.overlayWait)
	defer cancel()

	if err := h.view.WaitFor(waitCtx, page.T(element), page.Visible); err != nil {
		log.Printf("%s was not present", label)
		return
	}
	if err := h.view.Click(ctx, page.T(element)); err != nil {
		log.Printf("%s could not be closed: %v", label, err)
		return
	}
	log.Printf("%s closed", label)
}

// MaxProductCount reads the catalog size from the paginator label, e.g. 35 in
// "1 – 12 of 35"
func (h *HomeFlow) MaxProductCount(ctx context.Context) (int, error) {
	if err := h.view.WaitFor(ctx, page.T(page.PaginatorRange), page.Attached); err != nil {
		return 0, err
	}

	text, err := WaitUntil(ctx, "paginator range", h.settle, h.readText(page.T(page.PaginatorRange)), func(text string) bool {
		text = strings.TrimSpace(text)
		return text != "" && text != "0 of 0"
	})
	if err != nil {
		return 0, err
	}

	fields := strings.Fields(text)
	total, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, fmt.Errorf("%w: paginator range %q has no total", models.ErrUnexpectedContent, text)
	}
	return total, nil
}

// SelectMaxItemsPerPage opens the page size list, picks its last option and
// returns that option's label
func (h *HomeFlow) SelectMaxItemsPerPage(ctx context.Context) (string, error) {
	if err := h.view.WaitFor(ctx, page.T(page.ItemsPerPage), page.Visible); err != nil {
		return "", err
	}
	if err := h.view.Click(ctx, page.T(page.ItemsPerPage)); err != nil {
		return "", err
	}

	options, err := h.view.Texts(ctx, page.T(page.ItemsPerPageOption))
	if err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", fmt.Errorf("%w: page size list is empty", models.ErrUnexpectedContent)
	}

	last := strings.TrimSpace(options[len(options)-1])
	if err := h.view.Click(ctx, page.Of(page.ItemsPerPageOption, last)); err != nil {
		return "", err
	}
	log.Printf("Selected %s items per page", last)
	return last, nil
}

// VerifyLastOptionSelected checks that the page size control shows option
func (h *HomeFlow) VerifyLastOptionSelected(ctx context.Context, option string) error {
	_, err := WaitUntil(ctx, "items per page", h.settle, h.readText(page.T(page.ItemsPerPage)), func(text string) bool {
		return strings.TrimSpace(text) == option
	})
	if err != nil {
		return fmt.Errorf("%w: items per page is not %s: %v", models.ErrUnexpectedContent, option, err)
	}
	return nil
}

// VerifyAllItemsDisplayed checks that total product cards are rendered
func (h *HomeFlow) VerifyAllItemsDisplayed(ctx context.Context, total int) error {
	count := func(ctx context.Context) (string, error) {
		n, err := h.view.Count(ctx, page.T(page.ProductCard))
		return strconv.Itoa(n), err
	}
	got, err := WaitUntil(ctx, "product cards", h.settle, count, func(text string) bool {
		return text == strconv.Itoa(total)
	})
	if err != nil {
		return fmt.Errorf("%w: expected %d product cards, got %s", models.ErrUnexpectedContent, total, got)
	}
	return nil
}

// InspectProduct opens the popup of name, checks that it shows the catalog
// image, expands the reviews when there are any and closes the popup. It
// returns the review count.
func (h *HomeFlow) InspectProduct(ctx context.Context, name string) (int, error) {
	tile := page.Of(page.ProductTile, name)
	if err := h.view.WaitFor(ctx, tile, page.Visible); err != nil {
		return 0, fmt.Errorf("product %s not shown: %w", name, err)
	}
	src, err := h.view.Attribute(ctx, page.Of(page.ProductImage, name), "src")
	if err != nil {
		return 0, err
	}
	if src == "" {
		return 0, fmt.Errorf("%w: %s has no image", models.ErrUnexpectedContent, name)
	}

	if err := h.view.Click(ctx, tile); err != nil {
		return 0, err
	}
	if err := h.view.WaitFor(ctx, page.T(page.ProductPopup), page.Visible); err != nil {
		return 0, fmt.Errorf("popup for %s did not open: %w", name, err)
	}
	popupSrc, err := h.view.Attribute(ctx, page.Of(page.PopupImage, name), "src")
	if err != nil {
		return 0, err
	}
	if popupSrc != src {
		return 0, fmt.Errorf("%w: popup image %q differs from catalog image %q", models.ErrUnexpectedContent, popupSrc, src)
	}

	title, err := h.view.Text(ctx, page.T(page.ReviewsTitle))
	if err != nil {
		return 0, err
	}
	reviews := 0
	if m := reviewCountPattern.FindStringSubmatch(title); m != nil {
		reviews, _ = strconv.Atoi(m[1])
	}

	if reviews > 0 {
		if err := h.view.Click(ctx, page.T(page.ReviewsPanel)); err != nil {
			return 0, err
		}
		if err := h.view.WaitFor(ctx, page.T(page.ReviewsExpanded), page.Visible); err != nil {
			return 0, fmt.Errorf("reviews of %s did not expand: %w", name, err)
		}
	}

	if err := h.view.Click(ctx, page.T(page.ClosePopup)); err != nil {
		return 0, err
	}
	if err := h.view.WaitFor(ctx, page.T(page.ProductPopup), page.Hidden); err != nil {
		return 0, fmt.Errorf("popup for %s did not close: %w", name, err)
	}
	return reviews, nil
}

func (h *HomeFlow) readText(target page.Target) ReadFunc {
	return func(ctx context.Context) (string, error) {
		return h.view.Text(ctx, target)
	}
}
