package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
)

const fakeBaseURL = "http://shop.test/#"

type fakeLine struct {
	name string
	unit models.Price
	qty  int
}

// fakeShop is an in-memory stand-in for the rendered shop. Element reads and
// actions are answered from its state; the knobs below bend its behaviour to
// provoke each failure path.
type fakeShop struct {
	mu sync.Mutex

	catalog      map[string]models.Price
	catalogText  map[string]string // overrides the rendered catalog price
	rowPriceText map[string]string // overrides the rendered basket row price
	extraRows    []fakeLine        // rows the shop shows without an add

	lines      []fakeLine
	ack        string
	ackVisible bool
	url        string

	badgeOffset    int
	incrementStep  int
	frozenQuantity bool
	totalDrift     models.Price
	deleteDrift    models.Price
	summaryDelta   models.Price
	wallet         string
	orderID        string

	pageOptions  []string
	selectedSize string
	productCards int
	totalItems   int
	reviews      int
	popupSrc     string
	popupOpen    bool
	expanded     bool
	adviceOn     bool
	registered   bool
	loggedIn     bool
	accounts     map[string]string

	filled  map[page.Element]string
	clicks  []page.Target
	actions []string
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		catalog: map[string]models.Price{
			"Apple Pomace":          199,
			"Carrot Juice (1000ml)": 249,
			"Green Smoothie":        199,
			"Lemon Juice (500ml)":   299,
			"Quince Juice (1000ml)": 499,
			"Apple Juice (1000ml)":  199,
		},
		catalogText:   map[string]string{},
		rowPriceText:  map[string]string{},
		incrementStep: 1,
		url:           fakeBaseURL + "/",
		wallet:        "0.00",
		orderID:       "5267-f9cd5882f54c75a3",
		pageOptions:   []string{"12", "24", "36"},
		selectedSize:  "12",
		productCards:  12,
		totalItems:    35,
		reviews:       2,
		accounts:      map[string]string{},
		filled:        map[page.Element]string{},
	}
}

func notFound(t page.Target) error {
	return fmt.Errorf("%w: %s not found", models.ErrPreconditionTimeout, t)
}

func (f *fakeShop) line(name string) (int, bool) {
	for i, l := range f.lines {
		if l.name == name {
			return i, true
		}
	}
	return -1, false
}

func (f *fakeShop) sum() models.Price {
	var total models.Price
	for _, l := range f.lines {
		total += l.unit.Times(l.qty)
	}
	for _, l := range f.extraRows {
		total += l.unit.Times(l.qty)
	}
	return total
}

func (f *fakeShop) rows() []fakeLine {
	return append(append([]fakeLine{}, f.lines...), f.extraRows...)
}

func (f *fakeShop) Goto(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.url = fakeBaseURL + path
	return nil
}

func (f *fakeShop) Title(ctx context.Context) (string, error) {
	return "OWASP Juice Shop", nil
}

func (f *fakeShop) URL(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url, nil
}

func (f *fakeShop) Text(ctx context.Context, t page.Target) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch t.Element {
	case page.ProductPrice:
		if text, ok := f.catalogText[t.Arg]; ok {
			return text, nil
		}
		price, ok := f.catalog[t.Arg]
		if !ok {
			return "", notFound(t)
		}
		return price.String() + "¤", nil
	case page.BasketCount:
		return strconv.Itoa(len(f.lines) + f.badgeOffset), nil
	case page.RowQuantity:
		i, ok := f.line(t.Arg)
		if !ok {
			return "", notFound(t)
		}
		return " " + strconv.Itoa(f.lines[i].qty) + " ", nil
	case page.BasketTotal:
		return "Total Price: " + (f.sum() + f.totalDrift).String() + "¤", nil
	case page.WalletBalance:
		return f.wallet, nil
	case page.SummaryTotal:
		return (f.sum() + f.summaryDelta).String() + "¤", nil
	case page.PaginatorRange:
		return fmt.Sprintf("1 – %s of %d", f.selectedSize, f.totalItems), nil
	case page.ItemsPerPage:
		return f.selectedSize, nil
	case page.ReviewsTitle:
		return fmt.Sprintf("Reviews (%d)", f.reviews), nil
	}
	return "", notFound(t)
}

func (f *fakeShop) Texts(ctx context.Context, t page.Target) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	switch t.Element {
	case page.BasketRowName:
		for _, l := range f.rows() {
			out = append(out, " "+l.name+" ")
		}
	case page.BasketRowPrice:
		for _, l := range f.rows() {
			if text, ok := f.rowPriceText[l.name]; ok {
				out = append(out, text)
				continue
			}
			out = append(out, l.unit.String()+"¤")
		}
	case page.ItemsPerPageOption:
		out = append(out, f.pageOptions...)
	default:
		return nil, notFound(t)
	}
	return out, nil
}

func (f *fakeShop) Attribute(ctx context.Context, t page.Target, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch t.Element {
	case page.ProductImage:
		return "assets/public/images/products/apple_juice.jpg", nil
	case page.PopupImage:
		if !f.popupOpen {
			return "", notFound(t)
		}
		return f.popupSrc, nil
	case page.PasswordAdviceToggle:
		return strconv.FormatBool(f.adviceOn), nil
	}
	return "", notFound(t)
}

func (f *fakeShop) Count(ctx context.Context, t page.Target) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch t.Element {
	case page.ProductCard:
		return f.productCards, nil
	case page.ItemsPerPageOption:
		return len(f.pageOptions), nil
	case page.BasketRow:
		return len(f.rows()), nil
	}
	return 0, nil
}

func (f *fakeShop) Click(ctx context.Context, t page.Target) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clicks = append(f.clicks, t)

	switch t.Element {
	case page.AddToBasket:
		price, ok := f.catalog[t.Arg]
		if !ok {
			return notFound(t)
		}
		if i, ok := f.line(t.Arg); ok {
			f.lines[i].qty++
		} else {
			f.lines = append(f.lines, fakeLine{name: t.Arg, unit: price, qty: 1})
		}
		f.ack, f.ackVisible = t.Arg, true
	case page.BasketNav:
		f.url = fakeBaseURL + "/basket"
	case page.RowIncrement:
		i, ok := f.line(t.Arg)
		if !ok {
			return notFound(t)
		}
		if !f.frozenQuantity {
			f.lines[i].qty += f.incrementStep
		}
	case page.RowDelete:
		i, ok := f.line(t.Arg)
		if !ok {
			return notFound(t)
		}
		f.lines = append(f.lines[:i], f.lines[i+1:]...)
		f.totalDrift += f.deleteDrift
	case page.PlaceOrder:
		f.url = fakeBaseURL + "/order-completion/" + f.orderID
		f.actions = append(f.actions, "order placed")
	case page.ItemsPerPageOption:
		f.selectedSize = t.Arg
		if n, err := strconv.Atoi(t.Arg); err == nil {
			f.productCards = min(n, f.totalItems)
		}
	case page.ProductTile:
		f.popupOpen = true
		if f.popupSrc == "" {
			f.popupSrc = "assets/public/images/products/apple_juice.jpg"
		}
	case page.ReviewsPanel:
		f.expanded = true
	case page.ClosePopup:
		f.popupOpen, f.expanded = false, false
	case page.PasswordAdviceToggle:
		f.adviceOn = !f.adviceOn
	case page.RegisterButton:
		email := f.filled[page.RegistrationEmail]
		if email == "" || f.filled[page.RegistrationPassword] != f.filled[page.RegistrationRepeat] {
			return nil
		}
		f.accounts[email] = f.filled[page.RegistrationPassword]
		f.registered = true
		f.url = fakeBaseURL + "/login"
	case page.LoginMenuItem:
		f.url = fakeBaseURL + "/login"
	case page.LoginButton:
		email := f.filled[page.LoginEmail]
		if pw, ok := f.accounts[email]; ok && pw == f.filled[page.LoginPassword] {
			f.loggedIn = true
			f.url = fakeBaseURL + "/search"
		}
	case page.LogoutButton:
		f.loggedIn = false
		f.url = fakeBaseURL + "/"
	}
	return nil
}

func (f *fakeShop) Fill(ctx context.Context, t page.Target, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filled[t.Element] = value
	return nil
}

func (f *fakeShop) Select(ctx context.Context, t page.Target, value string) error {
	return f.Fill(ctx, t, value)
}

func (f *fakeShop) WaitFor(ctx context.Context, t page.Target, state page.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	visible := true
	switch t.Element {
	case page.BasketAck:
		if state == page.Hidden {
			// the toast times out on its own
			f.ackVisible = false
			return nil
		}
		visible = f.ackVisible && f.ack == t.Arg
	case page.BasketRow:
		_, visible = f.line(t.Arg)
		for _, l := range f.extraRows {
			visible = visible || l.name == t.Arg
		}
	case page.ProductPopup:
		visible = f.popupOpen
	case page.ReviewsExpanded:
		visible = f.expanded
	case page.RegistrationSuccess:
		visible = f.registered
	case page.LoginButton:
		visible = !f.loggedIn && strings.HasSuffix(f.url, "/login")
	case page.LogoutButton:
		visible = f.loggedIn
	case page.WelcomeBannerClose, page.CookieDismiss:
		visible = false
	case page.ThankYou:
		visible = strings.Contains(f.url, "/order-completion/")
	}

	if (state == page.Hidden) == visible {
		return fmt.Errorf("%w: %s not %s", models.ErrPreconditionTimeout, t, state)
	}
	return nil
}

func (f *fakeShop) WaitForURL(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !page.MatchURL(pattern, f.url) {
		return fmt.Errorf("%w: url %s does not match %s", models.ErrPreconditionTimeout, f.url, pattern)
	}
	return nil
}

func fastSettle() SettleOptions {
	return SettleOptions{Timeout: 50 * time.Millisecond, Poll: 5 * time.Millisecond}
}

func testBasketConfig() BasketWorkflowConfig {
	return BasketWorkflowConfig{
		Tolerance: models.DefaultTolerancePolicy(),
		Settle:    fastSettle(),
	}
}
