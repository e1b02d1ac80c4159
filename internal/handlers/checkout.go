package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// Checkout page templates
const (
	addressSelectPage = "address_select.html"
	addressCreatePage = "address_create.html"
	deliveryPage      = "delivery.html"
	paymentPage       = "payment.html"
	summaryPage       = "summary.html"
)

// CheckoutHandler walks a session through address, delivery, payment and the
// order summary
type CheckoutHandler struct {
	templates map[string]*template.Template
	shop      services.StorefrontService
}

// DeliveryPage is the data of the delivery template
type DeliveryPage struct {
	Methods  []models.DeliveryMethod
	Selected string
}

// PaymentPage is the data of the payment template
type PaymentPage struct {
	WalletBalance models.Price
	Cards         []models.SavedCard
	Selected      string
	Months        []int
	Years         []int
}

// SummaryPage is the data of the order summary template
type SummaryPage struct {
	Lines    []models.CartLine
	Items    models.Price
	Delivery models.DeliveryMethod
	Total    models.Price
	Address  models.SavedAddress
	Card     models.SavedCard
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(templateDir string, shop services.StorefrontService) (*CheckoutHandler, error) {
	h := &CheckoutHandler{
		templates: make(map[string]*template.Template),
		shop:      shop,
	}
	for _, name := range []string{addressSelectPage, addressCreatePage, deliveryPage, paymentPage, summaryPage} {
		tmpl, err := parsePage(templateDir, name)
		if err != nil {
			return nil, err
		}
		h.templates[name] = tmpl
	}
	return h, nil
}

// ServeHTTP handles GET /address/select, the first checkout page
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := h.shop.Session(sessionID(w, r))
	if sess.Cart.IsEmpty() {
		http.Redirect(w, r, "/basket", http.StatusSeeOther)
		return
	}
	render(w, r, h.templates[addressSelectPage], h.shop, "OWASP Juice Shop - Select Address", sess.Addresses)
}

// NewAddress handles GET /address/create
func (h *CheckoutHandler) NewAddress(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.templates[addressCreatePage], h.shop, "OWASP Juice Shop - New Address", nil)
}

// SaveAddress handles POST /address/create
func (h *CheckoutHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	address := models.Address{
		Country: r.FormValue("country"),
		Name:    r.FormValue("name"),
		Mobile:  r.FormValue("mobile"),
		ZIPCode: r.FormValue("zip"),
		Street:  r.FormValue("address"),
		City:    r.FormValue("city"),
		State:   r.FormValue("state"),
	}
	if _, err := h.shop.AddAddress(sessionID(w, r), address); err != nil {
		formError(w, r, "/address/create", err)
		return
	}
	http.Redirect(w, r, "/address/select", http.StatusSeeOther)
}

// ChooseAddress handles POST /address/select
func (h *CheckoutHandler) ChooseAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.SelectAddress(sessionID(w, r), r.FormValue("addressId")); err != nil {
		formError(w, r, "/address/select", err)
		return
	}
	http.Redirect(w, r, "/delivery-method", http.StatusSeeOther)
}

// Delivery handles GET /delivery-method
func (h *CheckoutHandler) Delivery(w http.ResponseWriter, r *http.Request) {
	sess := h.shop.Session(sessionID(w, r))
	render(w, r, h.templates[deliveryPage], h.shop, "OWASP Juice Shop - Delivery", DeliveryPage{
		Methods:  models.DeliveryMethods(),
		Selected: sess.Delivery,
	})
}

// ChooseDelivery handles POST /delivery-method
func (h *CheckoutHandler) ChooseDelivery(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.SelectDelivery(sessionID(w, r), r.FormValue("deliveryMethod")); err != nil {
		formError(w, r, "/delivery-method", err)
		return
	}
	http.Redirect(w, r, "/payment/shop", http.StatusSeeOther)
}

// Payment handles GET /payment/shop. Wallets start empty.
func (h *CheckoutHandler) Payment(w http.ResponseWriter, r *http.Request) {
	sess := h.shop.Session(sessionID(w, r))

	data := PaymentPage{
		Cards:    sess.Cards,
		Selected: sess.CardID,
	}
	for m := 1; m <= 12; m++ {
		data.Months = append(data.Months, m)
	}
	for y := 2080; y <= 2099; y++ {
		data.Years = append(data.Years, y)
	}
	render(w, r, h.templates[paymentPage], h.shop, "OWASP Juice Shop - Payment", data)
}

// SaveCard handles POST /payment/card
func (h *CheckoutHandler) SaveCard(w http.ResponseWriter, r *http.Request) {
	card := models.Card{
		HolderName:  r.FormValue("cardName"),
		Number:      r.FormValue("cardNumber"),
		ExpiryMonth: r.FormValue("expiryMonth"),
		ExpiryYear:  r.FormValue("expiryYear"),
	}
	if _, err := h.shop.AddCard(sessionID(w, r), card); err != nil {
		formError(w, r, "/payment/shop", err)
		return
	}
	http.Redirect(w, r, "/payment/shop", http.StatusSeeOther)
}

// ChooseCard handles POST /payment/shop
func (h *CheckoutHandler) ChooseCard(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.SelectCard(sessionID(w, r), r.FormValue("cardId")); err != nil {
		formError(w, r, "/payment/shop", err)
		return
	}
	http.Redirect(w, r, "/order-summary", http.StatusSeeOther)
}

// Summary handles GET /order-summary. The total includes delivery.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess := h.shop.Session(sessionID(w, r))

	address, err := sess.SelectedAddress()
	if err != nil {
		http.Redirect(w, r, "/address/select", http.StatusSeeOther)
		return
	}
	delivery, ok := models.FindDeliveryMethod(sess.Delivery)
	if !ok {
		http.Redirect(w, r, "/delivery-method", http.StatusSeeOther)
		return
	}
	card, err := sess.SelectedCard()
	if err != nil {
		http.Redirect(w, r, "/payment/shop", http.StatusSeeOther)
		return
	}

	items := sess.Cart.Total()
	render(w, r, h.templates[summaryPage], h.shop, "OWASP Juice Shop - Order Summary", SummaryPage{
		Lines:    sess.Cart.Lines,
		Items:    items,
		Delivery: delivery,
		Total:    items + delivery.Price,
		Address:  address,
		Card:     card,
	})
}

// PlaceOrder handles POST /order and sends the shopper to the completion page
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.shop.PlaceOrder(sessionID(w, r))
	if err != nil {
		formError(w, r, "/order-summary", err)
		return
	}

	log.Printf("Order %s placed for %s", order.Reference, order.GetFormattedAmount())
	http.Redirect(w, r, "/order-completion/"+order.Reference, http.StatusSeeOther)
}
