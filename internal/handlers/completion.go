package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// CompletionHandler renders the order completion page
type CompletionHandler struct {
	template *template.Template
	shop     services.StorefrontService
	orders   services.OrderService
}

// NewCompletionHandler creates a new completion handler
func NewCompletionHandler(templateDir string, shop services.StorefrontService, orders services.OrderService) (*CompletionHandler, error) {
	tmpl, err := parsePage(templateDir, "completion.html")
	if err != nil {
		return nil, err
	}

	return &CompletionHandler{
		template: tmpl,
		shop:     shop,
		orders:   orders,
	}, nil
}

// ServeHTTP handles GET /order-completion/{reference}
func (h *CompletionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reference := r.PathValue("reference")
	if reference == "" {
		log.Printf("Missing order reference")
		http.Error(w, "Missing order reference", http.StatusBadRequest)
		return
	}

	order, err := h.orders.GetOrderByReference(reference)
	if err != nil {
		log.Printf("Error loading order %s: %v", reference, err)
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	render(w, r, h.template, h.shop, "OWASP Juice Shop - Order Completion", order)
}

