package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// BasketPage is the data of the basket template
type BasketPage struct {
	Lines []models.CartLine
	Total models.Price
}

// BasketHandler renders the basket and handles the add, increment and delete
// forms
type BasketHandler struct {
	template *template.Template
	shop     services.StorefrontService
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(templateDir string, shop services.StorefrontService) (*BasketHandler, error) {
	tmpl, err := parsePage(templateDir, "basket.html")
	if err != nil {
		return nil, err
	}

	return &BasketHandler{
		template: tmpl,
		shop:     shop,
	}, nil
}

// ServeHTTP handles the GET /basket request
func (h *BasketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := h.shop.Session(sessionID(w, r))
	render(w, r, h.template, h.shop, "OWASP Juice Shop - Basket", BasketPage{
		Lines: sess.Cart.Lines,
		Total: sess.Cart.Total(),
	})
}

// Add handles POST /basket/add from a catalog card and returns to the catalog
// page it came from
func (h *BasketHandler) Add(w http.ResponseWriter, r *http.Request) {
	product, err := h.shop.AddToBasket(sessionID(w, r), r.FormValue("productId"))
	back := "/?size=" + strconv.Itoa(pageSize(r))
	if err != nil {
		formError(w, r, back, err)
		return
	}

	log.Printf("Added %s to basket", product.Name)
	setFlash(w, fmt.Sprintf("Placed %s into basket.", product.Name))
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// Increment handles POST /basket/increment
func (h *BasketHandler) Increment(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.IncrementLine(sessionID(w, r), r.FormValue("productId")); err != nil {
		formError(w, r, "/basket", err)
		return
	}
	http.Redirect(w, r, "/basket", http.StatusSeeOther)
}

// Remove handles POST /basket/remove
func (h *BasketHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.RemoveLine(sessionID(w, r), r.FormValue("productId")); err != nil {
		formError(w, r, "/basket", err)
		return
	}
	http.Redirect(w, r, "/basket", http.StatusSeeOther)
}
