package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// PageSizes are the catalog page sizes offered by the paginator
var PageSizes = []int{12, 24, 36}

// CatalogPage is the data of the catalog template
type CatalogPage struct {
	Products  []models.Product
	Size      int
	Sizes     []int
	RangeFrom int
	RangeTo   int
	Total     int
	Popup     *models.Product
}

// CatalogHandler renders the product catalog, its paginator and the product
// popup
type CatalogHandler struct {
	template *template.Template
	shop     services.StorefrontService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(templateDir string, shop services.StorefrontService) (*CatalogHandler, error) {
	tmpl, err := parsePage(templateDir, "catalog.html")
	if err != nil {
		return nil, err
	}

	return &CatalogHandler{
		template: tmpl,
		shop:     shop,
	}, nil
}

// pageSize reads the size parameter, falling back to the smallest size
func pageSize(r *http.Request) int {
	size, err := strconv.Atoi(r.FormValue("size"))
	if err != nil {
		return PageSizes[0]
	}
	for _, s := range PageSizes {
		if s == size {
			return size
		}
	}
	return PageSizes[0]
}

// ServeHTTP handles the GET / request
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	catalog := h.shop.Catalog()
	size := pageSize(r)
	shown := catalog
	if len(shown) > size {
		shown = shown[:size]
	}

	data := CatalogPage{
		Products: shown,
		Size:     size,
		Sizes:    PageSizes,
		RangeTo:  len(shown),
		Total:    len(catalog),
	}
	if len(shown) > 0 {
		data.RangeFrom = 1
	}

	if id := r.URL.Query().Get("product"); id != "" {
		product, err := h.shop.Product(id)
		if err != nil {
			http.Error(w, fmt.Sprintf("Product %s not found", id), http.StatusNotFound)
			return
		}
		data.Popup = &product
	}

	render(w, r, h.template, h.shop, "OWASP Juice Shop", data)
}
