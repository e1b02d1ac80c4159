package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// BasketAPIHandler serves the session's basket as JSON
type BasketAPIHandler struct {
	shop services.StorefrontService
}

// NewBasketAPIHandler creates a new basket API handler
func NewBasketAPIHandler(shop services.StorefrontService) *BasketAPIHandler {
	return &BasketAPIHandler{
		shop: shop,
	}
}

// BasketLineResponse is one basket line; prices are in cents
type BasketLineResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// BasketResponse represents the basket sent to the client
type BasketResponse struct {
	ID    string               `json:"id"`
	Lines []BasketLineResponse `json:"lines"`
	Total int64                `json:"total"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ServeHTTP handles GET /rest/basket
func (h *BasketAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendErrorResponse(w, "Only GET is supported", http.StatusMethodNotAllowed)
		return
	}

	sess := h.shop.Session(sessionID(w, r))
	resp := BasketResponse{
		ID:    sess.Cart.ID,
		Lines: []BasketLineResponse{},
		Total: int64(sess.Cart.Total()),
	}
	for _, l := range sess.Cart.Lines {
		resp.Lines = append(resp.Lines, BasketLineResponse{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			UnitPrice: int64(l.Product.Price),
			Quantity:  l.Quantity,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
