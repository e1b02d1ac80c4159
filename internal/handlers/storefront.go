package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

const (
	sessionCookie = "shop_session"
	flashCookie   = "shop_flash"

	// set by the overlay dismiss buttons in the browser
	welcomeCookie = "welcomebanner_status"
	consentCookie = "cookieconsent_status"
)

// PageData is what every storefront page template receives
type PageData struct {
	Title       string
	BasketCount int
	Email       string
	Flash       string
	Welcome     bool
	CookieAsk   bool
	Page        any
}

var pageFuncs = template.FuncMap{
	"price": func(p models.Price) string {
		return p.String() + "¤"
	},
	"times": func(p models.Price, qty int) models.Price {
		return p.Times(qty)
	},
}

// parsePage parses the shared layout together with one page template
func parsePage(templateDir, name string) (*template.Template, error) {
	tmpl, err := template.New("layout.html").Funcs(pageFuncs).ParseFiles(
		filepath.Join(templateDir, "layout.html"),
		filepath.Join(templateDir, name),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// sessionID returns the shopper's session id, issuing a cookie on first visit
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id, Path: "/", HttpOnly: true})
	// later reads within this request see the new session
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: id})
	return id
}

// setFlash stores a one-shot message shown on the next rendered page
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: url.QueryEscape(message), Path: "/"})
}

// takeFlash reads and clears the pending flash message
func takeFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	message, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return message
}

func dismissed(r *http.Request, name string) bool {
	c, err := r.Cookie(name)
	return err == nil && c.Value == "dismiss"
}

// render executes a page for the current session
func render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, shop services.StorefrontService, title string, page any) {
	sess := shop.Session(sessionID(w, r))
	data := PageData{
		Title:       title,
		BasketCount: sess.Cart.Count(),
		Email:       sess.Email,
		Flash:       takeFlash(w, r),
		Welcome:     !dismissed(r, welcomeCookie),
		CookieAsk:   !dismissed(r, consentCookie),
		Page:        page,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Error rendering %s: %v", title, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// formError logs a rejected form and redirects back to where it came from
func formError(w http.ResponseWriter, r *http.Request, back string, err error) {
	log.Printf("Rejected %s %s: %v", r.Method, r.URL.Path, err)
	setFlash(w, err.Error())
	http.Redirect(w, r, back, http.StatusSeeOther)
}
