package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// SecurityQuestions are offered by the registration form
var SecurityQuestions = []string{
	"Your eldest siblings middle name?",
	"Mother's maiden name?",
	"Company you first work for as an adult?",
	"Your favorite book?",
	"Name of your favorite pet?",
}

// RegistrationSuccess is flashed on the login page after registering
const RegistrationSuccess = "Registration completed successfully. You can now log in."

// AccountHandler handles login, registration and logout
type AccountHandler struct {
	login    *template.Template
	register *template.Template
	shop     services.StorefrontService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(templateDir string, shop services.StorefrontService) (*AccountHandler, error) {
	login, err := parsePage(templateDir, "login.html")
	if err != nil {
		return nil, err
	}
	register, err := parsePage(templateDir, "register.html")
	if err != nil {
		return nil, err
	}

	return &AccountHandler{
		login:    login,
		register: register,
		shop:     shop,
	}, nil
}

// ServeHTTP handles GET /login
func (h *AccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	render(w, r, h.login, h.shop, "OWASP Juice Shop - Login", nil)
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	if err := h.shop.Login(sessionID(w, r), email, r.FormValue("password")); err != nil {
		formError(w, r, "/login", err)
		return
	}
	log.Printf("Session signed in as %s", email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Registration handles GET /register
func (h *AccountHandler) Registration(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.register, h.shop, "OWASP Juice Shop - User Registration", SecurityQuestions)
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	account := models.Account{
		Email:            r.FormValue("email"),
		SecurityQuestion: r.FormValue("securityQuestion"),
		SecurityAnswer:   r.FormValue("securityAnswer"),
	}
	if err := h.shop.Register(account, r.FormValue("password"), r.FormValue("repeatPassword")); err != nil {
		formError(w, r, "/register", err)
		return
	}

	log.Printf("Registered %s", account.Email)
	setFlash(w, RegistrationSuccess)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout handles POST /logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.shop.Logout(sessionID(w, r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
