package cli

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soar-qa/juiceshop-e2e/internal/config"
)

// BasketRoutes serves the basket page and its forms
type BasketRoutes interface {
	http.Handler
	Add(w http.ResponseWriter, r *http.Request)
	Increment(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
}

// CheckoutRoutes serves the checkout funnel. ServeHTTP is the address
// selection page.
type CheckoutRoutes interface {
	http.Handler
	NewAddress(w http.ResponseWriter, r *http.Request)
	SaveAddress(w http.ResponseWriter, r *http.Request)
	ChooseAddress(w http.ResponseWriter, r *http.Request)
	Delivery(w http.ResponseWriter, r *http.Request)
	ChooseDelivery(w http.ResponseWriter, r *http.Request)
	Payment(w http.ResponseWriter, r *http.Request)
	SaveCard(w http.ResponseWriter, r *http.Request)
	ChooseCard(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	PlaceOrder(w http.ResponseWriter, r *http.Request)
}

// AccountRoutes serves login, registration and logout. ServeHTTP is the login
// page.
type AccountRoutes interface {
	http.Handler
	Login(w http.ResponseWriter, r *http.Request)
	Registration(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig      config.ServerConfig
	CatalogHandler    http.Handler
	BasketHandler     BasketRoutes
	CheckoutHandler   CheckoutRoutes
	CompletionHandler http.Handler
	AccountHandler    AccountRoutes
	BasketAPIHandler  http.Handler
	ImageHandler      http.Handler
}

// NewMux routes the storefront pages
func NewMux(deps ServerDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", deps.CatalogHandler)

	mux.Handle("GET /basket", deps.BasketHandler)
	mux.HandleFunc("POST /basket/add", deps.BasketHandler.Add)
	mux.HandleFunc("POST /basket/increment", deps.BasketHandler.Increment)
	mux.HandleFunc("POST /basket/remove", deps.BasketHandler.Remove)

	mux.Handle("GET /address/select", deps.CheckoutHandler)
	mux.HandleFunc("POST /address/select", deps.CheckoutHandler.ChooseAddress)
	mux.HandleFunc("GET /address/create", deps.CheckoutHandler.NewAddress)
	mux.HandleFunc("POST /address/create", deps.CheckoutHandler.SaveAddress)
	mux.HandleFunc("GET /delivery-method", deps.CheckoutHandler.Delivery)
	mux.HandleFunc("POST /delivery-method", deps.CheckoutHandler.ChooseDelivery)
	mux.HandleFunc("GET /payment/shop", deps.CheckoutHandler.Payment)
	mux.HandleFunc("POST /payment/shop", deps.CheckoutHandler.ChooseCard)
	mux.HandleFunc("POST /payment/card", deps.CheckoutHandler.SaveCard)
	mux.HandleFunc("GET /order-summary", deps.CheckoutHandler.Summary)
	mux.HandleFunc("POST /order", deps.CheckoutHandler.PlaceOrder)
	mux.Handle("GET /order-completion/{reference}", deps.CompletionHandler)

	mux.Handle("GET /login", deps.AccountHandler)
	mux.HandleFunc("POST /login", deps.AccountHandler.Login)
	mux.HandleFunc("GET /register", deps.AccountHandler.Registration)
	mux.HandleFunc("POST /register", deps.AccountHandler.Register)
	mux.HandleFunc("POST /logout", deps.AccountHandler.Logout)

	mux.Handle("/rest/basket", deps.BasketAPIHandler)
	mux.Handle("GET /assets/public/images/products/{file}", deps.ImageHandler)
	return mux
}

// RunServe starts the demo storefront
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler: NewMux(deps),
	}

	go func() {
		log.Printf("Storefront listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil a channel is created and registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	log.Printf("Received signal: %v, shutting down server...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not report listener close errors, so this
		// only fails on a server that never served
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
