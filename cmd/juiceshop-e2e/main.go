package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/soar-qa/juiceshop-e2e/internal/browser"
	internalcli "github.com/soar-qa/juiceshop-e2e/internal/cli"
	"github.com/soar-qa/juiceshop-e2e/internal/config"
	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// ServeDemoCommand returns the serve-demo command
func ServeDemoCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve-demo",
		Usage: "Start the demo storefront the scenarios can run against",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "templates", Value: "templates", Usage: "template directory"},
		},
		Action: func(c *cli.Context) error {
			orders, closeOrders, err := internalcli.OpenOrderRepository(os.Getenv)
			if err != nil {
				return err
			}
			defer closeOrders()

			deps, err := internalcli.BuildServerDependencies(c.String("templates"), os.Getenv, orders)
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

// withViewPort opens the configured browser and runs fn on a fresh viewport
func withViewPort(ctx context.Context, fn func(ctx context.Context, view services.ViewPort) error) error {
	cfg, err := config.LoadBrowserConfig(os.Getenv)
	if err != nil {
		return fmt.Errorf("missing required browser configuration: %w", err)
	}

	session, err := browser.Open(ctx, cfg, page.JuiceShopSelectors())
	if err != nil {
		return err
	}
	defer session.Close()

	view, closeView, err := session.NewViewPort(ctx)
	if err != nil {
		return err
	}
	defer closeView()

	return fn(ctx, view)
}

// CheckoutCommand returns the checkout command
func CheckoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "Log in, fill the basket and check out, reconciling every total",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "register", Usage: "register a new account first instead of using DEFAULT_EMAIL"},
		},
		Action: func(c *cli.Context) error {
			settings, err := internalcli.LoadScenarioSettings(os.Getenv)
			if err != nil {
				return err
			}

			return withViewPort(c.Context, func(ctx context.Context, view services.ViewPort) error {
				var creds models.Credentials
				if c.Bool("register") {
					if creds, err = internalcli.RunRegistration(ctx, view, settings); err != nil {
						return err
					}
				}

				result, err := internalcli.RunCheckoutScenario(ctx, view, creds, settings)
				if err != nil {
					return err
				}
				if result.OrderID == "" {
					fmt.Fprintf(c.App.Writer, "Order placed for %s, no order ID in the completion URL\n", result.Total)
					return nil
				}
				fmt.Fprintf(c.App.Writer, "Order %s placed for %s\n", result.OrderID, result.Total)
				return nil
			})
		},
	}
}

// RegisterCommand returns the register command
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Register a generated account and print its credentials",
		Action: func(c *cli.Context) error {
			settings, err := internalcli.LoadScenarioSettings(os.Getenv)
			if err != nil {
				return err
			}

			return withViewPort(c.Context, func(ctx context.Context, view services.ViewPort) error {
				creds, err := internalcli.RunRegistration(ctx, view, settings)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "DEFAULT_EMAIL=%s\nDEFAULT_PASSWORD=%s\n", creds.Email, creds.Password)
				return nil
			})
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:    "juiceshop-e2e",
		Usage:   "Juice Shop basket and checkout reconciliation runner",
		Version: version,
		Commands: []*cli.Command{
			ServeDemoCommand(),
			CheckoutCommand(),
			RegisterCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}
