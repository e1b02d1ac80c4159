package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/soar-qa/juiceshop-e2e/internal/config"
	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// ScenarioSettings holds everything a scenario run reads from the environment
type ScenarioSettings struct {
	Credentials config.CredentialsConfig
	Reconcile   *config.ReconcileConfig
	Scenario    *config.ScenarioConfig
}

// LoadScenarioSettings loads the account, reconciliation and scenario settings
func LoadScenarioSettings(getenv func(string) string) (ScenarioSettings, error) {
	settings := ScenarioSettings{
		Credentials: config.LoadCredentialsConfig(getenv),
	}

	var err error
	if settings.Reconcile, err = config.LoadReconcileConfig(getenv); err != nil {
		return settings, fmt.Errorf("invalid reconciliation settings: %w", err)
	}
	if settings.Scenario, err = config.LoadScenarioConfig(getenv); err != nil {
		return settings, fmt.Errorf("invalid scenario settings: %w", err)
	}
	return settings, nil
}

func (s ScenarioSettings) settle() services.SettleOptions {
	return services.SettleOptions{
		Timeout: s.Reconcile.SettleTimeout,
		Poll:    s.Reconcile.SettlePoll,
	}
}

// RunRegistration opens the registration form, checks its validation and
// password advice, and registers a generated account
func RunRegistration(ctx context.Context, view services.ViewPort, s ScenarioSettings) (models.Credentials, error) {
	home := services.NewHomeFlow(view, s.Reconcile.OverlayWait, s.settle())
	account := services.NewAccountFlow(view, s.Credentials.EmailDomain, s.Credentials.SecurityAnswer)

	if err := home.Open(ctx); err != nil {
		return models.Credentials{}, err
	}
	home.DismissOverlays(ctx)

	if err := account.OpenRegistration(ctx); err != nil {
		return models.Credentials{}, fmt.Errorf("failed to open registration: %w", err)
	}
	if err := account.VerifyFieldValidation(ctx); err != nil {
		return models.Credentials{}, err
	}
	if err := account.VerifyPasswordAdvice(ctx); err != nil {
		return models.Credentials{}, err
	}
	return account.Register(ctx)
}

// RunCheckoutScenario logs in, fills the basket with the configured products,
// reconciles the basket total through every quantity change and checks out.
// creds falls back to the configured default login.
func RunCheckoutScenario(ctx context.Context, view services.ViewPort, creds models.Credentials, s ScenarioSettings) (*models.CheckoutResult, error) {
	creds = creds.OrDefault(s.Credentials.Default)
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	home := services.NewHomeFlow(view, s.Reconcile.OverlayWait, s.settle())
	account := services.NewAccountFlow(view, s.Credentials.EmailDomain, s.Credentials.SecurityAnswer)
	basket := services.NewBasketWorkflow(view, services.BasketWorkflowConfig{
		Tolerance: s.Reconcile.Tolerance,
		Settle:    s.settle(),
	})
	reconciler := services.NewCheckoutReconciler(view, s.Reconcile.Tolerance.Summary)

	if err := home.Open(ctx); err != nil {
		return nil, err
	}
	home.DismissOverlays(ctx)
	if err := account.Login(ctx, creds); err != nil {
		return nil, err
	}

	total, err := home.MaxProductCount(ctx)
	if err != nil {
		return nil, err
	}
	option, err := home.SelectMaxItemsPerPage(ctx)
	if err != nil {
		return nil, err
	}
	if err := home.VerifyLastOptionSelected(ctx, option); err != nil {
		return nil, err
	}
	if err := home.VerifyAllItemsDisplayed(ctx, total); err != nil {
		return nil, err
	}

	products := s.Scenario.Products
	if err := basket.AddProducts(ctx, products); err != nil {
		return nil, err
	}
	if err := basket.GoToBasket(ctx); err != nil {
		return nil, err
	}
	running, err := basket.Verify(ctx, products)
	if err != nil {
		return nil, err
	}

	for _, name := range products[:s.Scenario.Increments] {
		if running, err = basket.Increment(ctx, name, running); err != nil {
			return nil, err
		}
	}
	if running, err = basket.Delete(ctx, products[0], running); err != nil {
		return nil, err
	}

	running, err = basket.BeginCheckout()
	if err != nil {
		return nil, err
	}
	result, err := reconciler.Checkout(ctx, running, s.Scenario.Checkout)
	if err != nil {
		return nil, err
	}

	log.Printf("Checkout of %d products reconciled at %s", len(products), result.Total)
	return result, nil
}
