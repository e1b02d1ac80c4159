//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// TestRegistration_FormValidation
// Feature: Customer registration
//
//	Scenario: Empty form and password advice
//	  Given I am on the registration form
//	  When I touch every field without typing
//	  Then each required field shows its message
//	  And enabling the password advice lists the five rules
func TestRegistration_FormValidation(t *testing.T) {
	ctx := scenarioContext(t)
	settings := testSettings(t)
	view := newView(t)
	home := services.NewHomeFlow(view, settings.Reconcile.OverlayWait, services.DefaultSettleOptions())
	account := services.NewAccountFlow(view, settings.Credentials.EmailDomain, settings.Credentials.SecurityAnswer)

	// Given I am on the registration form
	require.NoError(t, home.Open(ctx))
	home.DismissOverlays(ctx)
	require.NoError(t, account.OpenRegistration(ctx))

	// When I touch every field without typing
	// Then each required field shows its message
	require.NoError(t, account.VerifyFieldValidation(ctx))

	// And enabling the password advice lists the five rules
	require.NoError(t, account.VerifyPasswordAdvice(ctx))
}

// TestRegistration_LoginAndLogout
// Feature: Customer registration
//
//	Scenario: Register, log in and log out
//	  Given I registered a new account
//	  When I log in with its credentials
//	  Then the login button is gone
//	  And logging out through the account menu succeeds
func TestRegistration_LoginAndLogout(t *testing.T) {
	ctx := scenarioContext(t)
	settings := testSettings(t)
	view := newView(t)
	home := services.NewHomeFlow(view, settings.Reconcile.OverlayWait, services.DefaultSettleOptions())
	account := services.NewAccountFlow(view, settings.Credentials.EmailDomain, settings.Credentials.SecurityAnswer)

	// Given I registered a new account
	require.NoError(t, home.Open(ctx))
	home.DismissOverlays(ctx)
	require.NoError(t, account.OpenRegistration(ctx))
	creds, err := account.Register(ctx)
	require.NoError(t, err)

	// When I log in with its credentials
	// Then the login button is gone
	require.NoError(t, home.Open(ctx))
	require.NoError(t, account.Login(ctx, creds))

	// And logging out through the account menu succeeds
	require.NoError(t, account.Logout(ctx))
}
