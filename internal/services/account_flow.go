package services

import (
	"context"
	"fmt"
	"log"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
)

// SecurityQuestion is the question picked during registration
const SecurityQuestion = "Company you first work for as an adult?"

// RequiredFieldMessages are the validation messages of the empty
// registration form
var RequiredFieldMessages = []string{
	"Please provide an email address.",
	"Please provide a password.",
	"Please repeat your password.",
	"Please select a security question.",
	"Please provide an answer to your security question.",
}

// PasswordAdviceLines are the rules listed by the password advice panel
var PasswordAdviceLines = []string{
	"contains at least one lower character",
	"contains at least one upper character",
	"contains at least one digit",
	"contains at least one special character",
	"contains at least 8 characters",
}

// AccountFlow registers throwaway accounts and logs in and out
type AccountFlow struct {
	view           ViewPort
	emailDomain    string
	securityAnswer string
}

// NewAccountFlow creates an account flow that registers addresses under
// emailDomain
func NewAccountFlow(view ViewPort, emailDomain, securityAnswer string) *AccountFlow {
	return &AccountFlow{
		view:           view,
		emailDomain:    emailDomain,
		securityAnswer: securityAnswer,
	}
}

// OpenLogin navigates to the login page through the account menu
func (a *AccountFlow) OpenLogin(ctx context.Context) error {
	if err := a.view.Click(ctx, page.T(page.AccountMenu)); err != nil {
		return err
	}
	if err := a.view.Click(ctx, page.T(page.LoginMenuItem)); err != nil {
		return err
	}
	return a.view.WaitForURL(ctx, page.LoginURL)
}

// OpenRegistration navigates from the login page to the registration form
func (a *AccountFlow) OpenRegistration(ctx context.Context) error {
	if err := a.OpenLogin(ctx); err != nil {
		return err
	}
	if err := a.view.Click(ctx, page.T(page.NotYetCustomer)); err != nil {
		return err
	}
	return a.view.WaitFor(ctx, page.T(page.RegistrationEmail), page.Visible)
}

// VerifyFieldValidation touches every text field of the empty form and checks
// that each required-field message is shown
func (a *AccountFlow) VerifyFieldValidation(ctx context.Context) error {
	for _, field := range []page.Element{page.RegistrationEmail, page.RegistrationPassword, page.RegistrationRepeat, page.SecurityAnswer, page.RegistrationEmail} {
		if err := a.view.Click(ctx, page.T(field)); err != nil {
			return err
		}
	}

	for _, message := range RequiredFieldMessages {
		if err := a.view.WaitFor(ctx, page.Of(page.ValidationError, message), page.Visible); err != nil {
			return fmt.Errorf("%w: validation message %q not shown: %v", models.ErrUnexpectedContent, message, err)
		}
	}
	return nil
}

// VerifyPasswordAdvice switches the advice panel on and checks every rule line
func (a *AccountFlow) VerifyPasswordAdvice(ctx context.Context) error {
	toggle := page.T(page.PasswordAdviceToggle)
	checked, err := a.view.Attribute(ctx, toggle, "aria-checked")
	if err != nil {
		return err
	}
	if checked != "true" {
		if err := a.view.Click(ctx, toggle); err != nil {
			return err
		}
	}

	for _, line := range PasswordAdviceLines {
		if err := a.view.WaitFor(ctx, page.Of(page.PasswordAdvice, line), page.Visible); err != nil {
			return fmt.Errorf("%w: password advice %q not shown: %v", models.ErrUnexpectedContent, line, err)
		}
	}
	return nil
}

// Register fills the registration form with a generated account and returns
// its credentials once the shop confirms the registration
func (a *AccountFlow) Register(ctx context.Context) (models.Credentials, error) {
	creds := models.NewGeneratedCredentials(a.emailDomain)

	fills := []struct {
		element page.Element
		value   string
	}{
		{page.RegistrationEmail, creds.Email},
		{page.RegistrationPassword, creds.Password},
		{page.RegistrationRepeat, creds.Password},
	}
	for _, f := range fills {
		if err := a.view.Fill(ctx, page.T(f.element), f.value); err != nil {
			return models.Credentials{}, err
		}
	}

	if err := a.view.Click(ctx, page.T(page.SecurityQuestion)); err != nil {
		return models.Credentials{}, err
	}
	if err := a.view.Click(ctx, page.Of(page.SecurityQuestionOption, SecurityQuestion)); err != nil {
		return models.Credentials{}, err
	}
	if err := a.view.Fill(ctx, page.T(page.SecurityAnswer), a.securityAnswer); err != nil {
		return models.Credentials{}, err
	}
	if err := a.view.Click(ctx, page.T(page.RegisterButton)); err != nil {
		return models.Credentials{}, err
	}

	if err := a.view.WaitFor(ctx, page.T(page.RegistrationSuccess), page.Visible); err != nil {
		return models.Credentials{}, fmt.Errorf("registration of %s not confirmed: %w", creds.Email, err)
	}
	if err := a.view.WaitForURL(ctx, page.LoginURL); err != nil {
		return models.Credentials{}, err
	}

	log.Printf("Registered %s", creds.Email)
	return creds, nil
}

// Login signs in with creds from the login page
func (a *AccountFlow) Login(ctx context.Context, creds models.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	if err := a.OpenLogin(ctx); err != nil {
		return err
	}
	if err := a.view.Fill(ctx, page.T(page.LoginEmail), creds.Email); err != nil {
		return err
	}
	if err := a.view.Fill(ctx, page.T(page.LoginPassword), creds.Password); err != nil {
		return err
	}
	if err := a.view.Click(ctx, page.T(page.LoginButton)); err != nil {
		return err
	}
	if err := a.view.WaitFor(ctx, page.T(page.LoginButton), page.Hidden); err != nil {
		return fmt.Errorf("login as %s failed: %w", creds.Email, err)
	}

	log.Printf("Logged in as %s", creds.Email)
	return nil
}

// Logout signs out through the account menu
func (a *AccountFlow) Logout(ctx context.Context) error {
	if err := a.view.Click(ctx, page.T(page.AccountMenu)); err != nil {
		return err
	}
	if err := a.view.Click(ctx, page.T(page.LogoutButton)); err != nil {
		return err
	}
	return a.view.WaitFor(ctx, page.T(page.LogoutButton), page.Hidden)
}
