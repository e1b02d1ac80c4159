package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
)

func TestAccountFlow_RegisterLoginLogout(t *testing.T) {
	ctx := context.Background()
	shop := newFakeShop()
	account := NewAccountFlow(shop, "juice-sh.op", "Soar Inc")

	if err := account.OpenRegistration(ctx); err != nil {
		t.Fatalf("OpenRegistration() unexpected error = %v", err)
	}
	if err := account.VerifyFieldValidation(ctx); err != nil {
		t.Fatalf("VerifyFieldValidation() unexpected error = %v", err)
	}
	if err := account.VerifyPasswordAdvice(ctx); err != nil {
		t.Fatalf("VerifyPasswordAdvice() unexpected error = %v", err)
	}
	if !shop.adviceOn {
		t.Error("Expected password advice to be switched on")
	}

	creds, err := account.Register(ctx)
	if err != nil {
		t.Fatalf("Register() unexpected error = %v", err)
	}
	if !strings.HasSuffix(creds.Email, "@juice-sh.op") {
		t.Errorf("Unexpected registered email %s", creds.Email)
	}
	if shop.filled[page.SecurityAnswer] != "Soar Inc" {
		t.Errorf("Expected security answer to be filled, got %q", shop.filled[page.SecurityAnswer])
	}

	if err := account.Login(ctx, creds); err != nil {
		t.Fatalf("Login() unexpected error = %v", err)
	}
	if !shop.loggedIn {
		t.Fatal("Expected shop session to be logged in")
	}
	if err := account.Logout(ctx); err != nil {
		t.Fatalf("Logout() unexpected error = %v", err)
	}
	if shop.loggedIn {
		t.Error("Expected shop session to be logged out")
	}
}

func TestAccountFlow_Login(t *testing.T) {
	tests := []struct {
		name    string
		creds   models.Credentials
		wantErr error
	}{
		{
			name:    "missing credentials",
			creds:   models.Credentials{Email: "admin@juice-sh.op"},
			wantErr: models.ErrMissingCredentials,
		},
		{
			name:    "wrong password",
			creds:   models.Credentials{Email: "admin@juice-sh.op", Password: "wrong"},
			wantErr: models.ErrPreconditionTimeout,
		},
		{
			name:  "known account",
			creds: models.Credentials{Email: "admin@juice-sh.op", Password: "admin123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := newFakeShop()
			shop.accounts["admin@juice-sh.op"] = "admin123"
			account := NewAccountFlow(shop, "juice-sh.op", "Soar Inc")

			err := account.Login(context.Background(), tt.creds)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() unexpected error = %v", err)
			}
		})
	}
}
