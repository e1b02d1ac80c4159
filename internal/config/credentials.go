package config

import "github.com/soar-qa/juiceshop-e2e/internal/models"

// CredentialsConfig holds the account settings of the suite
type CredentialsConfig struct {
	Default        models.Credentials
	EmailDomain    string
	SecurityAnswer string
}

// LoadCredentialsConfig loads account settings from environment variables.
// The default login may be empty; a registration result can stand in for it.
func LoadCredentialsConfig(getenv func(string) string) CredentialsConfig {
	return CredentialsConfig{
		Default: models.Credentials{
			Email:    getenv("DEFAULT_EMAIL"),
			Password: getenv("DEFAULT_PASSWORD"),
		},
		EmailDomain:    envString(getenv, "REGISTRATION_EMAIL_DOMAIN", "juice-sh.op"),
		SecurityAnswer: envString(getenv, "SECURITY_ANSWER", "Soar Inc"),
	}
}
