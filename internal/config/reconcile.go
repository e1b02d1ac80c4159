package config

import (
	"fmt"
	"time"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
)

// ReconcileConfig holds the tolerances and settle timing of the basket checks
type ReconcileConfig struct {
	Tolerance     models.TolerancePolicy
	SettleTimeout time.Duration
	SettlePoll    time.Duration
	OverlayWait   time.Duration
}

// LoadReconcileConfig loads reconciliation settings from environment variables
func LoadReconcileConfig(getenv func(string) string) (*ReconcileConfig, error) {
	defaults := models.DefaultTolerancePolicy()
	config := &ReconcileConfig{}

	cents := []struct {
		key    string
		def    models.Price
		target *models.Price
	}{
		{"TOLERANCE_INCREMENT_CENTS", defaults.Increment, &config.Tolerance.Increment},
		{"TOLERANCE_DELETE_CENTS", defaults.Delete, &config.Tolerance.Delete},
		{"TOLERANCE_SUMMARY_CENTS", defaults.Summary, &config.Tolerance.Summary},
	}
	for _, c := range cents {
		v, err := envInt(getenv, c.key, int(c.def))
		if err != nil {
			return nil, err
		}
		*c.target = models.Price(v)
	}

	var err error
	if config.SettleTimeout, err = envMillis(getenv, "SETTLE_TIMEOUT_MS", 5*time.Second); err != nil {
		return nil, err
	}
	if config.SettlePoll, err = envMillis(getenv, "SETTLE_POLL_MS", 100*time.Millisecond); err != nil {
		return nil, err
	}
	if config.OverlayWait, err = envMillis(getenv, "OVERLAY_WAIT_MS", 2*time.Second); err != nil {
		return nil, err
	}

	if config.SettlePoll == 0 || config.SettlePoll > config.SettleTimeout {
		return nil, fmt.Errorf("SETTLE_POLL_MS must be positive and not exceed SETTLE_TIMEOUT_MS")
	}

	return config, nil
}
