package probe

import (
	"fmt"

	"github.com/okian/fincore/internal/domain/types"
)

// VerifyScore checks one response against the credit score contract: the id
// is echoed, the score is in range, and both flags follow their thresholds.
func VerifyScore(cfg Config, userID string, got types.CreditScore) error {
	cfg = cfg.withDefaults()

	switch {
	case got.UserID != userID:
		return fmt.Errorf("%w: user_id %q echoed as %q", ErrViolation, userID, got.UserID)
	case got.CreditScore < cfg.MinScore || got.CreditScore > cfg.MaxScore:
		return fmt.Errorf("%w: credit_score %d outside [%d, %d]", ErrViolation, got.CreditScore, cfg.MinScore, cfg.MaxScore)
	}

	wantRisk := "HIGH"
	if got.CreditScore > cfg.LowRiskThreshold {
		wantRisk = "LOW"
	}
	if got.RiskAssessment != wantRisk {
		return fmt.Errorf("%w: credit_score %d assessed %q, want %q", ErrViolation, got.CreditScore, got.RiskAssessment, wantRisk)
	}

	if want := got.CreditScore > cfg.ApprovalThreshold; got.Approved != want {
		return fmt.Errorf("%w: credit_score %d approved=%t, want %t", ErrViolation, got.CreditScore, got.Approved, want)
	}
	return nil
}

// verifyStatus checks the literal bodies of / and /health.
func verifyStatus(cfg Config, root types.ServiceStatus, health types.HealthStatus) error {
	if health.Status != "healthy" {
		return fmt.Errorf("%w: /health status %q", ErrUnhealthy, health.Status)
	}
	if root.Status != "online" || root.Service != cfg.ServiceName {
		return fmt.Errorf("%w: / returned status %q service %q", ErrUnhealthy, root.Status, root.Service)
	}
	return nil
}
