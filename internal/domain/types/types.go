// Package types contains common types used across the application
package types

// ServiceStatus is the body of GET /.
type ServiceStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status string `json:"status"`
}

// CreditScore is the body of GET /credit-score/{user_id}.
type CreditScore struct {
	UserID         string `json:"user_id"`
	CreditScore    int    `json:"credit_score"`
	RiskAssessment string `json:"risk_assessment"`
	Approved       bool   `json:"approved"`
}
