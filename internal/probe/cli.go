package probe

import (
	"io"
)

// ShowHelp prints usage information for the score probe.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `FinCore Score Probe
===================

Drives a running credit score service and checks every response against the
contract: the user id is echoed, the score lies in [300, 850], risk is LOW
only above 700 and approval is granted only above 600.

Usage:
  go run ./cmd/score-probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -requests int
        Number of random user ids to score (default 1000)
  -workers int
        Number of concurrent workers (default 8)
  -timeout duration
        HTTP request timeout (default 10s)
  -service string
        Expected service name in GET / (default "Fargate FinTech Core")
  -verbose
        Log every failed request
  -help
        Show this help message

Examples:
  # Probe a local instance with default settings
  go run ./cmd/score-probe

  # Heavier run against a deployed task
  go run ./cmd/score-probe -url http://10.0.1.15:8080 -requests 50000 -workers 32

The process exits with status 1 when the service is unhealthy or any
response breaks the contract.
`)
}
