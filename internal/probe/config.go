package probe

import (
	"errors"
	"time"

	"github.com/okian/fincore/internal/domain/scoring"
)

// Sentinel errors reported by Run.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrViolation = errors.New("credit score contract violated")
)

// Default probe settings.
const (
	DefaultBaseURL     = "http://localhost:8080"
	DefaultRequests    = 1000
	DefaultWorkers     = 8
	DefaultTimeout     = 10 * time.Second
	DefaultServiceName = "Fargate FinTech Core"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Requests    int           // Number of random user ids to score
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	ServiceName string        // Expected service name in GET /
	Verbose     bool          // Log every violation

	// Contract the responses are checked against.
	MinScore          int
	MaxScore          int
	LowRiskThreshold  int
	ApprovalThreshold int
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Requests < 0 {
		c.Requests = 0
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ServiceName == "" {
		c.ServiceName = DefaultServiceName
	}
	if c.MinScore == 0 && c.MaxScore == 0 {
		c.MinScore, c.MaxScore = scoring.DefaultMinScore, scoring.DefaultMaxScore
	}
	if c.LowRiskThreshold == 0 {
		c.LowRiskThreshold = scoring.DefaultLowRiskThreshold
	}
	if c.ApprovalThreshold == 0 {
		c.ApprovalThreshold = scoring.DefaultApprovalThreshold
	}
	return c
}

// Stats holds probe statistics.
type Stats struct {
	Requests   int
	Succeeded  int
	Failed     int
	Violations int
	Approved   int
	LowRisk    int
	MinScore   int
	MaxScore   int
	MeanScore  float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration

	sum int64
}

// observe folds one valid response into the aggregate.
func (s *Stats) observe(score int, lowRisk, approved bool) {
	if s.Succeeded == 0 || score < s.MinScore {
		s.MinScore = score
	}
	if s.Succeeded == 0 || score > s.MaxScore {
		s.MaxScore = score
	}
	s.Succeeded++
	s.sum += int64(score)
	s.MeanScore = float64(s.sum) / float64(s.Succeeded)
	if lowRisk {
		s.LowRisk++
	}
	if approved {
		s.Approved++
	}
}
