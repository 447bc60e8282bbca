// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/fincore/internal/domain/scoring"
	"github.com/okian/fincore/internal/domain/types"
	"github.com/okian/fincore/pkg/logger"
	"github.com/okian/fincore/pkg/metrics"
	"github.com/okian/fincore/pkg/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultServiceName is reported by the root endpoint.
const DefaultServiceName = "Fargate FinTech Core"

// ErrNotStarted is returned by operations invoked before Start.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for the credit score system.
type Service struct {
	mu sync.RWMutex

	// Core components
	scorer scoring.Scorer
	gen    scoring.Generator
	tracer trace.Tracer

	// Configuration
	serviceName       string
	seed              int64
	minScore          int
	maxScore          int
	lowRiskThreshold  int
	approvalThreshold int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithServiceName sets the name reported by the root endpoint.
func WithServiceName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.serviceName = name
		}
	}
}

// WithScorer injects a ready scorer; range, threshold and generator options
// are then ignored.
func WithScorer(scorer scoring.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithGenerator sets the source of score draws.
func WithGenerator(gen scoring.Generator) Option {
	return func(s *Service) {
		if gen != nil {
			s.gen = gen
		}
	}
}

// WithSeed seeds the default generator. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithScoreRange sets the closed interval scores are drawn from.
func WithScoreRange(minScore, maxScore int) Option {
	return func(s *Service) {
		if minScore <= maxScore {
			s.minScore = minScore
			s.maxScore = maxScore
		}
	}
}

// WithThresholds sets the low risk and approval thresholds.
func WithThresholds(lowRisk, approval int) Option {
	return func(s *Service) {
		s.lowRiskThreshold = lowRisk
		s.approvalThreshold = approval
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		serviceName:       DefaultServiceName,
		minScore:          scoring.DefaultMinScore,
		maxScore:          scoring.DefaultMaxScore,
		lowRiskThreshold:  scoring.DefaultLowRiskThreshold,
		approvalThreshold: scoring.DefaultApprovalThreshold,
		logger:            nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting credit score service...")

	if s.scorer == nil {
		gen := s.gen
		if gen == nil {
			gen = scoring.NewRandomGenerator(s.seed)
		}
		s.scorer = scoring.NewRandomScorer(
			scoring.WithGenerator(gen),
			scoring.WithScoreRange(s.minScore, s.maxScore),
			scoring.WithLowRiskThreshold(s.lowRiskThreshold),
			scoring.WithApprovalThreshold(s.approvalThreshold),
		)
	}
	s.tracer = otel.Tracer(tracing.InstrumentationName)

	s.started = true
	s.logger.Info(ctx, "credit score service started",
		logger.String("service", s.serviceName),
		logger.Int("scoreMin", s.minScore),
		logger.Int("scoreMax", s.maxScore),
		logger.Int("lowRiskThreshold", s.lowRiskThreshold),
		logger.Int("approvalThreshold", s.approvalThreshold),
	)

	return nil
}

// Stop marks the service stopped. Safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "credit score service stopped")
}

// ServiceName returns the name reported by the root endpoint.
func (s *Service) ServiceName() string {
	return s.serviceName
}

// CreditScore scores userID. The id is opaque and echoed verbatim.
func (s *Service) CreditScore(ctx context.Context, userID string) (types.CreditScore, error) {
	s.mu.RLock()
	started, scorer, tracer := s.started, s.scorer, s.tracer
	s.mu.RUnlock()

	if !started {
		return types.CreditScore{}, ErrNotStarted
	}

	ctx, span := tracer.Start(ctx, "credit.score")
	defer span.End()

	start := time.Now()
	result, err := scorer.Score(ctx, scoring.Input{UserID: userID})
	metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.RecordScoringError()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn(ctx, "scoring failed", logger.Error(err))
		return types.CreditScore{}, err
	}

	metrics.RecordScore(result.Score, string(result.Risk), result.Approved)
	span.SetAttributes(
		attribute.Int("credit.score", result.Score),
		attribute.String("credit.risk_assessment", string(result.Risk)),
		attribute.Bool("credit.approved", result.Approved),
	)
	s.logger.Debug(ctx, "credit score issued",
		logger.String("userID", userID),
		logger.Int("score", result.Score),
		logger.String("risk", string(result.Risk)),
		logger.Bool("approved", result.Approved),
	)

	return types.CreditScore{
		UserID:         result.UserID,
		CreditScore:    result.Score,
		RiskAssessment: string(result.Risk),
		Approved:       result.Approved,
	}, nil
}
