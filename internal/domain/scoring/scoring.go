// Package scoring produces the credit score returned by the service.
//
// RandomScorer is a placeholder. It does not model credit risk: it draws a
// uniformly distributed score and derives the risk label and the approval flag
// from two fixed thresholds. Nothing about a user influences the outcome.
package scoring

import (
	"context"
	"fmt"
)

// Default scoring configuration constants.
const (
	DefaultMinScore          = 300
	DefaultMaxScore          = 850
	DefaultLowRiskThreshold  = 700
	DefaultApprovalThreshold = 600
)

// Risk is the coarse risk label attached to a score.
type Risk string

// Risk labels.
const (
	RiskLow  Risk = "LOW"
	RiskHigh Risk = "HIGH"
)

// Input abstracts the request fields needed for scoring.
type Input struct {
	UserID string
}

// Result contains the computed score and the decisions derived from it.
type Result struct {
	UserID   string
	Score    int
	Risk     Risk
	Approved bool
}

// Scorer computes a credit score for a user.
type Scorer interface {
	// Score computes a score, honoring ctx for cancellation.
	Score(ctx context.Context, in Input) (Result, error)
}

// Option applies a configuration option to the RandomScorer.
type Option func(*RandomScorer)

// WithGenerator sets the source of score draws.
func WithGenerator(gen Generator) Option {
	return func(s *RandomScorer) {
		if gen != nil {
			s.gen = gen
		}
	}
}

// WithScoreRange sets the closed interval scores are drawn from.
func WithScoreRange(minScore, maxScore int) Option {
	return func(s *RandomScorer) {
		if minScore <= maxScore {
			s.minScore = minScore
			s.maxScore = maxScore
		}
	}
}

// WithLowRiskThreshold sets the score a result must exceed to be LOW risk.
func WithLowRiskThreshold(threshold int) Option {
	return func(s *RandomScorer) {
		s.lowRiskAbove = threshold
	}
}

// WithApprovalThreshold sets the score a result must exceed to be approved.
func WithApprovalThreshold(threshold int) Option {
	return func(s *RandomScorer) {
		s.approveAbove = threshold
	}
}

// RandomScorer implements Scorer with a uniform random draw.
type RandomScorer struct {
	gen          Generator
	minScore     int
	maxScore     int
	lowRiskAbove int
	approveAbove int
}

// NewRandomScorer creates a scorer with configuration options. Without
// WithGenerator it draws from a clock-seeded generator.
func NewRandomScorer(opts ...Option) *RandomScorer {
	s := &RandomScorer{
		minScore:     DefaultMinScore,
		maxScore:     DefaultMaxScore,
		lowRiskAbove: DefaultLowRiskThreshold,
		approveAbove: DefaultApprovalThreshold,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.gen == nil {
		s.gen = NewRandomGenerator(0)
	}
	return s
}

// Score draws a score for in.UserID. The user id is carried through untouched.
func (s *RandomScorer) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context cancelled: %w", err)
	}

	score := s.clamp(s.gen.IntBetween(s.minScore, s.maxScore))
	risk, approved := s.Assess(score)

	return Result{
		UserID:   in.UserID,
		Score:    score,
		Risk:     risk,
		Approved: approved,
	}, nil
}

// Assess maps a score to its risk label and approval flag. Both comparisons
// are strict: a score equal to a threshold is HIGH risk / not approved.
func (s *RandomScorer) Assess(score int) (Risk, bool) {
	risk := RiskHigh
	if score > s.lowRiskAbove {
		risk = RiskLow
	}
	return risk, score > s.approveAbove
}

// Range returns the closed interval scores are drawn from.
func (s *RandomScorer) Range() (int, int) {
	return s.minScore, s.maxScore
}

// clamp keeps injected generators inside the configured range.
func (s *RandomScorer) clamp(score int) int {
	if score < s.minScore {
		return s.minScore
	}
	if score > s.maxScore {
		return s.maxScore
	}
	return score
}
