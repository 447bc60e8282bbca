// Package probe drives a running credit score service and checks every
// response it gets against the published contract.
package probe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/fincore/internal/domain/types"
	"github.com/okian/fincore/pkg/logger"
)

// edgeCaseIDs are scored on every run ahead of the random ids.
var edgeCaseIDs = []string{"", " ", "abc123", "a/b", "%2F", "ünïcødé", "<script>", "id with spaces"}

// Run executes the complete probe. The returned Stats are populated even
// when an error is returned.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	cfg = cfg.withDefaults()
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("probe")

	log.Info(ctx, "starting credit score probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service status
	if err := checkService(ctx, client, cfg); err != nil {
		return stats, err
	}
	log.Info(ctx, "service is healthy")

	// Step 2: Score edge cases and random ids concurrently
	ids := make([]string, 0, len(edgeCaseIDs)+cfg.Requests)
	ids = append(ids, edgeCaseIDs...)
	for i := 0; i < cfg.Requests; i++ {
		ids = append(ids, uuid.NewString())
	}
	probeScores(ctx, client, cfg, ids, stats, log)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("probe interrupted: %w", err)
	}
	if stats.Failed > 0 || stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d violations, %d failed requests", ErrViolation, stats.Violations, stats.Failed)
	}
	log.Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkService verifies the / and /health literals.
func checkService(ctx context.Context, client *HTTPClient, cfg Config) error {
	var health types.HealthStatus
	if err := client.getJSON(ctx, "/health", &health); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	var root types.ServiceStatus
	if err := client.getJSON(ctx, "/", &root); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	return verifyStatus(cfg, root, health)
}

// probeScores scores ids with a pool of cfg.Workers goroutines.
func probeScores(ctx context.Context, client *HTTPClient, cfg Config, ids []string, stats *Stats, log logger.Logger) {
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	idChan := make(chan string, cfg.Workers*2)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range idChan {
				got, err := client.creditScore(ctx, id)
				if err == nil {
					err = VerifyScore(cfg, id, got)
				}

				mu.Lock()
				stats.Requests++
				switch {
				case err == nil:
					stats.observe(got.CreditScore, got.RiskAssessment == "LOW", got.Approved)
				case errors.Is(err, ErrViolation):
					stats.Violations++
				default:
					stats.Failed++
				}
				mu.Unlock()

				if err != nil && cfg.Verbose {
					log.Warn(ctx, "probe request failed", logger.String("userID", id), logger.Error(err))
				}
			}
		}()
	}

	// Send ids to workers
	go func() {
		defer close(idChan)
		for _, id := range ids {
			select {
			case <-ctx.Done():
				return
			case idChan <- id:
			}
		}
	}()

	wg.Wait()
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var approvalRate, requestsPerSecond float64
	if stats.Succeeded > 0 {
		approvalRate = float64(stats.Approved) / float64(stats.Succeeded) * 100
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Requests) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("requests", stats.Requests),
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("failed", stats.Failed),
		logger.Int("violations", stats.Violations),
		logger.Int("approved", stats.Approved),
		logger.Int("lowRisk", stats.LowRisk),
		logger.Int("minScore", stats.MinScore),
		logger.Int("maxScore", stats.MaxScore),
		logger.Float64("meanScore", stats.MeanScore),
		logger.Float64("approvalRate", approvalRate),
		logger.Float64("requestsPerSecond", requestsPerSecond),
		logger.String("duration", stats.Duration.String()))
}
