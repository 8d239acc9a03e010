package scoregen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/stepstats/pkg/logger"
)

// Run executes a full generator pass: health check, randomized
// submissions, a deliberate duplicate probe, and an aggregate readback.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting score generator",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("count", cfg.Count),
		logger.Int("players", cfg.Players),
	)

	c := newClient(cfg)
	if err := c.health(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	gen := newGenerator(cfg, time.Now().UnixNano())

	var firstAccepted *Submission
	for i := 0; i < cfg.Count; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("cancelled after %d submissions: %w", i, ctx.Err())
		default:
		}

		sub := gen.next()
		stats.Generated++
		result, msg, err := c.submit(ctx, sub)
		if err != nil {
			return fmt.Errorf("submission %d failed: %w", i, err)
		}
		switch result {
		case submitAccepted:
			stats.Accepted++
			if firstAccepted == nil {
				copied := sub
				firstAccepted = &copied
			}
		case submitDuplicate:
			stats.Duplicates++
		case submitFailed:
			stats.Failed++
			if cfg.Verbose {
				log.Warn(ctx, "submission rejected", logger.String("message", msg))
			}
		}
	}

	// Re-submitting an accepted score byte-for-byte must trip the
	// duplicate policy: the stored row's score equals the incoming one.
	if firstAccepted != nil {
		result, msg, err := c.submit(ctx, *firstAccepted)
		if err != nil {
			return fmt.Errorf("duplicate probe failed: %w", err)
		}
		if result != submitDuplicate {
			return fmt.Errorf("duplicate probe not rejected: got %q", msg)
		}
		log.Info(ctx, "duplicate probe rejected as expected")
	}

	info, err := c.rankingInfo(ctx, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("aggregate readback failed: %w", err)
	}
	if stats.Accepted > 0 && info.TotalPoints <= 0 {
		return fmt.Errorf("aggregate readback inconsistent: %d accepted but total_points=%d",
			stats.Accepted, info.TotalPoints)
	}

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "score generator finished",
		logger.Int("generated", stats.Generated),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("failed", stats.Failed),
		logger.Int64("total_points", info.TotalPoints),
		logger.String("tier", info.Tier),
		logger.Int("level", info.Level),
		logger.String("formatted_points", info.FormattedPoints),
		logger.String("duration", stats.Duration.String()),
	)
	return nil
}

// isDuplicateMessage distinguishes duplicate rejections from other 400s.
func isDuplicateMessage(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "duplicate")
}
