// Package app provides the core business service that implements the
// dependencies required by the HTTP API: score ingestion with duplicate
// policy, aggregate computation, and leaderboard reads.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/okian/stepstats/internal/adapters/names"
	"github.com/okian/stepstats/internal/adapters/repository"
	"github.com/okian/stepstats/internal/domain/dedupe"
	"github.com/okian/stepstats/internal/domain/gamify"
	"github.com/okian/stepstats/internal/domain/model"
	"github.com/okian/stepstats/pkg/logger"
	"github.com/okian/stepstats/pkg/metrics"
)

// RankingInfo is the aggregate view for one profile.
type RankingInfo struct {
	gamify.Summary
	DisplayName string
}

// Service wires the stores and domain policies behind the HTTP API.
// Each call is independent; the service holds no per-request state.
type Service struct {
	mu sync.RWMutex

	scores   repository.ScoreStore
	creds    repository.CredentialStore
	detector dedupe.Detector
	resolver *names.Resolver

	displayNamesFile string

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScoreStore sets the score record store.
func WithScoreStore(store repository.ScoreStore) Option {
	return func(s *Service) {
		if store != nil {
			s.scores = store
		}
	}
}

// WithCredentialStore sets the credential resolver backing store.
func WithCredentialStore(store repository.CredentialStore) Option {
	return func(s *Service) {
		if store != nil {
			s.creds = store
		}
	}
}

// WithDetector overrides the duplicate detector. Defaults to the score
// store itself.
func WithDetector(d dedupe.Detector) Option {
	return func(s *Service) {
		if d != nil {
			s.detector = d
		}
	}
}

// WithDisplayNamesFile points the name resolver at an on-disk mapping.
func WithDisplayNamesFile(path string) Option {
	return func(s *Service) {
		s.displayNamesFile = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. A score store and a credential store must be
// provided via options before Start.
func New(opts ...Option) *Service {
	s := &Service{
		resolver: names.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.detector == nil && s.scores != nil {
		s.detector = s.scores
	}
	return s
}

// Start verifies wiring and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.scores == nil {
		return errors.New("score store not configured")
	}
	if s.creds == nil {
		return errors.New("credential store not configured")
	}
	if s.detector == nil {
		s.detector = s.scores
	}

	s.started = true
	s.logger.Info(ctx, "score service started",
		logger.Int("records", s.scores.Count(ctx)),
	)
	return nil
}

// Stop releases the stores when they hold external resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if closer, ok := s.scores.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "score service stopped")
}

// SubmitScore validates a submission, applies the duplicate policy, and
// appends one score row for the profile behind apiKey. Nothing derived is
// returned; aggregates are a separate read.
func (s *Service) SubmitScore(ctx context.Context, apiKey string, sub model.Submission) error {
	if strings.TrimSpace(apiKey) == "" {
		metrics.RecordScoreRejected()
		return ErrMissingAPIKey
	}

	creds, err := s.creds.Resolve(ctx, apiKey)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordScoreRejected()
		return ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("resolve api key: %w", err)
	}
	if creds.ProfileID == "" {
		metrics.RecordScoreRejected()
		return ErrNoProfile
	}

	if verr := validateSubmission(sub); verr != nil {
		metrics.RecordScoreRejected()
		return verr
	}

	bucket := dedupe.Bucket{
		SongDir:    sub.SongDir,
		Difficulty: sub.Difficulty,
		PlayerGUID: sub.PlayerGUID,
	}
	redundant, err := s.detector.Redundant(ctx, bucket, sub.Score)
	if err != nil {
		return fmt.Errorf("duplicate check: %w", err)
	}
	if redundant {
		metrics.RecordScoreDuplicate()
		return ErrDuplicate
	}

	// The store re-checks the bucket atomically with the insert, so a
	// concurrent submission cannot sneak in between the check above and
	// this write.
	err = s.scores.AppendScore(ctx, model.NewScoreRecord(sub, creds.ProfileID))
	if errors.Is(err, repository.ErrDuplicate) {
		metrics.RecordScoreDuplicate()
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("append score: %w", err)
	}

	metrics.RecordScoreIngested()
	s.logger.Info(ctx, "score recorded",
		logger.String("profile", creds.ProfileID),
		logger.String("song", sub.SongDir),
		logger.String("difficulty", sub.Difficulty),
		logger.Int64("score", sub.Score),
	)
	return nil
}

// requiredFields lists submission fields in their wire order; validation
// reports violations in this order.
var requiredFields = []string{
	"song_dir", "difficulty", "steps_type", "grade", "score",
	"percent_dp", "max_combo", "date_time", "player_guid", "player_name",
}

// validateSubmission collects every missing or out-of-domain field into a
// single ValidationError. All ten fields are required to be truthy: empty
// strings and zero numerics both count as missing.
func validateSubmission(sub model.Submission) error {
	present := map[string]bool{
		"song_dir":    sub.SongDir != "",
		"difficulty":  sub.Difficulty != "",
		"steps_type":  sub.StepsType != "",
		"grade":       sub.Grade != "",
		"score":       sub.Score > 0,
		"percent_dp":  sub.PercentDP > 0 && sub.PercentDP <= 1,
		"max_combo":   sub.MaxCombo > 0,
		"date_time":   sub.DateTime != "",
		"player_guid": sub.PlayerGUID != "",
		"player_name": sub.PlayerName != "",
	}
	var missing []string
	for _, field := range requiredFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// RankingInfo computes the aggregate view for the profile behind apiKey.
// Purely derived from stored rows; repeated calls against an unchanged
// store return identical results.
func (s *Service) RankingInfo(ctx context.Context, apiKey string) (RankingInfo, error) {
	if strings.TrimSpace(apiKey) == "" {
		return RankingInfo{}, ErrMissingAPIKey
	}
	creds, err := s.creds.Resolve(ctx, apiKey)
	if errors.Is(err, repository.ErrNotFound) {
		return RankingInfo{}, ErrUnknownUser
	}
	if err != nil {
		return RankingInfo{}, fmt.Errorf("resolve api key: %w", err)
	}

	total, avg, err := s.scores.ProfileAggregate(ctx, creds.ProfileID)
	if err != nil {
		return RankingInfo{}, fmt.Errorf("profile aggregate: %w", err)
	}
	metrics.RecordRankingQuery()

	return RankingInfo{
		Summary:     gamify.Summarize(total, avg),
		DisplayName: s.resolver.DisplayName(ctx, s.displayNamesFile, creds.ProfileID),
	}, nil
}

// StoredConfig returns the profile's externally-configured install path
// and profile identifier.
func (s *Service) StoredConfig(ctx context.Context, apiKey string) (model.Credentials, error) {
	if strings.TrimSpace(apiKey) == "" {
		return model.Credentials{}, ErrMissingAPIKey
	}
	creds, err := s.creds.Resolve(ctx, apiKey)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Credentials{}, ErrUnknownUser
	}
	if err != nil {
		return model.Credentials{}, fmt.Errorf("resolve api key: %w", err)
	}
	return creds, nil
}

// Leaderboard returns grouped player totals, best first. A positive n
// truncates the result to the top n groups.
func (s *Service) Leaderboard(ctx context.Context, n int) ([]model.PlayerTotal, error) {
	totals, err := s.scores.Leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	metrics.RecordLeaderboardQuery()
	if n > 0 && n < len(totals) {
		totals = totals[:n]
	}
	return totals, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.started {
		count := s.scores.Count(context.Background())
		stats["records"] = count
		metrics.UpdateRecordsTotal(count)
	}
	return stats
}
