package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/stepstats/internal/domain/dedupe"
	"github.com/okian/stepstats/internal/domain/model"
)

// MemStore implements ScoreStore and CredentialStore in memory. It backs
// tests and DSN-less local runs. The mutex is held across the bucket
// check and the append, so concurrent duplicate-equivalent submissions
// cannot both land.
type MemStore struct {
	mu     sync.RWMutex
	scores []model.ScoreRecord
	users  map[string]model.Credentials // api_key -> credentials
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		users: make(map[string]model.Credentials),
	}
}

func bucketConflict(rec model.ScoreRecord, b dedupe.Bucket, score int64) bool {
	return rec.SongDir == b.SongDir &&
		rec.Difficulty == b.Difficulty &&
		rec.PlayerGUID == b.PlayerGUID &&
		rec.Score >= score
}

// AppendScore writes one record unless the bucket guard fires.
func (s *MemStore) AppendScore(ctx context.Context, rec model.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := dedupe.Bucket{SongDir: rec.SongDir, Difficulty: rec.Difficulty, PlayerGUID: rec.PlayerGUID}
	for _, existing := range s.scores {
		if bucketConflict(existing, b, rec.Score) {
			return ErrDuplicate
		}
	}
	rec.ID = int64(len(s.scores) + 1)
	s.scores = append(s.scores, rec)
	return nil
}

// Redundant reports whether the bucket already holds an equal or better
// score.
func (s *MemStore) Redundant(ctx context.Context, b dedupe.Bucket, score int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.scores {
		if bucketConflict(rec, b, score) {
			return true, nil
		}
	}
	return false, nil
}

// ProfileAggregate sums and averages all rows for a profile.
func (s *MemStore) ProfileAggregate(ctx context.Context, profileID string) (int64, float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	var dpSum float64
	var n int
	for _, rec := range s.scores {
		if rec.ProfileID != profileID {
			continue
		}
		total += rec.Score
		dpSum += rec.PercentDP
		n++
	}
	if n == 0 {
		return 0, 0, nil
	}
	return total, dpSum / float64(n), nil
}

// Leaderboard returns grouped player totals ordered by total descending,
// player_name ascending on ties.
func (s *MemStore) Leaderboard(ctx context.Context) ([]model.PlayerTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byName := make(map[string]int64)
	for _, rec := range s.scores {
		byName[rec.PlayerName] += rec.Score
	}
	totals := make([]model.PlayerTotal, 0, len(byName))
	for name, sum := range byName {
		totals = append(totals, model.PlayerTotal{PlayerName: name, TotalScore: sum})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalScore != totals[j].TotalScore {
			return totals[i].TotalScore > totals[j].TotalScore
		}
		return totals[i].PlayerName < totals[j].PlayerName
	})
	for i := range totals {
		totals[i].Rank = i + 1
	}
	return totals, nil
}

// Count returns the number of stored score rows.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scores)
}

// Resolve looks a user up by API key.
func (s *MemStore) Resolve(ctx context.Context, apiKey string) (model.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds, ok := s.users[apiKey]
	if !ok {
		return model.Credentials{}, ErrNotFound
	}
	return creds, nil
}

// CreateUser inserts a user with a generated API key and no profile
// configuration yet.
func (s *MemStore) CreateUser(ctx context.Context, username, password string) (string, error) {
	apiKey := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[apiKey] = model.Credentials{Username: username}
	return apiKey, nil
}

// AddUser registers a fully configured user and returns its API key.
// Test and local-run helper.
func (s *MemStore) AddUser(username, profilePath, profileID string) string {
	apiKey := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[apiKey] = model.Credentials{
		Username:    username,
		ProfilePath: profilePath,
		ProfileID:   profileID,
	}
	return apiKey
}
