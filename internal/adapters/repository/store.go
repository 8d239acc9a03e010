// Package repository defines the score record store and credential
// resolver interfaces plus their Postgres and in-memory implementations.
package repository

import (
	"context"

	"github.com/okian/stepstats/internal/domain/dedupe"
	"github.com/okian/stepstats/internal/domain/model"
)

// ScoreStore provides append and read access to the score record log.
// Rows are never updated or deleted; every aggregate sums all of them.
type ScoreStore interface {
	// AppendScore writes one record. The bucket guard and the insert are
	// atomic: when an existing row in the record's dedupe bucket already
	// carries an equal or higher score, nothing is written and
	// ErrDuplicate is returned.
	AppendScore(ctx context.Context, rec model.ScoreRecord) error

	// Redundant implements dedupe.Detector against stored rows.
	Redundant(ctx context.Context, b dedupe.Bucket, score int64) (bool, error)

	// ProfileAggregate returns the summed score and mean accuracy over all
	// rows with the given profile id. Both are zero when no rows match.
	ProfileAggregate(ctx context.Context, profileID string) (total int64, avg float64, err error)

	// Leaderboard returns every player's summed score, grouped by
	// player_name and ordered by total descending, then player_name
	// ascending as the tie-break. Rank fields are filled in, 1-based.
	Leaderboard(ctx context.Context) ([]model.PlayerTotal, error)

	// Count returns the number of stored score rows.
	Count(ctx context.Context) int
}

// CredentialStore resolves API keys to profile credentials and creates
// user rows. Credential verification itself (passwords, sessions) lives
// outside this service; the store only does the opaque key lookup.
type CredentialStore interface {
	// Resolve returns the credentials for an API key, or ErrNotFound.
	Resolve(ctx context.Context, apiKey string) (model.Credentials, error)

	// CreateUser inserts a user row and returns its generated API key.
	CreateUser(ctx context.Context, username, password string) (string, error)
}
