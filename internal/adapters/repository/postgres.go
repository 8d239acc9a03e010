package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // postgres driver

	"github.com/okian/stepstats/internal/domain/dedupe"
	"github.com/okian/stepstats/internal/domain/model"
	"github.com/okian/stepstats/pkg/metrics"
)

// Connection pool limits for the shared handle.
const (
	maxOpenConns    = 20
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
)

// appendScoreSQL makes the dedupe check and the insert one statement, so
// two concurrent submissions for the same bucket cannot both pass the
// check and then both write.
const appendScoreSQL = `
INSERT INTO scores (
	song_dir, difficulty, steps_type, grade, score,
	percent_dp, max_combo, date_time, player_guid, player_name, profile_id
)
SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
WHERE NOT EXISTS (
	SELECT 1 FROM scores
	WHERE song_dir = $1 AND difficulty = $2 AND player_guid = $9 AND score >= $5
)`

const redundantSQL = `
SELECT EXISTS (
	SELECT 1 FROM scores
	WHERE song_dir = $1 AND difficulty = $2 AND player_guid = $3 AND score >= $4
)`

const profileAggregateSQL = `
SELECT COALESCE(SUM(score), 0), COALESCE(AVG(percent_dp), 0)
FROM scores WHERE profile_id = $1`

const leaderboardSQL = `
SELECT player_name, SUM(score) AS total_score
FROM scores
GROUP BY player_name
ORDER BY total_score DESC, player_name ASC`

// PostgresStore implements ScoreStore and CredentialStore on a shared
// database/sql handle. The handle is injected state, never a package
// global; its lifetime is owned by the caller.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects, verifies the connection, and applies the
// bootstrap schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}
	return nil
}

// AppendScore writes one record unless the bucket guard fires.
func (s *PostgresStore) AppendScore(ctx context.Context, rec model.ScoreRecord) error {
	start := time.Now()
	res, err := s.db.ExecContext(ctx, appendScoreSQL,
		rec.SongDir, rec.Difficulty, rec.StepsType, rec.Grade, rec.Score,
		rec.PercentDP, rec.MaxCombo, rec.DateTime, rec.PlayerGUID,
		rec.PlayerName, rec.ProfileID,
	)
	metrics.RecordStoreLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("append score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("append score rows affected: %w", err)
	}
	if n == 0 {
		return ErrDuplicate
	}
	return nil
}

// Redundant reports whether the bucket already holds an equal or better
// score.
func (s *PostgresStore) Redundant(ctx context.Context, b dedupe.Bucket, score int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, redundantSQL,
		b.SongDir, b.Difficulty, b.PlayerGUID, score,
	).Scan(&exists)
	if err != nil {
		metrics.RecordStoreError()
		return false, fmt.Errorf("duplicate lookup: %w", err)
	}
	return exists, nil
}

// ProfileAggregate sums and averages all rows for a profile.
func (s *PostgresStore) ProfileAggregate(ctx context.Context, profileID string) (int64, float64, error) {
	start := time.Now()
	var total int64
	var avg float64
	err := s.db.QueryRowContext(ctx, profileAggregateSQL, profileID).Scan(&total, &avg)
	metrics.RecordStoreLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStoreError()
		return 0, 0, fmt.Errorf("profile aggregate: %w", err)
	}
	return total, avg, nil
}

// Leaderboard returns grouped player totals, best first.
func (s *PostgresStore) Leaderboard(ctx context.Context) ([]model.PlayerTotal, error) {
	rows, err := s.db.QueryContext(ctx, leaderboardSQL)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}
	defer rows.Close()

	var totals []model.PlayerTotal
	for rows.Next() {
		var t model.PlayerTotal
		if err := rows.Scan(&t.PlayerName, &t.TotalScore); err != nil {
			return nil, fmt.Errorf("leaderboard scan: %w", err)
		}
		t.Rank = len(totals) + 1
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard rows: %w", err)
	}
	return totals, nil
}

// Count returns the number of stored score rows. Errors degrade to zero
// since callers only use this for stats reporting.
func (s *PostgresStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Resolve looks a user up by API key.
func (s *PostgresStore) Resolve(ctx context.Context, apiKey string) (model.Credentials, error) {
	var creds model.Credentials
	var path, profile sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT username, profile_path, profile_id FROM users WHERE api_key = $1`,
		apiKey,
	).Scan(&creds.Username, &path, &profile)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Credentials{}, ErrNotFound
	}
	if err != nil {
		metrics.RecordStoreError()
		return model.Credentials{}, fmt.Errorf("resolve api key: %w", err)
	}
	creds.ProfilePath = path.String
	creds.ProfileID = profile.String
	return creds, nil
}

// SetProfile updates a user's game install configuration. Used by the
// admin tooling; the service itself never writes user rows.
func (s *PostgresStore) SetProfile(ctx context.Context, username, profilePath, profileID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET profile_path = $1, profile_id = $2 WHERE username = $3`,
		profilePath, profileID, username,
	)
	if err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

// CreateUser inserts a user row with a freshly generated API key.
func (s *PostgresStore) CreateUser(ctx context.Context, username, password string) (string, error) {
	apiKey := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password, api_key) VALUES ($1, $2, $3)`,
		username, password, apiKey,
	)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return apiKey, nil
}
