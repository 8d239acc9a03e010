// Package model contains domain models passed between layers.
package model

// Submission carries the ten client-supplied fields of a score upload.
// All fields are required; validation happens in the ingestion service.
type Submission struct {
	SongDir    string  // chart identifier, e.g. "Songs/StepMix 1/Impossible Fidelity"
	Difficulty string  // e.g. "Challenge"
	StepsType  string  // play-mode tag, e.g. "dance-single"
	Grade      string  // letter/rank label, e.g. "Tier03"
	Score      int64   // raw score, non-negative
	PercentDP  float64 // accuracy fraction in [0,1]
	MaxCombo   int64   // longest combo, non-negative
	DateTime   string  // client-side timestamp string
	PlayerGUID string  // per-install player identifier
	PlayerName string  // display label used for leaderboard grouping
}

// ScoreRecord is a stored score row. Records are append-only: once written
// they are never updated or deleted, and aggregates sum every row.
type ScoreRecord struct {
	ID         int64 // surrogate key assigned by the store
	SongDir    string
	Difficulty string
	StepsType  string
	Grade      string
	Score      int64
	PercentDP  float64
	MaxCombo   int64
	DateTime   string
	PlayerGUID string
	PlayerName string
	ProfileID  string // foreign key to the externally owned profile, never empty
}

// NewScoreRecord builds an unsaved record from a validated submission and
// the profile id resolved from the caller's API key.
func NewScoreRecord(sub Submission, profileID string) ScoreRecord {
	return ScoreRecord{
		SongDir:    sub.SongDir,
		Difficulty: sub.Difficulty,
		StepsType:  sub.StepsType,
		Grade:      sub.Grade,
		Score:      sub.Score,
		PercentDP:  sub.PercentDP,
		MaxCombo:   sub.MaxCombo,
		DateTime:   sub.DateTime,
		PlayerGUID: sub.PlayerGUID,
		PlayerName: sub.PlayerName,
		ProfileID:  profileID,
	}
}

// Credentials is what the credential resolver returns for an API key.
// ProfilePath and ProfileID mirror the user's on-disk game install
// configuration; ProfileID may be empty until the user configures it.
type Credentials struct {
	Username    string
	ProfilePath string
	ProfileID   string
}

// PlayerTotal is one leaderboard row: all stored scores sharing a
// player_name summed together. Two profiles sharing a display name are
// merged on purpose.
type PlayerTotal struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"player_name"`
	TotalScore int64  `json:"total_score"`
}
