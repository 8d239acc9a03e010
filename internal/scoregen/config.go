// Package scoregen generates synthetic score submissions against a
// running stepstats server and verifies the duplicate policy and the
// resulting aggregates end to end.
package scoregen

import "time"

// Config holds configuration for a generator run.
type Config struct {
	BaseURL string        // Base URL of the service
	APIKey  string        // API key of the submitting account
	Count   int           // Number of submissions to generate
	Players int           // Number of distinct player GUIDs to spread over
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Enable verbose logging
}

// Submission mirrors the wire payload of POST /api/submit_stats.
type Submission struct {
	APIKey     string  `json:"api_key"`
	SongDir    string  `json:"song_dir"`
	Difficulty string  `json:"difficulty"`
	StepsType  string  `json:"steps_type"`
	Grade      string  `json:"grade"`
	Score      int64   `json:"score"`
	PercentDP  float64 `json:"percent_dp"`
	MaxCombo   int64   `json:"max_combo"`
	DateTime   string  `json:"date_time"`
	PlayerGUID string  `json:"player_guid"`
	PlayerName string  `json:"player_name"`
}

// statusResponse is the server's success/error envelope.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// rankingResponse mirrors POST /api/get_ranking_info output.
type rankingResponse struct {
	Status          string  `json:"status"`
	TotalPoints     int64   `json:"total_points"`
	AvgPercentDP    float64 `json:"avg_percent_dp"`
	Tier            string  `json:"tier"`
	Level           int     `json:"level"`
	FormattedPoints string  `json:"formatted_points"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Accepted   int
	Duplicates int
	Failed     int
	StartTime  time.Time
	Duration   time.Duration
}
