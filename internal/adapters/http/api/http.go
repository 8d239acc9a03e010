// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/stepstats/internal/app"
	"github.com/okian/stepstats/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitScore ingests one validated score submission.
	SubmitScore(ctx context.Context, apiKey string, sub model.Submission) error

	// Read operations expose derived aggregates and stored configuration.
	RankingInfo(ctx context.Context, apiKey string) (app.RankingInfo, error)
	StoredConfig(ctx context.Context, apiKey string) (model.Credentials, error)
	Leaderboard(ctx context.Context, n int) ([]model.PlayerTotal, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	submitHandler      *SubmitHandler
	rankingHandler     *RankingHandler
	configHandler      *ConfigHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers. maxLeaderboard
// caps GET /leaderboard?limit.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboard int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		submitHandler:      NewSubmitHandler(deps),
		rankingHandler:     NewRankingHandler(deps),
		configHandler:      NewConfigHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboard),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/submit_stats", MetricsMiddleware(s.submitHandler.HandleSubmit, "submit_stats"))
	mux.HandleFunc("/api/get_ranking_info", MetricsMiddleware(s.rankingHandler.HandleRankingInfo, "get_ranking_info"))
	mux.HandleFunc("/api/get_config", MetricsMiddleware(s.configHandler.HandleGetConfig, "get_config"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

// statusResponse is the success/error envelope the score client expects.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: message})
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, statusResponse{Status: "error", Message: msg})
}
