package api

import (
	"encoding/json"
	"net/http"
)

// RankingHandler serves per-profile aggregate info.
type RankingHandler struct {
	deps Dependencies
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps Dependencies) *RankingHandler {
	return &RankingHandler{deps: deps}
}

type apiKeyRequest struct {
	APIKey string `json:"api_key"`
}

type rankingResponse struct {
	Status          string  `json:"status"`
	TotalPoints     int64   `json:"total_points"`
	AvgPercentDP    float64 `json:"avg_percent_dp"`
	Tier            string  `json:"tier"`
	Level           int     `json:"level"`
	FormattedPoints string  `json:"formatted_points"`
	DisplayName     string  `json:"display_name,omitempty"`
}

// HandleRankingInfo handles POST /api/get_ranking_info requests.
func (h *RankingHandler) HandleRankingInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req apiKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest)
		return
	}
	info, err := h.deps.RankingInfo(r.Context(), req.APIKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankingResponse{
		Status:          "success",
		TotalPoints:     info.TotalPoints,
		AvgPercentDP:    info.AvgPercentDP,
		Tier:            info.Tier,
		Level:           info.Level,
		FormattedPoints: info.FormattedPoints,
		DisplayName:     info.DisplayName,
	})
}
