package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/stepstats/internal/domain/model"
)

// SubmitHandler handles score submissions.
type SubmitHandler struct {
	deps Dependencies
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(deps Dependencies) *SubmitHandler {
	return &SubmitHandler{deps: deps}
}

// submitRequest mirrors the score client's upload payload. The numeric
// fields decode through json.Number so a coercion failure surfaces as a
// named missing field instead of a generic decode error.
type submitRequest struct {
	APIKey     string      `json:"api_key"`
	SongDir    string      `json:"song_dir"`
	Difficulty string      `json:"difficulty"`
	StepsType  string      `json:"steps_type"`
	Grade      string      `json:"grade"`
	Score      json.Number `json:"score"`
	PercentDP  json.Number `json:"percent_dp"`
	MaxCombo   json.Number `json:"max_combo"`
	DateTime   string      `json:"date_time"`
	PlayerGUID string      `json:"player_guid"`
	PlayerName string      `json:"player_name"`
}

// toSubmission coerces the numeric fields. A field that fails coercion
// stays zero and gets reported by the service's validation pass together
// with every other violation.
func (r submitRequest) toSubmission() model.Submission {
	score, _ := r.Score.Int64()
	percentDP, _ := r.PercentDP.Float64()
	maxCombo, _ := r.MaxCombo.Int64()
	return model.Submission{
		SongDir:    r.SongDir,
		Difficulty: r.Difficulty,
		StepsType:  r.StepsType,
		Grade:      r.Grade,
		Score:      score,
		PercentDP:  percentDP,
		MaxCombo:   maxCombo,
		DateTime:   r.DateTime,
		PlayerGUID: r.PlayerGUID,
		PlayerName: r.PlayerName,
	}
}

// HandleSubmit handles POST /api/submit_stats requests.
func (h *SubmitHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest)
		return
	}
	if err := h.deps.SubmitScore(r.Context(), req.APIKey, req.toSubmission()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, "score recorded successfully")
}
