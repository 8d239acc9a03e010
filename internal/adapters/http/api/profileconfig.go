package api

import (
	"encoding/json"
	"net/http"
)

// ConfigHandler serves the stored per-user install configuration.
type ConfigHandler struct {
	deps Dependencies
}

// NewConfigHandler creates a new config handler.
func NewConfigHandler(deps Dependencies) *ConfigHandler {
	return &ConfigHandler{deps: deps}
}

type configResponse struct {
	Status      string `json:"status"`
	ProfilePath string `json:"profile_path"`
	ProfileID   string `json:"profile_id"`
}

// HandleGetConfig handles POST /api/get_config requests.
func (h *ConfigHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req apiKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest)
		return
	}
	creds, err := h.deps.StoredConfig(r.Context(), req.APIKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configResponse{
		Status:      "success",
		ProfilePath: creds.ProfilePath,
		ProfileID:   creds.ProfileID,
	})
}
