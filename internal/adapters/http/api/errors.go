package api

import (
	"errors"
	"net/http"

	"github.com/okian/stepstats/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// writeServiceError translates service-layer errors to HTTP statuses:
// missing key 400, unresolved key 401 (writes) / 404 (reads), validation
// and duplicate rejections 400, anything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *app.ValidationError
	switch {
	case errors.Is(err, app.ErrMissingAPIKey):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, app.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, app.ErrUnknownUser):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, app.ErrNoProfile):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, app.ErrDuplicate):
		writeError(w, http.StatusBadRequest, err)
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
