package app

import (
	"errors"
	"strings"
)

// Sentinel kinds for service errors.
var (
	// ErrMissingAPIKey means the request carried no API key at all.
	ErrMissingAPIKey = errors.New("api key not provided")

	// ErrUnauthorized means the API key resolved to no user.
	ErrUnauthorized = errors.New("user not authorized")

	// ErrUnknownUser is the read-path flavor of an unresolvable key.
	ErrUnknownUser = errors.New("user not found")

	// ErrNoProfile means the user never configured a game profile, so
	// there is nothing to attach scores to.
	ErrNoProfile = errors.New("profile not configured")

	// ErrDuplicate means the duplicate policy rejected the submission.
	ErrDuplicate = errors.New("score already exists; duplicate not recorded")
)

// ValidationError lists every missing or non-coercible submission field.
// The whole list is collected before failing, so clients see all problems
// in one round trip.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing data for score submission: " + strings.Join(e.Fields, ", ")
}
