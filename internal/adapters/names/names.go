// Package names resolves profile display names from an on-disk
// key/value file owned by the game install, not by this service.
package names

import (
	"context"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Resolver maps profile ids to display names via a YAML file of
// `profile-id: name` pairs. The file is reloaded per lookup so edits on
// disk take effect without a restart; no state is cached in process.
type Resolver struct{}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// DisplayName returns the configured display name for profileID, or
// profileID unchanged when the path is empty, the file is unreadable, or
// the file has no entry for the id.
func (r *Resolver) DisplayName(_ context.Context, path, profileID string) string {
	if path == "" || profileID == "" {
		return profileID
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return profileID
	}
	if name := k.String(profileID); name != "" {
		return name
	}
	return profileID
}
