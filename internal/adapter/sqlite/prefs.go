package sqlite

import (
	"github.com/filedash/filedash/internal/port"
)

// Preference keys.
const (
	keyViewMode     = "view_mode"
	keyLastLocation = "last_location"
)

// PrefsStore implements port.PrefsStore on top of the prefs table,
// scoped to one profile.
type PrefsStore struct {
	store   *Store
	profile string
}

// Ensure PrefsStore implements port.PrefsStore
var _ port.PrefsStore = (*PrefsStore)(nil)

// NewPrefsStore opens the preferences database for one profile.
func NewPrefsStore(dbPath, profile string) (*PrefsStore, error) {
	if profile == "" {
		profile = "default"
	}
	store, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &PrefsStore{store: store, profile: profile}, nil
}

// ViewMode returns the stored view mode, defaulting to grid.
func (p *PrefsStore) ViewMode() (string, error) {
	mode, err := p.store.get(p.profile, keyViewMode)
	if err != nil {
		return "", err
	}
	if mode == "" {
		return port.ViewGrid, nil
	}
	return mode, nil
}

// SetViewMode stores the view mode.
func (p *PrefsStore) SetViewMode(mode string) error {
	return p.store.set(p.profile, keyViewMode, mode)
}

// LastLocation returns the folder id the profile last viewed; empty
// means the root scope.
func (p *PrefsStore) LastLocation() (string, error) {
	return p.store.get(p.profile, keyLastLocation)
}

// SetLastLocation stores the folder id the profile is viewing.
func (p *PrefsStore) SetLastLocation(id string) error {
	return p.store.set(p.profile, keyLastLocation, id)
}

// Close releases the underlying database.
func (p *PrefsStore) Close() error {
	return p.store.Close()
}
