package port

// View modes for the dashboard listing.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

// PrefsStore persists per-profile presentation preferences across
// sessions. It replaces the ambient globals the dashboard used to keep
// (view mode, last visited location) with an explicit object owned by
// the session: opened on session start, closed on teardown.
type PrefsStore interface {
	// ViewMode returns the stored view mode, or ViewGrid if none is set.
	ViewMode() (string, error)

	// SetViewMode stores the view mode.
	SetViewMode(mode string) error

	// LastLocation returns the folder id the profile last viewed.
	// Empty means the root scope.
	LastLocation() (string, error)

	// SetLastLocation stores the folder id the profile is viewing.
	SetLastLocation(id string) error

	// Close releases the store.
	Close() error
}

// TokenSource supplies the bearer credential attached to every gateway
// request. Authentication itself is an external concern; the session
// only needs to know whether a usable credential exists.
type TokenSource interface {
	// Token returns the current bearer token. It returns
	// domain.ErrNotAuthenticated (possibly wrapped) when no usable
	// credential is available, and the caller is expected to redirect
	// to its login flow.
	Token() (string, error)
}
