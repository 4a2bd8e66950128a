// Package session implements the dashboard session core: navigation
// state, the content cache, filtering and multi-select, and the
// mutation coordinator that sequences gateway operations and refreshes
// cached state after they succeed.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/filedash/filedash/internal/domain"
	"github.com/filedash/filedash/internal/domain/event"
	"github.com/filedash/filedash/internal/port"
	"github.com/filedash/filedash/internal/util/ratelimiter"
)

// Config holds session settings
type Config struct {
	// DownloadDir is where downloads are saved. Empty falls back to
	// the OS temp directory.
	DownloadDir string

	// NotifyThrottle limits how often the same error notification can
	// be re-raised. Zero disables throttling.
	NotifyThrottle time.Duration
}

// Session owns all dashboard state for one authenticated profile:
// breadcrumb path, content cache, favorites, filter query, selection
// and transfer flags. State is mutated only by the session's own
// methods; collaborators read derived views and subscribe to events.
// All methods are safe for concurrent use.
type Session struct {
	gw       port.Gateway
	prefs    port.PrefsStore
	events   event.EventDispatcher
	logger   *zap.Logger
	throttle *ratelimiter.Keyed

	downloadDir string

	mu        sync.Mutex
	path      []domain.FolderRef
	current   domain.ItemID // zero means the root scope
	contents  domain.Contents
	favorites domain.FavoriteSet
	selection map[domain.ItemRef]struct{}
	query     string
	viewMode  string
	favScope  bool
	loading   bool
	uploading bool
	loadSeq   uint64
	tempFiles map[string]struct{}
}

// New creates a session. prefs may be nil when no preference
// persistence is wanted; events may be nil when nobody subscribes.
func New(cfg *Config, gw port.Gateway, prefs port.PrefsStore, events event.EventDispatcher, logger *zap.Logger) *Session {
	if cfg == nil {
		cfg = &Config{}
	}
	if events == nil {
		events = event.NewNullDispatcher()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var throttle *ratelimiter.Keyed
	if cfg.NotifyThrottle > 0 {
		throttle = ratelimiter.NewKeyed(cfg.NotifyThrottle)
	}

	s := &Session{
		gw:          gw,
		prefs:       prefs,
		events:      events,
		logger:      logger,
		throttle:    throttle,
		downloadDir: cfg.DownloadDir,
		selection:   make(map[domain.ItemRef]struct{}),
		tempFiles:   make(map[string]struct{}),
		viewMode:    port.ViewGrid,
	}

	if prefs != nil {
		if mode, err := prefs.ViewMode(); err == nil && mode != "" {
			s.viewMode = mode
		}
	}
	return s
}

// Close tears the session down: any partially written download files
// are removed. The prefs store is owned by the caller and stays open.
func (s *Session) Close() error {
	s.mu.Lock()
	temps := make([]string, 0, len(s.tempFiles))
	for p := range s.tempFiles {
		temps = append(temps, p)
	}
	s.tempFiles = make(map[string]struct{})
	s.mu.Unlock()

	removeAll(temps)
	return nil
}

// ViewMode returns the current listing view mode
func (s *Session) ViewMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

// SetViewMode updates the listing view mode and persists it
func (s *Session) SetViewMode(mode string) error {
	if mode != port.ViewGrid && mode != port.ViewList {
		return domain.NewValidationError("view mode", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	s.viewMode = mode
	prefs := s.prefs
	s.mu.Unlock()

	if prefs != nil {
		return prefs.SetViewMode(mode)
	}
	return nil
}

// notifyError raises a throttled user-visible error notification
func (s *Session) notifyError(key, message string) {
	if s.throttle != nil {
		if ok, _ := s.throttle.Allow(key); !ok {
			return
		}
	}
	s.events.Dispatch(event.NewNotification(event.LevelError, message))
}

// notifySuccess raises a user-visible success notification
func (s *Session) notifySuccess(message string) {
	s.events.Dispatch(event.NewNotification(event.LevelSuccess, message))
}

// CreateFolder creates a folder in the current location and reloads it.
// The name is validated before any network call.
func (s *Session) CreateFolder(ctx context.Context, name string) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.notifyError("create-folder-name", "Folder name cannot be empty")
		return nil, domain.NewValidationError("folder name", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	parent := s.current
	s.mu.Unlock()

	folder, err := s.gw.CreateFolder(ctx, name, parent)
	if err != nil {
		s.notifyError("create-folder", "Failed to create folder")
		return nil, err
	}

	s.notifySuccess("Folder created successfully")
	if err := s.Load(ctx); err != nil {
		s.logger.Warn("refresh after folder create failed", zap.Error(err))
	}
	return folder, nil
}

// RenameItem renames a file or folder and reloads both the content
// cache and the favorites list, since a favorited item's display name
// may have changed.
func (s *Session) RenameItem(ctx context.Context, ref domain.ItemRef, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		s.notifyError("rename-name", "Name cannot be empty")
		return domain.NewValidationError("name", domain.ErrInvalidInput)
	}
	if !ref.Type.Valid() {
		return domain.NewValidationError("item type", domain.ErrInvalidInput)
	}

	var err error
	switch ref.Type {
	case domain.TypeFolder:
		err = s.gw.RenameFolder(ctx, ref.ID, newName)
	case domain.TypeFile:
		err = s.gw.RenameFile(ctx, ref.ID, newName)
	}
	if err != nil {
		s.notifyError("rename", "Rename failed")
		return err
	}

	s.notifySuccess("Renamed successfully")
	s.refreshAfterMutation(ctx)
	return nil
}

// DeleteItem deletes a file or folder and reloads the content cache and
// favorites list. Destructive-action confirmation is the caller's job;
// by the time this runs the decision has been made.
func (s *Session) DeleteItem(ctx context.Context, ref domain.ItemRef) error {
	if !ref.Type.Valid() {
		return domain.NewValidationError("item type", domain.ErrInvalidInput)
	}

	var err error
	switch ref.Type {
	case domain.TypeFolder:
		err = s.gw.DeleteFolder(ctx, ref.ID)
	case domain.TypeFile:
		err = s.gw.DeleteFile(ctx, ref.ID)
	}
	if err != nil {
		s.notifyError("delete", "Delete failed")
		return err
	}

	s.mu.Lock()
	delete(s.selection, ref)
	s.mu.Unlock()

	s.notifySuccess("Deleted successfully")
	s.refreshAfterMutation(ctx)
	return nil
}

// DeleteSelected deletes every currently selected item, then clears the
// selection and reloads. Items the gateway refuses are reported once
// and do not stop the rest of the batch.
func (s *Session) DeleteSelected(ctx context.Context) error {
	refs := s.Selected()
	if len(refs) == 0 {
		return nil
	}

	var firstErr error
	for _, ref := range refs {
		var err error
		switch ref.Type {
		case domain.TypeFolder:
			err = s.gw.DeleteFolder(ctx, ref.ID)
		case domain.TypeFile:
			err = s.gw.DeleteFile(ctx, ref.ID)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	s.ClearSelection()

	if firstErr != nil {
		s.notifyError("delete-selected", "Some items could not be deleted")
	} else {
		s.notifySuccess("Deleted successfully")
	}
	s.refreshAfterMutation(ctx)
	return firstErr
}

// ToggleFavorite flips the favorite state of an item. The request is
// chosen by current membership: favorited items get a remove, others an
// add. Returns the new favorite state. When an item is unfavorited
// while the favorites view is active the content cache reloads too, so
// the item disappears from view immediately.
func (s *Session) ToggleFavorite(ctx context.Context, id domain.ItemID, typ domain.ItemType) (bool, error) {
	if !typ.Valid() {
		return false, domain.NewValidationError("item type", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	wasFavorite := s.favorites.IsFavorite(id, typ)
	inFavScope := s.favScope
	s.mu.Unlock()

	ref := domain.ItemRef{ID: id, Type: typ}
	var err error
	if wasFavorite {
		err = s.gw.RemoveFavorite(ctx, ref)
	} else {
		err = s.gw.AddFavorite(ctx, ref)
	}
	if err != nil {
		if wasFavorite {
			s.notifyError("favorite-remove", "Failed to remove from favorites")
		} else {
			s.notifyError("favorite-add", "Failed to add to favorites")
		}
		return wasFavorite, err
	}

	if wasFavorite {
		s.notifySuccess("Removed from favorites")
	} else {
		s.notifySuccess("Added to favorites")
	}

	if err := s.LoadFavorites(ctx); err != nil {
		s.logger.Warn("favorites refresh failed", zap.Error(err))
	}
	if wasFavorite && inFavScope {
		if err := s.Load(ctx); err != nil {
			s.logger.Warn("content refresh failed", zap.Error(err))
		}
	}
	return !wasFavorite, nil
}

// IsFavorite reports whether the item is currently favorited
func (s *Session) IsFavorite(id domain.ItemID, typ domain.ItemType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.IsFavorite(id, typ)
}

// refreshAfterMutation reloads the content cache and favorites list.
// Only called after a mutation's success response has been observed.
func (s *Session) refreshAfterMutation(ctx context.Context) {
	if err := s.Load(ctx); err != nil {
		s.logger.Warn("content refresh failed", zap.Error(err))
	}
	if err := s.LoadFavorites(ctx); err != nil {
		s.logger.Warn("favorites refresh failed", zap.Error(err))
	}
}
