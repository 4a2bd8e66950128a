package session

import (
	"github.com/filedash/filedash/internal/domain"

	"go.uber.org/zap"
)

// Navigation manipulates local state only and cannot fail beyond input
// validation; an unresolvable folder id surfaces later as a content
// load error, not here. Every location change clears the selection.
// The caller follows a navigation call with Load.

// EnterFolder pushes a folder onto the breadcrumb path and makes it the
// current location.
func (s *Session) EnterFolder(id domain.ItemID, name string) error {
	if id.IsZero() {
		return domain.NewValidationError("folder id", domain.ErrEmptyFolderID)
	}

	s.mu.Lock()
	s.path = append(s.path, domain.FolderRef{ID: id, Name: name})
	s.current = id
	s.favScope = false
	s.selection = make(map[domain.ItemRef]struct{})
	s.mu.Unlock()

	s.persistLocation(id.String())
	return nil
}

// NavigateUp pops the last breadcrumb entry. At the root it is a no-op.
func (s *Session) NavigateUp() {
	s.mu.Lock()
	if len(s.path) > 0 {
		s.path = s.path[:len(s.path)-1]
	}
	if len(s.path) > 0 {
		s.current = s.path[len(s.path)-1].ID
	} else {
		s.current = ""
	}
	current := s.current
	s.selection = make(map[domain.ItemRef]struct{})
	s.mu.Unlock()

	s.persistLocation(current.String())
}

// ResetTo truncates the breadcrumb path to the given index (the entry
// clicked in the breadcrumb bar) and makes that entry current.
// Index -1 resets to the root scope.
func (s *Session) ResetTo(index int) error {
	s.mu.Lock()
	if index < -1 || index >= len(s.path) {
		s.mu.Unlock()
		return domain.NewValidationError("breadcrumb index", domain.ErrBadPathIndex)
	}

	if index == -1 {
		s.path = nil
		s.current = ""
	} else {
		s.path = s.path[:index+1]
		s.current = s.path[index].ID
	}
	current := s.current
	s.favScope = false
	s.selection = make(map[domain.ItemRef]struct{})
	s.mu.Unlock()

	s.persistLocation(current.String())
	return nil
}

// EnterFavoritesView switches the visible listing to the favorites
// scope without touching the breadcrumb path.
func (s *Session) EnterFavoritesView() {
	s.mu.Lock()
	s.favScope = true
	s.selection = make(map[domain.ItemRef]struct{})
	s.mu.Unlock()
}

// ExitFavoritesView returns the visible listing to the current location.
func (s *Session) ExitFavoritesView() {
	s.mu.Lock()
	s.favScope = false
	s.selection = make(map[domain.ItemRef]struct{})
	s.mu.Unlock()
}

// InFavoritesView reports whether the favorites scope is active
func (s *Session) InFavoritesView() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favScope
}

// CurrentFolder returns the current location's folder id; zero at root
func (s *Session) CurrentFolder() domain.ItemID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// AtRoot reports whether the current location is the root scope
func (s *Session) AtRoot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.IsZero()
}

// Path returns a copy of the breadcrumb path, root to current
func (s *Session) Path() []domain.FolderRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.FolderRef, len(s.path))
	copy(out, s.path)
	return out
}

// persistLocation stores the last viewed location, best effort
func (s *Session) persistLocation(id string) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.SetLastLocation(id); err != nil {
		s.logger.Debug("failed to persist location", zap.Error(err))
	}
}
