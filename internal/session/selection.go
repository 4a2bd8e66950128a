package session

import (
	"sort"
	"strings"

	"github.com/filedash/filedash/internal/domain"
)

// Filter returns the subset of contents whose names contain the query,
// case-insensitively. An empty query returns the input unchanged. It is
// a pure function: the same cache and query always derive the same
// view.
func Filter(query string, c domain.Contents) domain.Contents {
	if query == "" {
		return c
	}
	q := strings.ToLower(query)

	out := domain.Contents{}
	for _, folder := range c.Folders {
		if strings.Contains(strings.ToLower(folder.Name), q) {
			out.Folders = append(out.Folders, folder)
		}
	}
	for _, file := range c.Files {
		if strings.Contains(strings.ToLower(file.Filename), q) {
			out.Files = append(out.Files, file)
		}
	}
	return out
}

// SetQuery updates the search query. The selection is intentionally
// left alone: filtering an item out of view does not deselect it.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
}

// Query returns the current search query
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Visible derives what the user currently sees: the filtered contents
// of the current location, or of the top-level favorites when the
// favorites view is active.
func (s *Session) Visible() domain.Contents {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := s.contents
	if s.favScope {
		roots := s.favorites.Roots()
		source = domain.Contents{Folders: roots.Folders, Files: roots.Files}
	}
	return Filter(s.query, copyContents(source))
}

// Select adds or removes an item from the multi-select set. Both
// directions are idempotent: re-adding a member and removing a
// non-member are no-ops.
func (s *Session) Select(id domain.ItemID, typ domain.ItemType, selected bool) error {
	if !typ.Valid() {
		return domain.NewValidationError("item type", domain.ErrInvalidInput)
	}

	ref := domain.ItemRef{ID: id, Type: typ}
	s.mu.Lock()
	if selected {
		s.selection[ref] = struct{}{}
	} else {
		delete(s.selection, ref)
	}
	s.mu.Unlock()
	return nil
}

// IsSelected reports membership in the multi-select set
func (s *Session) IsSelected(id domain.ItemID, typ domain.ItemType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selection[domain.ItemRef{ID: id, Type: typ}]
	return ok
}

// Selected returns the selected items in a stable order
func (s *Session) Selected() []domain.ItemRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ItemRef, 0, len(s.selection))
	for ref := range s.selection {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SelectedCount returns the size of the multi-select set
func (s *Session) SelectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selection)
}

// ClearSelection empties the multi-select set
func (s *Session) ClearSelection() {
	s.mu.Lock()
	s.selection = make(map[domain.ItemRef]struct{})
	s.mu.Unlock()
}

// reconcileSelectionLocked drops selection entries for items no longer
// present in the freshly loaded view. Callers hold s.mu.
func (s *Session) reconcileSelectionLocked() {
	source := s.contents
	if s.favScope {
		roots := s.favorites.Roots()
		source = domain.Contents{Folders: roots.Folders, Files: roots.Files}
	}
	for ref := range s.selection {
		if !source.Contains(ref) {
			delete(s.selection, ref)
		}
	}
}
