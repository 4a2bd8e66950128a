package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/filedash/filedash/internal/domain"
	"github.com/filedash/filedash/internal/domain/event"
	"github.com/filedash/filedash/internal/metrics"
)

// Load fetches the current location's direct children and replaces the
// content cache with the response. Root loads issue two parallel
// requests (root folders, root files); folder loads issue one details
// request. A response that resolves after the user has navigated
// elsewhere, or after a newer load has started, is silently discarded:
// the cache only ever reflects the latest load for the current
// location. A failed load leaves the previous contents untouched and
// never leaves the loading flag stuck.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	loc := s.current
	s.loading = true
	s.mu.Unlock()

	fetched, err := s.fetchContents(ctx, loc)
	if err != nil {
		s.mu.Lock()
		if seq == s.loadSeq {
			s.loading = false
		}
		s.mu.Unlock()
		s.notifyError("load-contents", "Failed to load contents")
		return err
	}

	s.mu.Lock()
	if seq != s.loadSeq || loc != s.current {
		s.mu.Unlock()
		metrics.StaleResponseDropped()
		s.logger.Debug("stale content load dropped",
			zap.String("location", loc.String()),
		)
		return nil
	}
	s.contents = fetched
	s.reconcileSelectionLocked()
	s.loading = false
	s.mu.Unlock()

	s.events.Dispatch(event.NewContentRefreshed(loc.String(), len(fetched.Folders), len(fetched.Files)))
	return nil
}

// fetchContents issues the gateway requests for one location
func (s *Session) fetchContents(ctx context.Context, loc domain.ItemID) (domain.Contents, error) {
	if !loc.IsZero() {
		return s.gw.FolderDetails(ctx, loc)
	}

	var (
		wg      sync.WaitGroup
		folders []domain.Folder
		files   []domain.File
		ferr    error
		merr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		folders, ferr = s.gw.ListRootFolders(ctx)
	}()
	go func() {
		defer wg.Done()
		files, merr = s.gw.ListRootFiles(ctx)
	}()
	wg.Wait()

	if ferr != nil {
		return domain.Contents{}, ferr
	}
	if merr != nil {
		return domain.Contents{}, merr
	}
	return domain.Contents{Folders: folders, Files: files}, nil
}

// LoadFavorites fetches the favorites list. It is not location-scoped,
// so there is no staleness to guard against; the last response wins.
func (s *Session) LoadFavorites(ctx context.Context) error {
	favs, err := s.gw.ListFavorites(ctx)
	if err != nil {
		s.notifyError("load-favorites", "Failed to load favorites")
		return err
	}

	s.mu.Lock()
	s.favorites = favs
	if s.favScope {
		s.reconcileSelectionLocked()
	}
	s.mu.Unlock()

	s.events.Dispatch(event.NewFavoritesRefreshed(len(favs.Files), len(favs.Folders)))
	return nil
}

// Refresh reloads both the content cache and the favorites list
func (s *Session) Refresh(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	return s.LoadFavorites(ctx)
}

// Contents returns a copy of the cached folders and files for the
// current location as of the most recent completed load.
func (s *Session) Contents() domain.Contents {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyContents(s.contents)
}

// Favorites returns a copy of the cached favorites list
func (s *Session) Favorites() domain.FavoriteSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.FavoriteSet{
		Files:   append([]domain.File(nil), s.favorites.Files...),
		Folders: append([]domain.Folder(nil), s.favorites.Folders...),
	}
}

// Loading reports whether a content load is in flight
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func copyContents(c domain.Contents) domain.Contents {
	return domain.Contents{
		Folders: append([]domain.Folder(nil), c.Folders...),
		Files:   append([]domain.File(nil), c.Files...),
	}
}
