package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/filedash/filedash/internal/domain"
	"github.com/filedash/filedash/internal/domain/event"
	"github.com/filedash/filedash/internal/port"
)

// fakeGateway is an in-memory port.Gateway. Per-op errors are injected
// through failing; detailsHook and uploadHook let tests hold a call
// open to exercise the concurrency paths.
type fakeGateway struct {
	mu sync.Mutex

	rootFolders []domain.Folder
	rootFiles   []domain.File
	details     map[domain.ItemID]domain.Contents
	favorites   domain.FavoriteSet

	failing map[string]error
	calls   map[string]int

	detailsHook func(id domain.ItemID)
	uploadHook  func()

	uploadedNames   []string
	uploadedFolders []domain.ItemID
	uploadedBodies  []string
	downloadData    []byte
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		details: make(map[domain.ItemID]domain.Contents),
		failing: make(map[string]error),
		calls:   make(map[string]int),
	}
}

func (g *fakeGateway) record(op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[op]++
	return g.failing[op]
}

func (g *fakeGateway) callCount(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *fakeGateway) fail(op string, err error) {
	g.mu.Lock()
	g.failing[op] = err
	g.mu.Unlock()
}

func (g *fakeGateway) setDetails(id domain.ItemID, c domain.Contents) {
	g.mu.Lock()
	g.details[id] = c
	g.mu.Unlock()
}

func (g *fakeGateway) ListRootFolders(ctx context.Context) ([]domain.Folder, error) {
	if err := g.record("ListRootFolders"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Folder(nil), g.rootFolders...), nil
}

func (g *fakeGateway) ListRootFiles(ctx context.Context) ([]domain.File, error) {
	if err := g.record("ListRootFiles"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.File(nil), g.rootFiles...), nil
}

func (g *fakeGateway) FolderDetails(ctx context.Context, id domain.ItemID) (domain.Contents, error) {
	if err := g.record("FolderDetails"); err != nil {
		return domain.Contents{}, err
	}
	g.mu.Lock()
	c := g.details[id]
	hook := g.detailsHook
	g.mu.Unlock()
	if hook != nil {
		hook(id)
	}
	return c, nil
}

func (g *fakeGateway) CreateFolder(ctx context.Context, name string, parentID domain.ItemID) (*domain.Folder, error) {
	if err := g.record("CreateFolder"); err != nil {
		return nil, err
	}
	return &domain.Folder{ID: "900", Name: name}, nil
}

func (g *fakeGateway) RenameFolder(ctx context.Context, id domain.ItemID, newName string) error {
	return g.record("RenameFolder")
}

func (g *fakeGateway) RenameFile(ctx context.Context, id domain.ItemID, newName string) error {
	return g.record("RenameFile")
}

func (g *fakeGateway) DeleteFolder(ctx context.Context, id domain.ItemID) error {
	return g.record("DeleteFolder")
}

func (g *fakeGateway) DeleteFile(ctx context.Context, id domain.ItemID) error {
	return g.record("DeleteFile")
}

func (g *fakeGateway) ListFavorites(ctx context.Context) (domain.FavoriteSet, error) {
	if err := g.record("ListFavorites"); err != nil {
		return domain.FavoriteSet{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.FavoriteSet{
		Files:   append([]domain.File(nil), g.favorites.Files...),
		Folders: append([]domain.Folder(nil), g.favorites.Folders...),
	}, nil
}

func (g *fakeGateway) AddFavorite(ctx context.Context, ref domain.ItemRef) error {
	if err := g.record("AddFavorite"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if ref.Type == domain.TypeFolder {
		g.favorites.Folders = append(g.favorites.Folders, domain.Folder{ID: ref.ID})
	} else {
		g.favorites.Files = append(g.favorites.Files, domain.File{ID: ref.ID})
	}
	return nil
}

func (g *fakeGateway) RemoveFavorite(ctx context.Context, ref domain.ItemRef) error {
	if err := g.record("RemoveFavorite"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if ref.Type == domain.TypeFolder {
		out := g.favorites.Folders[:0]
		for _, f := range g.favorites.Folders {
			if f.ID != ref.ID {
				out = append(out, f)
			}
		}
		g.favorites.Folders = out
	} else {
		out := g.favorites.Files[:0]
		for _, f := range g.favorites.Files {
			if f.ID != ref.ID {
				out = append(out, f)
			}
		}
		g.favorites.Files = out
	}
	return nil
}

func (g *fakeGateway) UploadFile(ctx context.Context, filename string, r io.Reader, folderID domain.ItemID) error {
	if err := g.record("UploadFile"); err != nil {
		return err
	}
	body, _ := io.ReadAll(r)
	g.mu.Lock()
	g.uploadedNames = append(g.uploadedNames, filename)
	g.uploadedFolders = append(g.uploadedFolders, folderID)
	g.uploadedBodies = append(g.uploadedBodies, string(body))
	hook := g.uploadHook
	g.mu.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

func (g *fakeGateway) UploadArchive(ctx context.Context, filename string, r io.Reader, folderID domain.ItemID) error {
	if err := g.record("UploadArchive"); err != nil {
		return err
	}
	body, _ := io.ReadAll(r)
	g.mu.Lock()
	g.uploadedNames = append(g.uploadedNames, filename)
	g.uploadedFolders = append(g.uploadedFolders, folderID)
	g.uploadedBodies = append(g.uploadedBodies, string(body))
	g.mu.Unlock()
	return nil
}

func (g *fakeGateway) DownloadFile(ctx context.Context, id domain.ItemID, w io.Writer) (int64, error) {
	if err := g.record("DownloadFile"); err != nil {
		return 0, err
	}
	n, err := w.Write(g.downloadData)
	return int64(n), err
}

func (g *fakeGateway) DownloadFolderArchive(ctx context.Context, id domain.ItemID, w io.Writer) (int64, error) {
	if err := g.record("DownloadFolderArchive"); err != nil {
		return 0, err
	}
	n, err := w.Write(g.downloadData)
	return int64(n), err
}

// fakePrefs is an in-memory port.PrefsStore.
type fakePrefs struct {
	mu       sync.Mutex
	viewMode string
	lastLoc  string
	setErr   error
	closed   bool
}

func (p *fakePrefs) ViewMode() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.viewMode == "" {
		return port.ViewGrid, nil
	}
	return p.viewMode, nil
}

func (p *fakePrefs) SetViewMode(mode string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.viewMode = mode
	return nil
}

func (p *fakePrefs) LastLocation() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastLoc, nil
}

func (p *fakePrefs) SetLastLocation(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.lastLoc = id
	return nil
}

func (p *fakePrefs) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// captureDispatcher records every dispatched event.
type captureDispatcher struct {
	mu     sync.Mutex
	events []event.DomainEvent
}

func (d *captureDispatcher) Dispatch(e event.DomainEvent) {
	d.mu.Lock()
	d.events = append(d.events, e)
	d.mu.Unlock()
}

func (d *captureDispatcher) Subscribe(h event.EventHandler)   {}
func (d *captureDispatcher) Unsubscribe(h event.EventHandler) {}

func (d *captureDispatcher) named(name string) []event.DomainEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []event.DomainEvent
	for _, e := range d.events {
		if e.EventName() == name {
			out = append(out, e)
		}
	}
	return out
}

func newTestSession(gw *fakeGateway) *Session {
	return New(nil, gw, nil, nil, nil)
}

func TestCreateFolderValidatesName(t *testing.T) {
	gw := newFakeGateway()
	s := newTestSession(gw)

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := s.CreateFolder(context.Background(), name); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("CreateFolder(%q) error = %v, want ErrInvalidInput", name, err)
		}
	}
	if got := gw.callCount("CreateFolder"); got != 0 {
		t.Errorf("gateway called %d times for invalid names, want 0", got)
	}
}

func TestCreateFolderRefreshesContents(t *testing.T) {
	gw := newFakeGateway()
	gw.rootFolders = []domain.Folder{{ID: "900", Name: "reports"}}
	s := newTestSession(gw)

	folder, err := s.CreateFolder(context.Background(), "  reports  ")
	if err != nil {
		t.Fatalf("CreateFolder() error = %v", err)
	}
	if folder.Name != "reports" {
		t.Errorf("created folder name = %q, want trimmed %q", folder.Name, "reports")
	}
	if got := gw.callCount("ListRootFolders"); got != 1 {
		t.Errorf("root folders fetched %d times after create, want 1", got)
	}
	if !s.Contents().ContainsFolder("900") {
		t.Error("content cache should include the new folder after refresh")
	}
}

func TestRenameItemDispatchesByType(t *testing.T) {
	tests := []struct {
		name    string
		ref     domain.ItemRef
		newName string
		wantOp  string
		wantErr error
	}{
		{
			name:    "folder rename",
			ref:     domain.ItemRef{ID: "7", Type: domain.TypeFolder},
			newName: "renamed",
			wantOp:  "RenameFolder",
		},
		{
			name:    "file rename",
			ref:     domain.ItemRef{ID: "abc-123", Type: domain.TypeFile},
			newName: "renamed.txt",
			wantOp:  "RenameFile",
		},
		{
			name:    "empty name",
			ref:     domain.ItemRef{ID: "7", Type: domain.TypeFolder},
			newName: "   ",
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown type",
			ref:     domain.ItemRef{ID: "7", Type: "link"},
			newName: "renamed",
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFakeGateway()
			s := newTestSession(gw)

			err := s.RenameItem(context.Background(), tt.ref, tt.newName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RenameItem() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RenameItem() error = %v", err)
			}
			if got := gw.callCount(tt.wantOp); got != 1 {
				t.Errorf("%s called %d times, want 1", tt.wantOp, got)
			}
			if got := gw.callCount("ListFavorites"); got != 1 {
				t.Errorf("favorites refreshed %d times after rename, want 1", got)
			}
		})
	}
}

func TestDeleteItemRemovesFromSelection(t *testing.T) {
	gw := newFakeGateway()
	s := newTestSession(gw)

	if err := s.Select("abc", domain.TypeFile, true); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if err := s.DeleteItem(context.Background(), domain.ItemRef{ID: "abc", Type: domain.TypeFile}); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}
	if s.IsSelected("abc", domain.TypeFile) {
		t.Error("deleted item should leave the selection")
	}
	if got := gw.callCount("DeleteFile"); got != 1 {
		t.Errorf("DeleteFile called %d times, want 1", got)
	}
}

func TestDeleteItemFailureKeepsState(t *testing.T) {
	gw := newFakeGateway()
	gw.fail("DeleteFolder", errors.New("boom"))
	s := newTestSession(gw)

	err := s.DeleteItem(context.Background(), domain.ItemRef{ID: "7", Type: domain.TypeFolder})
	if err == nil {
		t.Fatal("DeleteItem() should propagate the gateway error")
	}
	if got := gw.callCount("ListRootFolders"); got != 0 {
		t.Errorf("contents refreshed %d times after failed delete, want 0", got)
	}
}

func TestDeleteSelectedContinuesPastFailures(t *testing.T) {
	gw := newFakeGateway()
	gw.fail("DeleteFolder", errors.New("locked"))
	s := newTestSession(gw)

	s.Select("1", domain.TypeFolder, true)
	s.Select("abc", domain.TypeFile, true)
	s.Select("def", domain.TypeFile, true)

	err := s.DeleteSelected(context.Background())
	if err == nil {
		t.Fatal("DeleteSelected() should report the first failure")
	}
	if got := gw.callCount("DeleteFile"); got != 2 {
		t.Errorf("DeleteFile called %d times, want 2 (batch continues past failure)", got)
	}
	if s.SelectedCount() != 0 {
		t.Error("selection should be cleared after a batch delete")
	}
}

func TestDeleteSelectedEmptyIsNoop(t *testing.T) {
	gw := newFakeGateway()
	s := newTestSession(gw)

	if err := s.DeleteSelected(context.Background()); err != nil {
		t.Fatalf("DeleteSelected() with empty selection error = %v", err)
	}
	if got := gw.callCount("ListRootFolders"); got != 0 {
		t.Errorf("contents refreshed %d times for empty batch, want 0", got)
	}
}

func TestToggleFavoriteDoubleToggle(t *testing.T) {
	gw := newFakeGateway()
	s := newTestSession(gw)

	now, err := s.ToggleFavorite(context.Background(), "abc", domain.TypeFile)
	if err != nil {
		t.Fatalf("first toggle error = %v", err)
	}
	if !now {
		t.Error("first toggle should favorite the item")
	}
	if !s.IsFavorite("abc", domain.TypeFile) {
		t.Error("favorites cache should include the item after the refresh")
	}

	now, err = s.ToggleFavorite(context.Background(), "abc", domain.TypeFile)
	if err != nil {
		t.Fatalf("second toggle error = %v", err)
	}
	if now {
		t.Error("second toggle should unfavorite the item")
	}
	if s.IsFavorite("abc", domain.TypeFile) {
		t.Error("favorites cache should drop the item after the refresh")
	}

	if got := gw.callCount("AddFavorite"); got != 1 {
		t.Errorf("AddFavorite called %d times, want 1", got)
	}
	if got := gw.callCount("RemoveFavorite"); got != 1 {
		t.Errorf("RemoveFavorite called %d times, want 1", got)
	}
}

func TestToggleFavoriteFailureKeepsMembership(t *testing.T) {
	gw := newFakeGateway()
	gw.fail("AddFavorite", errors.New("boom"))
	s := newTestSession(gw)

	now, err := s.ToggleFavorite(context.Background(), "abc", domain.TypeFile)
	if err == nil {
		t.Fatal("toggle should propagate the gateway error")
	}
	if now {
		t.Error("failed add should leave the item unfavorited")
	}
	if got := gw.callCount("ListFavorites"); got != 0 {
		t.Errorf("favorites refreshed %d times after failed toggle, want 0", got)
	}
}

func TestUnfavoriteInFavoritesViewReloadsContents(t *testing.T) {
	gw := newFakeGateway()
	gw.favorites = domain.FavoriteSet{Files: []domain.File{{ID: "abc", Filename: "a.txt"}}}
	s := newTestSession(gw)

	if err := s.LoadFavorites(context.Background()); err != nil {
		t.Fatalf("LoadFavorites() error = %v", err)
	}
	s.EnterFavoritesView()

	if _, err := s.ToggleFavorite(context.Background(), "abc", domain.TypeFile); err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if got := gw.callCount("ListRootFolders"); got != 1 {
		t.Errorf("contents reloaded %d times after unfavorite in favorites view, want 1", got)
	}
}

func TestSetViewMode(t *testing.T) {
	prefs := &fakePrefs{}
	s := New(nil, newFakeGateway(), prefs, nil, nil)

	if err := s.SetViewMode(port.ViewList); err != nil {
		t.Fatalf("SetViewMode() error = %v", err)
	}
	if s.ViewMode() != port.ViewList {
		t.Errorf("ViewMode() = %q, want %q", s.ViewMode(), port.ViewList)
	}
	if prefs.lastLoc != "" && prefs.viewMode != port.ViewList {
		t.Errorf("stored view mode = %q, want %q", prefs.viewMode, port.ViewList)
	}

	if err := s.SetViewMode("mosaic"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("SetViewMode(mosaic) error = %v, want ErrInvalidInput", err)
	}
}

func TestNewRestoresViewModeFromPrefs(t *testing.T) {
	prefs := &fakePrefs{viewMode: port.ViewList}
	s := New(nil, newFakeGateway(), prefs, nil, nil)

	if s.ViewMode() != port.ViewList {
		t.Errorf("ViewMode() = %q, want restored %q", s.ViewMode(), port.ViewList)
	}
}

func TestMutationNotificationsDispatched(t *testing.T) {
	gw := newFakeGateway()
	disp := &captureDispatcher{}
	s := New(nil, gw, nil, disp, nil)

	if _, err := s.CreateFolder(context.Background(), "reports"); err != nil {
		t.Fatalf("CreateFolder() error = %v", err)
	}

	notes := disp.named("session.notification")
	if len(notes) == 0 {
		t.Fatal("expected a notification after a successful create")
	}
	n, ok := notes[0].(event.Notification)
	if !ok {
		t.Fatalf("notification event type = %T", notes[0])
	}
	if n.Level != event.LevelSuccess {
		t.Errorf("notification level = %q, want success", n.Level)
	}
}
