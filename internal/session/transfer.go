package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/filedash/filedash/internal/domain"
	"github.com/filedash/filedash/internal/domain/event"
)

// archiveMimeTypes are the declared content types accepted for archive
// uploads.
var archiveMimeTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

// looksLikeArchive checks a blob's declared name and type for a zip
// signature. The real validation happens server-side; this is the
// fail-fast check that spares a doomed upload.
func looksLikeArchive(filename, mimeType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".zip") {
		return true
	}
	return archiveMimeTypes[strings.ToLower(mimeType)]
}

// Uploading reports whether an upload is in flight. Callers use it to
// disable repeat submissions.
func (s *Session) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// beginUpload sets the uploading flag, refusing a second concurrent
// upload.
func (s *Session) beginUpload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploading {
		return domain.ErrUploadInFlight
	}
	s.uploading = true
	return nil
}

func (s *Session) endUpload() {
	s.mu.Lock()
	s.uploading = false
	s.mu.Unlock()
}

// UploadFile streams a file into the current location. The uploading
// flag is held for the duration and cleared on every outcome; an
// UploadFinished event fires either way so the caller can reset its
// input control.
func (s *Session) UploadFile(ctx context.Context, filename string, size int64, r io.Reader) error {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return domain.NewValidationError("filename", domain.ErrInvalidInput)
	}
	if err := s.beginUpload(); err != nil {
		return err
	}
	defer s.endUpload()

	s.mu.Lock()
	parent := s.current
	s.mu.Unlock()

	err := s.gw.UploadFile(ctx, filename, r, parent)
	if err != nil {
		s.events.Dispatch(event.NewUploadFinished(filename, false, size, err.Error()))
		s.notifyError("upload", "Upload failed")
		return err
	}

	s.events.Dispatch(event.NewUploadFinished(filename, false, size, ""))
	s.notifySuccess("Uploaded")
	if err := s.Load(ctx); err != nil {
		s.logger.Warn("refresh after upload failed", zap.Error(err))
	}
	return nil
}

// UploadArchive streams a zip archive the server expands into a folder
// structure. Blobs that do not look like archives are rejected before
// any network call.
func (s *Session) UploadArchive(ctx context.Context, filename, mimeType string, size int64, r io.Reader) error {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return domain.NewValidationError("filename", domain.ErrInvalidInput)
	}
	if !looksLikeArchive(filename, mimeType) {
		s.notifyError("upload-archive-type", "Only .zip archives are supported")
		return domain.NewValidationError("archive", domain.ErrNotAnArchive)
	}
	if err := s.beginUpload(); err != nil {
		return err
	}
	defer s.endUpload()

	s.mu.Lock()
	parent := s.current
	s.mu.Unlock()

	err := s.gw.UploadArchive(ctx, filename, r, parent)
	if err != nil {
		s.events.Dispatch(event.NewUploadFinished(filename, true, size, err.Error()))
		s.notifyError("upload-archive", "Archive upload failed")
		return err
	}

	s.events.Dispatch(event.NewUploadFinished(filename, true, size, ""))
	s.notifySuccess("Archive uploaded")
	if err := s.Load(ctx); err != nil {
		s.logger.Warn("refresh after archive upload failed", zap.Error(err))
	}
	return nil
}

// DownloadFile fetches a file's content and saves it under the
// download directory, returning the final path. Content streams into a
// transient partial file that is promoted on success and removed
// unconditionally on failure; Close sweeps any partials still held if
// the session is torn down mid-download.
func (s *Session) DownloadFile(ctx context.Context, file domain.File) (string, error) {
	return s.download(file.Filename, func(w io.Writer) (int64, error) {
		return s.gw.DownloadFile(ctx, file.ID, w)
	})
}

// DownloadFolderArchive fetches a folder as a zip and saves it under
// the download directory.
func (s *Session) DownloadFolderArchive(ctx context.Context, id domain.ItemID, name string) (string, error) {
	if id.IsZero() {
		return "", domain.NewValidationError("folder id", domain.ErrEmptyFolderID)
	}
	if name == "" {
		name = "folder"
	}
	return s.download(name+".zip", func(w io.Writer) (int64, error) {
		return s.gw.DownloadFolderArchive(ctx, id, w)
	})
}

// download runs one streaming fetch with the partial-file discipline
func (s *Session) download(filename string, fetch func(io.Writer) (int64, error)) (string, error) {
	dir := s.downloadDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".filedash-*.partial")
	if err != nil {
		return "", fmt.Errorf("failed to create partial file: %w", err)
	}
	tmpPath := tmp.Name()

	s.mu.Lock()
	s.tempFiles[tmpPath] = struct{}{}
	s.mu.Unlock()

	release := func() {
		s.mu.Lock()
		delete(s.tempFiles, tmpPath)
		s.mu.Unlock()
	}

	size, err := fetch(tmp)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		release()
		s.notifyError("download", "Download failed")
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		release()
		return "", fmt.Errorf("failed to finish partial file: %w", err)
	}

	target := uniqueTarget(dir, filename)
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		release()
		return "", fmt.Errorf("failed to place download: %w", err)
	}
	release()

	s.events.Dispatch(event.NewDownloadSaved(filename, target, size))
	s.notifySuccess("Download started")
	return target, nil
}

// uniqueTarget picks a non-clobbering path for a download
func uniqueTarget(dir, filename string) string {
	target := filepath.Join(dir, filename)
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return target
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// removeAll deletes the given paths, ignoring failures
func removeAll(paths []string) {
	for _, p := range paths {
		os.Remove(p)
	}
}
