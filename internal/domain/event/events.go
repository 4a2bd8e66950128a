package event

import (
	"time"
)

// DomainEvent is the interface for all session events
type DomainEvent interface {
	// EventName returns the name of the event
	EventName() string
	// OccurredAt returns when the event occurred
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// Notification levels
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notification is a user-visible message. The rendering collaborator
// subscribes to these; the session itself never talks to the screen.
type Notification struct {
	BaseEvent
	Level   string
	Message string
}

// EventName returns the event name
func (e Notification) EventName() string {
	return "session.notification"
}

// NewNotification creates a new Notification event
func NewNotification(level, message string) Notification {
	return Notification{
		BaseEvent: BaseEvent{Timestamp: time.Now()},
		Level:     level,
		Message:   message,
	}
}

// ContentRefreshed is raised after the content cache replaces its
// folders and files for a location.
type ContentRefreshed struct {
	BaseEvent
	LocationID string // empty for root
	Folders    int
	Files      int
}

// EventName returns the event name
func (e ContentRefreshed) EventName() string {
	return "content.refreshed"
}

// NewContentRefreshed creates a new ContentRefreshed event
func NewContentRefreshed(locationID string, folders, files int) ContentRefreshed {
	return ContentRefreshed{
		BaseEvent:  BaseEvent{Timestamp: time.Now()},
		LocationID: locationID,
		Folders:    folders,
		Files:      files,
	}
}

// FavoritesRefreshed is raised after the favorites list is refetched.
type FavoritesRefreshed struct {
	BaseEvent
	Files   int
	Folders int
}

// EventName returns the event name
func (e FavoritesRefreshed) EventName() string {
	return "favorites.refreshed"
}

// NewFavoritesRefreshed creates a new FavoritesRefreshed event
func NewFavoritesRefreshed(files, folders int) FavoritesRefreshed {
	return FavoritesRefreshed{
		BaseEvent: BaseEvent{Timestamp: time.Now()},
		Files:     files,
		Folders:   folders,
	}
}

// UploadFinished is raised when an upload completes, on both outcomes.
type UploadFinished struct {
	BaseEvent
	Filename string
	Archive  bool
	Size     int64
	Err      string
}

// EventName returns the event name
func (e UploadFinished) EventName() string {
	return "transfer.upload_finished"
}

// NewUploadFinished creates a new UploadFinished event
func NewUploadFinished(filename string, archive bool, size int64, err string) UploadFinished {
	return UploadFinished{
		BaseEvent: BaseEvent{Timestamp: time.Now()},
		Filename:  filename,
		Archive:   archive,
		Size:      size,
		Err:       err,
	}
}

// DownloadSaved is raised when a download has been written to disk.
type DownloadSaved struct {
	BaseEvent
	Filename string
	Path     string
	Size     int64
}

// EventName returns the event name
func (e DownloadSaved) EventName() string {
	return "transfer.download_saved"
}

// NewDownloadSaved creates a new DownloadSaved event
func NewDownloadSaved(filename, path string, size int64) DownloadSaved {
	return DownloadSaved{
		BaseEvent: BaseEvent{Timestamp: time.Now()},
		Filename:  filename,
		Path:      path,
		Size:      size,
	}
}
