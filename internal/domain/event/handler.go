package event

import (
	"go.uber.org/zap"
)

// LoggingHandler logs all events
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a new LoggingHandler
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger}
}

// Handle logs the event
func (h *LoggingHandler) Handle(event DomainEvent) error {
	switch e := event.(type) {
	case Notification:
		if e.Level == LevelError {
			h.logger.Warn("notification",
				zap.String("level", e.Level),
				zap.String("message", e.Message),
			)
		} else {
			h.logger.Info("notification",
				zap.String("level", e.Level),
				zap.String("message", e.Message),
			)
		}
	case ContentRefreshed:
		h.logger.Debug("content refreshed",
			zap.String("location", e.LocationID),
			zap.Int("folders", e.Folders),
			zap.Int("files", e.Files),
		)
	case FavoritesRefreshed:
		h.logger.Debug("favorites refreshed",
			zap.Int("files", e.Files),
			zap.Int("folders", e.Folders),
		)
	case UploadFinished:
		if e.Err != "" {
			h.logger.Warn("upload failed",
				zap.String("filename", e.Filename),
				zap.Bool("archive", e.Archive),
				zap.String("error", e.Err),
			)
		} else {
			h.logger.Info("upload finished",
				zap.String("filename", e.Filename),
				zap.Bool("archive", e.Archive),
				zap.Int64("size", e.Size),
			)
		}
	case DownloadSaved:
		h.logger.Info("download saved",
			zap.String("filename", e.Filename),
			zap.String("path", e.Path),
			zap.Int64("size", e.Size),
		)
	default:
		h.logger.Debug("session event",
			zap.String("event", event.EventName()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}
	return nil
}

// HandledEvents returns the events this handler handles
func (h *LoggingHandler) HandledEvents() []string {
	return []string{"*"} // Handle all events
}
