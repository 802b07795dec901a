package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wptransfer"
)

// Compile-time interface verification.
var (
	_ wptransfer.MediaService = (*LoggingMediaService)(nil)
	_ wptransfer.Downloader   = (*LoggingDownloader)(nil)
)

// LoggingMediaService wraps a MediaService with logging.
type LoggingMediaService struct {
	next   wptransfer.MediaService
	logger *slog.Logger
}

// NewLoggingMediaService creates a new LoggingMediaService.
func NewLoggingMediaService(next wptransfer.MediaService, logger *slog.Logger) *LoggingMediaService {
	return &LoggingMediaService{next: next, logger: logger}
}

// FindMediaURL delegates to the wrapped service and logs the operation.
func (s *LoggingMediaService) FindMediaURL(ctx context.Context, id int) (url string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("resolve media",
			"id", id,
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindMediaURL(ctx, id)
}

// LoggingDownloader wraps a Downloader with logging.
type LoggingDownloader struct {
	next   wptransfer.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next wptransfer.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the operation.
func (d *LoggingDownloader) Download(ctx context.Context, url string) (data []byte, err error) {
	defer func(begin time.Time) {
		d.logger.Info("download",
			"url", url,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url)
}
