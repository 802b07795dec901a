// Package slog provides logging decorators for wptransfer services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wptransfer"
)

// Ensure LoggingPostService implements wptransfer.PostService.
var _ wptransfer.PostService = (*LoggingPostService)(nil)

// LoggingPostService wraps a PostService with logging.
type LoggingPostService struct {
	next   wptransfer.PostService
	logger *slog.Logger
}

// NewLoggingPostService creates a new LoggingPostService.
func NewLoggingPostService(next wptransfer.PostService, logger *slog.Logger) *LoggingPostService {
	return &LoggingPostService{next: next, logger: logger}
}

// FindPosts delegates to the wrapped service and logs the operation.
func (s *LoggingPostService) FindPosts(ctx context.Context, filter wptransfer.PostFilter) (posts []*wptransfer.Post, err error) {
	defer func(begin time.Time) {
		s.logger.Info("fetch posts",
			"page", filter.Page,
			"count", len(posts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPosts(ctx, filter)
}
