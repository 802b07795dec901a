package mock

import (
	"context"

	"github.com/fwojciec/wptransfer"
)

var _ wptransfer.PostService = (*PostService)(nil)

// PostService is a mock implementation of wptransfer.PostService.
type PostService struct {
	FindPostsFn func(ctx context.Context, filter wptransfer.PostFilter) ([]*wptransfer.Post, error)
}

func (s *PostService) FindPosts(ctx context.Context, filter wptransfer.PostFilter) ([]*wptransfer.Post, error) {
	return s.FindPostsFn(ctx, filter)
}
