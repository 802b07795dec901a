package mock

import (
	"context"

	"github.com/fwojciec/wptransfer"
)

var _ wptransfer.RunService = (*RunService)(nil)

// RunService is a mock implementation of wptransfer.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *wptransfer.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*wptransfer.Run, error)
	FindRunsFn    func(ctx context.Context, filter wptransfer.RunFilter) ([]*wptransfer.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *wptransfer.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*wptransfer.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter wptransfer.RunFilter) ([]*wptransfer.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
