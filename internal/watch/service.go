package watch

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// Service feeds check requests from any number of sources into a single goroutine that owns
// the Runner. Requests arriving while a run is pending are coalesced.
type Service struct {
	runner   *Runner
	requests chan string
}

// NewService creates a service around runner.
func NewService(runner *Runner) *Service {
	return &Service{runner: runner, requests: make(chan string, 1)}
}

// Trigger requests a run. It never blocks.
func (s *Service) Trigger(source string) {
	select {
	case s.requests <- source:
	default:
		slog.Debug("Check already pending", slog.String("source", source))
	}
}

// Run performs a startup check, then serves requests until ctx is done. Run errors are
// logged; they do not stop the loop.
func (s *Service) Run(ctx context.Context) error {
	s.runOnce(ctx, SourceStartup)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case source := <-s.requests:
			s.runOnce(ctx, source)
		}
	}
}

func (s *Service) runOnce(ctx context.Context, source string) {
	if _, err := s.runner.Run(ctx, source); err != nil && ctx.Err() == nil {
		slog.Error("Navigation check failed", slog.String("source", source), logfields.Error(err))
	}
}
