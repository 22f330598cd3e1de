package app

import (
	"time"

	"github.com/okian/arrows/internal/adapters/storage"
	"github.com/okian/arrows/internal/domain/board"
	"github.com/okian/arrows/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithGateway sets the document persistence gateway.
func WithGateway(gw storage.Gateway) Option {
	return func(s *Service) {
		if gw != nil {
			s.gateway = gw
		}
	}
}

// WithBoardSize bounds the leaderboard.
func WithBoardSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.boardSize = size
		}
	}
}

// WithStartingCoins sets the coin grant for new players.
func WithStartingCoins(coins int64) Option {
	return func(s *Service) {
		if coins >= 0 {
			s.startingCoins = coins
		}
	}
}

// WithTouchOnLogin controls whether login-only visits refresh player
// activity timestamps. The two historical variants disagreed; default
// is false (only score submissions count as activity).
func WithTouchOnLogin(touch bool) Option {
	return func(s *Service) {
		s.touchOnLogin = touch
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithNotifier registers a hook that receives the ranked board after
// every reconciliation that changed it.
func WithNotifier(notify func([]board.Entry)) Option {
	return func(s *Service) {
		s.notify = notify
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
