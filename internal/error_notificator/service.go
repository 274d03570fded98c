package error_notificator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	notifyTimeout = 5 * time.Second
	// the same error text is alerted at most once per window
	repeatWindow = time.Minute
)

type Service struct {
	infra   Notificator
	log     *zap.Logger
	timeout time.Duration
	window  time.Duration
	now     func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

func NewService(infra Notificator, log *zap.Logger) *Service {
	return &Service{
		infra:   infra,
		log:     log,
		timeout: notifyTimeout,
		window:  repeatWindow,
		now:     time.Now,
		sent:    make(map[string]time.Time),
	}
}

// Notify never fails the caller: delivery problems are only logged.
// Delivery is bounded by ctx and by the service's own timeout.
func (s *Service) Notify(ctx context.Context, err error, details string) error {
	if err == nil || s.repeated(err.Error()) {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if nerr := s.infra.Notify(ctx, err, details); nerr != nil {
		s.log.Warn("error notification failed", zap.Error(nerr), zap.NamedError("original", err))
	}
	return nil
}

func (s *Service) repeated(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, at := range s.sent {
		if now.Sub(at) >= s.window {
			delete(s.sent, k)
		}
	}
	if _, ok := s.sent[key]; ok {
		return true
	}
	s.sent[key] = now
	return false
}
