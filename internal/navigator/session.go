package navigator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"flashcards/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLoadStarted is returned when a session is asked to load twice
var ErrLoadStarted = errors.New("navigator: load already started")

// Snapshot is a point-in-time copy of navigator state
type Snapshot struct {
	Position int
	State    domain.DisplayState
	Loaded   bool
	Len      int
}

type event struct {
	apply func() error
	reply chan error
	stop  bool
}

// Session runs a Navigator on its own foreground goroutine. User actions and
// the background load delivery are applied one at a time, in arrival order.
type Session struct {
	id       uuid.UUID
	nav      *Navigator
	renderer Renderer
	logger   *zap.Logger

	events  chan event
	stopped chan struct{}
	done    chan struct{}

	loadStarted atomic.Bool
	closeOnce   sync.Once
	doneOnce    sync.Once
}

// NewSession creates a session and starts its foreground loop
func NewSession(r Renderer, logger *zap.Logger) *Session {
	id := uuid.New()
	s := &Session{
		id:       id,
		nav:      New(r),
		renderer: r,
		logger:   logger.With(zap.String("session_id", id.String())),
		events:   make(chan event),
		stopped:  make(chan struct{}),
		done:     make(chan struct{}),
	}

	go s.run()

	return s
}

// ID returns the session identifier used in logs
func (s *Session) ID() string {
	return s.id.String()
}

// Done is closed once the load has been applied, dropped, or has failed
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// LoadAsync starts loading cards from src in the background and returns
// immediately. The result is delivered on the session loop.
func (s *Session) LoadAsync(ctx context.Context, src Source) error {
	select {
	case <-s.stopped:
		return ErrClosed
	default:
	}

	if !s.loadStarted.CompareAndSwap(false, true) {
		return ErrLoadStarted
	}

	go s.load(ctx, src)

	return nil
}

// Action applies the user action and waits until it has been handled
func (s *Session) Action(ctx context.Context) error {
	return s.post(ctx, func() error {
		if err := s.nav.OnAction(); err != nil {
			return err
		}
		if s.nav.Loaded() {
			s.flush()
		}
		return nil
	})
}

// Snapshot returns the current navigator state
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.post(ctx, func() error {
		snap = Snapshot{
			Position: s.nav.Position(),
			State:    s.nav.State(),
			Loaded:   s.nav.Loaded(),
			Len:      s.nav.Len(),
		}
		return nil
	})
	return snap, err
}

// Close tears the session down. A load still in flight is discarded.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		select {
		case s.events <- event{stop: true}:
		case <-s.stopped:
		}
		<-s.stopped
		s.logger.Debug("Session closed")
	})
}

func (s *Session) run() {
	defer close(s.stopped)

	for ev := range s.events {
		if ev.stop {
			s.nav.Close()
			return
		}

		err := ev.apply()
		if ev.reply != nil {
			ev.reply <- err
		}
	}
}

func (s *Session) post(ctx context.Context, fn func() error) error {
	ev := event{apply: fn, reply: make(chan error, 1)}

	select {
	case s.events <- ev:
	case <-s.stopped:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-ev.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) load(ctx context.Context, src Source) {
	set, err := src.LoadCards(ctx)
	if err != nil {
		s.logger.Warn("Failed to load cards", zap.Error(err))
		s.markDone()
		return
	}

	ev := event{apply: func() error {
		defer s.markDone()

		if !s.nav.Deliver(set) {
			s.logger.Info("No cards delivered", zap.Int("count", set.Len()))
			return nil
		}

		s.logger.Info("Cards delivered", zap.Int("count", set.Len()))
		s.flush()
		return nil
	}}

	select {
	case s.events <- ev:
	case <-s.stopped:
		s.logger.Debug("Session closed before cards were delivered")
		s.markDone()
	}
}

func (s *Session) flush() {
	f, ok := s.renderer.(Flusher)
	if !ok {
		return
	}
	if err := f.Flush(); err != nil {
		s.logger.Warn("Failed to flush card view", zap.Error(err))
	}
}

func (s *Session) markDone() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
