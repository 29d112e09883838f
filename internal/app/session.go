package app

import (
	"context"
	"sync"
)

// Session serializes access to a Controller so that every command runs to
// completion before the next starts, and fans the resulting view out to
// subscribers (one per connected client).
type Session struct {
	mu          sync.Mutex
	controller  *Controller
	subscribers map[chan View]struct{}
}

func NewSession(controller *Controller) *Session {
	return &Session{
		controller:  controller,
		subscribers: make(map[chan View]struct{}),
	}
}

// Do dispatches cmd and returns the view afterwards. Successful commands are
// broadcast to every subscriber.
func (s *Session) Do(ctx context.Context, cmd Command) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.controller.Dispatch(ctx, cmd); err != nil {
		return s.controller.View(), err
	}
	return s.broadcastLocked(), nil
}

// View snapshots the current screen.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.View()
}

// Read runs fn with exclusive access to the controller. fn must not retain it.
func (s *Session) Read(fn func(c *Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.controller)
}

// Subscribe returns a channel that receives the current view immediately and
// every view after a successful command. The caller must invoke the returned
// cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	ch <- s.controller.View()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked() View {
	v := s.controller.View()
	for ch := range s.subscribers {
		select {
		case ch <- v:
		default:
			// slow subscriber: drop its oldest pending view
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
	return v
}
