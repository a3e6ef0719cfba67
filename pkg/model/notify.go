package model

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ValidityEvent reports a change in one attribute's validity, observed
// during a validation pass.
type ValidityEvent struct {
	ModelID  uuid.UUID
	Attr     string
	Valid    bool
	Messages []any
}

// Subscription receives validity events from a Notifier.
type Subscription struct {
	ch     chan ValidityEvent
	mu     sync.RWMutex
	closed bool
}

// Events returns the channel delivering validity events. The channel is
// closed when the subscription or its notifier closes.
func (s *Subscription) Events() <-chan ValidityEvent {
	return s.ch
}

// Close stops the subscription and closes its event channel. It is
// idempotent.
func (s *Subscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// deliver attempts a non-blocking send. It reports false when the
// subscription is closed or its buffer is full.
func (s *Subscription) deliver(ev ValidityEvent) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// Notifier fans validity events out to subscribers. Delivery is
// non-blocking: subscribers that stop draining their buffer are dropped
// rather than stalling the publishing validation pass. All methods are
// safe for concurrent use.
type Notifier struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]struct{}
	bufferSize  int
	closed      bool
	done        chan struct{}
	cleanupWg   sync.WaitGroup
}

// NewNotifier creates a notifier whose subscribers buffer up to
// bufferSize events. A minimum buffer of 1 is enforced so sends stay
// non-blocking.
func NewNotifier(bufferSize int) *Notifier {
	return &Notifier{
		subscribers: make(map[*Subscription]struct{}),
		bufferSize:  max(bufferSize, 1),
		done:        make(chan struct{}),
	}
}

// Subscribe registers a new subscriber for all future validity events.
// The subscription is cleaned up automatically when ctx is cancelled.
// A closed notifier returns an already-closed subscription.
func (n *Notifier) Subscribe(ctx context.Context) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	sub := &Subscription{ch: make(chan ValidityEvent, n.bufferSize)}
	if n.closed {
		_ = sub.Close()
		return sub
	}
	n.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		n.cleanupWg.Add(1)
		go func() {
			defer n.cleanupWg.Done()
			select {
			case <-ctx.Done():
				n.unsubscribe(sub)
			case <-n.done:
			}
		}()
	}

	return sub
}

// Publish delivers an event to every active subscriber. Subscribers
// with a full buffer miss the event and are removed asynchronously.
func (n *Notifier) Publish(ev ValidityEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return
	}

	for sub := range n.subscribers {
		if !sub.deliver(ev) {
			// Removal takes the write lock, so it cannot happen inline
			// under the read lock held here.
			go n.unsubscribe(sub)
		}
	}
}

// Close shuts down the notifier and closes all subscriptions. It is
// idempotent.
func (n *Notifier) Close() error {
	n.mu.Lock()

	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	close(n.done)

	for sub := range n.subscribers {
		_ = sub.Close()
	}
	clear(n.subscribers)
	n.mu.Unlock()

	// Wait out pending context-cleanup goroutines so Close never races
	// late unsubscribes.
	n.cleanupWg.Wait()
	return nil
}

func (n *Notifier) unsubscribe(sub *Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.subscribers, sub)
	_ = sub.Close()
}
