package compare

import (
	"sync"
	"sync/atomic"
)

// Point is a pointer coordinate in the viewer's coordinate space.
type Point struct {
	X, Y float32
}

// MoveHandler receives the active pointers of a move event. Mouse events carry
// one point, touch events carry every touch in the event.
type MoveHandler func(points []Point)

// ReleaseHandler is called when the pointer (mouse button or last touch) is released.
type ReleaseHandler func()

type listener struct {
	id      uint64
	move    MoveHandler
	release ReleaseHandler
	done    atomic.Bool
}

// Dispatcher is the document-level pointer event source. Listeners registered
// here see every move and release regardless of where the pointer is.
// Events are delivered in arrival order, in subscription order.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []*listener
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers a move handler and a release handler as one unit.
// Both stay registered until the returned Subscription is cancelled.
func (d *Dispatcher) Subscribe(move MoveHandler, release ReleaseHandler) *Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	l := &listener{id: d.nextID, move: move, release: release}
	d.listeners = append(d.listeners, l)
	return &Subscription{d: d, l: l}
}

// Move delivers a move event to every active listener.
func (d *Dispatcher) Move(points ...Point) {
	for _, l := range d.snapshot() {
		if l.done.Load() || l.move == nil {
			continue
		}
		l.move(points)
	}
}

// Release delivers a release event to every active listener.
func (d *Dispatcher) Release() {
	for _, l := range d.snapshot() {
		if l.done.Load() || l.release == nil {
			continue
		}
		l.release()
	}
}

// Len returns the number of active subscriptions.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

func (d *Dispatcher) snapshot() []*listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.listeners) == 0 {
		return nil
	}
	return append([]*listener(nil), d.listeners...)
}

func (d *Dispatcher) remove(l *listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, cur := range d.listeners {
		if cur.id == l.id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Subscription is a registered move/release pair on a Dispatcher.
type Subscription struct {
	d    *Dispatcher
	l    *listener
	once sync.Once
}

// Cancel removes both handlers. It is safe to call more than once and from
// inside a handler; no handler of this subscription runs after Cancel returns.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.l.done.Store(true)
		s.d.remove(s.l)
	})
}

// Active reports whether the subscription is still registered.
func (s *Subscription) Active() bool {
	return s != nil && !s.l.done.Load()
}
