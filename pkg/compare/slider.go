// Package compare implements the before/after comparison slider: pointer
// geometry, drag state and the fyne widget that renders it.
package compare

import (
	"math"
	"sync"
)

// DefaultPosition is the divider position of a freshly mounted slider.
const DefaultPosition = 50.0

// State is the interaction state of a Slider.
type State int

const (
	// Idle means no drag is in progress.
	Idle State = iota
	// Dragging means the divider follows the pointer until release.
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Viewport is the horizontal extent of the comparison area in the same
// coordinate space as the pointer events.
type Viewport struct {
	Left  float32
	Width float32
}

// LayoutFunc reports the current viewport. ok is false until the viewport
// has a known, positive width.
type LayoutFunc func() (vp Viewport, ok bool)

// Slider holds the divider position and the drag state machine.
type Slider struct {
	mu        sync.Mutex
	position  float64
	state     State
	layout    LayoutFunc
	events    *Dispatcher
	sub       *Subscription
	onChanged func(float64)
}

// NewSlider creates an idle slider at DefaultPosition that listens for
// drag movement on events.
func NewSlider(events *Dispatcher, layout LayoutFunc) *Slider {
	return &Slider{
		position: DefaultPosition,
		state:    Idle,
		layout:   layout,
		events:   events,
	}
}

// Position returns the divider position as a percentage of the viewport width.
func (s *Slider) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// State returns the current interaction state.
func (s *Slider) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dragging reports whether a drag is in progress.
func (s *Slider) Dragging() bool {
	return s.State() == Dragging
}

// SetOnChanged registers a callback invoked after every position change.
func (s *Slider) SetOnChanged(fn func(position float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChanged = fn
}

// Press starts a drag. The move and release subscriptions are held until
// the next release or Close. Pressing while already dragging is a no-op.
func (s *Slider) Press() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Dragging {
		return
	}
	s.state = Dragging
	s.sub = s.events.Subscribe(s.move, s.release)
}

// Close ends any drag in progress and drops its subscription.
func (s *Slider) Close() {
	s.release()
}

func (s *Slider) move(points []Point) {
	if len(points) == 0 || s.layout == nil {
		return
	}
	vp, ok := s.layout()
	if !ok || vp.Width <= 0 {
		return
	}

	s.mu.Lock()
	if s.state != Dragging {
		s.mu.Unlock()
		return
	}
	next, ok := PositionAt(points[0].X, vp)
	if !ok || next == s.position {
		s.mu.Unlock()
		return
	}
	s.position = next
	fn := s.onChanged
	s.mu.Unlock()

	if fn != nil {
		fn(next)
	}
}

func (s *Slider) release() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.state = Idle
	s.mu.Unlock()

	sub.Cancel()
}

// Clamp constrains v to [0, 100].
func Clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// PositionAt converts a pointer x coordinate to a clamped percentage of vp.
// ok is false when vp has no width or x is NaN.
func PositionAt(x float32, vp Viewport) (float64, bool) {
	if vp.Width <= 0 || math.IsNaN(float64(x)) || math.IsNaN(float64(vp.Left)) {
		return 0, false
	}
	pct := float64(x-vp.Left) / float64(vp.Width) * 100
	if math.IsNaN(pct) {
		return 0, false
	}
	return Clamp(pct), true
}
