package compare

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// DefaultMaxWidth caps the viewport width inside wide windows.
const DefaultMaxWidth float32 = 896

// Viewer is a fyne widget showing a Pair with a draggable divider. The
// cleaned image fills the viewport and the original is revealed to the left
// of the divider.
type Viewer struct {
	widget.BaseWidget

	// MaxWidth caps the viewport width. Zero means no cap.
	MaxWidth float32
	// OnChanged is called on the UI thread after the divider moves.
	OnChanged func(position float64)

	pair   Pair
	events *Dispatcher
	slider *Slider
}

var (
	_ fyne.Widget         = (*Viewer)(nil)
	_ fyne.Draggable      = (*Viewer)(nil)
	_ desktop.Mouseable   = (*Viewer)(nil)
	_ desktop.Cursorable  = (*Viewer)(nil)
	_ mobile.Touchable    = (*Viewer)(nil)
	_ fyne.WidgetRenderer = (*viewerRenderer)(nil)
)

// NewViewer creates a Viewer for pair with the divider at DefaultPosition.
func NewViewer(pair Pair) *Viewer {
	v := &Viewer{
		MaxWidth: DefaultMaxWidth,
		pair:     pair,
		events:   NewDispatcher(),
	}
	v.slider = NewSlider(v.events, v.viewport)
	v.slider.SetOnChanged(v.changed)
	v.ExtendBaseWidget(v)
	return v
}

// DividerPosition returns the divider position in percent. The widget's
// Position, inherited from BaseWidget, is its place in the parent.
func (v *Viewer) DividerPosition() float64 {
	return v.slider.Position()
}

// Dragging reports whether the divider is being dragged.
func (v *Viewer) Dragging() bool {
	return v.slider.Dragging()
}

// Pair returns the images shown by the viewer.
func (v *Viewer) Pair() Pair {
	return v.pair
}

// Close ends any drag in progress. The viewer stays usable.
func (v *Viewer) Close() {
	v.slider.Close()
}

// CreateRenderer implements fyne.Widget.
func (v *Viewer) CreateRenderer() fyne.WidgetRenderer {
	v.ExtendBaseWidget(v)
	return newViewerRenderer(v)
}

// MouseDown starts a drag when the press lands on the divider or its handle.
func (v *Viewer) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != 0 && ev.Button != desktop.MouseButtonPrimary {
		return
	}
	v.press(ev.Position)
}

// MouseUp ends a drag.
func (v *Viewer) MouseUp(*desktop.MouseEvent) {
	v.events.Release()
}

// Dragged forwards pointer movement. fyne keeps delivering drag events to
// the widget that started the drag even when the pointer leaves its bounds.
func (v *Viewer) Dragged(ev *fyne.DragEvent) {
	v.events.Move(Point{X: ev.Position.X, Y: ev.Position.Y})
}

// DragEnd ends a drag.
func (v *Viewer) DragEnd() {
	v.events.Release()
}

// TouchDown starts a drag when the touch lands on the divider or its handle.
func (v *Viewer) TouchDown(ev *mobile.TouchEvent) {
	v.press(ev.Position)
}

// TouchUp ends a drag.
func (v *Viewer) TouchUp(*mobile.TouchEvent) {
	v.events.Release()
}

// TouchCancel ends a drag.
func (v *Viewer) TouchCancel(*mobile.TouchEvent) {
	v.events.Release()
}

// Cursor implements desktop.Cursorable.
func (v *Viewer) Cursor() desktop.Cursor {
	return desktop.HResizeCursor
}

func (v *Viewer) press(pos fyne.Position) {
	vp, ok := v.viewport()
	if !ok {
		return
	}
	h := v.viewportHeight(vp.Width)
	if pos.Y < 0 || pos.Y > h {
		return
	}
	if !HitDivider(pos.X-vp.Left, v.slider.Position(), vp.Width) {
		return
	}
	v.slider.Press()
}

func (v *Viewer) changed(position float64) {
	v.Refresh()
	if v.OnChanged != nil {
		v.OnChanged(position)
	}
}

// viewport centres the capped viewport inside the widget. When the widget
// has a height the viewport also shrinks to fit it.
func (v *Viewer) viewport() (Viewport, bool) {
	size := v.Size()
	w := FitWidth(size.Width, v.MaxWidth)
	if natural := v.pair.Natural(); size.Height > 0 && natural.X > 0 && natural.Y > 0 {
		if h := ViewportHeight(w, natural); h > size.Height {
			w = size.Height * float32(natural.X) / float32(natural.Y)
		}
	}
	if w <= 0 {
		return Viewport{}, false
	}
	return Viewport{Left: (size.Width - w) / 2, Width: w}, true
}

func (v *Viewer) viewportHeight(width float32) float32 {
	return ViewportHeight(width, v.pair.Natural())
}
