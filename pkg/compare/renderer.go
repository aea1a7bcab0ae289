package compare

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const labelPadding float32 = 6

var (
	dividerColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	handleStroke    = color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	labelBackground = color.NRGBA{A: 0x99}
	labelForeground = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type viewerRenderer struct {
	v *Viewer

	frame   *canvas.Rectangle
	base    *canvas.Image
	overlay *canvas.Image
	divider *canvas.Rectangle
	handle  *canvas.Circle
	grip    *widget.Icon

	beforeBG, afterBG     *canvas.Rectangle
	beforeText, afterText *canvas.Text

	// cover is the before image scaled to the last laid out viewport.
	cover     image.Image
	coverSize image.Point

	objects []fyne.CanvasObject
}

func newViewerRenderer(v *Viewer) *viewerRenderer {
	before, after := v.pair.Images()

	r := &viewerRenderer{v: v}
	r.frame = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	r.frame.CornerRadius = theme.InputRadiusSize()

	r.base = canvas.NewImageFromImage(after)
	r.base.FillMode = canvas.ImageFillStretch
	r.base.ScaleMode = canvas.ImageScaleSmooth

	r.overlay = canvas.NewImageFromImage(before)
	r.overlay.FillMode = canvas.ImageFillStretch
	r.overlay.ScaleMode = canvas.ImageScaleSmooth

	r.divider = canvas.NewRectangle(dividerColor)
	r.handle = canvas.NewCircle(dividerColor)
	r.handle.StrokeColor = handleStroke
	r.handle.StrokeWidth = 1
	r.grip = widget.NewIcon(theme.MoreHorizontalIcon())

	r.beforeBG = canvas.NewRectangle(labelBackground)
	r.beforeBG.CornerRadius = 4
	r.afterBG = canvas.NewRectangle(labelBackground)
	r.afterBG.CornerRadius = 4
	r.beforeText = newLabelText("Original")
	r.afterText = newLabelText("Cleaned")

	r.objects = []fyne.CanvasObject{
		r.frame, r.base, r.overlay,
		r.beforeBG, r.beforeText, r.afterBG, r.afterText,
		r.divider, r.handle, r.grip,
	}
	return r
}

func newLabelText(s string) *canvas.Text {
	t := canvas.NewText(s, labelForeground)
	t.TextSize = theme.CaptionTextSize()
	t.TextStyle = fyne.TextStyle{Bold: true}
	return t
}

func (r *viewerRenderer) Layout(size fyne.Size) {
	vp, ok := r.v.viewport()
	if !ok {
		return
	}
	h := r.v.viewportHeight(vp.Width)
	origin := fyne.NewPos(vp.Left, 0)
	full := fyne.NewSize(vp.Width, h)

	r.frame.Move(origin)
	r.frame.Resize(full)
	r.base.Move(origin)
	r.base.Resize(full)

	rescaled := r.updateCover(vp.Width, h)
	r.layoutOverlay(vp, h)
	if rescaled {
		r.overlay.Refresh()
	}

	pad := theme.Padding()
	bs := r.beforeText.MinSize()
	r.beforeBG.Move(origin.AddXY(pad, pad))
	r.beforeBG.Resize(bs.AddWidthHeight(labelPadding*2, labelPadding))
	r.beforeText.Move(origin.AddXY(pad+labelPadding, pad+labelPadding/2))
	r.beforeText.Resize(bs)

	as := r.afterText.MinSize()
	ax := vp.Left + vp.Width - pad - as.Width - labelPadding*2
	r.afterBG.Move(fyne.NewPos(ax, pad))
	r.afterBG.Resize(as.AddWidthHeight(labelPadding*2, labelPadding))
	r.afterText.Move(fyne.NewPos(ax+labelPadding, pad+labelPadding/2))
	r.afterText.Resize(as)
}

// layoutOverlay clips the cover image to the divider and moves the divider
// and handle with it.
func (r *viewerRenderer) layoutOverlay(vp Viewport, h float32) {
	pos := r.v.slider.Position()
	clip := ClipWidth(pos, vp.Width)
	x := vp.Left + DividerX(pos, vp.Width)

	if r.cover != nil {
		px := int(math.Round(pos / 100 * float64(r.coverSize.X)))
		r.overlay.Image = ClipLeft(r.cover, px)
	}
	r.overlay.Move(fyne.NewPos(vp.Left, 0))
	r.overlay.Resize(fyne.NewSize(clip, h))
	r.overlay.Hidden = clip <= 0

	r.divider.Move(fyne.NewPos(x-DividerWidth/2, 0))
	r.divider.Resize(fyne.NewSize(DividerWidth, h))

	handle := fyne.NewSquareSize(HandleSize)
	r.handle.Move(fyne.NewPos(x-HandleSize/2, h/2-HandleSize/2))
	r.handle.Resize(handle)

	grip := fyne.NewSquareSize(HandleSize - theme.Padding()*2)
	r.grip.Move(fyne.NewPos(x-grip.Width/2, h/2-grip.Height/2))
	r.grip.Resize(grip)
}

// updateCover rescales the before image when the viewport size changes and
// reports whether it did.
func (r *viewerRenderer) updateCover(w, h float32) bool {
	size := image.Pt(int(math.Round(float64(w))), int(math.Round(float64(h))))
	if size == r.coverSize && r.cover != nil {
		return false
	}
	before, _ := r.v.pair.Images()
	if before == nil || size.X <= 0 || size.Y <= 0 {
		return false
	}
	r.cover = CoverTopLeft(before, size.X, size.Y)
	r.coverSize = size
	return true
}

func (r *viewerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(HandleSize*2, MinViewportHeight)
}

func (r *viewerRenderer) Refresh() {
	r.frame.FillColor = theme.Color(theme.ColorNameInputBackground)
	r.Layout(r.v.Size())
	r.overlay.Refresh()
	canvas.Refresh(r.v)
}

func (r *viewerRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *viewerRenderer) Destroy() {
	r.v.slider.Close()
}
