package compare

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// MinViewportHeight is the viewport height used while the base image
	// dimensions are unknown.
	MinViewportHeight float32 = 300
	// HandleSize is the diameter of the grab handle and the width of the
	// divider hit area.
	HandleSize float32 = 32
	// DividerWidth is the width of the divider line.
	DividerWidth float32 = 1
)

// ViewportHeight returns the height of a viewport of the given width showing
// an image of size natural. Unknown dimensions give MinViewportHeight.
func ViewportHeight(width float32, natural image.Point) float32 {
	if width <= 0 || natural.X <= 0 || natural.Y <= 0 {
		return MinViewportHeight
	}
	return width * float32(natural.Y) / float32(natural.X)
}

// FitWidth returns the viewport width for the available width, capped at max
// when max is positive.
func FitWidth(available, max float32) float32 {
	if available < 0 {
		return 0
	}
	if max > 0 && available > max {
		return max
	}
	return available
}

// ClipWidth is the width of the overlay clip rectangle for position.
func ClipWidth(position float64, width float32) float32 {
	return float32(Clamp(position) / 100 * float64(width))
}

// DividerX is the x offset of the divider line inside the viewport.
func DividerX(position float64, width float32) float32 {
	return ClipWidth(position, width)
}

// HitDivider reports whether x, relative to the viewport, lands on the
// divider or its handle.
func HitDivider(x float32, position float64, width float32) bool {
	return float32(math.Abs(float64(x-DividerX(position, width)))) <= HandleSize/2
}

// CoverTopLeft scales src to cover a w×h box without distortion and crops
// the excess from the right and bottom edges.
func CoverTopLeft(src image.Image, w, h int) image.Image {
	if src == nil || w <= 0 || h <= 0 {
		return src
	}
	return imaging.Fill(src, w, h, imaging.TopLeft, imaging.Lanczos)
}

// ClipLeft returns the leftmost clipW pixels of img. A clip of zero width
// returns an empty image.
func ClipLeft(img image.Image, clipW int) image.Image {
	b := img.Bounds()
	if clipW >= b.Dx() {
		return img
	}
	if clipW < 0 {
		clipW = 0
	}
	r := image.Rect(b.Min.X, b.Min.Y, b.Min.X+clipW, b.Max.Y)
	if sub, ok := img.(subImager); ok {
		return sub.SubImage(r)
	}
	return imaging.Crop(img, r)
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}
