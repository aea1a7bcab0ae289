package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Alignment specifies how the two halves of a split row are placed.
type Alignment int

const (
	alignLeft Alignment = iota
	alignOpposed
)

// SplitAlign is a namespace for the Alignment constants.
var SplitAlign = struct {
	Left    Alignment // Both widgets start at their column.
	Opposed Alignment // The second widget is pushed to the right edge at its minimum width.
}{
	Left:    alignLeft,
	Opposed: alignOpposed,
}

// FirstWidgetProportion is the share of the row given to the first widget.
type FirstWidgetProportion float32

// SplitProportion is a namespace for the FirstWidgetProportion constants.
var SplitProportion = struct {
	OneThird  FirstWidgetProportion
	TwoThirds FirstWidgetProportion
}{
	OneThird:  1.0 / 3,
	TwoThirds: 2.0 / 3,
}

// splitLayout places a label-like widget next to a control.
type splitLayout struct {
	proportion FirstWidgetProportion
	alignment  Alignment
}

func (s *splitLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) != 2 {
		return fyne.Size{}
	}
	a, b := objects[0].MinSize(), objects[1].MinSize()
	return fyne.NewSize(a.Width+b.Width, fyne.Max(a.Height, b.Height))
}

// Layout arranges the widgets, both vertically centred in the row.
func (s *splitLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) != 2 {
		return
	}
	first, second := objects[0], objects[1]

	firstWidth := size.Width * float32(s.proportion)
	secondWidth := size.Width - firstWidth
	secondX := firstWidth
	if s.alignment == alignOpposed {
		secondWidth = fyne.Min(secondWidth, second.MinSize().Width)
		secondX = size.Width - secondWidth
	}

	fh := fyne.Min(first.MinSize().Height, size.Height)
	sh := fyne.Min(second.MinSize().Height, size.Height)
	first.Resize(fyne.NewSize(firstWidth, fh))
	second.Resize(fyne.NewSize(secondWidth, sh))
	first.Move(fyne.NewPos(0, (size.Height-fh)/2))
	second.Move(fyne.NewPos(secondX, (size.Height-sh)/2))
}

// NewSplitRowWithAlignment creates a split row with specified alignment and proportion.
func NewSplitRowWithAlignment(widget1, widget2 fyne.CanvasObject, proportion FirstWidgetProportion, alignment Alignment) *fyne.Container {
	return container.New(&splitLayout{proportion: proportion, alignment: alignment}, widget1, widget2)
}

// NewSplitRow creates a split row with default (left) alignment.
func NewSplitRow(widget1, widget2 fyne.CanvasObject, proportion FirstWidgetProportion) *fyne.Container {
	return NewSplitRowWithAlignment(widget1, widget2, proportion, alignLeft)
}
