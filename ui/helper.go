package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

func createSectionTitleLabel(desc string) *widget.Label {
	label := widget.NewLabel(desc)
	label.Wrapping = fyne.TextWrapWord
	label.Importance = widget.HighImportance
	label.TextStyle = fyne.TextStyle{Bold: true}
	return label
}

func createSettingTitleLabel(desc string) *widget.Label {
	label := widget.NewLabel(desc)
	label.Wrapping = fyne.TextWrapWord
	label.Importance = widget.MediumImportance
	label.TextStyle = fyne.TextStyle{Bold: true}
	return label
}

func createSettingDescriptionLabel(desc string) *widget.Label {
	label := widget.NewLabel(desc)
	label.Wrapping = fyne.TextWrapWord
	label.Importance = widget.LowImportance
	label.TextStyle = fyne.TextStyle{Italic: true}
	return label
}

// createHeadline creates centred heading text. Accented headings use the
// primary colour.
func createHeadline(text string, sub, accent bool) *widget.RichText {
	style := widget.RichTextStyleHeading
	style.Alignment = fyne.TextAlignCenter
	if sub {
		style = widget.RichTextStyleSubHeading
		style.Alignment = fyne.TextAlignCenter
	}
	if accent {
		style.ColorName = theme.ColorNamePrimary
	}
	return widget.NewRichText(&widget.TextSegment{Text: text, Style: style})
}

// createParagraph creates wrapped, centred body text.
func createParagraph(text string) *widget.Label {
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord
	label.Alignment = fyne.TextAlignCenter
	label.Importance = widget.LowImportance
	return label
}

// createCard wraps content in a rounded panel.
func createCard(content fyne.CanvasObject) fyne.CanvasObject {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	bg.CornerRadius = theme.InputRadiusSize() * 2
	bg.StrokeColor = theme.Color(theme.ColorNameSeparator)
	bg.StrokeWidth = 1
	return container.NewStack(bg, container.NewPadded(content))
}

// createFeatureCard creates one of the result feature cards.
func createFeatureCard(title, desc string) fyne.CanvasObject {
	t := widget.NewLabel(title)
	t.TextStyle = fyne.TextStyle{Bold: true}
	d := widget.NewLabel(desc)
	d.Wrapping = fyne.TextWrapWord
	d.Importance = widget.LowImportance
	return createCard(container.NewVBox(t, d))
}
