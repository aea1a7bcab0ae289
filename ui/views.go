package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/disintegration/imaging"

	"github.com/dixieflatline76/ClearView/pkg/compare"
	"github.com/dixieflatline76/ClearView/pkg/editor"
	"github.com/dixieflatline76/ClearView/pkg/imagesource"
	"github.com/dixieflatline76/ClearView/pkg/workspace"
	"github.com/dixieflatline76/ClearView/util/log"
)

// page centres content in a vertical scroll.
func page(objects ...fyne.CanvasObject) fyne.CanvasObject {
	return container.NewVScroll(container.NewPadded(container.NewVBox(objects...)))
}

// buttonRow centres buttons on one line.
func buttonRow(buttons ...fyne.CanvasObject) fyne.CanvasObject {
	objs := append([]fyne.CanvasObject{layout.NewSpacer()}, buttons...)
	return container.NewHBox(append(objs, layout.NewSpacer())...)
}

func (ca *ClearViewApp) renderIdle(s workspace.Idle) fyne.CanvasObject {
	hero := container.NewVBox(
		createHeadline("Remove Watermarks", false, false),
		createHeadline("Like Magic", false, true),
		createParagraph("Upload an image and let AI clean away watermarks, text overlays and logos while keeping the picture intact."),
	)

	selectButton := widget.NewButtonWithIcon("Select File", theme.FolderOpenIcon(), ca.openFileDialog)
	selectButton.Importance = widget.HighImportance

	uploader := container.NewVBox(
		widget.NewIcon(theme.UploadIcon()),
		createHeadline("Upload your image", true, false),
		createParagraph(fmt.Sprintf("Drag & drop or click to browse. Supports JPEG, PNG, WEBP up to %dMB.",
			ca.ws.Validator().MaxMB())),
		buttonRow(selectButton),
	)
	objects := []fyne.CanvasObject{hero, createCard(uploader)}

	if s.Notice != "" {
		notice := widget.NewLabel(s.Notice)
		notice.Importance = widget.DangerImportance
		notice.Alignment = fyne.TextAlignCenter
		notice.Wrapping = fyne.TextWrapWord
		objects = append(objects, notice)
	}
	return page(objects...)
}

func (ca *ClearViewApp) renderUploading(s workspace.Uploading) fyne.CanvasObject {
	bar := widget.NewProgressBarInfinite()
	return page(
		createHeadline("Reading image...", true, false),
		createParagraph(s.Source),
		bar,
	)
}

func (ca *ClearViewApp) renderPreviewing(s workspace.Previewing) fyne.CanvasObject {
	change := widget.NewButtonWithIcon("Change Image", theme.ContentUndoIcon(), ca.ws.Reset)
	remove := widget.NewButtonWithIcon("Remove Watermark", theme.MediaPlayIcon(), ca.process)
	remove.Importance = widget.HighImportance

	info := createParagraph(fmt.Sprintf("%s  ·  %dx%d  ·  %s", s.Original.Name, s.Original.Width, s.Original.Height,
		humanBytes(len(s.Original.Data))))

	return page(
		createCard(container.NewVBox(thumbnail(s.Original), info)),
		buttonRow(change, remove),
	)
}

func (ca *ClearViewApp) renderProcessing(s workspace.Processing) fyne.CanvasObject {
	cancel := widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), ca.ws.Reset)
	return page(
		createCard(container.NewVBox(
			thumbnail(s.Original),
			widget.NewProgressBarInfinite(),
			createHeadline("Cleaning your image...", true, false),
			createParagraph("AI is analyzing and reconstructing the background"),
		)),
		buttonRow(cancel),
	)
}

func (ca *ClearViewApp) renderSuccess(s workspace.Success) fyne.CanvasObject {
	viewer := compare.NewViewer(s.Pair)
	ca.viewer = viewer

	startOver := widget.NewButtonWithIcon("Start Over", theme.ViewRefreshIcon(), ca.ws.Reset)
	download := widget.NewButtonWithIcon("Download HD", theme.DownloadIcon(), ca.download)
	download.Importance = widget.HighImportance

	title := widget.NewLabelWithStyle("Result", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	header := NewSplitRowWithAlignment(title, container.NewHBox(startOver, download), SplitProportion.TwoThirds, SplitAlign.Opposed)

	hint := widget.NewLabelWithStyle("Drag the slider to compare results", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	hint.Importance = widget.LowImportance

	cards := container.NewGridWithColumns(len(features))
	for _, f := range features {
		cards.Add(createFeatureCard(f.title, f.desc))
	}

	return container.NewPadded(container.NewBorder(
		header,
		container.NewVBox(hint, cards),
		nil, nil,
		viewer,
	))
}

func (ca *ClearViewApp) renderFailed(s workspace.Failed) fyne.CanvasObject {
	back := widget.NewButtonWithIcon("Back", theme.NavigateBackIcon(), ca.back)
	again := widget.NewButtonWithIcon("Try Again", theme.ViewRefreshIcon(), ca.tryAgain)
	again.Importance = widget.HighImportance
	buttons := []fyne.CanvasObject{back, again}
	if errors.Is(s.Err, editor.ErrMissingAPIKey) {
		buttons = append(buttons, widget.NewButtonWithIcon("Preferences", theme.SettingsIcon(), ca.CreatePreferencesWindow))
	}

	message := widget.NewLabel(s.Message)
	message.Wrapping = fyne.TextWrapWord
	message.Alignment = fyne.TextAlignCenter

	return page(createCard(container.NewVBox(
		widget.NewIcon(theme.ErrorIcon()),
		createHeadline("Processing Failed", true, false),
		message,
		buttonRow(buttons...),
	)))
}

// thumbnail decodes img and scales it down for display.
func thumbnail(img imagesource.Image) fyne.CanvasObject {
	decoded, err := img.Decode()
	if err != nil {
		log.Printf("Failed to decode %s for preview: %v", img.Name, err)
		return widget.NewIcon(theme.BrokenImageIcon())
	}
	thumb := imaging.Fit(decoded, previewMaxWidth, previewMaxHeight, imaging.Lanczos)
	c := canvas.NewImageFromImage(thumb)
	c.FillMode = canvas.ImageFillContain
	b := thumb.Bounds()
	c.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	return c
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
