package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/dixieflatline76/ClearView/util"
	"github.com/dixieflatline76/ClearView/util/log"
)

// verifyEULA shows the data notice until the user accepts it. Declining quits.
func (ca *ClearViewApp) verifyEULA() {
	if util.HasAcceptedEULA(ca.Preferences()) {
		return
	}
	ca.displayEULAAcceptance()
}

func (ca *ClearViewApp) displayEULAAcceptance() {
	text := util.EULAText()
	if text == "" {
		log.Fatalf("Data notice is missing from the build")
	}

	eulaWdgt := widget.NewRichTextWithText(text)
	eulaWdgt.Wrapping = fyne.TextWrapWord
	eulaScroll := container.NewVScroll(eulaWdgt)
	eulaScroll.SetMinSize(fyne.NewSize(600, 360))

	d := dialog.NewCustomConfirm("Before you start, please review how ClearView handles your images.", "Accept", "Decline", eulaScroll, func(accepted bool) {
		if !accepted {
			log.Println("Data notice declined, quitting")
			ca.app.Quit()
			return
		}
		util.MarkEULAAccepted(ca.Preferences())
	}, ca.window)
	d.Show()
}
