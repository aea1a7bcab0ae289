package ui

import (
	"context"
	"fmt"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/dixieflatline76/ClearView/asset"
	"github.com/dixieflatline76/ClearView/config"
	"github.com/dixieflatline76/ClearView/util"
	"github.com/dixieflatline76/ClearView/util/log"
)

// repoURL is the project page linked from the about dialog.
const repoURL = "https://github.com/dixieflatline76/ClearView"

// checkUpdates is replaced in tests.
var checkUpdates = util.CheckForUpdates

func (ca *ClearViewApp) createAboutContent() fyne.CanvasObject {
	about, err := ca.assetMgr.GetText(asset.AboutText)
	if err != nil {
		about = config.AppName
	}
	text := widget.NewLabel(about)
	text.Wrapping = fyne.TextWrapWord

	version := widget.NewLabelWithStyle(fmt.Sprintf("Version %s", config.AppVersion), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	objects := []fyne.CanvasObject{createHeadline(config.AppName, false, true), version, text}
	if u, err := url.Parse(repoURL); err == nil {
		objects = append(objects, widget.NewHyperlink(repoURL, u))
	}
	return container.NewVBox(objects...)
}

func (ca *ClearViewApp) showAbout() {
	d := dialog.NewCustom("About "+config.AppName, "Close", ca.createAboutContent(), ca.window)
	d.Resize(fyne.NewSize(480, 320))
	d.Show()
}

// checkForUpdates looks up the latest release. Silent checks only speak up
// when a newer version exists.
func (ca *ClearViewApp) checkForUpdates(manual bool) {
	ctx, cancel := context.WithTimeout(ca.ctx, updateCheckTimeout)
	defer cancel()

	result, err := checkUpdates(ctx, nil)
	if err != nil {
		log.Printf("Update check failed: %v", err)
		if manual {
			fyne.Do(func() { dialog.ShowError(err, ca.window) })
		}
		return
	}

	switch {
	case result.UpdateAvailable:
		log.Printf("Update available: %s -> %s", result.CurrentVersion, result.LatestVersion)
		fyne.Do(func() { ca.showUpdate(result) })
	case manual:
		fyne.Do(func() {
			dialog.ShowInformation("No Updates", fmt.Sprintf("%s %s is the latest version.", config.AppName, result.CurrentVersion), ca.window)
		})
	}
}

func (ca *ClearViewApp) showUpdate(result *util.CheckForUpdatesResult) {
	msg := fmt.Sprintf("%s %s is available (you have %s). Open the release page?", config.AppName, result.LatestVersion, result.CurrentVersion)
	dialog.ShowConfirm("Update Available", msg, func(ok bool) {
		if !ok {
			return
		}
		u, err := url.Parse(result.ReleaseURL)
		if err != nil {
			log.Printf("Invalid release URL %q: %v", result.ReleaseURL, err)
			return
		}
		if err := ca.app.OpenURL(u); err != nil {
			log.Printf("Failed to open %s: %v", u, err)
		}
	}, ca.window)
}
