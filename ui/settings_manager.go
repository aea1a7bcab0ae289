package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/dixieflatline76/ClearView/pkg/ui/setting"
	"github.com/dixieflatline76/ClearView/util/log"
)

// SettingsManager queues preference changes until Apply is pressed.
type SettingsManager struct {
	chgPrefsCallbacks   map[string]func()
	refreshFlags        map[string]bool
	refreshFuncs        []func()
	checkAndEnableApply func()
	applyButton         *widget.Button
	prefsWindow         fyne.Window
}

// NewSettingsManager creates a new SettingsManager for window.
func NewSettingsManager(window fyne.Window) setting.SettingsManager {
	sm := &SettingsManager{
		chgPrefsCallbacks: make(map[string]func()),
		refreshFlags:      make(map[string]bool),
		prefsWindow:       window,
	}

	sm.applyButton = createApplyButton(sm)
	sm.checkAndEnableApply = func() {
		if len(sm.refreshFlags) > 0 || len(sm.chgPrefsCallbacks) > 0 {
			sm.applyButton.Enable()
		} else {
			sm.applyButton.Disable()
		}
		sm.applyButton.Refresh()
	}

	return sm
}

// createApplyButton creates the Apply Changes button. Pending callbacks run
// first, then the refresh functions when any applied setting asked for one.
func createApplyButton(sm *SettingsManager) *widget.Button {
	applyButton := widget.NewButton("Apply Changes", nil)
	applyButton.Importance = widget.HighImportance
	applyButton.OnTapped = func() {
		applyButton.Disable()

		for name, callback := range sm.chgPrefsCallbacks {
			log.Debugf("Applying setting %s", name)
			callback()
		}
		sm.chgPrefsCallbacks = make(map[string]func())

		if len(sm.refreshFlags) > 0 {
			for _, rf := range sm.refreshFuncs {
				rf()
			}
			sm.refreshFlags = make(map[string]bool)
		}
		sm.checkAndEnableApply()
	}
	applyButton.Disable()
	return applyButton
}

// GetApplySettingsButton returns the Apply Changes button.
func (sm *SettingsManager) GetApplySettingsButton() *widget.Button {
	return sm.applyButton
}

// trackChange queues or drops the change for name depending on changed.
func (sm *SettingsManager) trackChange(name string, changed, needsRefresh bool, apply func()) {
	if changed {
		sm.SetSettingChangedCallback(name, apply)
		if needsRefresh {
			sm.SetRefreshFlag(name)
		}
	} else {
		sm.RemoveSettingChangedCallback(name)
		if needsRefresh {
			sm.UnsetRefreshFlag(name)
		}
	}
	sm.checkAndEnableApply()
}

// CreateSelectSetting creates a select setting.
func (sm *SettingsManager) CreateSelectSetting(cfg *setting.SelectConfig, header *fyne.Container) *widget.Select {
	selectWidget := widget.NewSelect(cfg.Options, nil)
	selectWidget.SetSelectedIndex(cfg.InitialValue)

	header.Add(NewSplitRow(cfg.Label, selectWidget, SplitProportion.OneThird))
	if cfg.HelpContent != nil {
		header.Add(cfg.HelpContent)
	}

	selectWidget.OnChanged = func(s string) {
		selectedIndex := selectWidget.SelectedIndex()
		sm.trackChange(cfg.Name, selectedIndex != cfg.InitialValue, cfg.NeedsRefresh, func() {
			cfg.ApplyFunc(selectedIndex)
			cfg.InitialValue = selectedIndex
		})
		if cfg.OnChanged != nil {
			cfg.OnChanged(s, selectedIndex)
		}
	}
	return selectWidget
}

// CreateBoolSetting creates a boolean check setting.
func (sm *SettingsManager) CreateBoolSetting(cfg *setting.BoolConfig, header *fyne.Container) *widget.Check {
	check := widget.NewCheck("", nil)
	check.SetChecked(cfg.InitialValue)

	header.Add(NewSplitRow(cfg.Label, check, SplitProportion.OneThird))
	if cfg.HelpContent != nil {
		header.Add(cfg.HelpContent)
	}

	check.OnChanged = func(b bool) {
		sm.trackChange(cfg.Name, b != cfg.InitialValue, cfg.NeedsRefresh, func() {
			cfg.ApplyFunc(b)
			cfg.InitialValue = b
		})
		if cfg.OnChanged != nil {
			cfg.OnChanged(b)
		}
	}
	return check
}

// CreateTextEntrySetting creates a text entry setting with an inline status label.
func (sm *SettingsManager) CreateTextEntrySetting(cfg *setting.TextEntrySettingConfig, header *fyne.Container) *widget.Entry {
	var entry *widget.Entry
	if cfg.Password {
		entry = widget.NewPasswordEntry()
	} else {
		entry = widget.NewEntry()
	}
	entry.SetPlaceHolder(cfg.PlaceHolder)
	entry.SetText(cfg.InitialValue)
	if cfg.Validator != nil {
		entry.Validator = cfg.Validator
	}

	statusLabel := widget.NewLabel("")

	header.Add(NewSplitRow(cfg.Label, entry, SplitProportion.OneThird))
	if cfg.HelpContent != nil {
		header.Add(NewSplitRowWithAlignment(cfg.HelpContent, statusLabel, SplitProportion.TwoThirds, SplitAlign.Opposed))
	} else {
		header.Add(NewSplitRow(widget.NewLabel(""), statusLabel, SplitProportion.TwoThirds))
	}

	entry.OnChanged = func(s string) {
		err := entry.Validate()
		if err == nil && cfg.PostValidateCheck != nil {
			err = cfg.PostValidateCheck(s)
		}

		if err != nil {
			statusLabel.SetText(err.Error())
			statusLabel.Importance = widget.DangerImportance
			sm.trackChange(cfg.Name, false, cfg.NeedsRefresh, nil)
		} else {
			statusLabel.SetText(cfg.Name + " OK")
			statusLabel.Importance = widget.SuccessImportance
			sm.trackChange(cfg.Name, s != cfg.InitialValue, cfg.NeedsRefresh, func() {
				cfg.ApplyFunc(entry.Text)
				cfg.InitialValue = entry.Text
			})
		}
		statusLabel.Refresh()
	}
	return entry
}

// CreateButtonWithConfirmationSetting creates a button, optionally guarded by a confirmation dialog.
func (sm *SettingsManager) CreateButtonWithConfirmationSetting(cfg *setting.ButtonWithConfirmationConfig, header *fyne.Container) {
	button := widget.NewButton(cfg.ButtonText, func() {
		if cfg.ConfirmTitle == "" || cfg.ConfirmMessage == "" {
			cfg.OnPressed()
			return
		}
		dialog.ShowConfirm(cfg.ConfirmTitle, cfg.ConfirmMessage, func(b bool) {
			if b {
				cfg.OnPressed()
			}
		}, sm.prefsWindow)
	})

	if cfg.Label != nil {
		header.Add(NewSplitRow(cfg.Label, button, SplitProportion.OneThird))
	} else {
		header.Add(button)
	}
	if cfg.HelpContent != nil {
		header.Add(cfg.HelpContent)
	}
}

// SetSettingChangedCallback queues callback to run on apply.
func (sm *SettingsManager) SetSettingChangedCallback(settingName string, callback func()) {
	sm.chgPrefsCallbacks[settingName] = callback
}

// RemoveSettingChangedCallback drops the queued callback of settingName.
func (sm *SettingsManager) RemoveSettingChangedCallback(settingName string) {
	delete(sm.chgPrefsCallbacks, settingName)
}

// SetRefreshFlag marks settingName as needing a refresh on apply.
func (sm *SettingsManager) SetRefreshFlag(settingName string) {
	sm.refreshFlags[settingName] = true
}

// UnsetRefreshFlag clears the refresh mark of settingName.
func (sm *SettingsManager) UnsetRefreshFlag(settingName string) {
	delete(sm.refreshFlags, settingName)
}

// RegisterRefreshFunc registers a function to run after applying changes
// that need a refresh, such as rebuilding the editor after a new API key.
func (sm *SettingsManager) RegisterRefreshFunc(refreshFunc func()) {
	sm.refreshFuncs = append(sm.refreshFuncs, refreshFunc)
}

// GetSettingsWindow returns the window associated with the SettingsManager.
func (sm *SettingsManager) GetSettingsWindow() fyne.Window {
	return sm.prefsWindow
}

// GetCheckAndEnableApplyFunc returns the function that re-evaluates the Apply button.
func (sm *SettingsManager) GetCheckAndEnableApplyFunc() func() {
	return sm.checkAndEnableApply
}
