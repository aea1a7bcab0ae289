package ui

import (
	"fmt"
	"slices"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/validation"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/dixieflatline76/ClearView/config"
	"github.com/dixieflatline76/ClearView/pkg/ui/setting"
)

// modelNameRegexp accepts Gemini model identifiers such as gemini-2.5-flash-image.
const modelNameRegexp = `^[a-z0-9][a-z0-9.\-]*$`

// apiKeyRegexp accepts an empty key (to remove it) or a single token.
const apiKeyRegexp = `^\S*$`

// indexOr returns the index of v in options, or fallback when absent.
func indexOr[T comparable](options []T, v T, fallback int) int {
	if i := slices.Index(options, v); i >= 0 {
		return i
	}
	return fallback
}

type megabytes int

func (m megabytes) String() string {
	return fmt.Sprintf("%d MB", int(m))
}

// createGeminiPreferences adds the remote editor settings to header.
func (ca *ClearViewApp) createGeminiPreferences(sm setting.SettingsManager, header *fyne.Container) {
	header.Add(sm.CreateSectionTitleLabel("Gemini"))
	header.Add(sm.CreateSettingDescriptionLabel("ClearView sends the selected image to Google Gemini for cleaning. Changes take effect for the next image."))

	sm.CreateTextEntrySetting(&setting.TextEntrySettingConfig{
		Name:         "API Key",
		InitialValue: ca.cfg.GetAPIKey(),
		PlaceHolder:  "Paste your Gemini API key",
		Password:     true,
		Label:        sm.CreateSettingTitleLabel("API Key:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Stored in the system keyring. Leave empty to fall back to GEMINI_API_KEY."),
		Validator:    validation.NewRegexp(apiKeyRegexp, "API keys cannot contain spaces"),
		ApplyFunc:    ca.cfg.SetAPIKey,
		NeedsRefresh: true,
	}, header)

	sm.CreateTextEntrySetting(&setting.TextEntrySettingConfig{
		Name:         "Model",
		InitialValue: ca.cfg.GetModel(),
		PlaceHolder:  config.DefaultModel,
		Label:        sm.CreateSettingTitleLabel("Model:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Gemini model that edits the image. It must be able to return images."),
		Validator:    validation.NewRegexp(modelNameRegexp, "Model names use lower case letters, digits, dots and dashes"),
		ApplyFunc:    ca.cfg.SetModel,
		NeedsRefresh: true,
	}, header)

	timeoutIdx := indexOr(timeoutOptions, time.Duration(ca.cfg.GetTimeoutSec())*time.Second,
		indexOr(timeoutOptions, config.DefaultTimeoutSec*time.Second, 0))
	sm.CreateSelectSetting(&setting.SelectConfig{
		Name:         "Timeout",
		Options:      setting.StringOptions(timeoutOptions),
		InitialValue: timeoutIdx,
		Label:        sm.CreateSettingTitleLabel("Request Timeout:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("How long to wait for Gemini before giving up."),
		ApplyFunc: func(i int) {
			ca.cfg.SetTimeoutSec(int(timeoutOptions[i] / time.Second))
		},
		NeedsRefresh: true,
	}, header)

	uploadOptions := make([]megabytes, len(maxUploadOptionsMB))
	for i, mb := range maxUploadOptionsMB {
		uploadOptions[i] = megabytes(mb)
	}
	sm.CreateSelectSetting(&setting.SelectConfig{
		Name:         "Max Upload",
		Options:      setting.StringOptions(uploadOptions),
		InitialValue: indexOr(maxUploadOptionsMB, ca.cfg.GetMaxUploadMB(), indexOr(maxUploadOptionsMB, config.DefaultMaxUploadMB, 0)),
		Label:        sm.CreateSettingTitleLabel("Max Upload Size:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Larger images are rejected before anything is sent."),
		ApplyFunc: func(i int) {
			ca.cfg.SetMaxUploadMB(maxUploadOptionsMB[i])
		},
		NeedsRefresh: true,
	}, header)
}

// createAppPreferences adds appearance and update settings to header.
func (ca *ClearViewApp) createAppPreferences(sm setting.SettingsManager, header *fyne.Container) {
	header.Add(widget.NewSeparator())
	header.Add(sm.CreateSectionTitleLabel("Application"))

	sm.CreateSelectSetting(&setting.SelectConfig{
		Name:         "Theme",
		Options:      config.Themes,
		InitialValue: indexOr(config.Themes, ca.cfg.GetTheme(), 0),
		Label:        sm.CreateSettingTitleLabel("Theme:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Follow the system or force a light or dark look."),
		ApplyFunc: func(i int) {
			ca.cfg.SetTheme(config.Themes[i])
		},
		NeedsRefresh: true,
	}, header)

	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         "Update Check",
		InitialValue: ca.cfg.GetUpdateCheckEnabled(),
		Label:        sm.CreateSettingTitleLabel("Check for updates on startup:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Looks up the latest ClearView release on GitHub."),
		ApplyFunc:    ca.cfg.SetUpdateCheckEnabled,
	}, header)

	sm.CreateButtonWithConfirmationSetting(&setting.ButtonWithConfirmationConfig{
		Name:           "Forget API Key",
		Label:          sm.CreateSettingTitleLabel("Stored API key:"),
		ButtonText:     "Forget API Key",
		ConfirmTitle:   "Forget API Key",
		ConfirmMessage: "Remove the Gemini API key from the system keyring?",
		OnPressed: func() {
			ca.cfg.SetAPIKey("")
			ca.applySettings()
		},
	}, header)
}

// CreatePreferencesWindow creates and displays the preferences window.
func (ca *ClearViewApp) CreatePreferencesWindow() {
	prefsWindow := ca.app.NewWindow(settingsWindowTitle)
	prefsWindow.Resize(fyne.NewSize(720, 620))
	prefsWindow.CenterOnScreen()
	prefsWindow.SetContent(ca.createPreferencesContent(prefsWindow))
	prefsWindow.Show()
}

func (ca *ClearViewApp) createPreferencesContent(prefsWindow fyne.Window) fyne.CanvasObject {
	sm := NewSettingsManager(prefsWindow)
	sm.RegisterRefreshFunc(ca.applySettings)

	header := container.NewVBox()
	ca.createGeminiPreferences(sm, header)
	ca.createAppPreferences(sm, header)

	closeButton := widget.NewButton("Close", prefsWindow.Close)
	footer := container.NewHBox(layout.NewSpacer(), closeButton, sm.GetApplySettingsButton())

	return container.NewBorder(nil, container.NewVBox(widget.NewSeparator(), footer), nil, nil,
		container.NewVScroll(container.NewPadded(header)))
}
