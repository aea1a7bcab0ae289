// Package setting defines the contract between preference sections and the
// window that hosts them.
package setting

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// SettingsHelper creates the labels shared by every preference section.
type SettingsHelper interface {
	CreateSectionTitleLabel(desc string) *widget.Label           // Creates a section title label.
	CreateSettingTitleLabel(desc string) *widget.Label           // Creates a setting title label.
	CreateSettingDescriptionLabel(desc string) fyne.CanvasObject // Creates a setting description label.
}

// SelectConfig holds the configuration for a select widget. Values are option indexes.
type SelectConfig struct {
	Name         string
	Options      []string
	InitialValue int
	Label        fyne.CanvasObject
	HelpContent  fyne.CanvasObject
	OnChanged    func(selected string, index int)
	ApplyFunc    func(index int)
	NeedsRefresh bool
}

// BoolConfig holds configuration for a boolean check widget.
type BoolConfig struct {
	Name         string
	InitialValue bool
	Label        fyne.CanvasObject
	HelpContent  fyne.CanvasObject
	OnChanged    func(bool)
	ApplyFunc    func(bool)
	NeedsRefresh bool
}

// TextEntrySettingConfig holds configuration for a text entry widget.
type TextEntrySettingConfig struct {
	Name              string
	InitialValue      string
	PlaceHolder       string
	Password          bool // Mask the entry, for secrets
	Label             fyne.CanvasObject
	HelpContent       fyne.CanvasObject
	Validator         fyne.StringValidator
	PostValidateCheck func(string) error
	ApplyFunc         func(string)
	NeedsRefresh      bool
}

// ButtonWithConfirmationConfig holds configuration for a button with confirmation dialog.
type ButtonWithConfirmationConfig struct {
	Name           string
	Label          fyne.CanvasObject
	HelpContent    fyne.CanvasObject
	ButtonText     string
	ConfirmTitle   string
	ConfirmMessage string
	OnPressed      func()
}

// StringOptions converts a slice of fmt.Stringer to a slice of strings.
func StringOptions[T fmt.Stringer](options []T) []string {
	stringOptions := make([]string, 0, len(options))
	for _, option := range options {
		stringOptions = append(stringOptions, option.String())
	}
	return stringOptions
}

// SettingsManager collects pending preference changes and applies them together.
type SettingsManager interface {
	SettingsHelper

	CreateSelectSetting(cfg *SelectConfig, header *fyne.Container) *widget.Select                  // Create a select setting widget.
	CreateBoolSetting(cfg *BoolConfig, header *fyne.Container) *widget.Check                       // Create a boolean setting widget.
	CreateTextEntrySetting(cfg *TextEntrySettingConfig, header *fyne.Container) *widget.Entry      // Create a text entry setting widget.
	CreateButtonWithConfirmationSetting(cfg *ButtonWithConfirmationConfig, header *fyne.Container) // Create a button setting with confirmation dialog widget.

	GetApplySettingsButton() *widget.Button                        // The Apply Changes button shared by all sections.
	SetSettingChangedCallback(settingName string, callback func()) // Queue a change to run on apply.
	RemoveSettingChangedCallback(settingName string)               // Drop a queued change.
	SetRefreshFlag(settingName string)                             // Mark that applying settingName needs a refresh.
	UnsetRefreshFlag(settingName string)                           // Clear the refresh mark for settingName.

	RegisterRefreshFunc(refreshFunc func()) // Run refreshFunc after applying changes that need a refresh.
	GetSettingsWindow() fyne.Window         // The window hosting the settings.
	GetCheckAndEnableApplyFunc() func()     // Re-evaluates whether Apply is enabled.
}
