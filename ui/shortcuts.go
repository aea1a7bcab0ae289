package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/dixieflatline76/ClearView/pkg/workspace"
	"github.com/dixieflatline76/ClearView/util/log"
)

// shortcut binds a key, with the platform modifier, to an action.
type shortcut struct {
	name   string
	key    fyne.KeyName
	action func()
}

func (ca *ClearViewApp) shortcuts() []shortcut {
	return []shortcut{
		{"Open", fyne.KeyO, ca.openFileDialog},
		{"Save", fyne.KeyS, ca.shortcutSave},
		{"Process", fyne.KeyReturn, ca.shortcutProcess},
		{"Start Over", fyne.KeyN, ca.ws.Reset},
	}
}

// registerShortcuts adds the window shortcuts. They only act while the
// main window has focus.
func (ca *ClearViewApp) registerShortcuts() {
	for _, s := range ca.shortcuts() {
		sc := &desktop.CustomShortcut{KeyName: s.key, Modifier: fyne.KeyModifierShortcutDefault}
		action, name := s.action, s.name
		ca.window.Canvas().AddShortcut(sc, func(fyne.Shortcut) {
			log.Debugf("Shortcut %s", name)
			action()
		})
	}
}

// menuShortcut returns the shortcut registered for key, for display in menus.
func menuShortcut(key fyne.KeyName) fyne.Shortcut {
	return &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}
}

func (ca *ClearViewApp) shortcutSave() {
	if _, ok := ca.ws.Status().(workspace.Success); ok {
		ca.download()
	}
}

// shortcutProcess starts processing from a preview and retries from a failure.
func (ca *ClearViewApp) shortcutProcess() {
	switch ca.ws.Status().(type) {
	case workspace.Previewing:
		ca.process()
	case workspace.Failed:
		ca.tryAgain()
	}
}
