// Package asset serves the icons and texts embedded in the binary.
package asset

import (
	"embed"
	"fmt"

	"fyne.io/fyne/v2"

	"github.com/dixieflatline76/ClearView/util/log"
)

// Embedded asset names.
const (
	AppIconName = "clearview.svg"
	AboutText   = "about.txt"
	EULAText    = "eula.txt"
)

//go:embed icons/* text/*
var assets embed.FS

// Manager manages the loading of UI assets.
type Manager struct{}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{}
}

// GetIcon loads and returns embedded icon asset by name.
func (am *Manager) GetIcon(name string) (fyne.Resource, error) {
	if name == "" {
		return nil, fmt.Errorf("icon name is empty")
	}

	iconData, err := assets.ReadFile("icons/" + name)
	if err != nil {
		log.Printf("Failed to load icon %s: %v", name, err)
		return nil, fmt.Errorf("icon %s: %w", name, err)
	}

	return fyne.NewStaticResource(name, iconData), nil
}

// AppIcon returns the ClearView icon, or nil when it cannot be loaded.
func (am *Manager) AppIcon() fyne.Resource {
	icon, err := am.GetIcon(AppIconName)
	if err != nil {
		return nil
	}
	return icon
}

// GetText loads and returns embedded text asset by name.
func (am *Manager) GetText(name string) (string, error) {
	textBytes, err := assets.ReadFile("text/" + name)
	if err != nil {
		log.Printf("Failed to load text %s: %v", name, err)
		return "", fmt.Errorf("text %s: %w", name, err)
	}
	return string(textBytes), nil
}
