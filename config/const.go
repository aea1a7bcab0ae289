package config

import "strings"

// AppVersion is the version of the application, set at build time with -ldflags.
var AppVersion = "0.1.0"

// AppName is the name of the application.
const AppName = "ClearView"

// AppID is the fyne application ID, also used as the keyring service name.
const AppID = "io.github.dixieflatline76.clearview"

// LogCacheSubDir is the log sub directory inside the user cache directory.
var LogCacheSubDir = AppName

// LogSubDir is the log sub directory in the home directory, used when there is no cache directory.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// Defaults shared by the desktop app and the clean command.
const (
	DefaultModel       = "gemini-2.5-flash-image"
	DefaultTimeoutSec  = 120
	DefaultMaxUploadMB = 5
	DefaultTheme       = ThemeSystem
)

// Theme names stored in preferences.
const (
	ThemeSystem = "System"
	ThemeLight  = "Light"
	ThemeDark   = "Dark"
)

// Themes lists the selectable theme names in display order.
var Themes = []string{ThemeSystem, ThemeLight, ThemeDark}
