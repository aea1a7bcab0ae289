package ui

import "time"

// Main window size.
const (
	windowWidth  = 1024
	windowHeight = 860
)

// previewMaxSize bounds the thumbnail shown before processing.
const (
	previewMaxWidth  = 640
	previewMaxHeight = 420
)

// updateCheckTimeout bounds the GitHub release lookup.
const updateCheckTimeout = 15 * time.Second

// settingsWindowTitle is the title of the preferences window.
const settingsWindowTitle = "ClearView Preferences"

// acceptedExtensions are offered by the open dialog.
var acceptedExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// maxUploadOptionsMB are the selectable upload limits.
var maxUploadOptionsMB = []int{1, 2, 5, 10, 20, 50}

// timeoutOptions are the selectable request timeouts.
var timeoutOptions = []time.Duration{30 * time.Second, time.Minute, 2 * time.Minute, 5 * time.Minute}

// features are the cards shown under a result.
var features = []struct{ title, desc string }{
	{"Seamless Removal", "Text, logos and stamps are removed without leaving traces."},
	{"Inpainting", "The model reconstructs the background where the marks were."},
	{"High Quality", "The cleaned image is saved exactly as the model returned it."},
}
