package workspace

import (
	"github.com/dixieflatline76/ClearView/pkg/compare"
	"github.com/dixieflatline76/ClearView/pkg/imagesource"
)

// Status is the state of the workspace. The set of variants is closed:
// Idle, Uploading, Previewing, Processing, Success and Failed.
type Status interface {
	status()
	// Name identifies the variant in logs.
	Name() string
}

// Idle waits for an image. Notice holds the last upload error, if any.
type Idle struct {
	Notice string
}

// Uploading is reading and validating a selected file.
type Uploading struct {
	Source string
}

// Previewing shows the selected image, ready to process.
type Previewing struct {
	Original imagesource.Image
}

// Processing waits on the remote editor.
type Processing struct {
	Original imagesource.Image
}

// Success holds the before/after pair.
type Success struct {
	Pair compare.Pair
}

// Failed holds a recoverable processing failure.
type Failed struct {
	Original imagesource.Image
	Err      error
	Message  string
}

func (Idle) status()       {}
func (Uploading) status()  {}
func (Previewing) status() {}
func (Processing) status() {}
func (Success) status()    {}
func (Failed) status()     {}

func (Idle) Name() string       { return "idle" }
func (Uploading) Name() string  { return "uploading" }
func (Previewing) Name() string { return "previewing" }
func (Processing) Name() string { return "processing" }
func (Success) Name() string    { return "success" }
func (Failed) Name() string     { return "error" }

// Cleaned returns the processed image.
func (s Success) Cleaned() imagesource.Image {
	return s.Pair.After
}

// Original returns the image selected by the user.
func (s Success) Original() imagesource.Image {
	return s.Pair.Before
}
