package editor

import (
	"errors"
	"fmt"
)

// Kind classifies a remote processing failure.
type Kind int

const (
	// Transport covers client construction, network and HTTP status failures.
	Transport Kind = iota
	// NoImage means the model answered without an image part.
	NoImage
	// Refused means the prompt was blocked or generation stopped for safety.
	Refused
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case NoImage:
		return "no image"
	case Refused:
		return "refused"
	default:
		return "unknown"
	}
}

// NoImageMessage is shown when the model returns text only.
const NoImageMessage = "The model did not return an image. It might have refused the request or returned text only."

// fallbackMessage is shown when a failure carries no description.
const fallbackMessage = "Failed to process image with Gemini."

var (
	// ErrRemoteProcessing matches every *Error with errors.Is.
	ErrRemoteProcessing = errors.New("remote processing failed")
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("missing Gemini API key")
)

// Error is a remote processing failure.
type Error struct {
	Kind   Kind
	Reason string // Human readable description, may be empty
	Err    error  // Underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrRemoteProcessing, e.Kind)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrRemoteProcessing as matching any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrRemoteProcessing
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the text shown to the user.
func (e *Error) Message() string {
	switch {
	case e.Kind == NoImage:
		return NoImageMessage
	case e.Reason != "":
		return e.Reason
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fallbackMessage
	}
}

// Message returns a user readable description of any editor error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Message()
	}
	if errors.Is(err, ErrMissingAPIKey) {
		return "No Gemini API key is configured. Add one in Preferences or set GEMINI_API_KEY."
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}
