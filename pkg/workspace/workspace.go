// Package workspace holds the application state machine: select an image,
// send it to the editor, compare the result and save it.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/dixieflatline76/ClearView/pkg/compare"
	"github.com/dixieflatline76/ClearView/pkg/editor"
	"github.com/dixieflatline76/ClearView/pkg/imagesource"
	"github.com/dixieflatline76/ClearView/util"
	"github.com/dixieflatline76/ClearView/util/log"
)

var (
	// ErrBusy is returned while a request is in flight.
	ErrBusy = errors.New("an image is already being processed")
	// ErrInvalidTransition is returned when an operation does not apply to
	// the current status.
	ErrInvalidTransition = errors.New("operation not available in the current state")
)

// defaultFailure is shown when an error carries no description.
const defaultFailure = "Something went wrong"

// Workspace is the host state machine. All methods are safe for concurrent use.
type Workspace struct {
	mu        sync.Mutex
	status    Status
	validator *imagesource.Validator
	editor    editor.Editor

	busy   *util.SafeFlag
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup

	notifyMu  sync.Mutex
	observers []func(Status)

	now func() time.Time
}

// New creates an idle Workspace. ed may be nil until an API key is configured;
// processing then fails with editor.ErrMissingAPIKey.
func New(ed editor.Editor, v *imagesource.Validator) *Workspace {
	if v == nil {
		v = imagesource.NewValidator(0)
	}
	return &Workspace{
		status:    Idle{},
		validator: v,
		editor:    ed,
		busy:      util.NewSafeBool(),
		now:       time.Now,
	}
}

// SetEditor replaces the editor used by the next request.
func (w *Workspace) SetEditor(ed editor.Editor) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.editor = ed
}

// SetValidator replaces the upload validator.
func (w *Workspace) SetValidator(v *imagesource.Validator) {
	if v == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.validator = v
}

// Validator returns the current upload validator.
func (w *Workspace) Validator() *imagesource.Validator {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validator
}

// Status returns the current status.
func (w *Workspace) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Busy reports whether a request is in flight.
func (w *Workspace) Busy() bool {
	return w.busy.Value()
}

// OnChange registers fn to be called with every new status, in order.
// Callbacks run on the goroutine that caused the change and must not call
// back into the Workspace synchronously.
func (w *Workspace) OnChange(fn func(Status)) {
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()
	w.observers = append(w.observers, fn)
}

// Select reads and validates an image from r. On success the workspace
// previews it; on validation failure it returns to Idle with a notice and
// the error is returned.
func (w *Workspace) Select(name string, r io.Reader) error {
	v, err := w.beginUpload(name)
	if err != nil {
		return err
	}
	img, err := v.Load(name, r)
	return w.finishUpload(v, img, err)
}

// SelectFile is Select for a file on disk.
func (w *Workspace) SelectFile(path string) error {
	v, err := w.beginUpload(filepath.Base(path))
	if err != nil {
		return err
	}
	img, err := v.LoadFile(path)
	return w.finishUpload(v, img, err)
}

func (w *Workspace) beginUpload(source string) (*imagesource.Validator, error) {
	w.mu.Lock()
	if _, ok := w.status.(Processing); ok {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	v := w.validator
	w.transition(Uploading{Source: source})
	return v, nil
}

func (w *Workspace) finishUpload(v *imagesource.Validator, img imagesource.Image, err error) error {
	w.mu.Lock()
	if _, ok := w.status.(Uploading); !ok {
		// Reset while reading.
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	if err != nil {
		log.Printf("Rejected upload: %v", err)
		w.transition(Idle{Notice: v.Message(err)})
		return err
	}
	log.Printf("Selected %s (%s, %dx%d, %d bytes)", img.Name, img.MIMEType, img.Width, img.Height, len(img.Data))
	w.transition(Previewing{Original: img})
	return nil
}

// Process sends the previewed image to the editor. It returns at once; the
// outcome arrives as a Success or Failed status. Calling Process while a
// request is in flight returns ErrBusy.
func (w *Workspace) Process(ctx context.Context) error {
	w.mu.Lock()
	var original imagesource.Image
	switch s := w.status.(type) {
	case Previewing:
		original = s.Original
	case Failed:
		original = s.Original
	case Processing:
		w.mu.Unlock()
		return ErrBusy
	default:
		w.mu.Unlock()
		return fmt.Errorf("%w: process from %s", ErrInvalidTransition, w.status.Name())
	}
	if !w.busy.TrySet() {
		w.mu.Unlock()
		return ErrBusy
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	gen := w.gen
	ed := w.editor
	w.wg.Add(1)
	w.transition(Processing{Original: original})

	go w.run(ctx, cancel, gen, ed, original)
	return nil
}

// TryAgain repeats the failed request.
func (w *Workspace) TryAgain(ctx context.Context) error {
	if _, ok := w.Status().(Failed); !ok {
		return fmt.Errorf("%w: try again outside an error", ErrInvalidTransition)
	}
	return w.Process(ctx)
}

// Back returns from a failure to the preview of the same image.
func (w *Workspace) Back() error {
	w.mu.Lock()
	s, ok := w.status.(Failed)
	if !ok {
		w.mu.Unlock()
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, w.status.Name())
	}
	w.transition(Previewing{Original: s.Original})
	return nil
}

// Reset drops all images and cancels any request in flight. A result that
// arrives afterwards is discarded.
func (w *Workspace) Reset() {
	w.mu.Lock()
	w.gen++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.busy.Set(false)
	w.transition(Idle{})
}

// Download saves the cleaned image into dir and returns its path.
func (w *Workspace) Download(dir string) (string, error) {
	s, ok := w.Status().(Success)
	if !ok {
		return "", fmt.Errorf("%w: nothing to download", ErrInvalidTransition)
	}
	path, err := imagesource.Save(dir, s.Cleaned(), w.now())
	if err != nil {
		return "", err
	}
	log.Printf("Saved cleaned image to %s", path)
	return path, nil
}

// Wait blocks until every request started so far has finished.
func (w *Workspace) Wait() {
	w.wg.Wait()
}

func (w *Workspace) run(ctx context.Context, cancel context.CancelFunc, gen uint64, ed editor.Editor, original imagesource.Image) {
	defer w.wg.Done()
	defer cancel()

	next := w.edit(ctx, ed, original)

	w.mu.Lock()
	if gen != w.gen {
		w.mu.Unlock()
		log.Debugf("Discarding %s result of a reset request", next.Name())
		return
	}
	w.cancel = nil
	w.busy.Set(false)
	w.transition(next)
}

func (w *Workspace) edit(ctx context.Context, ed editor.Editor, original imagesource.Image) Status {
	if ed == nil {
		return failed(original, editor.ErrMissingAPIKey)
	}
	start := time.Now()
	cleaned, err := ed.Edit(ctx, original)
	if err != nil {
		log.Printf("Processing %s failed after %s: %v", original.Name, time.Since(start).Round(time.Millisecond), err)
		return failed(original, err)
	}
	pair, err := compare.NewPair(original, cleaned)
	if err != nil {
		log.Printf("Processed image is unusable: %v", err)
		return Failed{Original: original, Err: err, Message: "Failed to process image format."}
	}
	return Success{Pair: pair}
}

func failed(original imagesource.Image, err error) Failed {
	msg := editor.Message(err)
	if msg == "" {
		msg = defaultFailure
	}
	return Failed{Original: original, Err: err, Message: msg}
}

// transition sets the status, releases w.mu and notifies observers in order.
// It must be called with w.mu held.
func (w *Workspace) transition(next Status) {
	prev := w.status
	w.status = next
	w.notifyMu.Lock()
	w.mu.Unlock()
	defer w.notifyMu.Unlock()

	log.Debugf("Workspace %s -> %s", prev.Name(), next.Name())
	for _, fn := range w.observers {
		fn(next)
	}
}
