package workspace

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/ClearView/pkg/editor"
	"github.com/dixieflatline76/ClearView/pkg/imagesource"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// cleaner returns an editor that answers with a fixed PNG.
func cleaner(t *testing.T) editor.Editor {
	data := pngBytes(t, 8, 6)
	return editor.Func(func(_ context.Context, img imagesource.Image) (imagesource.Image, error) {
		return imagesource.Image{Name: img.Name, MIMEType: imagesource.MIMEPNG, Data: data}, nil
	})
}

// recorder collects status names in notification order.
type recorder struct {
	mu    sync.Mutex
	names []string
}

func (r *recorder) observe(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, s.Name())
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func selected(t *testing.T, ed editor.Editor) (*Workspace, *recorder) {
	t.Helper()
	w := New(ed, imagesource.NewValidator(0))
	rec := &recorder{}
	w.OnChange(rec.observe)
	require.NoError(t, w.Select("photo.png", bytes.NewReader(pngBytes(t, 8, 6))))
	return w, rec
}

func TestSelect(t *testing.T) {
	w, rec := selected(t, cleaner(t))
	s, ok := w.Status().(Previewing)
	require.True(t, ok)
	assert.Equal(t, "photo.png", s.Original.Name)
	assert.Equal(t, 8, s.Original.Width)
	assert.Equal(t, []string{"uploading", "previewing"}, rec.get())
}

func TestSelectRejected(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		max    int64
		notice string
		err    error
	}{
		{"TextFile", []byte("hello"), 0, "Please upload a valid image file (JPEG, PNG, WEBP).", imagesource.ErrInvalidFileType},
		{"TooLarge", nil, 10, "File size too large.", imagesource.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if data == nil {
				data = pngBytes(t, 32, 32)
			}
			w := New(nil, imagesource.NewValidator(tt.max))
			err := w.Select("in.png", bytes.NewReader(data))
			assert.ErrorIs(t, err, tt.err)

			idle, ok := w.Status().(Idle)
			require.True(t, ok)
			assert.True(t, strings.HasPrefix(idle.Notice, tt.notice), idle.Notice)
		})
	}
}

func TestSelectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 3, 3), 0644))

	w := New(nil, nil)
	require.NoError(t, w.SelectFile(path))
	s, ok := w.Status().(Previewing)
	require.True(t, ok)
	assert.Equal(t, "pic.png", s.Original.Name)
}

func TestProcessSuccess(t *testing.T) {
	w, rec := selected(t, cleaner(t))
	require.NoError(t, w.Process(context.Background()))
	w.Wait()

	s, ok := w.Status().(Success)
	require.True(t, ok)
	assert.Equal(t, "photo.png", s.Original().Name)
	assert.Equal(t, imagesource.MIMEPNG, s.Cleaned().MIMEType)
	assert.False(t, w.Busy())
	assert.Equal(t, []string{"uploading", "previewing", "processing", "success"}, rec.get())
}

func TestProcessFailureBackAndTryAgain(t *testing.T) {
	calls := 0
	good := cleaner(t)
	ed := editor.Func(func(ctx context.Context, img imagesource.Image) (imagesource.Image, error) {
		calls++
		if calls == 1 {
			return imagesource.Image{}, &editor.Error{Kind: editor.NoImage}
		}
		return good.Edit(ctx, img)
	})

	w, _ := selected(t, ed)
	require.NoError(t, w.Process(context.Background()))
	w.Wait()

	f, ok := w.Status().(Failed)
	require.True(t, ok)
	assert.Equal(t, editor.NoImageMessage, f.Message)
	assert.ErrorIs(t, f.Err, editor.ErrRemoteProcessing)

	require.NoError(t, w.Back())
	_, ok = w.Status().(Previewing)
	require.True(t, ok)

	require.NoError(t, w.Process(context.Background()))
	w.Wait()
	_, ok = w.Status().(Failed)
	require.False(t, ok)

	// TryAgain from a fresh failure.
	calls = 0
	require.NoError(t, w.Select("again.png", bytes.NewReader(pngBytes(t, 2, 2))))
	require.NoError(t, w.Process(context.Background()))
	w.Wait()
	require.IsType(t, Failed{}, w.Status())
	require.NoError(t, w.TryAgain(context.Background()))
	w.Wait()
	assert.IsType(t, Success{}, w.Status())
	assert.Equal(t, 2, calls)
}

func TestProcessWithoutEditor(t *testing.T) {
	w, _ := selected(t, nil)
	require.NoError(t, w.Process(context.Background()))
	w.Wait()

	f, ok := w.Status().(Failed)
	require.True(t, ok)
	assert.ErrorIs(t, f.Err, editor.ErrMissingAPIKey)
	assert.True(t, strings.HasPrefix(f.Message, "No Gemini API key"))
}

func TestProcessUnusableResult(t *testing.T) {
	ed := editor.Func(func(_ context.Context, img imagesource.Image) (imagesource.Image, error) {
		return imagesource.Image{MIMEType: imagesource.MIMEPNG, Data: []byte("not a png")}, nil
	})
	w, _ := selected(t, ed)
	require.NoError(t, w.Process(context.Background()))
	w.Wait()

	f, ok := w.Status().(Failed)
	require.True(t, ok)
	assert.Equal(t, "Failed to process image format.", f.Message)
}

// blockingEditor blocks until released or cancelled.
func blockingEditor(t *testing.T, started chan<- struct{}, release <-chan struct{}) editor.Editor {
	good := cleaner(t)
	return editor.Func(func(ctx context.Context, img imagesource.Image) (imagesource.Image, error) {
		started <- struct{}{}
		select {
		case <-release:
			return good.Edit(ctx, img)
		case <-ctx.Done():
			return imagesource.Image{}, ctx.Err()
		}
	})
}

func TestProcessBusy(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	w, _ := selected(t, blockingEditor(t, started, release))

	require.NoError(t, w.Process(context.Background()))
	<-started
	assert.True(t, w.Busy())
	assert.ErrorIs(t, w.Process(context.Background()), ErrBusy)
	assert.ErrorIs(t, w.Select("x.png", bytes.NewReader(nil)), ErrBusy)

	close(release)
	w.Wait()
	assert.IsType(t, Success{}, w.Status())
}

func TestResetDiscardsLateResult(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	w, rec := selected(t, blockingEditor(t, started, release))

	require.NoError(t, w.Process(context.Background()))
	<-started
	w.Reset()
	w.Wait()
	close(release)

	assert.Equal(t, Idle{}, w.Status())
	assert.False(t, w.Busy())
	assert.Equal(t, []string{"uploading", "previewing", "processing", "idle"}, rec.get())
}

func TestInvalidTransitions(t *testing.T) {
	w := New(nil, nil)
	assert.ErrorIs(t, w.Process(context.Background()), ErrInvalidTransition)
	assert.ErrorIs(t, w.TryAgain(context.Background()), ErrInvalidTransition)
	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)
	_, err := w.Download(t.TempDir())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDownload(t *testing.T) {
	w, _ := selected(t, cleaner(t))
	w.now = func() time.Time { return time.UnixMilli(42) }
	require.NoError(t, w.Process(context.Background()))
	w.Wait()

	dir := t.TempDir()
	path, err := w.Download(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clearview-cleaned-42.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, w.Status().(Success).Cleaned().Data, data)

	w.Reset()
	assert.Equal(t, Idle{}, w.Status())
	_, err = w.Download(dir)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}
