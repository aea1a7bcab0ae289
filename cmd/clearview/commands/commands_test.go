package commands

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/ClearView/config"
	"github.com/dixieflatline76/ClearView/pkg/editor"
	"github.com/dixieflatline76/ClearView/pkg/imagesource"
)

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 3))))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

// useEditor swaps the editor factory for the duration of the test and
// records the settings it was built with.
func useEditor(t *testing.T, ed editor.Editor) *config.Settings {
	t.Helper()
	orig := newEditor
	t.Cleanup(func() { newEditor = orig })
	var seen config.Settings
	newEditor = func(_ context.Context, s config.Settings) (editor.Editor, error) {
		seen = s
		return ed, nil
	}
	return &seen
}

func echoEditor() editor.Editor {
	return editor.Func(func(_ context.Context, img imagesource.Image) (imagesource.Image, error) {
		return img, nil
	})
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, config.AppName+" "+config.AppVersion+"\n", out)
}

func TestClean(t *testing.T) {
	seen := useEditor(t, echoEditor())
	in := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	a := writePNG(t, in, "a.png")
	b := filepath.Join(in, "b.txt")
	require.NoError(t, os.WriteFile(b, []byte("not an image"), 0644))

	out, err := run(t, "clean", a, b, "--out", outDir, "--model", "gemini-cli", "--timeout", "3s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")

	assert.Equal(t, "gemini-cli", seen.Model)
	assert.Equal(t, 3*time.Second, seen.Timeout)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "OK   "+a+" -> "+filepath.Join(outDir, "a-cleaned.png"), lines[0])
	assert.Equal(t, "FAIL "+b+": Please upload a valid image file (JPEG, PNG, WEBP).", lines[1])
	assert.FileExists(t, filepath.Join(outDir, "a-cleaned.png"))
}

func TestCleanNextToInput(t *testing.T) {
	useEditor(t, echoEditor())
	in := t.TempDir()
	a := writePNG(t, in, "photo.png")

	_, err := run(t, "clean", a)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(in, "photo-cleaned.png"))
}

func TestCleanEditorFailure(t *testing.T) {
	useEditor(t, editor.Func(func(context.Context, imagesource.Image) (imagesource.Image, error) {
		return imagesource.Image{}, &editor.Error{Kind: editor.NoImage}
	}))
	a := writePNG(t, t.TempDir(), "a.png")

	out, err := run(t, "clean", a)
	require.Error(t, err)
	assert.Contains(t, out, editor.NoImageMessage)
}

func TestCleanConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	useEditor(t, editor.Func(func(_ context.Context, img imagesource.Image) (imagesource.Image, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return img, nil
	}))

	in := t.TempDir()
	var files []string
	for _, name := range []string{"1.png", "2.png", "3.png", "4.png", "5.png", "6.png"} {
		files = append(files, writePNG(t, in, name))
	}

	_, err := run(t, append([]string{"clean", "--concurrency", "2"}, files...)...)
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestCleanRejectsBadFlags(t *testing.T) {
	useEditor(t, echoEditor())

	_, err := run(t, "clean", "x.png", "--concurrency", "0")
	assert.ErrorContains(t, err, "--concurrency")

	_, err = run(t, "clean")
	assert.Error(t, err)
}

func TestCleanMissingKey(t *testing.T) {
	orig := newEditor
	t.Cleanup(func() { newEditor = orig })
	newEditor = func(context.Context, config.Settings) (editor.Editor, error) {
		return nil, editor.ErrMissingAPIKey
	}

	_, err := run(t, "clean", "x.png")
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestOutputStems(t *testing.T) {
	files := []string{"/in/a/photo.png", "/in/b/photo.jpg", "/in/c/Photo.webp", "/in/d/photo-2.png", "/in/e/other.png"}

	assert.Equal(t, []string{"photo", "photo-2", "Photo-3", "photo-2-2", "other"}, outputStems(files, "/out"))
	assert.Equal(t, []string{"photo", "photo", "Photo", "photo-2", "other"}, outputStems(files, ""))
	assert.Equal(t, []string{"photo", "photo-2"}, outputStems([]string{"/in/photo.png", "/in/photo.jpg"}, ""))
}

func TestCleanDuplicateStems(t *testing.T) {
	useEditor(t, echoEditor())
	in := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(in, "a"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(in, "b"), 0755))
	a := writePNG(t, filepath.Join(in, "a"), "photo.png")
	b := writePNG(t, filepath.Join(in, "b"), "photo.png")
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := run(t, "clean", a, b, "--out", outDir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "OK   "+a+" -> "+filepath.Join(outDir, "photo-cleaned.png"), lines[0])
	assert.Equal(t, "OK   "+b+" -> "+filepath.Join(outDir, "photo-2-cleaned.png"), lines[1])
	assert.FileExists(t, filepath.Join(outDir, "photo-cleaned.png"))
	assert.FileExists(t, filepath.Join(outDir, "photo-2-cleaned.png"))
}
