package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dixieflatline76/ClearView/pkg/editor"
	"github.com/dixieflatline76/ClearView/pkg/imagesource"
	"github.com/dixieflatline76/ClearView/util"
	"github.com/dixieflatline76/ClearView/util/log"
)

// newEditor is replaced in tests.
var newEditor = editor.NewFromSettings

// defaultConcurrency is low enough to stay inside the free API quota.
const defaultConcurrency = 2

type cleanOptions struct {
	outDir      string
	concurrency int
	model       string
	timeout     time.Duration
}

type cleanResult struct {
	source string
	path   string
	err    error
}

func cleanCmd() *cobra.Command {
	var opts cleanOptions
	cmd := &cobra.Command{
		Use:   "clean FILE...",
		Short: "Remove watermarks from image files",
		Long: "Sends each file to Gemini and writes the result next to it, or into --out, as <name>-cleaned.<ext>.\n" +
			"The API key is read from GEMINI_API_KEY.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1, got %d", opts.concurrency)
			}
			s := env.Settings()
			if opts.model != "" {
				s.Model = opts.model
			}
			if opts.timeout > 0 {
				s.Timeout = opts.timeout
			}

			ed, err := newEditor(cmd.Context(), s)
			if err != nil {
				return errors.New(editor.Message(err))
			}
			return runClean(cmd.Context(), cmd.OutOrStdout(), ed, imagesource.NewValidator(s.MaxUploadBytes), opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default: next to each input)")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", defaultConcurrency, "number of images processed at once")
	cmd.Flags().StringVar(&opts.model, "model", "", "Gemini model (default from CLEARVIEW_MODEL or built in)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "timeout per image (default from CLEARVIEW_TIMEOUT_SEC or built in)")
	return cmd
}

// runClean processes files with at most opts.concurrency requests in flight
// and prints one line per file in input order.
func runClean(ctx context.Context, w io.Writer, ed editor.Editor, v *imagesource.Validator, opts cleanOptions, files []string) error {
	results := make([]cleanResult, len(files))
	stems := outputStems(files, opts.outDir)
	failed := util.NewSafeInt()

	var g errgroup.Group
	g.SetLimit(opts.concurrency)
	for i, file := range files {
		g.Go(func() error {
			results[i] = cleanFile(ctx, ed, v, outputDir(opts.outDir, file), stems[i], file)
			if results[i].err != nil {
				failed.Increment()
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "FAIL %s: %s\n", r.source, failureMessage(v, r.err))
			continue
		}
		fmt.Fprintf(w, "OK   %s -> %s\n", r.source, r.path)
	}

	if n := failed.Value(); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(files))
	}
	return nil
}

// outputDir is dir, or the directory of file when dir is empty.
func outputDir(dir, file string) string {
	if dir == "" {
		return filepath.Dir(file)
	}
	return dir
}

// outputStems picks a distinct output stem per file. Files that would land in
// the same directory under the same stem get "-2", "-3", ... in input order.
// Stems are compared case-insensitively and regardless of the result
// extension, which is only known after editing.
func outputStems(files []string, outDir string) []string {
	stems := make([]string, len(files))
	used := make(map[string]bool, len(files))
	for i, file := range files {
		dir := filepath.Clean(outputDir(outDir, file))
		stem := imagesource.Stem(file)
		candidate := stem
		for n := 2; used[stemKey(dir, candidate)]; n++ {
			candidate = fmt.Sprintf("%s-%d", stem, n)
		}
		used[stemKey(dir, candidate)] = true
		stems[i] = candidate
	}
	return stems
}

func stemKey(dir, stem string) string {
	return strings.ToLower(filepath.Join(dir, stem))
}

func cleanFile(ctx context.Context, ed editor.Editor, v *imagesource.Validator, dir, stem, file string) cleanResult {
	res := cleanResult{source: file}

	img, err := v.LoadFile(file)
	if err != nil {
		res.err = err
		return res
	}

	start := time.Now()
	cleaned, err := ed.Edit(ctx, img)
	if err != nil {
		log.Printf("Cleaning %s failed: %v", file, err)
		res.err = err
		return res
	}

	res.path, res.err = imagesource.SaveAs(dir, imagesource.CleanedName(stem, cleaned), cleaned)
	log.Debugf("Cleaned %s in %s", file, time.Since(start).Round(time.Millisecond))
	return res
}

// failureMessage prefers the user-facing text of upload and editor errors.
func failureMessage(v *imagesource.Validator, err error) string {
	if errors.Is(err, imagesource.ErrInvalidFileType) || errors.Is(err, imagesource.ErrFileTooLarge) || errors.Is(err, imagesource.ErrEmpty) {
		return v.Message(err)
	}
	if msg := editor.Message(err); msg != "" {
		return msg
	}
	return err.Error()
}
