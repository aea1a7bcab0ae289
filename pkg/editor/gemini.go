// Package editor sends images to a remote generative model for watermark removal.
package editor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/dixieflatline76/ClearView/config"
	"github.com/dixieflatline76/ClearView/pkg/imagesource"
	"github.com/dixieflatline76/ClearView/util/log"
)

// DefaultPrompt is the instruction sent alongside every image.
const DefaultPrompt = "Remove all watermarks, text overlays, logos, and copyright stamps from this image. " +
	"Reconstruct the background seamlessly where the watermarks were removed. Return ONLY the cleaned image."

const (
	// DefaultTimeout bounds a single edit.
	DefaultTimeout = time.Duration(config.DefaultTimeoutSec) * time.Second
	// DefaultMinInterval is the minimum spacing between requests.
	DefaultMinInterval = time.Second
)

// Editor turns an image into its cleaned version.
type Editor interface {
	Edit(ctx context.Context, img imagesource.Image) (imagesource.Image, error)
}

// Func adapts a plain function to the Editor interface.
type Func func(ctx context.Context, img imagesource.Image) (imagesource.Image, error)

// Edit calls f.
func (f Func) Edit(ctx context.Context, img imagesource.Image) (imagesource.Image, error) {
	return f(ctx, img)
}

// Options configures a Gemini editor.
type Options struct {
	APIKey      string
	Model       string        // Defaults to config.DefaultModel
	Prompt      string        // Defaults to DefaultPrompt
	Timeout     time.Duration // Defaults to DefaultTimeout
	MinInterval time.Duration // Defaults to DefaultMinInterval, negative disables pacing
	BaseURL     string        // Overrides the API endpoint, used by tests
	HTTPClient  *http.Client
}

// Gemini edits images with the Gemini generateContent API.
type Gemini struct {
	client  *genai.Client
	model   string
	prompt  string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewGemini creates a Gemini editor. It fails with ErrMissingAPIKey when
// opts has no API key.
func NewGemini(ctx context.Context, opts Options) (*Gemini, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.Model == "" {
		opts.Model = config.DefaultModel
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MinInterval == 0 {
		opts.MinInterval = DefaultMinInterval
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	httpClient = &http.Client{
		Transport: &UserAgentTransport{
			RoundTripper: httpClient.Transport,
			UserAgent:    config.AppName + "/" + config.AppVersion,
		},
		CheckRedirect: httpClient.CheckRedirect,
		Jar:           httpClient.Jar,
		Timeout:       httpClient.Timeout,
	}

	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, &Error{Kind: Transport, Reason: "failed to create Gemini client", Err: err}
	}

	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}

	log.Printf("Gemini editor ready: model=%s key=%s timeout=%s", opts.Model, log.RedactKey(opts.APIKey), opts.Timeout)
	return &Gemini{
		client:  client,
		model:   opts.Model,
		prompt:  opts.Prompt,
		timeout: opts.Timeout,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// NewFromSettings creates a Gemini editor from resolved settings.
func NewFromSettings(ctx context.Context, s config.Settings) (Editor, error) {
	g, err := NewGemini(ctx, Options{APIKey: s.APIKey, Model: s.Model, Timeout: s.Timeout})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Model returns the model name used for requests.
func (g *Gemini) Model() string {
	return g.model
}

// Edit sends img with the prompt and returns the first image in the reply.
// The result keeps the input's name. Its MIME type is the one reported by
// the model, or the input's when the model reports none.
func (g *Gemini) Edit(ctx context.Context, img imagesource.Image) (imagesource.Image, error) {
	if img.Empty() {
		return imagesource.Image{}, imagesource.ErrEmpty
	}
	id := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.limiter.Wait(ctx); err != nil {
		return imagesource.Image{}, &Error{Kind: Transport, Reason: "request was cancelled", Err: err}
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img.Data, img.MIMEType),
			genai.NewPartFromText(g.prompt),
		}, genai.RoleUser),
	}

	start := time.Now()
	log.Debugf("[%s] generateContent model=%s mime=%s bytes=%d", id, g.model, img.MIMEType, len(img.Data))
	resp, err := g.client.Models.GenerateContent(context.WithValue(ctx, requestIDKey{}, id), g.model, contents, nil)
	if err != nil {
		log.Printf("[%s] Gemini request failed after %s: %v", id, time.Since(start).Round(time.Millisecond), err)
		return imagesource.Image{}, transportError(err)
	}

	out, err := extractImage(resp, img.MIMEType)
	if err != nil {
		log.Printf("[%s] Gemini returned no usable image: %v", id, err)
		return imagesource.Image{}, err
	}
	out.Name = img.Name
	if sized, err := out.WithDimensions(); err == nil {
		out = sized
	} else {
		log.Debugf("[%s] could not read result dimensions: %v", id, err)
	}
	log.Printf("[%s] Gemini returned %s (%d bytes) in %s", id, out.MIMEType, len(out.Data), time.Since(start).Round(time.Millisecond))
	return out, nil
}

// refusalReasons are finish reasons that mean the model declined to answer.
var refusalReasons = map[genai.FinishReason]bool{
	"SAFETY":                   true,
	"PROHIBITED_CONTENT":       true,
	"BLOCKLIST":                true,
	"SPII":                     true,
	"RECITATION":               true,
	"IMAGE_SAFETY":             true,
	"IMAGE_PROHIBITED_CONTENT": true,
}

// extractImage returns the first inline image of the first candidate.
func extractImage(resp *genai.GenerateContentResponse, fallbackMIME string) (imagesource.Image, error) {
	if resp == nil {
		return imagesource.Image{}, &Error{Kind: NoImage}
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		reason := fb.BlockReasonMessage
		if reason == "" {
			reason = fmt.Sprintf("The request was blocked (%s).", fb.BlockReason)
		}
		return imagesource.Image{}, &Error{Kind: Refused, Reason: reason}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return imagesource.Image{}, &Error{Kind: NoImage}
	}

	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = fallbackMIME
			}
			return imagesource.Image{MIMEType: mimeType, Data: part.InlineData.Data}, nil
		}
	}

	if refusalReasons[cand.FinishReason] {
		reason := cand.FinishMessage
		if reason == "" {
			reason = fmt.Sprintf("The model refused the request (%s).", cand.FinishReason)
		}
		return imagesource.Image{}, &Error{Kind: Refused, Reason: reason}
	}
	return imagesource.Image{}, &Error{Kind: NoImage}
}

func transportError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return &Error{Kind: Transport, Reason: apiErr.Message, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: Transport, Reason: "The request timed out.", Err: err}
	}
	return &Error{Kind: Transport, Err: err}
}
