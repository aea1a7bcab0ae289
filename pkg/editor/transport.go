package editor

import (
	"net/http"
)

// RequestIDHeader carries the per-request id used to correlate log lines.
const RequestIDHeader = "X-ClearView-Request-Id"

type requestIDKey struct{}

// UserAgentTransport wraps an http.RoundTripper, appends the application to
// the User-Agent header and forwards the request id found in the context.
type UserAgentTransport struct {
	http.RoundTripper
	UserAgent string
}

// RoundTrip executes a single HTTP transaction with the extra headers.
func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clonedReq := req.Clone(req.Context())
	if ua := clonedReq.Header.Get("User-Agent"); ua != "" {
		clonedReq.Header.Set("User-Agent", ua+" "+t.UserAgent)
	} else {
		clonedReq.Header.Set("User-Agent", t.UserAgent)
	}
	if id, ok := req.Context().Value(requestIDKey{}).(string); ok {
		clonedReq.Header.Set(RequestIDHeader, id)
	}

	rt := t.RoundTripper
	if rt == nil {
		rt = http.DefaultTransport
	}
	return rt.RoundTrip(clonedReq)
}
