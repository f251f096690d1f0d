package hostapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Call is the per-call configuration that travels through the transport.
// Request hooks may change any field before the call is sent. Body is sent
// as JSON; a Client stores it pre-encoded as a json.RawMessage.
type Call struct {
	Operation string
	Method    string
	// Path is the resolved template, relative to the base URL unless absolute.
	Path      string
	Query     url.Values
	Body      any
	Header    http.Header
	Dedup     bool
	RequestID string

	ctx         context.Context
	handle      *CancelHandle
	cancelCause error
}

// Context returns the context the call is sent with.
func (c *Call) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// SetContext replaces the context the call is sent with.
func (c *Call) SetContext(ctx context.Context) { c.ctx = ctx }

// Handle returns the cancel handle attached by the dedup hook, if any. It is
// set once request hooks have run, so middleware and response hooks see it.
func (c *Call) Handle() *CancelHandle { return c.handle }

// URL returns the path with the encoded query string appended.
func (c *Call) URL() string {
	if len(c.Query) == 0 {
		return c.Path
	}
	sep := "?"
	if strings.Contains(c.Path, "?") {
		sep = "&"
	}
	return c.Path + sep + c.Query.Encode()
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

// Transport issues calls over net/http. It runs request hooks in order, then
// the middleware chain around the http.Client, then response hooks in order.
// Hooks and middleware must be installed before the first call.
type Transport struct {
	baseURL       string
	httpClient    *http.Client
	header        http.Header
	middleware    []Middleware
	requestHooks  []RequestHook
	responseHooks []ResponseHook
}

// NewTransport returns a transport resolving relative paths against baseURL.
// A nil httpClient uses a client with a 30 second timeout.
func NewTransport(baseURL string, httpClient *http.Client) *Transport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Transport{
		baseURL:    baseURL,
		httpClient: httpClient,
		header:     make(http.Header),
	}
}

// BaseURL returns the URL relative paths are resolved against.
func (t *Transport) BaseURL() string { return t.baseURL }

// SetHeader sets a header sent with every call unless the call overrides it.
func (t *Transport) SetHeader(key, value string) { t.header.Set(key, value) }

// OnRequest appends request hooks.
func (t *Transport) OnRequest(hooks ...RequestHook) {
	t.requestHooks = append(t.requestHooks, hooks...)
}

// OnResponse appends response hooks.
func (t *Transport) OnResponse(hooks ...ResponseHook) {
	t.responseHooks = append(t.responseHooks, hooks...)
}

// Use appends middleware; the first one added is the outermost.
func (t *Transport) Use(middleware ...Middleware) {
	t.middleware = append(t.middleware, middleware...)
}

// Do sends call and returns the read response. Response hooks run for every
// call that reached the transport, including calls aborted by a request hook.
func (t *Transport) Do(call *Call) (*Response, error) {
	resp, err := t.do(call)
	for _, hook := range t.responseHooks {
		hook(call, resp, err)
	}
	return resp, err
}

func (t *Transport) do(call *Call) (*Response, error) {
	for _, hook := range t.requestHooks {
		if err := hook(call); err != nil {
			return nil, err
		}
	}

	req, err := t.newRequest(call)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	httpResp, err := t.executeMiddleware(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       body,
		Duration:   time.Since(start),
	}, nil
}

func (t *Transport) newRequest(call *Call) (*http.Request, error) {
	var body io.Reader
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return nil, configError("request body cannot be encoded", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(call.Context(), call.Method, t.resolve(call.URL()), body)
	if err != nil {
		return nil, err
	}

	for key, values := range t.header {
		req.Header[key] = append([]string(nil), values...)
	}
	for key, values := range call.Header {
		req.Header[key] = append([]string(nil), values...)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// resolve joins ref to the base URL the way a browser client would join a
// relative request path. Absolute references are returned unchanged.
func (t *Transport) resolve(ref string) string {
	if strings.Contains(ref, "://") || t.baseURL == "" {
		return ref
	}
	return strings.TrimRight(t.baseURL, "/") + "/" + strings.TrimLeft(ref, "/")
}

func (t *Transport) executeMiddleware(req *http.Request) (*http.Response, error) {
	if len(t.middleware) == 0 {
		return t.httpClient.Do(req)
	}

	current := RoundTripperFunc(t.httpClient.Do)

	for i := len(t.middleware) - 1; i >= 0; i-- {
		middleware := t.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current.RoundTrip(req)
}
