package hostapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// Client turns an operation table into callables. Each callable resolves
// path placeholders, places the remaining parameters in the query string or
// the body, merges headers and performs exactly one network call. It is safe
// for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	timeout        time.Duration
	timeoutSet     bool
	headers        http.Header
	middleware     []Middleware
	requestHooks   []RequestHook
	responseHooks  []ResponseHook
	registry       *CancelRegistry
	dedupByDefault bool
	strictPath     bool
	metrics        *MetricsCollector
	debug          *DebugConfig
	logger         Logger

	operations map[string]*Operation
	transport  *Transport
}

// New compiles table and constructs a Client using the provided functional
// options. Invalid options and malformed descriptors are returned as
// configuration errors.
func New(table Table, options ...Option) (*Client, error) {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		timeout:        30 * time.Second,
		headers:        make(http.Header),
		middleware:     []Middleware{},
		registry:       nil,
		dedupByDefault: false,
		strictPath:     false,
		metrics:        nil,
		debug:          DefaultDebugConfig(),
		logger:         nil,
	}

	for _, option := range options {
		option(client)
	}

	if client.registry == nil {
		client.registry = NewCancelRegistry()
	}

	if err := client.ValidateConfiguration(); err != nil {
		return nil, err
	}

	ops, err := compileTable(table)
	if err != nil {
		return nil, err
	}
	client.operations = ops
	client.transport = client.buildTransport()
	return client, nil
}

// MustNew is like New but panics on error.
func MustNew(table Table, options ...Option) *Client {
	client, err := New(table, options...)
	if err != nil {
		panic(fmt.Sprintf("invalid client configuration: %v", err))
	}
	return client
}

func (c *Client) buildTransport() *Transport {
	t := NewTransport(c.baseURL, c.httpClient)
	for key, values := range c.headers {
		for _, v := range values {
			t.header.Add(key, v)
		}
	}
	t.Use(c.middleware...)
	// User hooks may rewrite the path, so the key is derived after them.
	t.OnRequest(c.requestHooks...)
	t.OnRequest(c.dedupHook)
	t.OnResponse(c.releaseHook)
	t.OnResponse(c.responseHooks...)
	return t
}

// Operation returns the compiled operation registered under name.
func (c *Client) Operation(name string) (*Operation, bool) {
	op, ok := c.operations[name]
	return op, ok
}

// Operations returns every compiled operation sorted by name.
func (c *Client) Operations() []*Operation {
	ops := make([]*Operation, 0, len(c.operations))
	for _, op := range c.operations {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Registry returns the cancellation registry the client dispatches through.
func (c *Client) Registry() *CancelRegistry { return c.registry }

// Transport returns the transport the client issues calls on.
func (c *Client) Transport() *Transport { return c.transport }

// Func returns the callable for the named operation.
func (c *Client) Func(name string) (Func, error) {
	op, ok := c.operations[name]
	if !ok {
		return nil, unknownOperation(name)
	}
	return func(ctx context.Context, params Params, opts ...CallOption) (*Envelope, error) {
		return c.Invoke(ctx, op, params, opts...)
	}, nil
}

// Funcs returns one callable per operation, keyed by operation name.
func (c *Client) Funcs() map[string]Func {
	funcs := make(map[string]Func, len(c.operations))
	for name := range c.operations {
		fn, _ := c.Func(name)
		funcs[name] = fn
	}
	return funcs
}

// Call invokes the named operation.
func (c *Client) Call(ctx context.Context, name string, params Params, opts ...CallOption) (*Envelope, error) {
	op, ok := c.operations[name]
	if !ok {
		return nil, unknownOperation(name)
	}
	return c.Invoke(ctx, op, params, opts...)
}

// Invoke performs op with params. HTTP error statuses, network failures and
// cancellations are reported in the returned Envelope; the error is non-nil
// only for programmer errors such as an unresolved placeholder in strict
// mode or parameters that cannot be encoded.
func (c *Client) Invoke(ctx context.Context, op *Operation, params Params, opts ...CallOption) (*Envelope, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	cfg := callConfig{
		dedup:     c.dedupByDefault,
		placement: PlacementAuto,
		header:    make(http.Header),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	call, err := c.newCall(ctx, op, params, &cfg)
	if err != nil {
		c.metrics.RecordError(ErrorTypeConfiguration, op.Name)
		return nil, err
	}

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("Starting call", "requestID", call.RequestID, "operation", op.Name, "method", call.Method, "url", call.URL(), "dedup", call.Dedup)
	}

	c.metrics.RecordCallStart(op.Name)
	resp, err := c.transport.Do(call)
	c.metrics.RecordCallEnd(op.Name)

	if err != nil && IsConfiguration(err) && call.cancelCause == nil {
		c.metrics.RecordError(ErrorTypeConfiguration, op.Name)
		return nil, err
	}

	env := c.envelope(call, resp, err)
	c.observe(call, env, time.Since(start))
	return env, nil
}

func (c *Client) newCall(ctx context.Context, op *Operation, params Params, cfg *callConfig) (*Call, error) {
	path, remaining, unresolved := op.Template.Expand(params)
	if len(unresolved) > 0 {
		if c.strictPath {
			return nil, &ClientError{
				Type:      ErrorTypeConfiguration,
				Message:   fmt.Sprintf("no parameter for placeholders %v in %q", unresolved, op.Template),
				Cause:     ErrUnresolvedPlaceholder,
				Operation: op.Name,
				Method:    op.Method,
				Timestamp: time.Now(),
			}
		}
		c.metrics.RecordUnresolvedPlaceholder(op.Name)
		if c.logger != nil {
			c.logger.Warn("Sending unresolved path placeholders", "operation", op.Name, "placeholders", unresolved, "path", path)
		}
	}

	var requestID string
	if c.debug != nil && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	call := &Call{
		Operation: op.Name,
		Method:    op.Method,
		Path:      path,
		Header:    make(http.Header),
		Dedup:     cfg.dedup,
		RequestID: requestID,
		ctx:       ctx,
	}

	for key, value := range op.Headers {
		call.Header.Set(key, value)
	}
	for key, values := range cfg.header {
		call.Header[key] = append([]string(nil), values...)
	}

	placement := cfg.placement
	if placement == PlacementAuto {
		placement = op.Placement()
	}
	if placement == PlacementBody {
		payload, err := json.Marshal(remaining)
		if err != nil {
			return nil, &ClientError{
				Type:      ErrorTypeConfiguration,
				Message:   "request body cannot be encoded",
				Cause:     err,
				Operation: op.Name,
				Method:    op.Method,
				Timestamp: time.Now(),
			}
		}
		call.Body = json.RawMessage(payload)
	} else if len(remaining) > 0 {
		call.Query = encodeQuery(remaining)
	}

	for key, values := range cfg.query {
		if call.Query == nil {
			call.Query = make(url.Values)
		}
		call.Query[key] = append(call.Query[key], values...)
	}
	return call, nil
}

func (c *Client) observe(call *Call, env *Envelope, duration time.Duration) {
	switch {
	case env.Canceled:
		c.metrics.RecordCall(call.Operation, call.Method, outcomeCanceled, duration)
		if c.debug != nil && c.debug.Enabled && c.debug.LogCancellation && c.logger != nil {
			c.logger.Debug("Call canceled", "requestID", call.RequestID, "operation", call.Operation, "reason", cancelReason(env.Err))
		}
	case env.Err != nil:
		c.metrics.RecordCall(call.Operation, call.Method, outcomeError, duration)
		c.metrics.RecordError(ErrorTypeNetwork, call.Operation)
		if c.logger != nil {
			c.logger.Error("Call failed", "requestID", call.RequestID, "operation", call.Operation, "error", env.Err.Error())
		}
	default:
		c.metrics.RecordCall(call.Operation, call.Method, fmt.Sprint(env.StatusCode), duration)
		if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
			c.logger.Debug("Call completed", "requestID", call.RequestID, "operation", call.Operation, "status", env.StatusCode, "duration", duration)
		}
	}
}

// CancelAllPending cancels every call currently registered and empties the
// registry. Use it when the scope that issued the calls goes away.
func (c *Client) CancelAllPending() int {
	n := c.registry.RemoveAll()
	c.metrics.RecordTeardown(n)
	c.metrics.RecordPendingHandles(c.registry.Len())
	if n > 0 && c.debug != nil && c.debug.Enabled && c.debug.LogCancellation && c.logger != nil {
		c.logger.Info("Canceled all pending calls", "count", n)
	}
	return n
}

func unknownOperation(name string) error {
	return &ClientError{
		Type:      ErrorTypeConfiguration,
		Message:   fmt.Sprintf("operation %q is not defined", name),
		Cause:     ErrUnknownOperation,
		Operation: name,
		Timestamp: time.Now(),
	}
}

// IsUnknownOperation reports whether err names an operation missing from the table.
func IsUnknownOperation(err error) bool {
	return errors.Is(err, ErrUnknownOperation)
}

const (
	outcomeCanceled = "canceled"
	outcomeError    = "error"
)
