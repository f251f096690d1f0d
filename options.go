package hostapi

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// WithBaseURL sets the URL relative operation paths are resolved against
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.timeoutSet = true
		if c.httpClient != nil {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client. Its Timeout is left alone unless
// WithTimeout is also given.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
		if c.httpClient != nil && c.timeoutSet {
			c.httpClient.Timeout = c.timeout
		}
	}
}

// WithHeader sets a header sent with every call. Endpoint and call headers
// override it.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithMiddleware adds middleware to the client
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithRequestHook adds a hook executed before every call is sent. Hooks run
// before the cancellation handle is attached, so a rewritten Path decides the
// dedup key and a hook that returns an error leaves the registry untouched.
func WithRequestHook(hook RequestHook) Option {
	return func(c *Client) {
		c.requestHooks = append(c.requestHooks, hook)
	}
}

// WithResponseHook adds a hook executed after every call settles.
func WithResponseHook(hook ResponseHook) Option {
	return func(c *Client) {
		c.responseHooks = append(c.responseHooks, hook)
	}
}

// WithRegistry shares a cancellation registry between clients
func WithRegistry(registry *CancelRegistry) Option {
	return func(c *Client) {
		c.registry = registry
	}
}

// WithDedupByDefault makes every call supersede the pending call to the same
// endpoint unless the call opts out with WithoutDedup.
func WithDedupByDefault() Option {
	return func(c *Client) {
		c.dedupByDefault = true
	}
}

// WithStrictPathParams rejects calls whose path still has unresolved
// placeholders instead of sending them literally.
func WithStrictPathParams() Option {
	return func(c *Client) {
		c.strictPath = true
	}
}

// WithMetrics enables Prometheus metrics collection
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithLogger sets a custom logger for debug output
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a simple console logger
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

type callConfig struct {
	dedup     bool
	placement Placement
	header    http.Header
	query     url.Values
}

// WithDedup makes the call cancel any pending call to the same endpoint
// before it is sent.
func WithDedup() CallOption {
	return func(cfg *callConfig) {
		cfg.dedup = true
	}
}

// WithoutDedup opts the call out of WithDedupByDefault.
func WithoutDedup() CallOption {
	return func(cfg *callConfig) {
		cfg.dedup = false
	}
}

// WithCallHeader sets a header for this call only.
func WithCallHeader(key, value string) CallOption {
	return func(cfg *callConfig) {
		cfg.header.Set(key, value)
	}
}

// WithCallHeaders sets several headers for this call only.
func WithCallHeaders(headers map[string]string) CallOption {
	return func(cfg *callConfig) {
		for k, v := range headers {
			cfg.header.Set(k, v)
		}
	}
}

// WithPlacement overrides where the call sends its non-path parameters.
func WithPlacement(p Placement) CallOption {
	return func(cfg *callConfig) {
		cfg.placement = p
	}
}

// WithQueryParam appends a query value regardless of placement.
func WithQueryParam(key, value string) CallOption {
	return func(cfg *callConfig) {
		if cfg.query == nil {
			cfg.query = make(url.Values)
		}
		cfg.query.Add(key, value)
	}
}

// ValidateConfiguration validates the client configuration and returns an error if invalid
func (c *Client) ValidateConfiguration() error {
	var errors []string

	errors = append(errors, c.validateTransportConfig()...)
	errors = append(errors, c.validateDebugConfig()...)
	errors = append(errors, c.validateHookConfig()...)
	errors = append(errors, c.validateHTTPClientConfig()...)

	if len(errors) > 0 {
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", errors),
		}
	}

	return nil
}

// validateTransportConfig validates base URL and timeout
func (c *Client) validateTransportConfig() []string {
	var errors []string

	if c.baseURL != "" {
		u, err := url.Parse(c.baseURL)
		if err != nil {
			errors = append(errors, fmt.Sprintf("baseURL is not a valid URL: %v", err))
		} else if u.Scheme == "" || u.Host == "" {
			errors = append(errors, "baseURL must be absolute (scheme and host)")
		}
	}

	if c.timeout < 0 {
		errors = append(errors, "timeout must be non-negative")
	}

	if c.timeout > 10*time.Minute {
		errors = append(errors, "timeout > 10m may cause requests to hang for too long")
	}

	return errors
}

// validateDebugConfig validates debug configuration
func (c *Client) validateDebugConfig() []string {
	var errors []string

	if c.debug != nil && c.debug.Enabled {
		if c.debug.RequestIDGen == nil {
			errors = append(errors, "debug RequestIDGen must be set when debug is enabled")
		}
		if c.logger == nil {
			errors = append(errors, "logger must be set when debug is enabled")
		}
	}

	return errors
}

// validateHookConfig validates middleware and hook configuration
func (c *Client) validateHookConfig() []string {
	var errors []string

	for i, middleware := range c.middleware {
		if middleware == nil {
			errors = append(errors, fmt.Sprintf("middleware[%d] cannot be nil", i))
		}
	}
	for i, hook := range c.requestHooks {
		if hook == nil {
			errors = append(errors, fmt.Sprintf("requestHook[%d] cannot be nil", i))
		}
	}
	for i, hook := range c.responseHooks {
		if hook == nil {
			errors = append(errors, fmt.Sprintf("responseHook[%d] cannot be nil", i))
		}
	}

	return errors
}

// validateHTTPClientConfig validates HTTP client configuration
func (c *Client) validateHTTPClientConfig() []string {
	var errors []string

	if c.httpClient == nil {
		errors = append(errors, "HTTP client cannot be nil")
	}

	return errors
}
