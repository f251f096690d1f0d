package hostapi

import (
	"context"
	"net/http"
)

// Params holds call-time parameters keyed by field name.
type Params map[string]any

// Placement selects where the non-path parameters of a call are sent.
type Placement int

const (
	// PlacementAuto places parameters in the body for POST, PUT, PATCH and
	// DELETE and in the query string for every other method.
	PlacementAuto Placement = iota
	PlacementQuery
	PlacementBody
)

func (p Placement) String() string {
	switch p {
	case PlacementAuto:
		return "auto"
	case PlacementQuery:
		return "query"
	case PlacementBody:
		return "body"
	default:
		return "unknown"
	}
}

// Middleware wraps the network round trip of every call.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper represents the HTTP transport interface
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc is a helper type for middleware
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// RequestHook runs before a call leaves the process. Hooks may mutate the
// call; a returned error aborts the call before any network activity.
type RequestHook func(call *Call) error

// ResponseHook runs once the transport settles a call, successfully or not.
type ResponseHook func(call *Call, resp *Response, err error)

// Option configures a Client.
type Option func(*Client)

// CallOption configures a single call and takes precedence over the
// operation's defaults.
type CallOption func(*callConfig)

// Func is a synthesized callable for one operation.
type Func func(ctx context.Context, params Params, opts ...CallOption) (*Envelope, error)

// TypedFunc is a synthesized callable whose request and response shapes are
// fixed at bind time. A nil request is sent as an empty parameter set.
type TypedFunc[Req, Resp any] func(ctx context.Context, req *Req, opts ...CallOption) (*Result[Resp], error)
