package hostapi

import (
	"context"
	"errors"
	"net/http"
)

// dedupHook attaches a cancel handle keyed by the call's path. Opted-in
// calls first cancel whatever call is in flight for the same key.
func (c *Client) dedupHook(call *Call) error {
	key, ok := DeriveKey(call.URL())
	if !ok {
		return nil
	}

	var h *CancelHandle
	if call.Dedup {
		var superseded bool
		h, superseded = c.registry.Supersede(call.Context(), key)
		if superseded {
			c.metrics.RecordCancellation(call.Operation, cancelReasonSuperseded)
			if c.debug != nil && c.debug.Enabled && c.debug.LogCancellation && c.logger != nil {
				c.logger.Debug("Superseded pending call", "requestID", call.RequestID, "operation", call.Operation, "key", key)
			}
		}
	} else {
		h = c.registry.Register(call.Context(), key)
	}

	call.handle = h
	call.ctx = h.Context()
	c.metrics.RecordPendingHandles(c.registry.Len())
	return nil
}

// releaseHook records how a failed call was canceled, then drops its handle.
// It has to run before the handle is released, which cancels its context.
func (c *Client) releaseHook(call *Call, _ *Response, err error) {
	if err != nil {
		call.cancelCause = cancellationCause(call.Context())
	}
	if call.handle != nil {
		c.registry.Release(call.handle)
		c.metrics.RecordPendingHandles(c.registry.Len())
	}
}

func cancellationCause(ctx context.Context) error {
	if !errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	return context.Canceled
}

// envelope normalizes a settled call.
func (c *Client) envelope(call *Call, resp *Response, err error) *Envelope {
	if err == nil {
		return &Envelope{
			Data:       resp.Body,
			Error:      resp.StatusCode != http.StatusOK,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
		}
	}

	if call.cancelCause != nil {
		return &Envelope{Canceled: true, Err: call.cancelCause}
	}

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		clientErr = &ClientError{Type: ErrorTypeNetwork, Message: "network request failed", Cause: err}
	}
	clientErr.RequestID = call.RequestID
	clientErr.Operation = call.Operation
	clientErr.Method = call.Method
	clientErr.URL = call.URL()
	return &Envelope{Error: true, Err: clientErr}
}

func cancelReason(cause error) string {
	switch {
	case errors.Is(cause, ErrSuperseded):
		return cancelReasonSuperseded
	case errors.Is(cause, ErrCanceledAll):
		return cancelReasonTeardown
	default:
		return cancelReasonContext
	}
}

const (
	cancelReasonSuperseded = "superseded"
	cancelReasonTeardown   = "teardown"
	cancelReasonContext    = "context"
)
