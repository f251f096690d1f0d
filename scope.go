package hostapi

import (
	"context"
	"sync"
)

// Scope issues calls that share a lifetime. Closing the scope cancels every
// call started through it that has not settled yet, independently of calls
// issued elsewhere on the same client.
type Scope struct {
	client *Client
	ctx    context.Context
	cancel context.CancelCauseFunc
	once   sync.Once
}

// Scope returns a scope whose calls derive their context from parent.
func (c *Client) Scope(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancelCause(parent)
	return &Scope{client: c, ctx: ctx, cancel: cancel}
}

// Call invokes the named operation within the scope.
func (s *Scope) Call(name string, params Params, opts ...CallOption) (*Envelope, error) {
	return s.client.Call(s.ctx, name, params, opts...)
}

// Context returns the scope's context, e.g. for typed callables.
func (s *Scope) Context() context.Context { return s.ctx }

// Close cancels the scope's pending calls. Calls made afterwards settle as
// canceled immediately.
func (s *Scope) Close() {
	s.once.Do(func() {
		s.cancel(ErrCanceledAll)
	})
}
