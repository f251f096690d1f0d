package hostapi

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CancelAction selects what CancelRegistry.Dispatch does with a key.
type CancelAction int

const (
	// CancelCheck cancels and forgets the handle registered for the key.
	CancelCheck CancelAction = iota
	// CancelRemove forgets the handle registered for the key.
	CancelRemove
	// CancelRemoveAll cancels and forgets every handle; the key is ignored.
	CancelRemoveAll
)

func (a CancelAction) String() string {
	switch a {
	case CancelCheck:
		return "check"
	case CancelRemove:
		return "remove"
	case CancelRemoveAll:
		return "removeAll"
	default:
		return fmt.Sprintf("CancelAction(%d)", int(a))
	}
}

// CancelHandle is the cancellation token of one dispatched call.
type CancelHandle struct {
	key    string
	ctx    context.Context
	cancel context.CancelCauseFunc
}

// Key returns the cancellation key the handle is registered under.
func (h *CancelHandle) Key() string { return h.key }

// Context is canceled once the handle is triggered.
func (h *CancelHandle) Context() context.Context { return h.ctx }

// Cancel triggers the handle with cause. Triggering twice is harmless.
func (h *CancelHandle) Cancel(cause error) { h.cancel(cause) }

// CancelRegistry maps cancellation keys to the handle of the call currently
// in flight for that key. It holds at most one handle per key and is safe
// for concurrent use. Handles overwritten by Register stay tracked until
// they are released so RemoveAll still reaches them.
type CancelRegistry struct {
	mu       sync.Mutex
	handles  map[string]*CancelHandle
	replaced map[*CancelHandle]struct{}
}

// NewCancelRegistry returns an empty registry.
func NewCancelRegistry() *CancelRegistry {
	return &CancelRegistry{
		handles:  make(map[string]*CancelHandle),
		replaced: make(map[*CancelHandle]struct{}),
	}
}

// DeriveKey strips the query string from rawURL. An empty URL yields
// ok=false: such calls do not take part in cancellation.
func DeriveKey(rawURL string) (key string, ok bool) {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		rawURL = rawURL[:i]
	}
	if rawURL == "" {
		return "", false
	}
	return rawURL, true
}

// Register creates a handle for key derived from ctx and stores it,
// replacing whatever was stored before without triggering it.
func (r *CancelRegistry) Register(ctx context.Context, key string) *CancelHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(ctx, key)
}

func (r *CancelRegistry) registerLocked(ctx context.Context, key string) *CancelHandle {
	handleCtx, cancel := context.WithCancelCause(ctx)
	h := &CancelHandle{key: key, ctx: handleCtx, cancel: cancel}
	if prior, ok := r.handles[key]; ok {
		r.replaced[prior] = struct{}{}
	}
	r.handles[key] = h
	return h
}

// CheckAndCancel triggers the handle stored for key, if any, and removes it.
func (r *CancelRegistry) CheckAndCancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.checkAndCancelLocked(key) != nil
}

func (r *CancelRegistry) checkAndCancelLocked(key string) *CancelHandle {
	h, ok := r.handles[key]
	if !ok {
		return nil
	}
	h.cancel(ErrSuperseded)
	delete(r.handles, key)
	return h
}

// Supersede cancels the call in flight for key and registers a new handle
// in a single step, so no other call can slip in between. canceled reports
// whether a prior call was triggered.
func (r *CancelRegistry) Supersede(ctx context.Context, key string) (h *CancelHandle, canceled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prior := r.checkAndCancelLocked(key)
	return r.registerLocked(ctx, key), prior != nil
}

// Remove forgets the handle stored for key without triggering it. Removing
// an absent key is a no-op.
func (r *CancelRegistry) Remove(key string) {
	r.mu.Lock()
	delete(r.handles, key)
	r.mu.Unlock()
}

// Release forgets h only while it is still the handle stored for its key,
// so a completed call never evicts the call that superseded it. The handle's
// context is released as well.
func (r *CancelRegistry) Release(h *CancelHandle) {
	if h == nil {
		return
	}
	r.mu.Lock()
	if current, ok := r.handles[h.key]; ok && current == h {
		delete(r.handles, h.key)
	} else {
		delete(r.replaced, h)
	}
	r.mu.Unlock()
	h.cancel(context.Canceled)
}

// RemoveAll triggers and forgets every stored handle, including ones
// overwritten by Register, and returns how many there were.
func (r *CancelRegistry) RemoveAll() int {
	r.mu.Lock()
	handles := r.handles
	replaced := r.replaced
	r.handles = make(map[string]*CancelHandle)
	r.replaced = make(map[*CancelHandle]struct{})
	r.mu.Unlock()

	for _, h := range handles {
		h.cancel(ErrCanceledAll)
	}
	for h := range replaced {
		h.cancel(ErrCanceledAll)
	}
	return len(handles) + len(replaced)
}

// Dispatch runs action against key. An action outside the declared set is a
// programming error and is reported as a configuration error.
func (r *CancelRegistry) Dispatch(action CancelAction, key string) error {
	switch action {
	case CancelCheck:
		r.CheckAndCancel(key)
	case CancelRemove:
		r.Remove(key)
	case CancelRemoveAll:
		r.RemoveAll()
	default:
		return configError(fmt.Sprintf("cancel action %s is not one of check, remove, removeAll", action), ErrInvalidCancelAction)
	}
	return nil
}

// Len returns the number of keys with a stored handle.
func (r *CancelRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Keys returns the stored keys in sorted order.
func (r *CancelRegistry) Keys() []string {
	r.mu.Lock()
	keys := make([]string, 0, len(r.handles))
	for k := range r.handles {
		keys = append(keys, k)
	}
	r.mu.Unlock()
	sort.Strings(keys)
	return keys
}

// Lookup returns the handle stored for key.
func (r *CancelRegistry) Lookup(key string) (*CancelHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[key]
	return h, ok
}
