package hostapi

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Error types carried by ClientError.Type.
const (
	ErrorTypeConfiguration = "Configuration"
	ErrorTypeValidation    = "Validation"
	ErrorTypeNetwork       = "Network"
	ErrorTypeDecode        = "Decode"
)

// Sentinel errors for common failure scenarios
var (
	// ErrUnknownOperation is returned when a call names an operation that is not in the table.
	ErrUnknownOperation = errors.New("hostapi: unknown operation")

	// ErrMalformedDescriptor is returned for an unparsable "METHOD path" descriptor.
	ErrMalformedDescriptor = errors.New("hostapi: malformed operation descriptor")

	// ErrUnresolvedPlaceholder is returned in strict mode when a path placeholder has no parameter.
	ErrUnresolvedPlaceholder = errors.New("hostapi: unresolved path placeholder")

	// ErrInvalidCancelAction is returned by CancelRegistry.Dispatch for an unknown action.
	ErrInvalidCancelAction = errors.New("hostapi: invalid cancel action")

	// ErrShapeMismatch is returned by Bind when the declared request or response type differs.
	ErrShapeMismatch = errors.New("hostapi: request/response shape mismatch")

	// ErrSuperseded is the cancellation cause of a call replaced by a newer call to the same key.
	ErrSuperseded = errors.New("hostapi: superseded by a newer call")

	// ErrCanceledAll is the cancellation cause of calls aborted by a teardown.
	ErrCanceledAll = errors.New("hostapi: all pending calls canceled")
)

// ClientError describes a failure together with the call it belongs to.
type ClientError struct {
	Type       string
	Message    string
	Cause      error
	RequestID  string
	Operation  string
	Method     string
	URL        string
	StatusCode int
	Timestamp  time.Time
	Duration   time.Duration
}

func configError(message string, cause error) *ClientError {
	return &ClientError{
		Type:      ErrorTypeConfiguration,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// Error implements error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	if e.Operation != "" {
		msg = fmt.Sprintf("%s [operation %s]", msg, e.Operation)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *ClientError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Operation != "" {
		info += fmt.Sprintf("Operation: %s\n", e.Operation)
	}
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Duration > 0 {
		info += fmt.Sprintf("Duration: %v\n", e.Duration)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// IsConfiguration reports whether err is a programmer error: bad options,
// a malformed table, an unknown operation or an invalid cancel action.
func IsConfiguration(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrorTypeConfiguration || clientErr.Type == ErrorTypeValidation
	}
	return false
}

// IsCanceled reports whether err stems from a supersession, a teardown or a
// canceled context.
func IsCanceled(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrSuperseded) || errors.Is(err, ErrCanceledAll) || errors.Is(err, context.Canceled)
}
