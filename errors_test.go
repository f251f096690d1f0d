package hostapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestClientError(t *testing.T) {
	err := &ClientError{
		Type:    ErrorTypeNetwork,
		Message: "connection refused",
	}

	expectedMsg := "Network: connection refused"
	if err.Error() != expectedMsg {
		t.Errorf("Expected '%s', got '%s'", expectedMsg, err.Error())
	}

	errWithContext := &ClientError{
		Type:      ErrorTypeConfiguration,
		Message:   "bad table",
		Cause:     ErrMalformedDescriptor,
		RequestID: "req-9",
		Operation: "login",
	}

	expected := "[req-9] Configuration: bad table (hostapi: malformed operation descriptor) [operation login]"
	if errWithContext.Error() != expected {
		t.Errorf("Expected '%s', got '%s'", expected, errWithContext.Error())
	}
}

func TestClientErrorNil(t *testing.T) {
	var err *ClientError

	if err.Error() != "<nil>" {
		t.Errorf("Expected '<nil>', got '%s'", err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("Expected nil Unwrap on nil error")
	}
	if err.Is(ErrUnknownOperation) {
		t.Error("Expected nil error to match nothing")
	}
	if err.DebugInfo() != "Error: <nil>" {
		t.Errorf("Unexpected DebugInfo: %s", err.DebugInfo())
	}
}

func TestClientErrorUnwrap(t *testing.T) {
	cause := errors.New("original error")
	err := &ClientError{Type: ErrorTypeNetwork, Message: "failed", Cause: cause}

	if err.Unwrap() != cause {
		t.Errorf("Expected unwrapped error to be %v, got %v", cause, err.Unwrap())
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", err), cause) {
		t.Error("Expected errors.Is to find the cause through wrapping")
	}
}

func TestClientErrorIs(t *testing.T) {
	err := &ClientError{Type: ErrorTypeDecode, Message: "bad json"}

	if !errors.Is(err, &ClientError{Type: ErrorTypeDecode}) {
		t.Error("Expected errors with the same type to match")
	}
	if errors.Is(err, &ClientError{Type: ErrorTypeNetwork}) {
		t.Error("Expected errors with different types not to match")
	}
}

func TestDebugInfo(t *testing.T) {
	err := &ClientError{
		Type:       ErrorTypeNetwork,
		Message:    "timeout",
		Cause:      context.DeadlineExceeded,
		RequestID:  "req-1",
		Operation:  "search",
		Method:     "GET",
		URL:        "api/search?q=x",
		StatusCode: 504,
		Timestamp:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:   2 * time.Second,
	}

	info := err.DebugInfo()
	for _, want := range []string{
		"Error Type: Network",
		"Message: timeout",
		"Request ID: req-1",
		"Operation: search",
		"Method: GET",
		"URL: api/search?q=x",
		"Status Code: 504",
		"Timestamp: 2024-01-02T03:04:05Z",
		"Duration: 2s",
		"Cause: context deadline exceeded",
	} {
		if !strings.Contains(info, want) {
			t.Errorf("Expected DebugInfo to contain %q, got:\n%s", want, info)
		}
	}
}

func TestIsConfiguration(t *testing.T) {
	if !IsConfiguration(configError("x", nil)) {
		t.Error("Expected configuration error to be recognized")
	}
	if !IsConfiguration(&ClientError{Type: ErrorTypeValidation}) {
		t.Error("Expected validation error to count as configuration")
	}
	if IsConfiguration(&ClientError{Type: ErrorTypeNetwork}) {
		t.Error("Expected network error not to count as configuration")
	}
	if IsConfiguration(errors.New("plain")) || IsConfiguration(nil) {
		t.Error("Expected plain and nil errors not to count as configuration")
	}
}

func TestIsCanceled(t *testing.T) {
	testCases := []struct {
		err  error
		want bool
	}{
		{ErrSuperseded, true},
		{ErrCanceledAll, true},
		{context.Canceled, true},
		{fmt.Errorf("wrapped: %w", ErrSuperseded), true},
		{context.DeadlineExceeded, false},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tc := range testCases {
		if got := IsCanceled(tc.err); got != tc.want {
			t.Errorf("IsCanceled(%v): expected %v, got %v", tc.err, tc.want, got)
		}
	}
}
