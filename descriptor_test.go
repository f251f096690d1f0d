package hostapi

import (
	"errors"
	"testing"
)

func TestParseDescriptor(t *testing.T) {
	testCases := []struct {
		descriptor string
		method     string
		template   string
	}{
		{"POST api/loginUp", "POST", "api/loginUp"},
		{"GET api/users/:id", "GET", "api/users/:id"},
		{"api/profile", "GET", "api/profile"},
		{"DELETE  api/items/:id", "DELETE", "api/items/:id"},
		{"PATCH\tapi/items/:id", "PATCH", "api/items/:id"},
		{"  OPTIONS api/health  ", "OPTIONS", "api/health"},
		{"https://cdn.example.com:8443/files/:name", "GET", "https://cdn.example.com:8443/files/:name"},
	}

	for _, tc := range testCases {
		method, template, err := ParseDescriptor(tc.descriptor)
		if err != nil {
			t.Errorf("ParseDescriptor(%q) returned error: %v", tc.descriptor, err)
			continue
		}
		if method != tc.method {
			t.Errorf("ParseDescriptor(%q): expected method %s, got %s", tc.descriptor, tc.method, method)
		}
		if template != tc.template {
			t.Errorf("ParseDescriptor(%q): expected template %q, got %q", tc.descriptor, tc.template, template)
		}
	}
}

func TestParseDescriptorLowercaseVerbIsPath(t *testing.T) {
	_, _, err := ParseDescriptor("post api/login")
	if !errors.Is(err, ErrMalformedDescriptor) {
		t.Errorf("Expected lowercase verb to leave whitespace in the path and fail, got %v", err)
	}
}

func TestParseDescriptorMalformed(t *testing.T) {
	for _, descriptor := range []string{"", "   ", "POST api/a b", "GET api/x\ty"} {
		if _, _, err := ParseDescriptor(descriptor); !errors.Is(err, ErrMalformedDescriptor) {
			t.Errorf("ParseDescriptor(%q): expected ErrMalformedDescriptor, got %v", descriptor, err)
		}
	}
}

func TestUsesBody(t *testing.T) {
	expected := map[string]bool{
		"GET":     false,
		"POST":    true,
		"PUT":     true,
		"DELETE":  true,
		"HEAD":    false,
		"OPTIONS": false,
		"CONNECT": false,
		"TRACE":   false,
		"PATCH":   true,
	}
	for _, method := range Methods {
		if got := UsesBody(method); got != expected[method] {
			t.Errorf("UsesBody(%s): expected %v, got %v", method, expected[method], got)
		}
	}
}
