package hostapi

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

var matchMethod = regexp.MustCompile(`^(GET|POST|PUT|DELETE|HEAD|OPTIONS|CONNECT|TRACE|PATCH)\s+`)

// Methods lists every verb a descriptor may start with.
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
	http.MethodPatch,
}

// ParseDescriptor splits a "METHOD path" descriptor into its verb and path
// template. A missing or unrecognized verb prefix yields GET with the whole
// descriptor as the template.
func ParseDescriptor(descriptor string) (method, template string, err error) {
	descriptor = strings.TrimSpace(descriptor)
	method = http.MethodGet
	template = descriptor
	if m := matchMethod.FindStringSubmatch(descriptor); m != nil {
		method = m[1]
		template = descriptor[len(m[0]):]
	}
	if template == "" {
		return "", "", fmt.Errorf("%w: %q has no path", ErrMalformedDescriptor, descriptor)
	}
	if strings.ContainsAny(template, " \t\r\n") {
		return "", "", fmt.Errorf("%w: %q contains whitespace in its path", ErrMalformedDescriptor, descriptor)
	}
	return method, template, nil
}

// UsesBody reports whether parameters of method travel in the request body.
func UsesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
