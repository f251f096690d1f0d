package hostapi

import (
	"fmt"
	"reflect"
	"sort"
)

// Endpoint is one entry of the static operation table.
type Endpoint struct {
	// Path is the "METHOD path" descriptor, e.g. "POST api/download/:id".
	Path    string            `yaml:"path" json:"path"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	// Request and Response optionally declare the operation's shapes with a
	// prototype value such as UserRequest{}.
	Request  any `yaml:"-" json:"-"`
	Response any `yaml:"-" json:"-"`
}

// Table maps operation names to endpoints.
type Table map[string]Endpoint

// Names returns the operation names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Operation is a compiled, immutable endpoint.
type Operation struct {
	Name     string
	Method   string
	Template *PathTemplate
	Headers  map[string]string
	Request  reflect.Type
	Response reflect.Type
}

// NewOperation compiles ep under name.
func NewOperation(name string, ep Endpoint) (*Operation, error) {
	if name == "" {
		return nil, configError("operation name must not be empty", ErrMalformedDescriptor)
	}
	method, template, err := ParseDescriptor(ep.Path)
	if err != nil {
		return nil, &ClientError{
			Type:      ErrorTypeConfiguration,
			Message:   "invalid descriptor",
			Cause:     err,
			Operation: name,
		}
	}

	headers := make(map[string]string, len(ep.Headers))
	for k, v := range ep.Headers {
		headers[k] = v
	}

	return &Operation{
		Name:     name,
		Method:   method,
		Template: ParseTemplate(template),
		Headers:  headers,
		Request:  prototypeType(ep.Request),
		Response: prototypeType(ep.Response),
	}, nil
}

// Descriptor renders the operation back as "METHOD template".
func (o *Operation) Descriptor() string {
	return fmt.Sprintf("%s %s", o.Method, o.Template)
}

// Placement returns where the operation sends its non-path parameters.
func (o *Operation) Placement() Placement {
	if UsesBody(o.Method) {
		return PlacementBody
	}
	return PlacementQuery
}

func compileTable(table Table) (map[string]*Operation, error) {
	ops := make(map[string]*Operation, len(table))
	for _, name := range table.Names() {
		op, err := NewOperation(name, table[name])
		if err != nil {
			return nil, err
		}
		ops[name] = op
	}
	return ops, nil
}

func prototypeType(v any) reflect.Type {
	if v == nil {
		return nil
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
