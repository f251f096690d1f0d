package hostapi

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/swaggest/jsonschema-go"
	"github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"
)

// OpenAPI renders the operation table as an OpenAPI 3.1 JSON document.
// Placeholders become path parameters; request prototype fields become
// query parameters or the JSON body depending on the method, and the
// response prototype describes the 200 response.
func (c *Client) OpenAPI(title, version string) ([]byte, error) {
	refl := openapi31.NewReflector()
	refl.Spec.Info.WithTitle(title).WithVersion(version)
	if c.baseURL != "" {
		refl.Spec.WithServers(openapi31.Server{URL: c.baseURL})
	}
	refl.JSONSchemaReflector().DefaultOptions = append(refl.JSONSchemaReflector().DefaultOptions, jsonschema.ProcessWithoutTags)

	for _, op := range c.Operations() {
		oc, err := refl.NewOperationContext(op.Method, openAPIPath(op.Template))
		if err != nil {
			return nil, fmt.Errorf("operation %s: %w", op.Name, err)
		}
		oc.SetID(op.Name)
		oc.SetSummary(op.Descriptor())

		if in := requestContract(op); in != nil {
			if op.Placement() == PlacementBody {
				oc.AddReqStructure(in, openapi.WithContentType("application/json"))
			} else {
				oc.AddReqStructure(in)
			}
		}
		if op.Response != nil {
			oc.AddRespStructure(reflect.New(op.Response).Elem().Interface(), openapi.WithHTTPStatus(http.StatusOK))
		} else {
			oc.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
		}

		if err := refl.AddOperation(oc); err != nil {
			return nil, fmt.Errorf("operation %s: %w", op.Name, err)
		}
	}

	return refl.Spec.MarshalJSON()
}

// openAPIPath turns "api/download/:id" into "/api/download/{id}".
func openAPIPath(t *PathTemplate) string {
	p := t.String()
	if strings.Contains(p, "://") {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}
	p = matchPathParam.ReplaceAllString(p, "{$1}")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// requestContract builds a struct the reflector understands: one path-tagged
// field per placeholder, one header field per endpoint header, plus the
// request prototype's fields tagged for the query string or kept as JSON
// body fields.
func requestContract(op *Operation) any {
	protoFields := map[string]reflect.StructField{}
	var order []string
	if op.Request != nil && op.Request.Kind() == reflect.Struct {
		collectFields(op.Request, protoFields, &order)
	}

	var fields []reflect.StructField
	consumed := map[string]bool{}
	goNames := map[string]bool{}
	for i, name := range op.Template.Placeholders() {
		typ := reflect.TypeOf("")
		if f, ok := protoFields[name]; ok {
			typ = f.Type
		}
		consumed[name] = true
		goNames[fmt.Sprintf("PathParam%d", i)] = true
		fields = append(fields, reflect.StructField{
			Name: fmt.Sprintf("PathParam%d", i),
			Type: typ,
			Tag:  locationTag("path", name, `required:"true"`),
		})
	}

	headerNames := make([]string, 0, len(op.Headers))
	for name := range op.Headers {
		headerNames = append(headerNames, name)
	}
	sort.Strings(headerNames)
	for i, name := range headerNames {
		fields = append(fields, reflect.StructField{
			Name: fmt.Sprintf("Header%d", i),
			Type: reflect.TypeOf(""),
			Tag:  locationTag("header", name, fmt.Sprintf(`default:%q`, op.Headers[name])),
		})
		goNames[fmt.Sprintf("Header%d", i)] = true
	}

	for _, name := range order {
		if consumed[name] {
			continue
		}
		f := protoFields[name]
		if goNames[f.Name] {
			continue
		}
		goNames[f.Name] = true
		var extra []string
		for _, key := range []string{"description", "required", "enum", "default", "format"} {
			if v, ok := f.Tag.Lookup(key); ok {
				extra = append(extra, fmt.Sprintf(`%s:%q`, key, v))
			}
		}
		location := "query"
		if op.Placement() == PlacementBody {
			location = "json"
		}
		fields = append(fields, reflect.StructField{Name: f.Name, Type: f.Type, Tag: locationTag(location, name, extra...)})
	}

	if len(fields) == 0 {
		return nil
	}
	return reflect.New(reflect.StructOf(fields)).Elem().Interface()
}

var contractLocations = []string{"json", "path", "query", "header", "cookie", "formData"}

// locationTag names the field in location and hides it everywhere else.
// Untagged fields are reflected too, so every location has to be explicit.
func locationTag(location, name string, extra ...string) reflect.StructTag {
	parts := make([]string, 0, len(contractLocations)+len(extra))
	for _, loc := range contractLocations {
		if loc == location {
			parts = append(parts, fmt.Sprintf(`%s:%q`, loc, name))
		} else {
			parts = append(parts, fmt.Sprintf(`%s:"-"`, loc))
		}
	}
	parts = append(parts, extra...)
	return reflect.StructTag(strings.Join(parts, " "))
}

// collectFields indexes exported fields of t by JSON name, promoting the
// fields of untagged embedded structs.
func collectFields(t reflect.Type, out map[string]reflect.StructField, order *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		jsonTag := f.Tag.Get("json")
		name, _, _ := strings.Cut(jsonTag, ",")
		if name == "-" {
			continue
		}
		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectFields(ft, out, order)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if _, dup := out[name]; dup {
			continue
		}
		out[name] = f
		*order = append(*order, name)
	}
}
