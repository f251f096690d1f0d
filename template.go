package hostapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
)

var matchPathParam = regexp.MustCompile(`:([A-Za-z_]\w*)`)

// PathTemplate is a URL path with ":name" placeholders.
type PathTemplate struct {
	raw          string
	placeholders []string
}

// ParseTemplate scans raw for placeholders. A name must start with a letter
// or underscore, so port numbers in absolute URLs are left alone.
func ParseTemplate(raw string) *PathTemplate {
	t := &PathTemplate{raw: raw}
	seen := make(map[string]struct{})
	for _, m := range matchPathParam.FindAllStringSubmatch(raw, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		t.placeholders = append(t.placeholders, m[1])
	}
	return t
}

// String returns the template as written.
func (t *PathTemplate) String() string { return t.raw }

// Placeholders returns the distinct placeholder names in order of first use.
func (t *PathTemplate) Placeholders() []string {
	return append([]string(nil), t.placeholders...)
}

// Expand substitutes placeholders from params. Consumed keys are left out of
// remaining; params itself is not modified. Placeholders without a parameter
// stay literal in path and are listed in unresolved.
func (t *PathTemplate) Expand(params Params) (path string, remaining Params, unresolved []string) {
	remaining = make(Params, len(params))
	for k, v := range params {
		remaining[k] = v
	}
	if len(t.placeholders) == 0 {
		return t.raw, remaining, nil
	}

	missing := make(map[string]bool)
	path = matchPathParam.ReplaceAllStringFunc(t.raw, func(match string) string {
		name := match[1:]
		value, ok := params[name]
		if !ok {
			missing[name] = true
			return match
		}
		delete(remaining, name)
		return url.PathEscape(formatValue(value))
	})
	for _, name := range t.placeholders {
		if missing[name] {
			unresolved = append(unresolved, name)
		}
	}
	return path, remaining, unresolved
}

// formatValue renders a scalar parameter for a path segment or query value.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
