package hostapi

import (
	"bytes"
	"encoding/json"
	"net/url"
	"reflect"
)

// ParamsFrom converts a request value to Params through its JSON encoding,
// so json tags name the fields. Numbers keep their exact textual form.
func ParamsFrom(v any) (Params, error) {
	switch p := v.(type) {
	case nil:
		return Params{}, nil
	case Params:
		return cloneParams(p), nil
	case map[string]any:
		return cloneParams(p), nil
	case map[string]string:
		out := make(Params, len(p))
		for k, val := range p {
			out[k] = val
		}
		return out, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, configError("request parameters cannot be encoded", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, configError("request parameters must encode to a JSON object", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return Params(out), nil
}

func cloneParams(p map[string]any) Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// encodeQuery renders params as query values. Nil values are skipped,
// slices repeat their key and objects are sent as JSON text.
func encodeQuery(params Params) url.Values {
	values := make(url.Values, len(params))
	for key, v := range params {
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			if _, isBytes := v.([]byte); isBytes {
				values.Add(key, formatValue(v))
				continue
			}
			for i := 0; i < rv.Len(); i++ {
				values.Add(key, formatValue(rv.Index(i).Interface()))
			}
		case reflect.Map, reflect.Struct:
			data, err := json.Marshal(v)
			if err != nil {
				values.Add(key, formatValue(v))
				continue
			}
			values.Add(key, string(data))
		default:
			values.Add(key, formatValue(v))
		}
	}
	return values
}
