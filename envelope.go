package hostapi

import (
	"encoding/json"
	"net/http"
)

// Envelope is the normalized outcome of a call. Exactly one of three shapes
// is produced: a response (Error reports status != 200, Data holds the body),
// a transport failure (Error set, Err holds the diagnostic) or a canceled
// call (Canceled set, Err holds the cancellation cause).
type Envelope struct {
	Data       []byte
	Error      bool
	Canceled   bool
	StatusCode int
	Header     http.Header
	Err        error
}

// Decode unmarshals Data as JSON into v. An empty body leaves v untouched.
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return &ClientError{Type: ErrorTypeDecode, Message: "response body is not valid JSON for the target", Cause: err, StatusCode: e.StatusCode}
	}
	return nil
}

// Result is an Envelope whose body was decoded into T.
type Result[T any] struct {
	Data       T
	Error      bool
	Canceled   bool
	StatusCode int
	Header     http.Header
	Err        error
	// Raw is the undecoded body.
	Raw []byte
}

func decodeResult[T any](env *Envelope) *Result[T] {
	res := &Result[T]{
		Error:      env.Error,
		Canceled:   env.Canceled,
		StatusCode: env.StatusCode,
		Header:     env.Header,
		Err:        env.Err,
		Raw:        env.Data,
	}
	if env.Canceled {
		return res
	}
	if err := env.Decode(&res.Data); err != nil {
		res.Error = true
		if res.Err == nil {
			res.Err = err
		}
	}
	return res
}
