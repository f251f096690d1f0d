package hostapi

import (
	"errors"
	"testing"
)

func TestEnvelopeDecode(t *testing.T) {
	env := &Envelope{Data: []byte(`{"name":"ana"}`), StatusCode: 200}

	var out struct {
		Name string `json:"name"`
	}
	if err := env.Decode(&out); err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if out.Name != "ana" {
		t.Errorf("Expected name ana, got %s", out.Name)
	}
}

func TestEnvelopeDecodeEmpty(t *testing.T) {
	env := &Envelope{}
	out := map[string]any{"kept": true}

	if err := env.Decode(&out); err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if out["kept"] != true {
		t.Error("Expected empty body to leave the target untouched")
	}
}

func TestEnvelopeDecodeInvalid(t *testing.T) {
	env := &Envelope{Data: []byte("<html>"), StatusCode: 502}

	var out map[string]any
	err := env.Decode(&out)

	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Type != ErrorTypeDecode {
		t.Fatalf("Expected decode error, got %v", err)
	}
	if clientErr.StatusCode != 502 {
		t.Errorf(expectedStatusMsg, 502, clientErr.StatusCode)
	}
}

func TestDecodeResult(t *testing.T) {
	res := decodeResult[map[string]int](&Envelope{Data: []byte(`{"n":1}`), StatusCode: 200})
	if res.Error || res.Data["n"] != 1 || string(res.Raw) != `{"n":1}` {
		t.Errorf("Unexpected result %+v", res)
	}

	res = decodeResult[map[string]int](&Envelope{Data: []byte("nope"), StatusCode: 200})
	if !res.Error || res.Err == nil {
		t.Errorf("Expected decode failure to mark the result, got %+v", res)
	}

	res = decodeResult[map[string]int](&Envelope{Canceled: true, Err: ErrSuperseded})
	if !res.Canceled || res.Error || !errors.Is(res.Err, ErrSuperseded) {
		t.Errorf("Expected canceled result, got %+v", res)
	}
}

func TestDecodeResultKeepsTransportError(t *testing.T) {
	transportErr := &ClientError{Type: ErrorTypeNetwork, Message: "down"}
	res := decodeResult[string](&Envelope{Error: true, Err: transportErr})

	if res.Err != transportErr {
		t.Errorf("Expected transport error to be kept, got %v", res.Err)
	}
}
