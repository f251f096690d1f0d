package hostapi

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

type loginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type downloadRequest struct {
	ID     int    `json:"id"`
	Format string `json:"format"`
}

func TestBindTypedCall(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK, `{"token":"abc"}`)
	client := MustNew(Table{
		"login": {Path: "POST api/loginUp", Request: loginRequest{}, Response: loginResponse{}},
	}, WithBaseURL(server.URL))

	login, err := Bind[loginRequest, loginResponse](client, "login")
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	res, err := login(context.Background(), &loginRequest{User: "ana", Password: "pw"})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if res.Error || res.Data.Token != "abc" {
		t.Errorf("Unexpected result %+v", res)
	}

	req := <-requests
	if req.Body != `{"password":"pw","user":"ana"}` {
		t.Errorf("Expected JSON body from the request struct, got %q", req.Body)
	}
}

func TestBindPathParamFromStruct(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK, `"ok"`)
	client := MustNew(Table{"download": {Path: "POST api/download/:id"}}, WithBaseURL(server.URL))

	download := MustBind[downloadRequest, string](client, "download")
	res, err := download(context.Background(), &downloadRequest{ID: 7, Format: "zip"})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if res.Data != "ok" {
		t.Errorf("Expected decoded string, got %q", res.Data)
	}

	req := <-requests
	if req.Path != "/api/download/7" || req.Body != `{"format":"zip"}` {
		t.Errorf("Expected /api/download/7 with format only, got %s %q", req.Path, req.Body)
	}
}

func TestBindNilRequest(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK, `{"token":"t"}`)
	client := MustNew(Table{"profile": {Path: "api/profile"}}, WithBaseURL(server.URL))

	profile := MustBind[struct{}, loginResponse](client, "profile")
	res, err := profile(context.Background(), nil)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if res.Data.Token != "t" {
		t.Errorf("Expected token t, got %q", res.Data.Token)
	}
	if req := <-requests; len(req.Query) != 0 {
		t.Errorf("Expected no query, got %v", req.Query)
	}
}

func TestBindShapeMismatch(t *testing.T) {
	client := MustNew(Table{
		"login": {Path: "POST api/loginUp", Request: &loginRequest{}, Response: loginResponse{}},
	})

	if _, err := Bind[downloadRequest, loginResponse](client, "login"); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected request shape mismatch, got %v", err)
	}
	if _, err := Bind[loginRequest, string](client, "login"); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected response shape mismatch, got %v", err)
	}
	if _, err := Bind[loginRequest, loginResponse](client, "login"); err != nil {
		t.Errorf("Expected pointer prototype to match the value type, got %v", err)
	}
	if _, err := Bind[loginRequest, loginResponse](client, "missing"); !IsUnknownOperation(err) {
		t.Errorf("Expected unknown operation, got %v", err)
	}
}

func TestMustBindPanics(t *testing.T) {
	client := MustNew(Table{"a": {Path: "api/a"}})
	defer func() {
		if recover() == nil {
			t.Error("Expected MustBind to panic")
		}
	}()
	MustBind[struct{}, struct{}](client, "missing")
}

func TestBindNonOKStatus(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusUnauthorized, `{"token":""}`)
	client := MustNew(Table{"login": {Path: "POST api/loginUp"}}, WithBaseURL(server.URL))

	login := MustBind[loginRequest, loginResponse](client, "login")
	res, err := login(context.Background(), &loginRequest{})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if !res.Error || res.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected error result with status 401, got %+v", res)
	}
}
