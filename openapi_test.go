package hostapi

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type userQuery struct {
	ID    string `json:"id"`
	Limit int    `json:"limit" description:"page size"`
}

type userResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func renderOpenAPI(t *testing.T, client *Client) map[string]any {
	t.Helper()
	data, err := client.OpenAPI("Test API", "1.2.3")
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	return doc
}

func lookup(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[k]
	}
	return cur
}

func TestOpenAPIDocument(t *testing.T) {
	client := MustNew(Table{
		"getUser": {Path: "GET api/users/:id", Request: userQuery{}, Response: userResponse{}},
		"login":   {Path: "POST api/loginUp", Request: loginRequest{}, Response: loginResponse{}},
		"ping":    {Path: "HEAD api/ping", Headers: map[string]string{"X-Client": "web"}},
	}, WithBaseURL("https://api.example.com"))

	doc := renderOpenAPI(t, client)

	if doc["openapi"] == nil {
		t.Fatal("Expected openapi version field")
	}
	if lookup(doc, "info", "title") != "Test API" || lookup(doc, "info", "version") != "1.2.3" {
		t.Errorf("Unexpected info %v", doc["info"])
	}
	servers, _ := doc["servers"].([]any)
	if len(servers) != 1 || lookup(servers[0].(map[string]any), "url") != "https://api.example.com" {
		t.Errorf("Expected one server, got %v", doc["servers"])
	}

	getUser, _ := lookup(doc, "paths", "/api/users/{id}", "get").(map[string]any)
	if getUser == nil {
		t.Fatalf("Expected GET /api/users/{id}, got paths %v", doc["paths"])
	}
	if getUser["operationId"] != "getUser" {
		t.Errorf("Expected operationId getUser, got %v", getUser["operationId"])
	}
	if diff := cmp.Diff(map[string]string{"id": "path", "limit": "query"}, paramLocations(getUser)); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}

	login, _ := lookup(doc, "paths", "/api/loginUp", "post").(map[string]any)
	if login == nil {
		t.Fatal("Expected POST /api/loginUp")
	}
	if lookup(login, "requestBody", "content", "application/json") == nil {
		t.Errorf("Expected JSON request body, got %v", login["requestBody"])
	}
	if lookup(login, "responses", "200") == nil {
		t.Errorf("Expected 200 response, got %v", login["responses"])
	}

	ping, _ := lookup(doc, "paths", "/api/ping", "head").(map[string]any)
	if ping == nil {
		t.Fatal("Expected HEAD /api/ping")
	}
	if diff := cmp.Diff(map[string]string{"X-Client": "header"}, paramLocations(ping)); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}
}

func paramLocations(op map[string]any) map[string]string {
	out := map[string]string{}
	params, _ := op["parameters"].([]any)
	for _, p := range params {
		m, _ := p.(map[string]any)
		name, _ := m["name"].(string)
		in, _ := m["in"].(string)
		out[name] = in
	}
	return out
}

func TestOpenAPIPath(t *testing.T) {
	testCases := map[string]string{
		"api/download/:id":                     "/api/download/{id}",
		"/api/:org/repos/:repo":                "/api/{org}/repos/{repo}",
		"api/search?fixed=1":                   "/api/search",
		"https://cdn.example.com:8443/f/:name": "/f/{name}",
	}
	for in, want := range testCases {
		if got := openAPIPath(ParseTemplate(in)); got != want {
			t.Errorf("openAPIPath(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestRequestContractEmpty(t *testing.T) {
	op, err := NewOperation("plain", Endpoint{Path: "GET api/plain"})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if requestContract(op) != nil {
		t.Error("Expected no request contract for an operation without inputs")
	}
}
