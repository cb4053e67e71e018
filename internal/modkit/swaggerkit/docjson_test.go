package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cgeo/internal/platform/testkit"
)

func serve(t *testing.T) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	var spec map[string]any
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec.Code, spec
}

func TestServeDocJSON_Skeleton(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &mutators, []SpecMutator{Tags("text", "caches", "text")})
	testkit.Swap(t, &docReader, func() string {
		return `{"swagger":"2.0","info":{"title":"cgeo API"},"paths":{"/text/match":{"post":{}}}}`
	})

	code, spec := serve(t)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("version fields = %v %v", spec["openapi"], spec["swagger"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
	resps := spec["paths"].(map[string]any)["/text/match"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	if resps["400"] == nil || resps["500"] == nil {
		t.Fatalf("default responses missing: %v", resps)
	}
	if tags := spec["tags"].([]any); len(tags) != 2 {
		t.Fatalf("tags = %v", tags)
	}
}

func TestServeDocJSON_Invalid(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string { return "{" })

	if code, _ := serve(t); code != http.StatusInternalServerError {
		t.Fatalf("status = %d", code)
	}
}

func TestDefaultDocReader(t *testing.T) {
	testkit.Serial(t)

	var spec map[string]any
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		t.Fatalf("default doc is not JSON: %v", err)
	}
	if spec["info"].(map[string]any)["title"] != "cgeo API" {
		t.Fatalf("info = %v", spec["info"])
	}
}

func TestServeDocJSON_KeepsDocumented(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &mutators, nil)
	testkit.Swap(t, &docReader, func() string {
		return `{"openapi":"3.1.0","info":{"title":""},"servers":[{"url":"/x"}],"paths":{"/a":{"get":{"responses":{"400":{"description":"mine"}}}}}}`
	})
	t.Setenv("CORE_API_DOCS_TITLE_SUFFIX", "(staging)")

	_, spec := serve(t)
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	if url := spec["servers"].([]any)[0].(map[string]any)["url"]; url != "/x" {
		t.Fatalf("servers overwritten: %v", url)
	}
	resps := spec["paths"].(map[string]any)["/a"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	if resps["400"].(map[string]any)["description"] != "mine" {
		t.Fatalf("documented 400 replaced: %v", resps["400"])
	}
	if title := spec["info"].(map[string]any)["title"]; title != "(staging)" {
		t.Fatalf("title = %v", title)
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if schemas["ErrorResponse"] == nil {
		t.Fatal("ErrorResponse schema missing")
	}
}
