package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"cgeo/internal/core/version"
	"cgeo/internal/platform/config"
	perr "cgeo/internal/platform/errors"
)

// SpecMutator edits the decoded spec before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docReader returns the raw spec, the default is a skeleton filled in by mutators
var docReader = func() string {
	b, _ := json.Marshal(map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": "cgeo API", "version": version.Info().Version},
		"paths":   map[string]any{},
	})
	return string(b)
}

// Register adds m, call it before the first doc.json request
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		normalizeVersion(spec)
		if _, ok := spec["servers"]; !ok {
			spec["servers"] = []any{map[string]any{"url": "/api/v1"}}
		}
		if suffix := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); suffix != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				info["title"] = strings.TrimSpace(asString(info["title"]) + " " + suffix)
			}
		}

		if schemas := child(child(spec, "components"), "schemas"); schemas["ErrorResponse"] == nil {
			schemas["ErrorResponse"] = errorSchema
		}
		defaultResponse(spec, "400", "Bad Request", perr.ErrorCodeValidation, "text is required")
		defaultResponse(spec, "500", "Internal Server Error", perr.ErrorCodePanic, "internal error")

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalizeVersion serves every spec as OAS 3.0.3, the bundled UI renders nothing newer
func normalizeVersion(spec map[string]any) {
	delete(spec, "swagger")
	spec["openapi"] = "3.0.3"
}

var errorSchema = map[string]any{
	"type":     "object",
	"required": []any{"status_code", "status"},
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
}

// defaultResponse adds status to every operation that does not document it
func defaultResponse(spec map[string]any, status, desc string, code perr.ErrorCode, msg string) {
	resp := map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": perr.HTTPStatusCode(code),
					"status":      http.StatusText(perr.HTTPStatusCode(code)),
					"code":        int(code),
					"error":       msg,
				},
			},
		},
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for name := range ops {
			op, ok := ops[name].(map[string]any)
			if !ok {
				continue
			}
			if rs := child(op, "responses"); rs[status] == nil {
				rs[status] = resp
			}
		}
	}
}

// Tags lists one tag per module, tags already in the spec are kept
func Tags(names ...string) SpecMutator {
	return func(spec map[string]any) {
		tags, _ := spec["tags"].([]any)
		seen := map[string]bool{}
		for _, t := range tags {
			if m, ok := t.(map[string]any); ok {
				seen[asString(m["name"])] = true
			}
		}
		for _, n := range names {
			if n != "" && !seen[n] {
				seen[n] = true
				tags = append(tags, map[string]any{"name": n})
			}
		}
		spec["tags"] = tags
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
