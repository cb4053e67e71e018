// Package swaggerkit serves the OpenAPI document and Swagger UI of the cgeo API
package swaggerkit

import (
	"net/http"

	phttp "cgeo/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI lives, the document is DocsPath + "/doc.json"
const DocsPath = "/api/docs"

// Mount registers the UI and document on r, nothing happens when disabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	doc := DocsPath + "/doc.json"
	r.Get(DocsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(doc, serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(doc),
		// routes are grouped by module tag, keep them collapsed
		httpSwagger.DocExpansion("none"),
		httpSwagger.DeepLinking(true),
	))
}
