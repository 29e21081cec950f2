package handler

import "net/http"

// NewRouter registers every API route on a new ServeMux
func NewRouter(content ContentService, diagnostics DiagnosticsReporter) *http.ServeMux {
	mux := http.NewServeMux()

	NewSystemHandler(diagnostics).RegisterRoutes(mux)
	NewContentHandler(content).RegisterRoutes(mux)

	return mux
}
