package middleware

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forgo/chapel/internal/model"
)

// ============================================================================
// Chain Tests
// ============================================================================

func TestChain_AppliesInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(okHandler(), mark("request_id"), mark("logger"), mark("recovery"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/events", nil))

	if strings.Join(order, ",") != "request_id,logger,recovery" {
		t.Errorf("unexpected order %v", order)
	}
}

// ============================================================================
// RequestID Tests
// ============================================================================

func TestRequestID_KeepsWellFormedClientID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/sermons", nil)
	req.Header.Set("X-Request-ID", "web-7f3a.01")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != "web-7f3a.01" || rr.Header().Get("X-Request-ID") != "web-7f3a.01" {
		t.Errorf("expected client ID to be kept, context %q header %q", seen, rr.Header().Get("X-Request-ID"))
	}
}

func TestRequestID_ReplacesMissingOrMalformedID(t *testing.T) {
	t.Parallel()

	for _, incoming := range []string{"", "bad id\r\nX-Injected: 1", strings.Repeat("a", maxRequestIDLength+1)} {
		var seen string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/sermons", nil)
		req.Header.Set("X-Request-ID", incoming)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if seen == incoming || len(seen) != 36 {
			t.Errorf("incoming %q: expected a generated UUID, got %q", incoming, seen)
		}
	}
}

// ============================================================================
// Logger Tests
// ============================================================================

func TestRouteLabel_UsesMatchedPattern(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.Handle("GET /api/sermons", okHandler())

	matched := httptest.NewRequest(http.MethodGet, "/api/sermons?series=Advent", nil)
	mux.ServeHTTP(httptest.NewRecorder(), matched)
	if got := routeLabel(matched); got != "GET /api/sermons" {
		t.Errorf("expected matched pattern, got %q", got)
	}

	unmatched := httptest.NewRequest(http.MethodGet, "/wp-login.php", nil)
	mux.ServeHTTP(httptest.NewRecorder(), unmatched)
	if got := routeLabel(unmatched); got != "unmatched /wp-login.php" {
		t.Errorf("expected unmatched label, got %q", got)
	}
}

func TestLogger_PassesThroughAndCountsBytes(t *testing.T) {
	t.Parallel()

	var captured *responseWriter
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = w.(*responseWriter)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"sermon:1"}`))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/sermons", nil))

	if rr.Code != http.StatusCreated || rr.Body.String() != `{"id":"sermon:1"}` {
		t.Errorf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
	if captured.statusCode != http.StatusCreated || captured.bytes != int64(len(`{"id":"sermon:1"}`)) {
		t.Errorf("expected status 201 and body size recorded, got %d/%d", captured.statusCode, captured.bytes)
	}
}

// ============================================================================
// Recovery Tests
// ============================================================================

func TestRecovery_WithPanic_WritesProblemDocument(t *testing.T) {
	t.Parallel()

	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("normalization failed")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json, got %q", ct)
	}

	var pd model.ProblemDetails
	if err := json.NewDecoder(rr.Body).Decode(&pd); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if pd.Instance != "/api/gallery" || strings.Contains(pd.Detail, "normalization") {
		t.Errorf("expected instance set and panic value hidden, got %+v", pd)
	}
}

func TestRecovery_WithNilPanic_Recovers(t *testing.T) {
	t.Parallel()

	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(nil)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	// panic(nil) surfaces as *runtime.PanicNilError
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}

// ============================================================================
// CORS Tests
// ============================================================================

func TestCORS_Origins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"listed", []string{"https://church.example"}, "https://church.example", "https://church.example"},
		{"not_listed", []string{"https://church.example"}, "https://evil.example", ""},
		{"wildcard", []string{"*"}, "https://anyone.example", "https://anyone.example"},
		{"no_origin", []string{"*"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			CORS(tt.allowed)(okHandler()).ServeHTTP(rr, req)

			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.want)
			}
			if rr.Header().Get("Vary") != "Origin" {
				t.Errorf("expected Vary: Origin, got %q", rr.Header().Get("Vary"))
			}
			if rr.Code != http.StatusOK {
				t.Errorf("expected request to reach handler, got %d", rr.Code)
			}
		})
	}
}

func TestCORS_Preflight_Returns204AndExposesLocation(t *testing.T) {
	t.Parallel()

	called := false
	handler := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/prayers", nil)
	req.Header.Set("Origin", "https://church.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent || called {
		t.Errorf("expected 204 without reaching handler, got %d (called=%v)", rr.Code, called)
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Expose-Headers"), "Location") {
		t.Error("expected Location to be exposed for created resources")
	}
}

// ============================================================================
// Compress Tests
// ============================================================================

func TestCompress_AcceptsGzip_CompressesResponse(t *testing.T) {
	t.Parallel()

	const body = `[{"_id":"event:1","title":"Fall Festival"}]`
	handler := Compress(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Accept-Encoding", "br;q=1.0, gzip;q=0.8")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", rr.Header().Get("Content-Encoding"))
	}
	if rr.Header().Get("Vary") != "Accept-Encoding" {
		t.Errorf("expected Vary: Accept-Encoding, got %q", rr.Header().Get("Vary"))
	}

	reader, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("failed to create gzip reader: %v", err)
	}
	defer func() { _ = reader.Close() }()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("failed to read decompressed data: %v", err)
	}
	if string(decompressed) != body {
		t.Errorf("decompressed content mismatch: %q", decompressed)
	}
}

func TestCompress_GzipNotAccepted_SendsPlainWithVary(t *testing.T) {
	t.Parallel()

	for _, accept := range []string{"", "identity", "gzip;q=0", "*;q=0", "gzip;q=0, *"} {
		handler := Compress(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("plain"))
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		req.Header.Set("Accept-Encoding", accept)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Header().Get("Content-Encoding") != "" || rr.Body.String() != "plain" {
			t.Errorf("Accept-Encoding %q: expected plain body, got encoding %q", accept, rr.Header().Get("Content-Encoding"))
		}
		if rr.Header().Get("Vary") != "Accept-Encoding" {
			t.Errorf("Accept-Encoding %q: expected Vary header on uncompressed responses too", accept)
		}
	}
}

func TestAcceptsGzip(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"gzip":              true,
		"GZIP, deflate":     true,
		"*":                 true,
		"gzip;q=0.001":      true,
		"deflate, gzip;q=0": false,
		"*;q=0.0":           false,
		"br":                false,
	}
	for header, want := range tests {
		if got := acceptsGzip(header); got != want {
			t.Errorf("acceptsGzip(%q) = %v, want %v", header, got, want)
		}
	}
}
