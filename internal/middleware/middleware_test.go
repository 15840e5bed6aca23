package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/asset-registry/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func TestCORS_AnyOriginPreflight(t *testing.T) {
	h := CORS([]string{AnyOrigin})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/assets", nil)
	req.Header.Set("Origin", "http://frontend.local:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-custom")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status: got %d, want 204", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://frontend.local:3000" {
		t.Errorf("Allow-Origin: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Headers"); got != "content-type,x-custom" {
		t.Errorf("Allow-Headers: got %q", got)
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), "DELETE") {
		t.Errorf("Allow-Methods missing DELETE: %q", rr.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestCORS_ListedOriginOnly(t *testing.T) {
	h := CORS([]string{"http://a.example"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/assets", nil)
	req.Header.Set("Origin", "http://b.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected Allow-Origin for unlisted origin: %q", got)
	}
}

func TestCORS_Disabled(t *testing.T) {
	h := CORS(nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/assets", nil)
	req.Header.Set("Origin", "http://a.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("CORS disabled but got Allow-Origin %q", got)
	}
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/assets", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["detail"] != "internal server error" {
		t.Errorf("unexpected body: %v", out)
	}
}

func TestRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(PerMinute(1), 2)
	h := l.Middleware(okHandler())

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/assets", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
		codes = append(codes, last.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected codes: %v", codes)
	}
	if ra := last.Header().Get("Retry-After"); ra == "" || ra == "0" {
		t.Errorf("Retry-After: got %q", ra)
	}

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/assets", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("second client: got %d, want 200", rr.Code)
	}
}

func TestMaxBytes_DeclaredLength(t *testing.T) {
	called := false
	h := MaxBytes(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/assets", strings.NewReader("0123456789")))

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", rr.Code)
	}
	if called {
		t.Error("handler should not run for an oversized Content-Length")
	}
	if !strings.Contains(rr.Body.String(), `"detail"`) {
		t.Errorf("unexpected body: %s", rr.Body.String())
	}
}

func TestMaxBytes_StreamedBody(t *testing.T) {
	var readErr error
	h := MaxBytes(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/assets", strings.NewReader("0123456789"))
	req.ContentLength = -1
	h.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	if !errors.As(readErr, &maxErr) {
		t.Errorf("expected *http.MaxBytesError, got %v", readErr)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(true)(okHandler())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/assets", nil))

	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("missing nosniff")
	}
	if rr.Header().Get("Strict-Transport-Security") == "" {
		t.Errorf("missing HSTS")
	}
}

func TestPrometheus_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Prometheus)
	r.Get("/assets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := metrics.RequestTotal.WithLabelValues(http.MethodGet, "/assets/{id}", "404")
	before := testutil.ToFloat64(counter)
	for _, path := range []string{"/assets/7", "/assets/8"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("requests counted under /assets/{id}: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.RequestsInFlight); got != 0 {
		t.Errorf("in-flight after requests: got %v, want 0", got)
	}
}

func TestPrometheus_UnmatchedPathsShareLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Prometheus)
	r.Get("/assets", func(w http.ResponseWriter, r *http.Request) {})

	counter := metrics.RequestTotal.WithLabelValues(http.MethodGet, UnmatchedRoute, "404")
	before := testutil.ToFloat64(counter)
	for _, path := range []string{"/wp-admin", "/.env", "/a/b/c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("unmatched requests: got %v, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues(http.MethodGet, "/wp-admin", "404")); got != 0 {
		t.Errorf("raw path used as label: %v", got)
	}
}
