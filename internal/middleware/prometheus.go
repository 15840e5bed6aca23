package middleware

import (
	"net/http"
	"time"

	"github.com/crucial707/asset-registry/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Prometheus observes every request except scrapes of /metrics. Requests are
// labelled by chi route pattern, so /assets/7 and /assets/8 share /assets/{id};
// requests no route matched share the UnmatchedRoute label.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		metrics.RequestsInFlight.Inc()
		defer metrics.RequestsInFlight.Dec()

		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			// handler wrote nothing
			status = http.StatusOK
		}
		metrics.RecordRequest(r.Method, routeLabel(r), status, time.Since(start).Seconds())
	})
}

// UnmatchedRoute labels requests that matched no route, keeping arbitrary
// 404 paths out of the label set.
const UnmatchedRoute = "unmatched"

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return UnmatchedRoute
}
