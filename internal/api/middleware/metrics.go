package middleware

import (
	"net/http"
	"time"

	"github.com/arjunm/coursehub/internal/metrics"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Metrics records status code and latency of every request.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			collector.RecordHTTPStatus(ww.Status())
			collector.RecordHTTPDuration(time.Since(start))
		})
	}
}
