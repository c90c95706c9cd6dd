package ws

import (
	"net/http"
	"time"

	"github.com/voxhub/voicerelay/internal/observability"
)

// withLogging wraps a handler and logs every request. For /ws this logs the
// upgrade; the connection itself logs its own lifecycle.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		observability.Logger().Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}
