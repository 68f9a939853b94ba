package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"billed/internal/api/handlers"
)

// Routes groups billed-api handlers.
type Routes struct {
	Login       http.HandlerFunc
	Signup      http.HandlerFunc
	Bills       *handlers.BillHandlers
	Updates     http.HandlerFunc
	Health      http.HandlerFunc
	ReceiptsDir string
}

// NewRouter registers endpoints.
func NewRouter(routes Routes, authMiddleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", method(http.MethodGet, routes.Health))
	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/auth/login", method(http.MethodPost, withMetrics("/auth/login", routes.Login)))
	mux.Handle("/auth/signup", method(http.MethodPost, withMetrics("/auth/signup", routes.Signup)))

	mux.Handle("/bills", withMetrics("/bills", authMiddleware(http.HandlerFunc(routes.Bills.Collection))))
	mux.Handle("/bills/", withMetrics("/bills/", authMiddleware(http.HandlerFunc(routes.Bills.Item))))

	mux.Handle("/updates", http.HandlerFunc(routes.Updates))

	if routes.ReceiptsDir != "" {
		fileServer := http.FileServer(http.Dir(routes.ReceiptsDir))
		mux.Handle("/files/", http.StripPrefix("/files/", fileServer))
	}

	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
