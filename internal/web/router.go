package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"billed/internal/routes"
)

// Routes groups the handler set for registration.
type Routes struct {
	Handlers *Handlers
}

// NewRouter registers endpoints. Page URLs mirror the logical navigation
// paths so browser history re-resolves them.
func NewRouter(r Routes) http.Handler {
	h := r.Handlers
	mux := http.NewServeMux()

	mux.Handle("/", method(http.MethodGet, withMetrics("/", http.HandlerFunc(h.PageFromURL))))
	mux.Handle("/bills", method(http.MethodGet, withMetrics("/bills", h.Page(routes.Bills))))
	mux.Handle("/bills/new", method(http.MethodGet, withMetrics("/bills/new", h.Page(routes.NewBill))))
	mux.Handle("/dashboard", method(http.MethodGet, withMetrics("/dashboard", h.Page(routes.Dashboard))))

	mux.Handle("/login", method(http.MethodPost, withMetrics("/login", http.HandlerFunc(h.Login))))
	mux.Handle("/logout", method(http.MethodPost, withMetrics("/logout", http.HandlerFunc(h.Logout))))
	mux.Handle("/bills/upload", method(http.MethodPost, withMetrics("/bills/upload", http.HandlerFunc(h.Upload))))
	mux.Handle("/bills/submit", method(http.MethodPost, withMetrics("/bills/submit", http.HandlerFunc(h.Submit))))

	mux.Handle("/health", method(http.MethodGet, http.HandlerFunc(h.Health)))
	mux.Handle("/metrics", promhttp.Handler())

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
