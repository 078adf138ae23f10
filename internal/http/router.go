package http

import (
	"net/http"
	"strings"
	"time"

	"cvtrack/internal/domain/account"
	"cvtrack/internal/http/handlers"
	"cvtrack/internal/http/metrics"
	httpmw "cvtrack/internal/http/middleware"
)

type RouterDependencies struct {
	ApplicationHandler *handlers.ApplicationHandler
	AccountHandler     *handlers.AccountHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/accounts") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

// handleProtected routes authenticated traffic. Every application route
// additionally requires an active account; the requirement is declared
// here per route, next to the handler it gates.
func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	requireActive := httpmw.RequireAccountStatus(account.StatusActive)

	switch {
	case req.Method == http.MethodGet && path == "/accounts/me":
		r.deps.AccountHandler.Me(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/statuses":
		requireActive(http.HandlerFunc(r.deps.ApplicationHandler.Statuses)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/search":
		requireActive(http.HandlerFunc(r.deps.ApplicationHandler.Search)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/stats":
		requireActive(http.HandlerFunc(r.deps.ApplicationHandler.Stats)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/applications":
		requireActive(http.HandlerFunc(r.deps.ApplicationHandler.Save)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/applications/transition/"):
		requireActive(http.HandlerFunc(r.deps.ApplicationHandler.Transition)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/archive"):
		requireActive(http.HandlerFunc(r.deps.ApplicationHandler.Archive)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		requireActive(http.HandlerFunc(r.deps.ApplicationHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		requireActive(http.HandlerFunc(r.deps.ApplicationHandler.Delete)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
