package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/josecleyvison-eng/jau-emprega/internal/http/handlers"
	"github.com/josecleyvison-eng/jau-emprega/internal/http/metrics"
	httpmw "github.com/josecleyvison-eng/jau-emprega/internal/http/middleware"
)

type RouterDependencies struct {
	ListingHandler *handlers.ListingHandler
	AuthHandler    *handlers.AuthHandler
	WebhookHandler *handlers.WebhookHandler
	BannerHandler  *handlers.BannerHandler
	AuthMiddleware *httpmw.AuthMiddleware
	Limiter        httpmw.Limiter
	Metrics        *metrics.Collector
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

type Router struct {
	deps           RouterDependencies
	metricsHandler *metrics.Handler
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps, metricsHandler: metrics.NewHandler(deps.Metrics)}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout))
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
			r.metricsHandler.ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/vagas":
			r.deps.ListingHandler.ListPublished(w, req)
			return
		case req.Method == http.MethodPost && path == "/vagas":
			httpmw.RateLimit(r.deps.Limiter, "submit", 10, time.Minute)(http.HandlerFunc(r.deps.ListingHandler.Submit)).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/webhook":
			r.deps.WebhookHandler.Notify(w, req)
			return
		case req.Method == http.MethodPost && path == "/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodGet && path == "/banners":
			r.deps.BannerHandler.List(w, req)
			return
		}

		if strings.HasPrefix(path, "/admin/") || strings.HasPrefix(path, "/banners") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/admin/pending":
		r.deps.ListingHandler.ListPending(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/published":
		r.deps.ListingHandler.ListApproved(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/admin/listings/"):
		r.deps.ListingHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/admin/listings/"):
		r.deps.ListingHandler.Delete(w, req)
		return
	case req.Method == http.MethodPost && path == "/banners":
		r.deps.BannerHandler.Upsert(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/banners/"):
		r.deps.BannerHandler.Delete(w, req)
		return
	}

	http.NotFound(w, req)
}
