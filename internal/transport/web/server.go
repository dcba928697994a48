// Package web serves the review search page and its JSON state over chi.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/reviewsearch/internal/domain"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/state"
	"github.com/kailas-cloud/reviewsearch/internal/i18n"
	logpkg "github.com/kailas-cloud/reviewsearch/internal/logger"
	"github.com/kailas-cloud/reviewsearch/internal/metrics"
	"github.com/kailas-cloud/reviewsearch/internal/render"
	healthuc "github.com/kailas-cloud/reviewsearch/internal/usecase/health"
)

// CookieName holds the session id.
const CookieName = "rs_session"

// Error codes of JSON error responses.
const (
	codeInternal     = "internal_error"
	codeUnauthorized = "unauthorized"
	codeRateLimited  = "rate_limited"
	codeUnavailable  = "unavailable"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Config holds server settings.
type Config struct {
	Language   string
	APIKeys    []string
	CookieTTL  time.Duration
	SecureOnly bool // mark the session cookie Secure
}

// Server is the HTTP front of the search view.
type Server struct {
	cfg      Config
	sessions *Sessions
	health   *healthuc.Service
	metrics  *metrics.HTTP
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// NewServer creates the search page server. httpMetrics and gatherer may be
// nil to disable request metrics and the /metrics endpoint.
func NewServer(
	cfg Config,
	sessions *Sessions,
	health *healthuc.Service,
	httpMetrics *metrics.HTTP,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		health:   health,
		metrics:  httpMetrics,
		gatherer: gatherer,
		logger:   logger,
	}
}

// Router builds the chi router with the middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
	}

	r.Get("/", s.handlePage)
	r.Post("/search", s.handleSearch)
	r.Get("/health", s.handleHealth)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/api", func(r chi.Router) {
		r.Use(bearerAuth(s.cfg.APIKeys))
		r.Get("/state", s.handleState)
	})
	return r
}

// handlePage handles GET /.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.handleSessionError(w, r, err)
		return
	}

	page := render.NewPage(sess.view.Snapshot(), i18n.NewPrinter(s.cfg.Language))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, pageData{Page: page, Lang: i18n.Match(s.cfg.Language).String()}); err != nil {
		logpkg.FromContext(r.Context(), s.logger).Error("render page", zap.Error(err))
	}
}

// handleSearch handles POST /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.handleSessionError(w, r, err)
		return
	}

	err = s.sessions.dispatch(sess, r.PostFormValue("query"))
	switch {
	case err == nil, errors.Is(err, domain.ErrEmptyQuery):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, domain.ErrRateLimited):
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, codeRateLimited, "too many searches, try again later")
	default:
		s.handleSessionError(w, r, err)
	}
}

// handleState handles GET /api/state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var st state.State
	if c, err := r.Cookie(CookieName); err == nil {
		if sess, ok := s.sessions.lookup(c.Value); ok {
			st = sess.view.Snapshot()
		}
	}
	writeJSON(w, http.StatusOK, stateToJSON(st, i18n.NewPrinter(s.cfg.Language)))
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// session returns the caller's session, starting a new one when the cookie
// is missing or refers to an evicted session. The cookie is reissued on every
// call so its lifetime slides with the server-side idle TTL.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, error) {
	if c, err := r.Cookie(CookieName); err == nil {
		if sess, ok := s.sessions.lookup(c.Value); ok {
			s.setSessionCookie(w, sess.id)
			return sess, nil
		}
	}

	sess, err := s.sessions.create()
	if err != nil {
		return nil, err
	}
	s.setSessionCookie(w, sess.id)
	return sess, nil
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id string) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureOnly,
		SameSite: http.SameSiteLaxMode,
	}
	if s.cfg.CookieTTL > 0 {
		cookie.MaxAge = int(s.cfg.CookieTTL.Seconds())
	}
	http.SetCookie(w, cookie)
}

func (s *Server) handleSessionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrViewClosed) {
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "server is shutting down")
		return
	}
	logpkg.FromContext(r.Context(), s.logger).Error("session error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}

type pageData struct {
	render.Page
	Lang string
}

func (pageData) Star() string { return render.Star }

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
