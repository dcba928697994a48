package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestHTTP(t *testing.T) *HTTP {
	t.Helper()
	m, err := NewHTTP(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	return m
}

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	m := newTestHTTP(t)
	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/api/state", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/state", http.NoBody))

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/state", "200")); got != 1 {
		t.Errorf("expected http_requests_total = 1, got %f", got)
	}
	if testutil.CollectAndCount(m.requestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	m := newTestHTTP(t)
	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/search", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	tests := []struct {
		method, path, status string
	}{
		{"GET", "/", "200"},
		{"POST", "/search", "303"},
		{"GET", "/health", "503"},
	}
	for _, tc := range tests {
		t.Run(tc.method+tc.path, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.path, http.NoBody))
			if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues(tc.method, tc.path, tc.status)); got != 1 {
				t.Errorf("expected one %s %s -> %s, got %f", tc.method, tc.path, tc.status, got)
			}
		})
	}
}

func TestNewHTTP_ReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewHTTP(reg)
	if err != nil {
		t.Fatalf("first NewHTTP: %v", err)
	}
	b, err := NewHTTP(reg)
	if err != nil {
		t.Fatalf("second NewHTTP: %v", err)
	}

	a.Sessions().Inc()
	b.Sessions().Inc()
	if got := testutil.ToFloat64(a.Sessions()); got != 2 {
		t.Errorf("expected shared gauge at 2, got %f", got)
	}
}

func TestRegisterOrReuse_IncompatibleType(t *testing.T) {
	reg := prometheus.NewRegistry()
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dup_total", Help: "x"}, []string{"kind"})
	if err := RegisterOrReuse(reg, &vec); err != nil {
		t.Fatalf("register counter vec: %v", err)
	}

	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: "dup_total", Help: "x"})
	if err := RegisterOrReuse(reg, &g); err == nil {
		t.Fatal("expected error for incompatible collector")
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/api/state", "/api/state"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
