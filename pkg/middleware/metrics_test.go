package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func newRouter(mw ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(mw...)
	r.Get("/pkg/*", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bundle"))
	})
	r.Get("/fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})
	return r
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			got := make(map[string]string)
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			return m
		}
	}
	return nil
}

func TestPrometheus_CountsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := newRouter(Prometheus(WithRegistry(reg)))

	serve(t, h, http.MethodGet, "/pkg/chatbot.wasm")
	serve(t, h, http.MethodGet, "/pkg/chatbot.js")
	serve(t, h, http.MethodGet, "/fail")
	serve(t, h, http.MethodGet, "/nowhere")

	m := findMetric(t, reg, "chatbot_http_requests_total", map[string]string{
		"route": "/pkg/*", "method": "GET", "code": "200",
	})
	if m == nil || m.GetCounter().GetValue() != 2 {
		t.Fatalf("expected 2 requests for /pkg/*, got %v", m)
	}

	m = findMetric(t, reg, "chatbot_http_requests_total", map[string]string{
		"route": "/fail", "code": "500",
	})
	if m == nil || m.GetCounter().GetValue() != 1 {
		t.Fatalf("expected 1 failed request, got %v", m)
	}

	m = findMetric(t, reg, "chatbot_http_requests_total", map[string]string{
		"route": unmatchedRoute, "code": "404",
	})
	if m == nil {
		t.Fatal("expected unmatched requests to be counted")
	}

	h2 := findMetric(t, reg, "chatbot_http_request_duration_seconds", map[string]string{"route": "/pkg/*"})
	if h2 == nil || h2.GetHistogram().GetSampleCount() != 2 {
		t.Fatalf("expected 2 duration samples, got %v", h2)
	}
}

func TestPrometheus_RegistersOncePerRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := newRouter(Prometheus(WithRegistry(reg)))
	b := newRouter(Prometheus(WithRegistry(reg)))

	serve(t, a, http.MethodGet, "/pkg/a")
	serve(t, b, http.MethodGet, "/pkg/b")

	m := findMetric(t, reg, "chatbot_http_requests_total", map[string]string{"route": "/pkg/*"})
	if m == nil || m.GetCounter().GetValue() != 2 {
		t.Fatalf("expected shared counter with 2 requests, got %v", m)
	}
}

func TestPrometheus_Options(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := newRouter(Prometheus(
		WithRegistry(reg),
		WithNamespace("app"),
		WithSubsystem("web"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.1, 1}),
	))

	serve(t, h, http.MethodGet, "/pkg/x")

	m := findMetric(t, reg, "app_web_requests_total", map[string]string{"env": "test"})
	if m == nil {
		t.Fatal("expected metric with custom namespace and const label")
	}
	hist := findMetric(t, reg, "app_web_request_duration_seconds", nil)
	if hist == nil || len(hist.GetHistogram().GetBucket()) != 2 {
		t.Fatalf("expected 2 buckets, got %v", hist)
	}
}
