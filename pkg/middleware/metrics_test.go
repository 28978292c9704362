package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func newTestRouter(m *Metrics) *chi.Mux {
	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadRequest)
	})
	return r
}

func TestMetricsHandlerCountsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	r := newTestRouter(m)

	for _, path := range []string{"/items/1", "/items/2", "/items/3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", path, rec.Code)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fail", nil))

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/items/{id}", "200")); got != 3 {
		t.Errorf("requests_total{/items/{id},200} = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/fail", "400")); got != 1 {
		t.Errorf("requests_total{/fail,400} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.requestDuration); got != 2 {
		t.Errorf("request_duration_seconds series = %d, want 2", got)
	}
}

func TestMetricsUnmatchedRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	r := newTestRouter(m)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("unmatched", "404")); got != 1 {
		t.Errorf("requests_total{unmatched,404} = %v, want 1", got)
	}
}

func TestMetricsNamespaceAndSubsystem(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("custom"), WithSubsystem("frag"))
	m.RecordRenderError("H002")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	if !names["custom_frag_render_errors_total"] {
		t.Errorf("missing custom_frag_render_errors_total, got %v", names)
	}
}

func TestRecordRenderError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	m.RecordRenderError("H002")
	m.RecordRenderError("H002")
	m.RecordRenderError("")

	if got := metricCounterValue(t, reg, "htmlkit_render_errors_total", "code", "H002"); got != 2 {
		t.Errorf("render_errors_total{H002} = %v, want 2", got)
	}
	if got := metricCounterValue(t, reg, "htmlkit_render_errors_total", "code", "unknown"); got != 1 {
		t.Errorf("render_errors_total{unknown} = %v, want 1", got)
	}
}

func TestMetricsExposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	m.RecordRenderError("H001")

	expected := `
# HELP htmlkit_render_errors_total Total number of rendering errors by error code
# TYPE htmlkit_render_errors_total counter
htmlkit_render_errors_total{code="H001"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "htmlkit_render_errors_total"); err != nil {
		t.Error(err)
	}
}

func TestGlobalRecordRenderErrorBeforePrometheus(t *testing.T) {
	resetGlobalMetricsForTest()
	defer resetGlobalMetricsForTest()

	// No collectors yet: must not panic.
	RecordRenderError("H001")

	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg))
	if mw == nil {
		t.Fatal("Prometheus returned nil middleware")
	}
	RecordRenderError("H001")

	if got := metricCounterValue(t, reg, "htmlkit_render_errors_total", "code", "H001"); got != 1 {
		t.Errorf("render_errors_total{H001} = %v, want 1", got)
	}
}

func resetGlobalMetricsForTest() {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()
}

func metricCounterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			if hasLabel(metric, label, value) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func hasLabel(m *dto.Metric, name, value string) bool {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name && lp.GetValue() == value {
			return true
		}
	}
	return false
}
