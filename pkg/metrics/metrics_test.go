package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.CacheHitsTotal == nil {
		t.Error("CacheHitsTotal not initialized")
	}
	if r.WindowUpdateDuration == nil {
		t.Error("WindowUpdateDuration not initialized")
	}
	if r.DocSourceFetchesTotal == nil {
		t.Error("DocSourceFetchesTotal not initialized")
	}
	if r.registry == nil {
		t.Error("prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()
	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordCacheHitAndMiss(t *testing.T) {
	r := NewRegistry()

	r.RecordCacheHit("graph", "get")
	r.RecordCacheHit("graph", "get")
	r.RecordCacheMiss("graph", "get")

	hit, err := r.CacheHitsTotal.GetMetricWithLabelValues("graph", "get")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	var m dto.Metric
	if err := hit.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Counter.GetValue() != 2 {
		t.Errorf("hit counter = %v, want 2", m.Counter.GetValue())
	}

	miss, err := r.CacheMissesTotal.GetMetricWithLabelValues("graph", "get")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if err := miss.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Counter.GetValue() != 1 {
		t.Errorf("miss counter = %v, want 1", m.Counter.GetValue())
	}
}

func TestRecordCacheEviction(t *testing.T) {
	r := NewRegistry()
	r.RecordCacheEviction("query", 3, 4096)

	var m dto.Metric
	ev, _ := r.CacheEvictionsTotal.GetMetricWithLabelValues("query")
	if err := ev.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Counter.GetValue() != 1 {
		t.Errorf("eviction counter = %v, want 1", m.Counter.GetValue())
	}

	entries, _ := r.CacheEntriesTotal.GetMetricWithLabelValues("query")
	if err := entries.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Gauge.GetValue() != 3 {
		t.Errorf("entries gauge = %v, want 3", m.Gauge.GetValue())
	}
}

func TestRecordWindowUpdate(t *testing.T) {
	r := NewRegistry()
	r.RecordWindowUpdate("rect_sum", 5*time.Millisecond)
	r.RecordWindowUpdate("rect_sum", 10*time.Millisecond)

	h, err := r.WindowUpdateDuration.GetMetricWithLabelValues("rect_sum")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	var m dto.Metric
	if err := h.(prometheus.Histogram).Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Histogram.GetSampleCount() != 2 {
		t.Errorf("sample count = %v, want 2", m.Histogram.GetSampleCount())
	}

	if err := r.WindowAdvancesTotal.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Counter.GetValue() != 2 {
		t.Errorf("advances total = %v, want 2", m.Counter.GetValue())
	}
}

func TestRecordDocSourceFetch(t *testing.T) {
	r := NewRegistry()
	r.RecordDocSourceFetch("forward", 20*time.Millisecond)
	r.RecordDocSourceFetch("forward", 30*time.Millisecond)
	r.RecordDocSourceFetch("backward", 5*time.Millisecond)
	r.RecordDocSourceArticles(7)

	var m dto.Metric
	fwd, _ := r.DocSourceFetchesTotal.GetMetricWithLabelValues("forward")
	if err := fwd.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Counter.GetValue() != 2 {
		t.Errorf("forward fetches = %v, want 2", m.Counter.GetValue())
	}

	if err := r.DocSourceArticlesTotal.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Counter.GetValue() != 7 {
		t.Errorf("articles total = %v, want 7", m.Counter.GetValue())
	}
}

func TestMetricNamingHasTvgraphPrefix(t *testing.T) {
	r := NewRegistry()
	gathered, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if len(gathered) == 0 {
		t.Fatal("no metrics registered")
	}
	for _, fam := range gathered {
		if !strings.HasPrefix(fam.GetName(), "tvgraph_") {
			t.Errorf("metric %s does not have tvgraph_ prefix", fam.GetName())
		}
	}
}

func TestConcurrentCacheHitUpdates(t *testing.T) {
	r := NewRegistry()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				r.RecordCacheHit("graph", "get")
			}
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	hit, err := r.CacheHitsTotal.GetMetricWithLabelValues("graph", "get")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	var m dto.Metric
	if err := hit.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Counter.GetValue() != 1000 {
		t.Errorf("hit counter = %v, want 1000", m.Counter.GetValue())
	}
}
