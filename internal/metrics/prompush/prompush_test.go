// Package prompush tests cover collector routing and the Pushgateway push.
package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lakehouse/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// readCounterValue reads the current value of a Counter for assertions in tests.
func readCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Counter.Write() error = %v", err)
	}
	if m.GetCounter() == nil {
		t.Fatalf("metric did not contain Counter value")
	}
	return m.GetCounter().GetValue()
}

// readSummaryCountSum reads sample count and sum from a SummaryVec for assertions in tests.
func readSummaryCountSum(t *testing.T, v *prometheus.SummaryVec, labels ...string) (uint64, float64) {
	t.Helper()

	m := &dto.Metric{}
	metric, ok := v.WithLabelValues(labels...).(prometheus.Metric)
	if !ok {
		t.Fatalf("SummaryVec.WithLabelValues(...) does not implement prometheus.Metric")
	}
	if err := metric.Write(m); err != nil {
		t.Fatalf("Summary.Write() error = %v", err)
	}
	if m.GetSummary() == nil {
		t.Fatalf("metric did not contain Summary value")
	}
	sum := m.GetSummary()
	return sum.GetSampleCount(), sum.GetSampleSum()
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{
			name:       "missing gateway URL returns error",
			jobName:    "lakehouse",
			gatewayURL: "",
			wantErr:    true,
		},
		{
			name:        "empty job name uses default",
			jobName:     "",
			gatewayURL:  "http://pushgateway:9091",
			wantJobName: "lakehouse",
		},
		{
			name:        "explicit job name is preserved",
			jobName:     "my-custom-job",
			gatewayURL:  "http://pushgateway:9091",
			wantJobName: "my-custom-job",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.jobName, tt.gatewayURL)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewBackend(%q, %q) error = nil, want non-nil", tt.jobName, tt.gatewayURL)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend(%q, %q) error = %v, want nil", tt.jobName, tt.gatewayURL, err)
			}
			if b.jobName != tt.wantJobName {
				t.Fatalf("backend.jobName = %q, want %q", b.jobName, tt.wantJobName)
			}

			// Metric label cardinality: these calls should not panic.
			b.stageCounter.WithLabelValues("silver", "orders", "success").Add(1)
			b.stageDuration.WithLabelValues("gold", "fact_sales", "failure").Observe(0.5)
			b.rowCounter.WithLabelValues("bronze", "customers", "ingested").Add(1)
			b.checkCounter.WithLabelValues("orders", "passed").Add(1)
		})
	}
}

func TestIncCounter_RoutesToCollectors(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("lakehouse", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.IncCounter("pipeline_stage_total", 3, metrics.Labels{
		"stage": "bronze", "table": "customers", "status": "success",
	})
	b.IncCounter("pipeline_rows_total", 5, metrics.Labels{
		"stage": "bronze", "table": "customers", "kind": "ingested",
	})
	b.IncCounter("pipeline_quality_checks_total", 2, metrics.Labels{
		"table": "orders", "outcome": "failed",
	})
	b.IncCounter("unknown_metric", 10, metrics.Labels{"foo": "bar"})

	if got := readCounterValue(t, b.stageCounter.WithLabelValues("bronze", "customers", "success")); got != 3 {
		t.Fatalf("stageCounter value = %v, want 3", got)
	}
	if got := readCounterValue(t, b.rowCounter.WithLabelValues("bronze", "customers", "ingested")); got != 5 {
		t.Fatalf("rowCounter value = %v, want 5", got)
	}
	if got := readCounterValue(t, b.checkCounter.WithLabelValues("orders", "failed")); got != 2 {
		t.Fatalf("checkCounter value = %v, want 2", got)
	}
	// Unknown names are dropped; a never-touched label set stays zero.
	if got := readCounterValue(t, b.stageCounter.WithLabelValues("x", "y", "z")); got != 0 {
		t.Fatalf("stageCounter value = %v, want 0 (unchanged)", got)
	}
}

func TestObserveHistogram(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("lakehouse", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.ObserveHistogram("pipeline_stage_duration_seconds", 1.5, metrics.Labels{
		"stage": "silver", "table": "orders", "status": "success",
	})
	b.ObserveHistogram("other_metric", 2.0, metrics.Labels{
		"stage": "silver", "table": "orders", "status": "success",
	})

	count, sum := readSummaryCountSum(t, b.stageDuration, "silver", "orders", "success")
	if count != 1 {
		t.Fatalf("summary sample count = %d, want 1", count)
	}
	if sum != 1.5 {
		t.Fatalf("summary sample sum = %v, want 1.5", sum)
	}
}

// TestFlush verifies that Flush pushes the registry to the configured
// Pushgateway URL by sending an HTTP request to the gateway.
func TestFlush(t *testing.T) {
	t.Parallel()

	type pushRequestInfo struct {
		method  string
		path    string
		bodyLen int
	}

	reqCh := make(chan pushRequestInfo, 1)

	// Fake Pushgateway server that records the incoming request.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)

		reqCh <- pushRequestInfo{
			method:  r.Method,
			path:    r.URL.Path,
			bodyLen: len(body),
		}
		// Pushgateway typically returns 202 Accepted.
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("lakehouse-job", server.URL)
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	// Add some data so the push body is non-empty.
	b.IncCounter("pipeline_stage_total", 1, metrics.Labels{
		"stage": "bronze", "table": "customers", "status": "success",
	})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got pushRequestInfo
	select {
	case got = <-reqCh:
		// OK
	default:
		t.Fatalf("Flush() did not result in any HTTP request to the Pushgateway")
	}

	if got.method == "" || got.path == "" {
		t.Fatalf("Push request method/path empty: %+v", got)
	}
	if got.bodyLen == 0 {
		t.Fatalf("Push request body length = 0, want > 0")
	}
}
