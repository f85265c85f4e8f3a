package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	rec.Observe("GetObject", "success", 20*time.Millisecond)
	rec.Observe("GetObject", "success", 5*time.Millisecond)
	rec.Observe("GetObject", "network", time.Second)

	if got := testutil.ToFloat64(rec.requests.WithLabelValues("GetObject", "success")); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rec.requests.WithLabelValues("GetObject", "network")); got != 1 {
		t.Errorf("network count = %v, want 1", got)
	}
}

func TestRecorderDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewRecorder(reg); err != nil {
		t.Fatalf("first NewRecorder: %v", err)
	}
	if _, err := NewRecorder(reg); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.Observe("GetObject", "success", time.Millisecond) // must not panic
}
