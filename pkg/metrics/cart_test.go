package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCartMetricsNilRegisterer(t *testing.T) {
	t.Parallel()

	m := NewCartMetrics(nil)
	// Must be safe no-ops.
	m.IncSuccess("add_item")
	m.IncFailure("add_item")
	m.ObserveDuration("add_item", time.Millisecond)
}

func TestCartMetricsRegisters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.IncSuccess("add_item")
	m.IncFailure("apply_coupon")
	m.ObserveDuration("add_item", 5*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	if !names["cart_operations_total"] || !names["cart_operation_duration_seconds"] {
		t.Fatalf("expected cart metric families, got %v", names)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var m *CartMetrics
	m.IncSuccess("add_item")
	m.IncFailure("add_item")
	m.ObserveDuration("add_item", time.Millisecond)
}
