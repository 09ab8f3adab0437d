package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewShopMetrics(t *testing.T) {
	metrics := newShopMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newShopMetricsWithRegisterer should not return nil")
	}
	if metrics.clientsRegistered == nil {
		t.Error("clientsRegistered counter should not be nil")
	}
	if metrics.productsAdded == nil {
		t.Error("productsAdded counter should not be nil")
	}
	if metrics.ordersPlaced == nil {
		t.Error("ordersPlaced counter should not be nil")
	}
	if metrics.opDuration == nil {
		t.Error("opDuration histogram vec should not be nil")
	}
	if metrics.orderTotal == nil {
		t.Error("orderTotal histogram should not be nil")
	}
	if metrics.opErrors == nil {
		t.Error("opErrors counter vec should not be nil")
	}
	if metrics.transferRows == nil {
		t.Error("transferRows counter vec should not be nil")
	}
}

func TestShopMetrics_Counters(t *testing.T) {
	metrics := newShopMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.ClientRegistered()
	metrics.ClientRegistered()
	metrics.ProductAdded()
	metrics.OrderPlaced(199.8)
	metrics.ObserveOp("create_order", 5*time.Millisecond)
	metrics.OpFailed("create_order")
	metrics.TransferRows("export", "csv", 3)

	if got := counterValue(t, metrics.clientsRegistered); got != 2 {
		t.Errorf("clientsRegistered = %v, want 2", got)
	}
	if got := counterValue(t, metrics.productsAdded); got != 1 {
		t.Errorf("productsAdded = %v, want 1", got)
	}
	if got := counterValue(t, metrics.ordersPlaced); got != 1 {
		t.Errorf("ordersPlaced = %v, want 1", got)
	}
	if got := counterValue(t, metrics.opErrors.WithLabelValues("create_order")); got != 1 {
		t.Errorf("opErrors = %v, want 1", got)
	}
	if got := counterValue(t, metrics.transferRows.WithLabelValues("export", "csv")); got != 3 {
		t.Errorf("transferRows = %v, want 3", got)
	}
}

func TestShopMetrics_NilReceiverIsNoop(t *testing.T) {
	var metrics *ShopMetrics

	// Ни один из вызовов не должен паниковать на nil-метриках.
	metrics.ClientRegistered()
	metrics.ProductAdded()
	metrics.OrderPlaced(10)
	metrics.ObserveOp("list_clients", time.Millisecond)
	metrics.OpFailed("list_clients")
	metrics.TransferRows("import", "json", 1)
}

func TestShopMetrics_RegisterTwiceReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newShopMetricsWithRegisterer(registry)
	second := newShopMetricsWithRegisterer(registry)

	first.ClientRegistered()
	second.ClientRegistered()

	if got := counterValue(t, second.clientsRegistered); got != 2 {
		t.Errorf("expected shared counter with value 2, got %v", got)
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}
