package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ShopMetrics содержит метрики операций хранилища магазина.
type ShopMetrics struct {
	// Счётчики созданных сущностей
	clientsRegistered prometheus.Counter
	productsAdded     prometheus.Counter
	ordersPlaced      prometheus.Counter

	// Гистограммы
	opDuration *prometheus.HistogramVec
	orderTotal prometheus.Histogram

	// Ошибки по операциям
	opErrors *prometheus.CounterVec

	// Массовая выгрузка/загрузка
	transferRows *prometheus.CounterVec
}

// NewShopMetrics создаёт метрики на стандартном Prometheus-регистраторе.
func NewShopMetrics() *ShopMetrics {
	return newShopMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newShopMetricsWithRegisterer(registerer prometheus.Registerer) *ShopMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ShopMetrics{
		clientsRegistered: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopdesk_clients_registered_total",
			Help: "Total number of clients registered",
		}),
		productsAdded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopdesk_products_added_total",
			Help: "Total number of products added to the catalog",
		}),
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopdesk_orders_placed_total",
			Help: "Total number of orders placed",
		}),
		opDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "shopdesk_store_op_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"op"}),
		orderTotal: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shopdesk_order_total_cost",
			Help:    "Distribution of order totals at creation time",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		opErrors: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shopdesk_store_op_errors_total",
			Help: "Total number of failed store operations",
		}, []string{"op"}),
		transferRows: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shopdesk_transfer_rows_total",
			Help: "Total number of rows moved by bulk export/import",
		}, []string{"direction", "format"}),
	}
}

// ClientRegistered фиксирует успешную регистрацию клиента.
func (m *ShopMetrics) ClientRegistered() {
	if m == nil {
		return
	}
	m.clientsRegistered.Inc()
}

// ProductAdded фиксирует добавление товара в каталог.
func (m *ShopMetrics) ProductAdded() {
	if m == nil {
		return
	}
	m.productsAdded.Inc()
}

// OrderPlaced фиксирует созданный заказ и его итоговую сумму.
func (m *ShopMetrics) OrderPlaced(total float64) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
	m.orderTotal.Observe(total)
}

// ObserveOp фиксирует длительность операции хранилища.
func (m *ShopMetrics) ObserveOp(op string, d time.Duration) {
	if m == nil {
		return
	}
	m.opDuration.WithLabelValues(op).Observe(d.Seconds())
}

// OpFailed фиксирует неуспешную операцию.
func (m *ShopMetrics) OpFailed(op string) {
	if m == nil {
		return
	}
	m.opErrors.WithLabelValues(op).Inc()
}

// TransferRows фиксирует перенесённые строки массовой выгрузки или загрузки.
func (m *ShopMetrics) TransferRows(direction, format string, n int) {
	if m == nil {
		return
	}
	m.transferRows.WithLabelValues(direction, format).Add(float64(n))
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
