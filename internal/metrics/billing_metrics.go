package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BillingMetrics содержит метрики операций со счетами.
type BillingMetrics struct {
	// Счётчики операций
	invoicesCreated   prometheus.Counter
	invoicesDeleted   prometheus.Counter
	insufficientStock prometheus.Counter

	// Гистограмма времени создания счёта
	createDuration prometheus.Histogram
}

// NewBillingMetrics создаёт новый экземпляр метрик биллинга.
func NewBillingMetrics() *BillingMetrics {
	return newBillingMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newBillingMetricsWithRegisterer(registerer prometheus.Registerer) *BillingMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &BillingMetrics{
		invoicesCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "eshop_invoices_created_total",
			Help: "Total number of invoices created",
		}),
		invoicesDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "eshop_invoices_deleted_total",
			Help: "Total number of invoices deleted",
		}),
		insufficientStock: registerCounter(registerer, prometheus.CounterOpts{
			Name: "eshop_insufficient_stock_total",
			Help: "Total number of invoice creations rejected due to insufficient stock",
		}),
		createDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "eshop_invoice_create_duration_seconds",
			Help:    "Duration of invoice creation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
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

// RecordInvoiceCreated увеличивает счётчик созданных счетов.
func (m *BillingMetrics) RecordInvoiceCreated() {
	m.invoicesCreated.Inc()
}

// RecordInvoiceDeleted увеличивает счётчик удалённых счетов.
func (m *BillingMetrics) RecordInvoiceDeleted() {
	m.invoicesDeleted.Inc()
}

// RecordInsufficientStock увеличивает счётчик отказов по нехватке товара.
func (m *BillingMetrics) RecordInsufficientStock() {
	m.insufficientStock.Inc()
}

// RecordCreateDuration записывает время создания счёта.
func (m *BillingMetrics) RecordCreateDuration(duration time.Duration) {
	m.createDuration.Observe(duration.Seconds())
}
