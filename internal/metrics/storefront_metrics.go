package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics содержит метрики витрины: операции с корзиной
// и исходы оформления заказа.
type StorefrontMetrics struct {
	// Счётчики операций с корзиной
	cartAdds    prometheus.Counter
	cartRemoves prometheus.Counter
	cartClears  prometheus.Counter

	// Исходы оформления
	checkoutStarted   prometheus.Counter
	checkoutSucceeded prometheus.Counter
	checkoutRejected  prometheus.Counter
	checkoutFailed    prometheus.Counter

	// Время создания заказа во внешнем API
	orderSubmitDuration prometheus.Histogram

	// Длительность запросов к бэкенду по операциям
	backendDuration *prometheus.HistogramVec

	// Gauge оформлений в полёте
	checkoutsInFlight prometheus.Gauge
}

// NewStorefrontMetrics создаёт метрики в default registry.
func NewStorefrontMetrics() *StorefrontMetrics {
	return newStorefrontMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newStorefrontMetricsWithRegisterer(registerer prometheus.Registerer) *StorefrontMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StorefrontMetrics{
		cartAdds: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_adds_total",
			Help: "Total number of add-to-cart operations",
		}),
		cartRemoves: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_removes_total",
			Help: "Total number of cart line removals",
		}),
		cartClears: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_clears_total",
			Help: "Total number of cart clears",
		}),
		checkoutStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_started_total",
			Help: "Total number of checkout submissions accepted for processing",
		}),
		checkoutSucceeded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_succeeded_total",
			Help: "Total number of checkouts that produced a payment session",
		}),
		checkoutRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_rejected_total",
			Help: "Total number of checkouts rejected locally before any network call",
		}),
		checkoutFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_failed_total",
			Help: "Total number of checkouts failed at the order API",
		}),
		orderSubmitDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_order_submit_duration_seconds",
			Help:    "Duration of order creation calls in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		backendDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "storefront_backend_request_duration_seconds",
			Help:    "Duration of shop backend requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		checkoutsInFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "storefront_checkouts_in_flight",
			Help: "Number of checkout submissions currently in flight",
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

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
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

// RecordCartAdd увеличивает счётчик добавлений в корзину.
func (m *StorefrontMetrics) RecordCartAdd() {
	m.cartAdds.Inc()
}

// RecordCartRemove увеличивает счётчик удалений позиций.
func (m *StorefrontMetrics) RecordCartRemove() {
	m.cartRemoves.Inc()
}

// RecordCartClear увеличивает счётчик очисток корзины.
func (m *StorefrontMetrics) RecordCartClear() {
	m.cartClears.Inc()
}

// RecordCheckoutStarted отмечает принятую к обработке отправку заказа.
func (m *StorefrontMetrics) RecordCheckoutStarted() {
	m.checkoutStarted.Inc()
	m.checkoutsInFlight.Inc()
}

// RecordCheckoutFinished уменьшает количество оформлений в полёте.
func (m *StorefrontMetrics) RecordCheckoutFinished() {
	m.checkoutsInFlight.Dec()
}

// RecordCheckoutSucceeded отмечает полученную платёжную сессию.
func (m *StorefrontMetrics) RecordCheckoutSucceeded() {
	m.checkoutSucceeded.Inc()
}

// RecordCheckoutRejected отмечает локальный отказ без сетевого вызова.
func (m *StorefrontMetrics) RecordCheckoutRejected() {
	m.checkoutRejected.Inc()
}

// RecordCheckoutFailed отмечает сбой на стороне API заказов.
func (m *StorefrontMetrics) RecordCheckoutFailed() {
	m.checkoutFailed.Inc()
}

// RecordOrderSubmitDuration записывает длительность создания заказа.
func (m *StorefrontMetrics) RecordOrderSubmitDuration(duration time.Duration) {
	m.orderSubmitDuration.Observe(duration.Seconds())
}

// RecordBackendDuration записывает длительность запроса к бэкенду.
func (m *StorefrontMetrics) RecordBackendDuration(operation string, duration time.Duration) {
	m.backendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
