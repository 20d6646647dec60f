package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewStorefrontMetrics(t *testing.T) {
	metrics := newStorefrontMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newStorefrontMetricsWithRegisterer should not return nil")
	}

	if metrics.cartAdds == nil {
		t.Error("cartAdds counter should not be nil")
	}

	if metrics.cartRemoves == nil {
		t.Error("cartRemoves counter should not be nil")
	}

	if metrics.cartClears == nil {
		t.Error("cartClears counter should not be nil")
	}

	if metrics.checkoutStarted == nil {
		t.Error("checkoutStarted counter should not be nil")
	}

	if metrics.checkoutSucceeded == nil {
		t.Error("checkoutSucceeded counter should not be nil")
	}

	if metrics.checkoutRejected == nil {
		t.Error("checkoutRejected counter should not be nil")
	}

	if metrics.checkoutFailed == nil {
		t.Error("checkoutFailed counter should not be nil")
	}

	if metrics.orderSubmitDuration == nil {
		t.Error("orderSubmitDuration histogram should not be nil")
	}

	if metrics.backendDuration == nil {
		t.Error("backendDuration histogram vec should not be nil")
	}

	if metrics.checkoutsInFlight == nil {
		t.Error("checkoutsInFlight gauge should not be nil")
	}
}

func TestRegisterCounterReturnsExisting(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := prometheus.CounterOpts{
		Name: "test_duplicate_total",
		Help: "Test counter",
	}

	first := registerCounter(reg, opts)
	second := registerCounter(reg, opts)

	if first != second {
		t.Error("expected the already registered collector to be reused")
	}
}

func TestRecordCartAdd(t *testing.T) {
	reg := prometheus.NewRegistry()

	cartAdds := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_cart_adds_total",
		Help: "Test counter",
	})
	reg.MustRegister(cartAdds)

	metrics := &StorefrontMetrics{cartAdds: cartAdds}

	metrics.RecordCartAdd()
	metrics.RecordCartAdd()

	metric := &dto.Metric{}
	if err := cartAdds.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected counter value 2.0, got %f", metric.Counter.GetValue())
	}
}

func TestRecordCheckoutStartedAndFinished(t *testing.T) {
	reg := prometheus.NewRegistry()

	checkoutStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_checkout_started_total",
		Help: "Test counter",
	})
	checkoutsInFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_checkouts_in_flight",
		Help: "Test gauge",
	})
	reg.MustRegister(checkoutStarted, checkoutsInFlight)

	metrics := &StorefrontMetrics{
		checkoutStarted:   checkoutStarted,
		checkoutsInFlight: checkoutsInFlight,
	}

	metrics.RecordCheckoutStarted()

	metric := &dto.Metric{}
	if err := checkoutStarted.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1.0 {
		t.Errorf("expected counter value 1.0, got %f", metric.Counter.GetValue())
	}

	gaugeMetric := &dto.Metric{}
	if err := checkoutsInFlight.Write(gaugeMetric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gaugeMetric.Gauge.GetValue() != 1.0 {
		t.Errorf("expected in-flight 1.0, got %f", gaugeMetric.Gauge.GetValue())
	}

	metrics.RecordCheckoutFinished()

	gaugeMetric = &dto.Metric{}
	if err := checkoutsInFlight.Write(gaugeMetric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gaugeMetric.Gauge.GetValue() != 0.0 {
		t.Errorf("expected in-flight 0.0, got %f", gaugeMetric.Gauge.GetValue())
	}
}

func TestRecordCheckoutOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()

	succeeded := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_checkout_succeeded_total", Help: "Test counter"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_checkout_rejected_total", Help: "Test counter"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_checkout_failed_total", Help: "Test counter"})
	reg.MustRegister(succeeded, rejected, failed)

	metrics := &StorefrontMetrics{
		checkoutSucceeded: succeeded,
		checkoutRejected:  rejected,
		checkoutFailed:    failed,
	}

	metrics.RecordCheckoutSucceeded()
	metrics.RecordCheckoutRejected()
	metrics.RecordCheckoutRejected()
	metrics.RecordCheckoutFailed()

	checkCounter := func(c prometheus.Counter, want float64, name string) {
		metric := &dto.Metric{}
		if err := c.Write(metric); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		if metric.Counter.GetValue() != want {
			t.Errorf("%s = %f, want %f", name, metric.Counter.GetValue(), want)
		}
	}

	checkCounter(succeeded, 1.0, "succeeded")
	checkCounter(rejected, 2.0, "rejected")
	checkCounter(failed, 1.0, "failed")
}

func TestRecordOrderSubmitDuration(t *testing.T) {
	reg := prometheus.NewRegistry()

	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_order_submit_duration_seconds",
		Help:    "Test histogram",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(histogram)

	metrics := &StorefrontMetrics{orderSubmitDuration: histogram}

	metrics.RecordOrderSubmitDuration(150 * time.Millisecond)

	metric := &dto.Metric{}
	if err := histogram.Write(metric); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 1 {
		t.Errorf("expected 1 observation, got %d", metric.Histogram.GetSampleCount())
	}

	if metric.Histogram.GetSampleSum() < 0.14 || metric.Histogram.GetSampleSum() > 0.16 {
		t.Errorf("expected sum around 0.15, got %f", metric.Histogram.GetSampleSum())
	}
}

func TestRecordBackendDuration(t *testing.T) {
	reg := prometheus.NewRegistry()

	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "test_backend_request_duration_seconds",
		Help:    "Test histogram",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(vec)

	metrics := &StorefrontMetrics{backendDuration: vec}

	metrics.RecordBackendDuration("create_order", 50*time.Millisecond)

	histogram, err := vec.GetMetricWithLabelValues("create_order")
	if err != nil {
		t.Fatalf("failed to get labeled histogram: %v", err)
	}

	metric := &dto.Metric{}
	if err := histogram.(prometheus.Histogram).Write(metric); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 1 {
		t.Errorf("expected 1 observation, got %d", metric.Histogram.GetSampleCount())
	}
}
