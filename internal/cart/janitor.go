package cart

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

const (
	defaultSweepInterval = 10 * time.Minute
	defaultSessionTTL    = 2 * time.Hour
)

var (
	sessionSweepDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_session_sweep_deleted_total",
		Help: "Total number of idle shopper sessions removed by the janitor.",
	})
	sessionSweepLastDeleted = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_session_sweep_last_deleted",
		Help: "Number of sessions removed during the last sweep.",
	})
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_active_sessions",
		Help: "Number of live shopper sessions after the last sweep.",
	})
)

// JanitorOptions задаёт параметры воркера вытеснения брошенных сессий.
type JanitorOptions struct {
	Logger   *log.Entry
	Interval time.Duration
	TTL      time.Duration
}

// JanitorOption настраивает Janitor.
type JanitorOption func(*JanitorOptions)

// WithLogger задаёт logger для воркера.
func WithLogger(logger *log.Entry) JanitorOption {
	return func(opts *JanitorOptions) {
		opts.Logger = logger
	}
}

// WithInterval задаёт интервал между проходами.
func WithInterval(interval time.Duration) JanitorOption {
	return func(opts *JanitorOptions) {
		opts.Interval = interval
	}
}

// WithTTL задаёт время простоя, после которого сессия считается брошенной.
func WithTTL(ttl time.Duration) JanitorOption {
	return func(opts *JanitorOptions) {
		opts.TTL = ttl
	}
}

// Janitor периодически удаляет из реестра сессии без активности:
// корзины живут только в памяти, и без вытеснения реестр рос бы вечно.
type Janitor struct {
	registry *Registry
	logger   *log.Entry
	interval time.Duration
	ttl      time.Duration
}

// NewJanitor создаёт воркер очистки сессий.
func NewJanitor(registry *Registry, options ...JanitorOption) *Janitor {
	opts := JanitorOptions{
		Interval: defaultSweepInterval,
		TTL:      defaultSessionTTL,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "session-janitor")
	}

	if opts.Interval <= 0 {
		opts.Interval = defaultSweepInterval
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultSessionTTL
	}

	return &Janitor{
		registry: registry,
		logger:   logger,
		interval: opts.Interval,
		ttl:      opts.TTL,
	}
}

// Run запускает периодическую очистку до отмены ctx.
func (j *Janitor) Run(ctx context.Context) {
	if j.registry == nil {
		j.logger.Warn("session janitor is disabled: registry is nil")
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(time.Now().UTC())
		}
	}
}

func (j *Janitor) sweep(now time.Time) {
	deleted := j.registry.DeleteIdle(now.Add(-j.ttl))
	sessionSweepLastDeleted.Set(float64(deleted))
	activeSessions.Set(float64(j.registry.Len()))
	if deleted > 0 {
		sessionSweepDeletedTotal.Add(float64(deleted))
		j.logger.WithField("deleted", deleted).Info("idle sessions swept")
	}
}
