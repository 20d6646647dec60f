package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/httpapi"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// Config описывает минимальные настройки запуска витрины.
type Config struct {
	// HTTPAddr — адрес API витрины.
	HTTPAddr string
	// MetricsAddr — адрес side-сервера метрик и health checks.
	MetricsAddr string
	// ShopAPIURL — базовый адрес бэкенда магазина; пусто — встроенная заглушка.
	ShopAPIURL string
	// SessionTTL — время простоя, после которого корзина сессии вытесняется.
	SessionTTL time.Duration
}

// DefaultConfig возвращает базовые адреса витрины и метрик.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		SessionTTL:  2 * time.Hour,
	}
}

// Run собирает зависимости и держит оба HTTP-сервера до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	deps := NewDependencies(cfg, logger)

	handler := httpapi.NewHandler(
		deps.Registry,
		deps.Catalog,
		deps.Builder,
		deps.Products,
		deps.Orders,
		deps.Metrics,
		logger.WithField("layer", "http"),
	)
	router := httpapi.NewRouter(handler)

	healthHandler := healthcheck.NewHandler(version.String())
	healthHandler.RegisterChecker("shop-api", healthcheck.NewGatewayChecker(deps.Products))

	metricsSrv := startMetricsServer(cfg.MetricsAddr, logger, healthHandler)

	// Вытеснение брошенных сессий, пока сервис жив.
	janitor := cart.NewJanitor(deps.Registry,
		cart.WithLogger(logger.WithField("component", "session-janitor")),
		cart.WithTTL(cfg.SessionTTL),
	)
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go janitor.Run(janitorCtx)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("витрина слушает %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(srv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает side HTTP-сервер с /metrics и health checks.
func startMetricsServer(addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	return srv
}

func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("http shutdown failed")
	}
}
