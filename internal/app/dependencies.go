package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/shopapi"
)

// Dependencies содержит все зависимости приложения. Реестр корзин создаётся
// здесь один раз и передаётся дальше по ссылке: общего неявного состояния
// между слоями нет.
type Dependencies struct {
	Registry *cart.Registry
	Catalog  *catalog.Service
	Builder  *checkout.Builder
	Products domain.ProductGateway
	Orders   domain.OrderGateway
	Metrics  *metrics.StorefrontMetrics
	Logger   *log.Entry
}

// NewDependencies создаёт и связывает зависимости приложения.
// Без адреса бэкенда витрина работает поверх встроенной заглушки магазина —
// удобно для локальной разработки и демо.
func NewDependencies(cfg Config, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	storefrontMetrics := metrics.NewStorefrontMetrics()

	var products domain.ProductGateway
	var orders domain.OrderGateway

	if cfg.ShopAPIURL == "" {
		logger.Warn("SHOP_API_URL не задан, используем встроенную заглушку магазина")
		mock := shopapi.NewMockBackend()
		products, orders = mock, mock
	} else {
		client := shopapi.NewClient(cfg.ShopAPIURL, nil, logger.WithField("component", "shopapi")).
			WithMetrics(storefrontMetrics)
		products, orders = client, client
	}

	return &Dependencies{
		Registry: cart.NewRegistry(),
		Catalog:  catalog.NewService(products, logger.WithField("component", "catalog")),
		Builder:  checkout.NewBuilder(orders, logger.WithField("component", "checkout")),
		Products: products,
		Orders:   orders,
		Metrics:  storefrontMetrics,
		Logger:   logger,
	}
}
