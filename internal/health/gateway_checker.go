package health

import (
	"context"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const gatewayCheckTimeout = 3 * time.Second

// GatewayChecker проверяет доступность каталога бэкенда магазина:
// без него витрина может показать корзину, но не товары и не оформление.
type GatewayChecker struct {
	products domain.ProductGateway
}

// NewGatewayChecker создаёт проверку каталога.
func NewGatewayChecker(products domain.ProductGateway) *GatewayChecker {
	return &GatewayChecker{products: products}
}

// Check запрашивает каталог с коротким таймаутом. Недоступный бэкенд —
// degraded, а не unhealthy: сам процесс витрины жив и корзины целы.
func (c *GatewayChecker) Check() Check {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), gatewayCheckTimeout)
	defer cancel()

	_, err := c.products.ListProducts(ctx)
	duration := time.Since(start)

	if err != nil {
		return Check{
			Name:       "shop-api",
			Status:     StatusDegraded,
			Message:    err.Error(),
			DurationMs: duration.Milliseconds(),
		}
	}

	return Check{
		Name:       "shop-api",
		Status:     StatusHealthy,
		DurationMs: duration.Milliseconds(),
	}
}
