package domain

import "context"

// ProductGateway описывает чтение каталога из внешнего бэкенда магазина.
type ProductGateway interface {
	// ListProducts возвращает весь каталог в порядке, выбранном бэкендом.
	ListProducts(ctx context.Context) ([]Product, error)
	// GetProduct возвращает товар или ErrProductNotFound, если его нет.
	GetProduct(ctx context.Context, id string) (Product, error)
}

// OrderGateway описывает создание заказа и чтение подтверждения оплаты.
type OrderGateway interface {
	// CreateOrder отправляет заказ и возвращает платёжную сессию провайдера.
	// Повторных попыток не делает: без идемпотентности на стороне бэкенда
	// ретрай рискует создать дубликат заказа.
	CreateOrder(ctx context.Context, req OrderRequest) (CheckoutSession, error)
	// GetOrderBySession возвращает подтверждение по токену платёжной сессии
	// или ErrOrderNotFound.
	GetOrderBySession(ctx context.Context, token string) (OrderConfirmation, error)
}
