package httpapi

import (
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// AddItemRequest — тело запроса на добавление товара в корзину.
type AddItemRequest struct {
	ProductID string `json:"productId"`
}

// SetQuantityRequest — тело запроса на изменение количества позиции.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineDTO — позиция корзины в ответе.
type CartLineDTO struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
	// LineTotal — price * quantity, для удобства отображения.
	LineTotal int64 `json:"lineTotal"`
}

// CartResponse — корзина с агрегатами.
type CartResponse struct {
	Lines      []CartLineDTO `json:"lines"`
	TotalItems int           `json:"totalItems"`
	TotalPrice int64         `json:"totalPrice"`
}

// CheckoutResponse — успешное оформление: ссылка на платёжную сессию.
// Перейти по ней полным редиректом или открыть во встроенном виджете —
// решает потребитель.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// ErrorResponse — нормализованная ошибка API витрины.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	// Fields присутствует только у ошибок валидации формы:
	// поле -> готовое к показу сообщение.
	Fields map[string]string `json:"fields,omitempty"`
}
