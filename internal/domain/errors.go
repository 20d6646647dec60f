package domain

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// Ошибка отсутствующего идентификатора товара.
	ErrProductIDRequired = errors.New("product id is required")
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrProductPriceNegative = errors.New("product price must be non-negative")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrOrderItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отсутствующего идентификатора товара в позиции заказа.
	ErrOrderProductIDRequired = errors.New("order item product id is required")
	// Ошибка некорректного количества в позиции заказа (<= 0).
	ErrOrderQtyInvalid = errors.New("order item quantity must be greater than zero")
	// Ошибка неполного адреса доставки в заказе.
	ErrOrderAddressIncomplete = errors.New("order shipping address is incomplete")
	// ErrProductNotFound возвращается, если товара нет в каталоге бэкенда.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ по токену сессии не найден.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCartEmpty — нарушение предусловия оформления: корзина пуста.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrCheckoutInFlight — оформление для этой сессии уже выполняется.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
	// ErrCheckoutURLMissing — бэкенд ответил успехом без ссылки на оплату.
	ErrCheckoutURLMissing = errors.New("order response is missing checkout url")
)

// APIError — нормализованная ошибка внешнего API каталога/заказов.
// Message готов к показу покупателю: либо поле message из тела ответа,
// либо запасной текст вызывающей стороны.
type APIError struct {
	// Status — HTTP-статус ответа; 0 для ошибок транспортного уровня.
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// ValidationError агрегирует все проваленные правила валидации формы:
// поле -> готовое к показу сообщение.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed for fields %v", keys)
}

// IsNotFound проверяет, является ли ошибка отсутствием товара или заказа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrOrderNotFound)
}

// AsValidation извлекает ValidationError, если она есть в цепочке.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsAPIError извлекает APIError, если она есть в цепочке.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
