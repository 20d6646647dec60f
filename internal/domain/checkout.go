package domain

// ShippingAddress — адрес доставки, собранный из полей формы оформления.
// Тот же тип используется и для платёжного адреса.
type ShippingAddress struct {
	// FullName — имя и фамилия, соединённые пробелом.
	FullName string `json:"fullName"`
	// Street — улица и номер дома одной строкой.
	Street string `json:"street"`
	City   string `json:"city"`
	// Zip — почтовый индекс в национальном формате.
	Zip string `json:"zip"`
	// Country — код страны из справочника витрины.
	Country string `json:"country"`
	// Phone передаётся, если покупатель его указал.
	Phone string `json:"phone,omitempty"`
}

// OrderItemInput — одна позиция исходящего заказа, 1:1 из CartLine.
type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest — нормализованное тело запроса на создание заказа.
type OrderRequest struct {
	Items           []OrderItemInput `json:"items"`
	ShippingAddress ShippingAddress  `json:"shippingAddress"`
	// BillingAddress по умолчанию совпадает с адресом доставки;
	// nil означает «как доставка» и на проводе опускается.
	BillingAddress *ShippingAddress `json:"billingAddress,omitempty"`
	CustomerEmail  string           `json:"customerEmail,omitempty"`
}

// ValidateInvariants проверяет собранный запрос перед отправкой.
func (r *OrderRequest) ValidateInvariants() []error {
	var errs []error

	if len(r.Items) == 0 {
		errs = append(errs, ErrOrderItemsRequired)
	}
	for _, item := range r.Items {
		if item.ProductID == "" {
			errs = append(errs, ErrOrderProductIDRequired)
		}
		if item.Quantity <= 0 {
			errs = append(errs, ErrOrderQtyInvalid)
		}
	}
	if r.ShippingAddress.FullName == "" {
		errs = append(errs, ErrOrderAddressIncomplete)
	}

	return errs
}

// CheckoutSession — успешный результат создания заказа: адрес размещённой
// платёжной сессии, на которую нужно отправить покупателя. Каким способом
// адрес будет показан (полный переход или встроенный виджет) — забота
// внешнего потребителя.
type CheckoutSession struct {
	// CheckoutURL — ссылка на платёжную страницу провайдера.
	CheckoutURL string `json:"checkoutUrl"`
}

// ConfirmationItem — позиция в подтверждении оплаченного заказа.
type ConfirmationItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	AmountTotal int64  `json:"amount_total"`
}

// OrderConfirmation — детали заказа, запрошенные по токену платёжной сессии
// после возврата покупателя со страницы оплаты.
type OrderConfirmation struct {
	ID            string             `json:"id"`
	Status        string             `json:"status,omitempty"`
	CustomerEmail string             `json:"customer_email,omitempty"`
	AmountTotal   int64              `json:"amount_total,omitempty"`
	Currency      string             `json:"currency,omitempty"`
	Items         []ConfirmationItem `json:"items,omitempty"`
}
