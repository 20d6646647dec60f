package checkout

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Builder превращает снимок корзины и проверенные поля формы в OrderRequest,
// отправляет его в API заказов и разбирает ответ.
type Builder struct {
	orders domain.OrderGateway
	logger *log.Entry
}

// NewBuilder создаёт Builder поверх шлюза заказов.
func NewBuilder(orders domain.OrderGateway, logger *log.Entry) *Builder {
	if logger == nil {
		logger = log.WithField("component", "checkout")
	}
	return &Builder{orders: orders, logger: logger}
}

// BuildRequest собирает OrderRequest из снимка корзины и полей формы.
// Полное имя — имя и фамилия через пробел; платёжный адрес совпадает
// с адресом доставки.
func BuildRequest(snap cart.Snapshot, f Fields) domain.OrderRequest {
	items := make([]domain.OrderItemInput, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, domain.OrderItemInput{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		})
	}

	fullName := strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName)

	return domain.OrderRequest{
		Items: items,
		ShippingAddress: domain.ShippingAddress{
			FullName: fullName,
			Street:   strings.TrimSpace(f.Street),
			City:     strings.TrimSpace(f.City),
			Zip:      strings.TrimSpace(f.Zip),
			Country:  f.Country,
			Phone:    strings.ReplaceAll(f.Phone, " ", ""),
		},
		CustomerEmail: strings.TrimSpace(f.Email),
	}
}

// Submit выполняет оформление заказа.
//
// Предусловия: корзина непуста и все поля формы валидны. Нарушение
// любого из них возвращает ошибку без единого сетевого вызова.
// Корзину Submit не трогает: очистить её после успеха должен вызывающий,
// получив платёжную сессию.
func (b *Builder) Submit(ctx context.Context, snap cart.Snapshot, f Fields) (domain.CheckoutSession, error) {
	if len(snap.Lines) == 0 {
		return domain.CheckoutSession{}, domain.ErrCartEmpty
	}

	if ok, fieldErrs := ValidateAll(f); !ok {
		return domain.CheckoutSession{}, &domain.ValidationError{Fields: fieldErrs}
	}

	req := BuildRequest(snap, f)
	if errs := req.ValidateInvariants(); len(errs) > 0 {
		// Сюда попадаем только при рассинхроне правил формы и инвариантов
		// заказа; наружу отдаём первую причину.
		return domain.CheckoutSession{}, errs[0]
	}

	session, err := b.orders.CreateOrder(ctx, req)
	if err != nil {
		b.logger.WithError(err).Warn("order submission failed")
		return domain.CheckoutSession{}, err
	}
	if session.CheckoutURL == "" {
		return domain.CheckoutSession{}, domain.ErrCheckoutURLMissing
	}

	b.logger.WithFields(log.Fields{
		"items":       len(req.Items),
		"total_price": snap.TotalPrice,
	}).Info("заказ отправлен, получена платёжная сессия")
	return session, nil
}
