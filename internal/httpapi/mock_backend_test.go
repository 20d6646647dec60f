package httpapi

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// mockBackend — настраиваемый шлюз магазина для тестов обработчиков:
// фиксированный каталог, счётчики вызовов и запоминание последнего заказа.
type mockBackend struct {
	mu       sync.Mutex
	products []domain.Product

	createErr   error
	createCalls int
	lastOrder   domain.OrderRequest
	lastToken   string

	confirmations map[string]domain.OrderConfirmation
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		products: []domain.Product{
			{ID: "p-uklid", Name: "Úklid", Price: 1500, Categories: domain.CategorySet{"služby"}, InStock: true},
			{ID: "p-konzultace", Name: "Konzultace", Price: 2500, Categories: domain.CategorySet{"konzultace"}, InStock: true},
			{ID: "p-zahrada", Name: "Zahrada", Price: 950, Categories: domain.CategorySet{"služby"}, InStock: true},
		},
		confirmations: make(map[string]domain.OrderConfirmation),
	}
}

func (m *mockBackend) productID(i int) string {
	return m.products[i].ID
}

func (m *mockBackend) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *mockBackend) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (m *mockBackend) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	m.lastOrder = req
	if m.createErr != nil {
		return domain.CheckoutSession{}, m.createErr
	}

	var total int64
	for _, item := range req.Items {
		for _, p := range m.products {
			if p.ID == item.ProductID {
				total += p.Price * int64(item.Quantity)
			}
		}
	}

	token := uuid.NewString()
	m.lastToken = token
	m.confirmations[token] = domain.OrderConfirmation{
		ID:            uuid.NewString(),
		Status:        "paid",
		CustomerEmail: req.CustomerEmail,
		AmountTotal:   total,
		Currency:      "CZK",
	}
	return domain.CheckoutSession{
		CheckoutURL: "https://pay.example.com/session/" + token + "?customer_session_token=" + token,
	}, nil
}

func (m *mockBackend) GetOrderBySession(ctx context.Context, token string) (domain.OrderConfirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	confirmation, ok := m.confirmations[token]
	if !ok {
		return domain.OrderConfirmation{}, domain.ErrOrderNotFound
	}
	return confirmation, nil
}

var (
	_ domain.ProductGateway = (*mockBackend)(nil)
	_ domain.OrderGateway   = (*mockBackend)(nil)
)
