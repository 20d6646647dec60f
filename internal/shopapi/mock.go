package shopapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// MockBackend — конфигурируемая заглушка бэкенда магазина для локальной
// разработки и тестов. Каталог хранится в памяти, создание заказа выдаёт
// платёжную сессию с токеном, по которому потом доступно подтверждение.
type MockBackend struct {
	mu            sync.Mutex
	products      []domain.Product
	confirmations map[string]domain.OrderConfirmation

	// CheckoutBaseURL — префикс ссылки платёжной сессии.
	CheckoutBaseURL string

	// Инъекции ошибок для тестов; nil означает успешный сценарий.
	ListErr   error
	GetErr    error
	CreateErr error

	ListCalls   int
	GetCalls    int
	CreateCalls int
}

// NewMockBackend возвращает mock с каталогом магазина по умолчанию.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		products:        seedProducts(),
		confirmations:   make(map[string]domain.OrderConfirmation),
		CheckoutBaseURL: "https://pay.example.com/session/",
	}
}

// SetProducts заменяет каталог заглушки.
func (m *MockBackend) SetProducts(products []domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
}

// ListProducts возвращает каталог целиком.
func (m *MockBackend) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

// GetProduct возвращает товар или ErrProductNotFound.
func (m *MockBackend) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return domain.Product{}, m.GetErr
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// CreateOrder проверяет запрос, создаёт подтверждение и возвращает ссылку
// на «платёжную» сессию с токеном в пути.
func (m *MockBackend) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return domain.CheckoutSession{}, m.CreateErr
	}
	if errs := req.ValidateInvariants(); len(errs) > 0 {
		return domain.CheckoutSession{}, &domain.APIError{Status: 400, Message: errs[0].Error()}
	}

	var total int64
	items := make([]domain.ConfirmationItem, 0, len(req.Items))
	for _, item := range req.Items {
		price := m.priceOf(item.ProductID)
		if price < 0 {
			return domain.CheckoutSession{}, &domain.APIError{Status: 400, Message: fmt.Sprintf("unknown product %s", item.ProductID)}
		}
		amount := price * int64(item.Quantity)
		total += amount
		items = append(items, domain.ConfirmationItem{
			ID:          uuid.NewString(),
			Description: m.nameOf(item.ProductID),
			Quantity:    item.Quantity,
			AmountTotal: amount,
		})
	}

	token := uuid.NewString()
	m.confirmations[token] = domain.OrderConfirmation{
		ID:            uuid.NewString(),
		Status:        "paid",
		CustomerEmail: req.CustomerEmail,
		AmountTotal:   total,
		Currency:      "CZK",
		Items:         items,
	}

	return domain.CheckoutSession{
		CheckoutURL: m.CheckoutBaseURL + token + "?customer_session_token=" + token,
	}, nil
}

// GetOrderBySession возвращает подтверждение по токену или ErrOrderNotFound.
func (m *MockBackend) GetOrderBySession(ctx context.Context, token string) (domain.OrderConfirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	confirmation, ok := m.confirmations[token]
	if !ok {
		return domain.OrderConfirmation{}, domain.ErrOrderNotFound
	}
	return confirmation, nil
}

func (m *MockBackend) priceOf(productID string) int64 {
	for _, p := range m.products {
		if p.ID == productID {
			return p.Price
		}
	}
	return -1
}

func (m *MockBackend) nameOf(productID string) string {
	for _, p := range m.products {
		if p.ID == productID {
			return p.Name
		}
	}
	return ""
}

// seedProducts — стартовый каталог заглушки: витрина услуг чешского магазина.
func seedProducts() []domain.Product {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Product{
		{
			ID:               "d2719f0a-44c1-4f5b-9f0d-6a1f6d9c0a01",
			Name:             "Profesionální Úklidové Služby",
			Price:            1500,
			ShortDescription: "Kompletní úklidové služby pro domácnosti i firmy",
			Description:      "Pravidelný i jednorázový úklid, mytí oken, čištění koberců a další specializované služby.",
			ImageURL:         "https://images.pexels.com/photos/4239091/pexels-photo-4239091.jpeg",
			Categories:       domain.CategorySet{"služby"},
			InStock:          true,
			CreatedAt:        created,
		},
		{
			ID:               "58a7f6de-0b3c-41f8-8cf0-2d8f2a4be102",
			Name:             "IT Konzultace",
			Price:            2500,
			ShortDescription: "Expertní poradenství v oblasti informačních technologií",
			Description:      "Výběr hardware a software, zabezpečení sítě, cloudová řešení a implementace nových technologií.",
			ImageURL:         "https://images.pexels.com/photos/1181263/pexels-photo-1181263.jpeg",
			Categories:       domain.CategorySet{"konzultace"},
			InStock:          true,
			CreatedAt:        created,
		},
		{
			ID:               "9c0b1c4e-7a52-4d33-b1e4-f00ad94c7b03",
			Name:             "Zahradnické Práce",
			Price:            950,
			ShortDescription: "Kompletní péče o vaši zahradu či firemní zeleň",
			Description:      "Sekání trávy, stříhání keřů, výsadba rostlin a odborné ošetření stromů.",
			ImageURL:         "https://images.pexels.com/photos/4505171/pexels-photo-4505171.jpeg",
			Categories:       domain.CategorySet{"služby"},
			InStock:          true,
			CreatedAt:        created,
		},
	}
}

var (
	_ domain.ProductGateway = (*MockBackend)(nil)
	_ domain.OrderGateway   = (*MockBackend)(nil)
)
