// Package cart хранит корзины активных покупательских сессий в памяти.
// Корзина живёт ровно столько, сколько сессия: никакого внешнего
// хранилища у неё нет.
package cart

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Store — потокобезопасная обёртка над domain.Cart одной сессии.
// Это единственная санкционированная поверхность мутаций: позиции нельзя
// менять в обход операций ниже, поэтому агрегаты не могут разойтись
// со списком позиций.
type Store struct {
	mu   sync.RWMutex
	cart *domain.Cart

	// checkoutInFlight блокирует повторную отправку заказа, пока
	// предыдущая ещё выполняется.
	checkoutInFlight bool

	// lastAccess нужен janitor-у для вытеснения брошенных сессий.
	lastAccess time.Time
}

// NewStore возвращает хранилище с пустой корзиной.
func NewStore() *Store {
	return &Store{
		cart:       domain.NewCart(),
		lastAccess: time.Now().UTC(),
	}
}

// Snapshot — согласованный срез состояния корзины для чтения.
// Агрегаты пересчитаны из позиций под одной блокировкой.
type Snapshot struct {
	Lines      []domain.CartLine
	TotalItems int
	TotalPrice int64
}

// AddItem добавляет товар: существующая позиция получает +1 к количеству,
// новая создаётся в конце списка с количеством 1.
func (s *Store) AddItem(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.cart.AddItem(product)
}

// RemoveItem убирает позицию товара; отсутствие позиции не ошибка.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.cart.RemoveItem(productID)
}

// SetQuantity задаёт количество существующей позиции; qty <= 0 удаляет её.
func (s *Store) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.cart.SetQuantity(productID, quantity)
}

// Clear опустошает корзину.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.cart.Clear()
}

// Snapshot возвращает копию позиций и агрегаты на момент вызова.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return Snapshot{
		Lines:      s.cart.Lines(),
		TotalItems: s.cart.TotalItems(),
		TotalPrice: s.cart.TotalPrice(),
	}
}

// IsEmpty сообщает, пуста ли корзина.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.IsEmpty()
}

// BeginCheckout захватывает флаг отправки. Возвращает ErrCheckoutInFlight,
// если оформление этой сессии уже идёт: два параллельных сабмита не должны
// создать два заказа.
func (s *Store) BeginCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkoutInFlight {
		return domain.ErrCheckoutInFlight
	}
	s.checkoutInFlight = true
	return nil
}

// EndCheckout снимает флаг отправки независимо от исхода.
func (s *Store) EndCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkoutInFlight = false
}

// LastAccess возвращает время последнего обращения к корзине.
func (s *Store) LastAccess() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAccess
}

func (s *Store) touch() {
	s.lastAccess = time.Now().UTC()
}
