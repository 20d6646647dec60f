package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry сопоставляет идентификатор покупательской сессии с её Store.
// Каждая сессия владеет ровно одной корзиной; общего состояния между
// сессиями нет.
type Registry struct {
	mu     sync.RWMutex
	stores map[string]*Store
}

// NewRegistry возвращает пустой реестр сессий.
func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[string]*Store),
	}
}

// NewSession создаёт новую сессию с пустой корзиной и возвращает её ID.
func (r *Registry) NewSession() (string, *Store) {
	id := uuid.NewString()
	store := NewStore()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[id] = store
	return id, store
}

// Get возвращает Store сессии, если она известна.
func (r *Registry) Get(sessionID string) (*Store, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	store, ok := r.stores[sessionID]
	return store, ok
}

// GetOrCreate возвращает Store сессии, при необходимости создавая его.
// Неизвестный (например, протухший) идентификатор получает свежую пустую
// корзину под тем же ID — для покупателя это выглядит как очистившаяся
// после долгого простоя корзина, а не как ошибка.
func (r *Registry) GetOrCreate(sessionID string) *Store {
	r.mu.RLock()
	store, ok := r.stores[sessionID]
	r.mu.RUnlock()
	if ok {
		return store
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if store, ok := r.stores[sessionID]; ok {
		return store
	}
	store = NewStore()
	r.stores[sessionID] = store
	return store
}

// Len возвращает количество живых сессий.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stores)
}

// DeleteIdle удаляет сессии, к которым не обращались с момента before.
// Сессию с оформлением в полёте не трогаем. Возвращает число удалённых.
func (r *Registry) DeleteIdle(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, store := range r.stores {
		store.mu.RLock()
		idle := store.lastAccess.Before(before) && !store.checkoutInFlight
		store.mu.RUnlock()
		if idle {
			delete(r.stores, id)
			deleted++
		}
	}
	return deleted
}
