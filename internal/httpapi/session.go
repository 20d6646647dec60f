package httpapi

import (
	"context"
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
)

// sessionCookie — cookie с идентификатором покупательской сессии.
const sessionCookie = "storefront_session"

type contextKey string

const storeKey contextKey = "cart-store"

// sessionMiddleware привязывает запрос к корзине сессии. Без cookie
// создаётся новая сессия; неизвестный идентификатор получает свежую
// пустую корзину под тем же значением.
func (h *Handler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var store *cart.Store

		cookie, err := r.Cookie(sessionCookie)
		if err == nil && cookie.Value != "" {
			store = h.registry.GetOrCreate(cookie.Value)
		} else {
			var id string
			id, store = h.registry.NewSession()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), storeKey, store)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionStore достаёт корзину сессии из контекста запроса.
func sessionStore(r *http.Request) *cart.Store {
	store, _ := r.Context().Value(storeKey).(*cart.Store)
	return store
}
