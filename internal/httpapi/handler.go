// Package httpapi — HTTP-поверхность витрины: каталог, корзина сессии
// и оформление заказа.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Handler обрабатывает запросы витрины.
type Handler struct {
	registry *cart.Registry
	catalog  *catalog.Service
	builder  *checkout.Builder
	products domain.ProductGateway
	orders   domain.OrderGateway
	metrics  *metrics.StorefrontMetrics
	logger   *log.Entry
}

// NewHandler собирает обработчик из зависимостей. metrics может быть nil —
// тогда счётчики не пишутся (удобно в тестах).
func NewHandler(
	registry *cart.Registry,
	catalogSvc *catalog.Service,
	builder *checkout.Builder,
	products domain.ProductGateway,
	orders domain.OrderGateway,
	m *metrics.StorefrontMetrics,
	logger *log.Entry,
) *Handler {
	if logger == nil {
		logger = log.WithField("component", "httpapi")
	}
	return &Handler{
		registry: registry,
		catalog:  catalogSvc,
		builder:  builder,
		products: products,
		orders:   orders,
		metrics:  m,
		logger:   logger,
	}
}

// ListProducts отдаёт каталог с фильтром по категории и сортировкой по цене.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts := catalog.ListOptions{
		Category: r.URL.Query().Get("category"),
		Sort:     catalog.ParseSort(r.URL.Query().Get("sort")),
	}

	listing, err := h.catalog.List(r.Context(), opts)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// GetProduct отдаёт один товар; 404 бэкенда отличается от прочих сбоев.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// GetCart отдаёт позиции корзины и агрегаты.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartResponse(sessionStore(r).Snapshot()))
}

// AddItem разрешает товар через каталог и добавляет его в корзину.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "productId is required")
		return
	}

	product, err := h.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	store := sessionStore(r)
	store.AddItem(product)
	if h.metrics != nil {
		h.metrics.RecordCartAdd()
	}
	writeJSON(w, http.StatusOK, cartResponse(store.Snapshot()))
}

// SetQuantity меняет количество позиции; quantity <= 0 удаляет её,
// отсутствующая позиция — no-op.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	store := sessionStore(r)
	store.SetQuantity(chi.URLParam(r, "productID"), req.Quantity)
	writeJSON(w, http.StatusOK, cartResponse(store.Snapshot()))
}

// RemoveItem убирает позицию из корзины.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store := sessionStore(r)
	store.RemoveItem(chi.URLParam(r, "productID"))
	if h.metrics != nil {
		h.metrics.RecordCartRemove()
	}
	writeJSON(w, http.StatusOK, cartResponse(store.Snapshot()))
}

// ClearCart опустошает корзину сессии.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := sessionStore(r)
	store.Clear()
	if h.metrics != nil {
		h.metrics.RecordCartClear()
	}
	writeJSON(w, http.StatusOK, cartResponse(store.Snapshot()))
}

// Checkout валидирует поля формы, отправляет заказ и возвращает ссылку
// на платёжную сессию. Корзина очищается только после подтверждённого
// успеха; любой сбой оставляет её нетронутой.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var fields checkout.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if fields.Country == "" {
		fields.Country = checkout.DefaultCountry
	}

	store := sessionStore(r)
	if store.IsEmpty() {
		// Аналог редиректа SPA с пустой страницы оформления обратно в каталог.
		writeError(w, http.StatusConflict, "cart_empty", domain.ErrCartEmpty.Error())
		return
	}

	if err := store.BeginCheckout(); err != nil {
		writeError(w, http.StatusConflict, "checkout_in_flight", err.Error())
		return
	}
	defer store.EndCheckout()

	if h.metrics != nil {
		h.metrics.RecordCheckoutStarted()
		defer h.metrics.RecordCheckoutFinished()
	}

	started := time.Now()
	session, err := h.builder.Submit(r.Context(), store.Snapshot(), fields)
	if err != nil {
		h.recordCheckoutError(err)
		h.writeDomainError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordCheckoutSucceeded()
		h.metrics.RecordOrderSubmitDuration(time.Since(started))
	}

	// Подтверждённый успех — единственная точка очистки корзины.
	store.Clear()
	writeJSON(w, http.StatusOK, CheckoutResponse{CheckoutURL: session.CheckoutURL})
}

// OrderBySession отдаёт подтверждение заказа по токену платёжной сессии.
func (h *Handler) OrderBySession(w http.ResponseWriter, r *http.Request) {
	confirmation, err := h.orders.GetOrderBySession(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmation)
}

// Countries отдаёт справочник стран для селектора формы.
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, checkout.Countries)
}

func (h *Handler) recordCheckoutError(err error) {
	if h.metrics == nil {
		return
	}
	if _, ok := domain.AsValidation(err); ok {
		h.metrics.RecordCheckoutRejected()
		return
	}
	h.metrics.RecordCheckoutFailed()
}

// writeDomainError переводит ошибки domain в HTTP-статусы витрины.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_failed",
			Message: "please fix the highlighted fields",
			Fields:  ve.Fields,
		})
		return
	}
	if domain.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	switch err {
	case domain.ErrCartEmpty:
		writeError(w, http.StatusConflict, "cart_empty", err.Error())
		return
	case domain.ErrCheckoutInFlight:
		writeError(w, http.StatusConflict, "checkout_in_flight", err.Error())
		return
	}
	if ae, ok := domain.AsAPIError(err); ok {
		writeError(w, http.StatusBadGateway, "backend_error", ae.Message)
		return
	}

	h.logger.WithError(err).Error("необработанная ошибка запроса")
	writeError(w, http.StatusBadGateway, "backend_error", err.Error())
}

func cartResponse(snap cart.Snapshot) CartResponse {
	lines := make([]CartLineDTO, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		lines = append(lines, CartLineDTO{
			Product:   line.Product,
			Quantity:  line.Quantity,
			LineTotal: line.Product.Price * int64(line.Quantity),
		})
	}
	return CartResponse{
		Lines:      lines,
		TotalItems: snap.TotalItems,
		TotalPrice: snap.TotalPrice,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
