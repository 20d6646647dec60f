// Package shopapi реализует клиента REST API магазина: каталог товаров,
// создание заказов и подтверждения оплаченных заказов.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// Client ходит в бэкенд магазина по HTTP. Все неуспехи нормализуются
// в ошибки domain: наружу не уходит ни одного сырого сбоя транспорта.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Entry
	metrics    *metrics.StorefrontMetrics
}

// NewClient создаёт клиента для baseURL (например, https://shop.example.com).
// httpClient можно передать nil — будет использован клиент с разумным таймаутом.
func NewClient(baseURL string, httpClient *http.Client, logger *log.Entry) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = log.WithField("component", "shopapi")
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// WithMetrics включает запись длительностей запросов к бэкенду.
func (c *Client) WithMetrics(m *metrics.StorefrontMetrics) *Client {
	c.metrics = m
	return c
}

// observe фиксирует длительность операции, если метрики подключены.
func (c *Client) observe(operation string, started time.Time) {
	if c.metrics != nil {
		c.metrics.RecordBackendDuration(operation, time.Since(started))
	}
}

// ListProducts возвращает весь каталог.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	defer c.observe("list_products", time.Now())

	var products []domain.Product
	if err := c.getJSON(ctx, "/api/products", &products, "failed to fetch products", nil); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct возвращает товар или ErrProductNotFound для 404.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	defer c.observe("get_product", time.Now())

	var product domain.Product
	err := c.getJSON(ctx, "/api/products/"+url.PathEscape(id), &product,
		fmt.Sprintf("failed to fetch product with id %s", id), domain.ErrProductNotFound)
	if err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// CreateOrder отправляет заказ и возвращает платёжную сессию.
// Никаких повторных попыток: идемпотентность создания заказа бэкенд
// не гарантирует.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.CheckoutSession, error) {
	defer c.observe("create_order", time.Now())

	body, err := json.Marshal(req)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).Warn("order request failed at transport level")
		return domain.CheckoutSession{}, &domain.APIError{Message: "failed to create order"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.CheckoutSession{}, c.apiError(resp, "failed to create order")
	}

	var session domain.CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return domain.CheckoutSession{}, &domain.APIError{Status: resp.StatusCode, Message: "failed to create order"}
	}
	return session, nil
}

// GetOrderBySession возвращает подтверждение заказа по токену платёжной сессии.
func (c *Client) GetOrderBySession(ctx context.Context, token string) (domain.OrderConfirmation, error) {
	defer c.observe("get_order", time.Now())

	var confirmation domain.OrderConfirmation
	err := c.getJSON(ctx, "/api/orders/by-session/"+url.PathEscape(token), &confirmation,
		"failed to fetch order details", domain.ErrOrderNotFound)
	if err != nil {
		return domain.OrderConfirmation{}, err
	}
	return confirmation, nil
}

// getJSON выполняет GET и декодирует успешный ответ в out.
// notFound, если он задан, возвращается вместо APIError для статуса 404.
func (c *Client) getJSON(ctx context.Context, path string, out any, fallback string, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("request failed at transport level")
		return &domain.APIError{Message: fallback}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && notFound != nil {
		return notFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp, fallback)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.APIError{Status: resp.StatusCode, Message: fallback}
	}
	return nil
}

// apiError достаёт message из JSON-тела ответа; без него — запасной текст.
func (c *Client) apiError(resp *http.Response, fallback string) *domain.APIError {
	message := fallback

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			message = payload.Message
		}
	}

	return &domain.APIError{Status: resp.StatusCode, Message: message}
}

var (
	_ domain.ProductGateway = (*Client)(nil)
	_ domain.OrderGateway   = (*Client)(nil)
)
