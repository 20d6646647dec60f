// Package catalog предоставляет выборку каталога с фильтрацией по категории
// и сортировкой по цене поверх шлюза товаров.
package catalog

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Sort задаёт порядок выдачи каталога.
type Sort string

const (
	// SortDefault сохраняет порядок, выбранный бэкендом.
	SortDefault Sort = "default"
	// SortPriceAsc — по цене по возрастанию.
	SortPriceAsc Sort = "price-asc"
	// SortPriceDesc — по цене по убыванию.
	SortPriceDesc Sort = "price-desc"
)

// ParseSort возвращает Sort по строке запроса; неизвестные значения
// трактуются как порядок по умолчанию.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	}
	return SortDefault
}

// ListOptions — параметры выборки каталога.
type ListOptions struct {
	// Category фильтрует по точному совпадению метки; пусто — все товары.
	Category string
	Sort     Sort
}

// Listing — результат выборки: товары и полный список категорий каталога.
type Listing struct {
	Products []domain.Product `json:"products"`
	// Categories — отличные друг от друга метки всего каталога в порядке
	// первого появления, независимо от фильтра.
	Categories []string `json:"categories"`
}

// Service читает каталог из шлюза и применяет фильтр и сортировку.
type Service struct {
	products domain.ProductGateway
	logger   *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(products domain.ProductGateway, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}
	return &Service{products: products, logger: logger}
}

// List возвращает каталог с применёнными opts.
func (s *Service) List(ctx context.Context, opts ListOptions) (Listing, error) {
	all, err := s.products.ListProducts(ctx)
	if err != nil {
		return Listing{}, err
	}

	filtered := all
	if opts.Category != "" {
		filtered = make([]domain.Product, 0, len(all))
		for _, p := range all {
			if p.Categories.Contains(opts.Category) {
				filtered = append(filtered, p)
			}
		}
	}

	sorted := make([]domain.Product, len(filtered))
	copy(sorted, filtered)
	switch opts.Sort {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	}

	return Listing{
		Products:   sorted,
		Categories: distinctCategories(all),
	}, nil
}

// Get возвращает один товар; ErrProductNotFound пробрасывается как есть.
func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	return s.products.GetProduct(ctx, id)
}

// distinctCategories собирает метки в порядке первого появления.
func distinctCategories(products []domain.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		for _, label := range p.Categories {
			if !seen[label] {
				seen[label] = true
				out = append(out, label)
			}
		}
	}
	return out
}
