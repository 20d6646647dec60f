package domain

import (
	"encoding/json"
	"time"
)

// Product описывает товар витрины. Товар приходит из внешнего каталога
// и на стороне витрины никогда не изменяется.
type Product struct {
	// ID — непрозрачный уникальный идентификатор товара в бэкенде.
	ID string `json:"id"`
	// Name — отображаемое название.
	Name string `json:"name"`
	// Price — цена за единицу в минимальных отображаемых единицах валюты
	// (для CZK — целые кроны). Не может быть отрицательной.
	Price int64 `json:"price"`
	// Description — полное описание товара.
	Description string `json:"description"`
	// ShortDescription — необязательное краткое описание для карточек.
	ShortDescription string `json:"short_description,omitempty"`
	// ImageURL — необязательная ссылка на основное изображение.
	ImageURL string `json:"image_url,omitempty"`
	// GalleryURLs — необязательные дополнительные изображения.
	GalleryURLs []string `json:"gallery_urls,omitempty"`
	// Categories — нормализованный набор меток категорий (см. CategorySet).
	Categories CategorySet `json:"category,omitempty"`
	// Adult помечает товары с возрастным ограничением.
	Adult bool `json:"adult,omitempty"`
	// FulfillmentContent — необязательное содержимое цифровой доставки.
	FulfillmentContent string `json:"fulfillment_content,omitempty"`
	// InStock — признак доступности, ограничение количества не задаёт.
	InStock bool `json:"in_stock,omitempty"`
	// CreatedAt — необязательное время создания записи в каталоге.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// CategorySet — набор меток категорий товара. Бэкенд в разных ревизиях
// отдаёт поле category то строкой, то массивом строк; нормализуем обе
// формы на границе десериализации, чтобы дальше работать с одной.
type CategorySet []string

// UnmarshalJSON принимает строку, массив строк или null.
func (c *CategorySet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*c = nil
		} else {
			*c = CategorySet{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}

	out := many[:0]
	for _, label := range many {
		if label != "" {
			out = append(out, label)
		}
	}
	if len(out) == 0 {
		*c = nil
		return nil
	}
	*c = CategorySet(out)
	return nil
}

// Contains сообщает, входит ли метка в набор.
func (c CategorySet) Contains(label string) bool {
	for _, l := range c {
		if l == label {
			return true
		}
	}
	return false
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.ID == "" {
		errs = append(errs, ErrProductIDRequired)
	}
	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.Price < 0 {
		errs = append(errs, ErrProductPriceNegative)
	}

	return errs
}
