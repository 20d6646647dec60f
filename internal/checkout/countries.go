// Package checkout валидирует поля формы оформления и превращает корзину
// в запрос на создание заказа для внешнего API магазина.
package checkout

// Country — элемент справочника стран для селектора на форме.
type Country struct {
	// Code — двухбуквенный код страны.
	Code string `json:"code"`
	// Name — отображаемое название на языке магазина.
	Name string `json:"name"`
}

// DefaultCountry — код, выбранный в форме по умолчанию. Благодаря дефолту
// поле страны никогда не остаётся пустым.
const DefaultCountry = "CZ"

// Countries — фиксированный справочник стран доставки.
// Порядок — как в селекторе магазина: домашний рынок первым.
var Countries = []Country{
	{Code: "CZ", Name: "Česká republika"},
	{Code: "SK", Name: "Slovensko"},
	{Code: "DE", Name: "Německo"},
	{Code: "AT", Name: "Rakousko"},
	{Code: "PL", Name: "Polsko"},
	{Code: "HU", Name: "Maďarsko"},
	{Code: "FR", Name: "Francie"},
	{Code: "GB", Name: "Velká Británie"},
}

// strictZipCountries — страны, для которых индекс проверяется строго
// по национальному формату NNN NN / NNNNN.
var strictZipCountries = map[string]bool{
	"CZ": true,
	"SK": true,
}

// KnownCountry сообщает, есть ли код в справочнике.
func KnownCountry(code string) bool {
	for _, c := range Countries {
		if c.Code == code {
			return true
		}
	}
	return false
}
