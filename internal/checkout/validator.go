package checkout

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Fields — введённые покупателем поля формы оформления.
type Fields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

var (
	// Имена и города: буквы (включая диакритику), дефисы и пробелы.
	nameRe = regexp.MustCompile(`^[\p{L} -]+$`)
	// Email: local@domain.tld без пробелов и лишних @.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Телефон после удаления пробелов: необязательный код страны
	// и минимум 9 цифр.
	phoneRe = regexp.MustCompile(`^(\+\d{1,3})?\d{9,}$`)
	// Индекс CZ/SK: пять цифр, опциональный пробел после третьей.
	zipStrictRe = regexp.MustCompile(`^\d{3} ?\d{2}$`)
	digitRe     = regexp.MustCompile(`\d`)
)

// полевые ключи совпадают с именами полей формы на клиенте.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldStreet    = "street"
	FieldCity      = "city"
	FieldZip       = "zip"
	FieldCountry   = "country"
)

// ValidateField проверяет одно поле и возвращает готовое к показу
// сообщение или пустую строку. Используется для проверки по мере ввода;
// country нужен полю zip, чьё правило зависит от страны.
func ValidateField(field, value, country string) string {
	switch field {
	case FieldFirstName:
		return validateName("First name", value)
	case FieldLastName:
		return validateName("Last name", value)
	case FieldEmail:
		return validateEmail(value)
	case FieldPhone:
		return validatePhone(value)
	case FieldStreet:
		if strings.TrimSpace(value) == "" {
			return "Street is required"
		}
		return ""
	case FieldCity:
		return validateName("City", value)
	case FieldZip:
		return validateZip(value, country)
	case FieldCountry:
		if value == "" {
			return "Country is required"
		}
		if !KnownCountry(value) {
			return "Country is not supported"
		}
		return ""
	}
	return ""
}

// ValidateAll прогоняет все правила и возвращает полную карту
// поле -> сообщение, а не первую ошибку: форма подсвечивает все
// проблемные поля разом.
func ValidateAll(f Fields) (bool, map[string]string) {
	errs := make(map[string]string)

	check := func(field, value string) {
		if msg := ValidateField(field, value, f.Country); msg != "" {
			errs[field] = msg
		}
	}

	check(FieldFirstName, f.FirstName)
	check(FieldLastName, f.LastName)
	check(FieldEmail, f.Email)
	check(FieldPhone, f.Phone)
	check(FieldStreet, f.Street)
	check(FieldCity, f.City)
	check(FieldZip, f.Zip)
	check(FieldCountry, f.Country)

	return len(errs) == 0, errs
}

func validateName(label, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Sprintf("%s is required", label)
	}
	if utf8.RuneCountInString(trimmed) < 2 {
		return fmt.Sprintf("%s must be at least 2 characters", label)
	}
	if !nameRe.MatchString(trimmed) {
		return fmt.Sprintf("%s may contain only letters, hyphens and spaces", label)
	}
	return ""
}

func validateEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Email is required"
	}
	if !emailRe.MatchString(value) {
		return "Email is not valid"
	}
	return ""
}

func validatePhone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Phone is required"
	}
	stripped := strings.ReplaceAll(value, " ", "")
	if !phoneRe.MatchString(stripped) {
		return "Phone is not valid"
	}
	return ""
}

func validateZip(value, country string) string {
	if strings.TrimSpace(value) == "" {
		return "Postal code is required"
	}
	if strictZipCountries[country] {
		if !zipStrictRe.MatchString(strings.TrimSpace(value)) {
			return "Postal code is not valid"
		}
		return ""
	}
	stripped := strings.ReplaceAll(value, " ", "")
	if len(digitRe.FindAllString(stripped, -1)) < 3 {
		return "Postal code is not valid"
	}
	return ""
}
