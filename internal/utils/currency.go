package utils

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// supportedCurrencies is the allowlist of ISO 4217 codes accepted on expenses
// and preferences.
var supportedCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "JPY": {}, "CHF": {},
	"CAD": {}, "AUD": {}, "NZD": {}, "SEK": {}, "NOK": {},
	"DKK": {}, "INR": {}, "CNY": {}, "HKD": {}, "SGD": {},
	"KRW": {}, "BRL": {}, "MXN": {}, "ZAR": {}, "PLN": {},
	"TRY": {},
}

// IsValidCurrency reports whether code is a supported currency. Matching is
// case-insensitive; stored codes are always uppercase.
func IsValidCurrency(code string) bool {
	_, ok := supportedCurrencies[strings.ToUpper(code)]
	return ok
}

// NormalizeCurrency uppercases a currency code for storage and comparison.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(code)
}

// RegisterCurrencyValidator installs the "currency" binding tag on gin's
// validator engine so request DTOs can declare binding:"currency".
func RegisterCurrencyValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return IsValidCurrency(fl.Field().String())
		})
	}
}
