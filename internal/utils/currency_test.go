package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCurrency(t *testing.T) {
	assert.True(t, IsValidCurrency("USD"))
	assert.True(t, IsValidCurrency("usd"))
	assert.True(t, IsValidCurrency("Eur"))
	assert.False(t, IsValidCurrency("XYZ"))
	assert.False(t, IsValidCurrency(""))
	assert.False(t, IsValidCurrency("US"))
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "USD", NormalizeCurrency("usd"))
	assert.Equal(t, "GBP", NormalizeCurrency("GBP"))
}
