package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConverter(t *testing.T) *CurrencyConverter {
	t.Helper()
	c, err := NewCurrencyConverter(map[string]decimal.Decimal{
		"php": decimal.RequireFromString("56.5"),
		"EUR": decimal.RequireFromString("0.9"),
	}, "PHP")
	require.NoError(t, err)
	return c
}

func TestCurrencyConvert(t *testing.T) {
	c := testConverter(t)

	php, err := c.Convert(decimal.NewFromInt(899), "php")
	require.NoError(t, err)
	assert.True(t, php.Equal(decimal.RequireFromString("50793.5")), php.String())

	usd, err := c.Convert(decimal.NewFromInt(899), "USD")
	require.NoError(t, err)
	assert.True(t, usd.Equal(decimal.NewFromInt(899)))

	_, err = c.Convert(decimal.NewFromInt(1), "JPY")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestCurrencyFormat(t *testing.T) {
	c := testConverter(t)

	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"50793.5", "PHP", "₱50,793.50"},
		{"899", "usd", "$899.00"},
		{"1234567.891", "EUR", "€1,234,567.89"},
		{"0.005", "GBP", "£0.01"},
		{"12", "SGD", "S$12.00"},
		{"12", "JPY", "₱12.00"},
		{"-3.5", "USD", "-$3.50"},
		{"90071992547409.93", "USD", "$90,071,992,547,409.93"},
		{"9223372036854775807.99", "USD", "$9,223,372,036,854,775,807.99"},
		{"123456789012345678901.5", "PHP", "₱123,456,789,012,345,678,901.50"},
	}
	for _, tt := range tests {
		got := c.Format(decimal.RequireFromString(tt.amount), tt.currency)
		assert.Equal(t, tt.want, got, "%s %s", tt.amount, tt.currency)
	}
}

func TestCurrencyDisplayFallsBackToDefault(t *testing.T) {
	c := testConverter(t)

	m := c.Display(decimal.NewFromInt(899), "gbp")
	assert.Equal(t, "PHP", m.Currency)
	assert.Equal(t, "50793.50", m.Amount)
	assert.Equal(t, "₱50,793.50", m.Formatted)

	m = c.Display(decimal.NewFromInt(10), "eur")
	assert.Equal(t, "EUR", m.Currency)
	assert.Equal(t, "€9.00", m.Formatted)
}

func TestNewCurrencyConverterValidation(t *testing.T) {
	_, err := NewCurrencyConverter(nil, "PHP")
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	_, err = NewCurrencyConverter(map[string]decimal.Decimal{"PHP": decimal.Zero}, "PHP")
	assert.Error(t, err)

	c, err := NewCurrencyConverter(nil, "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", c.DefaultCurrency())
	assert.Equal(t, []string{"USD"}, c.Currencies())
}
