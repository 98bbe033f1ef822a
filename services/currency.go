package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/calvinlm/Arco-Prototype/models"
)

// CanonicalCurrency is the currency catalog prices and cart totals are kept in.
const CanonicalCurrency = "USD"

var ErrUnknownCurrency = errors.New("unknown currency")

type currencyFormat struct {
	symbol string
	locale language.Tag
}

var currencyFormats = map[string]currencyFormat{
	"PHP": {symbol: "₱", locale: language.MustParse("en-PH")},
	"USD": {symbol: "$", locale: language.AmericanEnglish},
	"EUR": {symbol: "€", locale: language.English},
	"GBP": {symbol: "£", locale: language.BritishEnglish},
	"SGD": {symbol: "S$", locale: language.MustParse("en-SG")},
}

// CurrencyConverter converts canonical amounts with a fixed rate table and
// formats them for display. It is safe for concurrent use.
type CurrencyConverter struct {
	rates           map[string]decimal.Decimal
	defaultCurrency string
}

// NewCurrencyConverter takes rates as units of each currency per 1 USD. USD is
// always present at 1. The default currency must have a rate.
func NewCurrencyConverter(rates map[string]decimal.Decimal, defaultCurrency string) (*CurrencyConverter, error) {
	c := &CurrencyConverter{
		rates: map[string]decimal.Decimal{CanonicalCurrency: decimal.NewFromInt(1)},
	}
	for code, rate := range rates {
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %s must be positive", code)
		}
		c.rates[normalizeCurrency(code)] = rate
	}

	c.defaultCurrency = normalizeCurrency(defaultCurrency)
	if !c.Supports(c.defaultCurrency) {
		return nil, fmt.Errorf("%w: no rate for default currency %q", ErrUnknownCurrency, defaultCurrency)
	}
	return c, nil
}

// DefaultCurrency is used when a requested currency has no rate.
func (c *CurrencyConverter) DefaultCurrency() string {
	return c.defaultCurrency
}

// Supports reports whether code has a rate.
func (c *CurrencyConverter) Supports(code string) bool {
	_, ok := c.rates[normalizeCurrency(code)]
	return ok
}

// Currencies lists every currency with a rate, sorted.
func (c *CurrencyConverter) Currencies() []string {
	codes := make([]string, 0, len(c.rates))
	for code := range c.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Convert turns a canonical amount into currency.
func (c *CurrencyConverter) Convert(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	rate, ok := c.rates[normalizeCurrency(currency)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
	}
	return amount.Mul(rate), nil
}

// Format renders amount, already in currency, with its symbol and two grouped
// decimals. Currencies without a known format are rendered as PHP.
func (c *CurrencyConverter) Format(amount decimal.Decimal, currency string) string {
	f, ok := currencyFormats[normalizeCurrency(currency)]
	if !ok {
		f = currencyFormats["PHP"]
	}

	rounded := amount.Round(2)
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	digits := groupThousands(message.NewPrinter(f.locale), whole) + "." + frac
	if rounded.IsNegative() {
		return "-" + f.symbol + digits
	}
	return f.symbol + digits
}

// groupThousands groups the integer digits in whole. Values past int64 are
// grouped by hand since the printer only takes machine numbers.
func groupThousands(p *message.Printer, whole string) string {
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		return p.Sprint(number.Decimal(n))
	}
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Display converts a canonical amount and formats it. An unsupported currency
// falls back to the default currency.
func (c *CurrencyConverter) Display(amount decimal.Decimal, currency string) models.Money {
	code := c.Resolve(currency)
	return c.money(amount.Mul(c.rates[code]), code)
}

// Resolve normalizes currency, returning the default currency when it has no rate.
func (c *CurrencyConverter) Resolve(currency string) string {
	code := normalizeCurrency(currency)
	if !c.Supports(code) {
		return c.defaultCurrency
	}
	return code
}

// money renders an amount that is already in code.
func (c *CurrencyConverter) money(amount decimal.Decimal, code string) models.Money {
	amount = amount.Round(2)
	return models.Money{
		Amount:    amount.StringFixed(2),
		Currency:  code,
		Formatted: c.Format(amount, code),
	}
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
