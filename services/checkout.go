package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/calvinlm/Arco-Prototype/logging"
	"github.com/calvinlm/Arco-Prototype/models"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrInvalidCustomer = errors.New("invalid customer info")
)

var marketplaceSearchURLs = map[models.Platform]string{
	models.PlatformShopee: "https://shopee.ph/search?keyword=",
	models.PlatformLazada: "https://www.lazada.com.ph/catalog/?q=",
}

// CheckoutRedirector prepares the hand-off of a cart to a marketplace. It
// never changes the cart.
type CheckoutRedirector struct {
	vatRate    decimal.Decimal
	currencies *CurrencyConverter
	logger     *zap.Logger
}

func NewCheckoutRedirector(vatRate decimal.Decimal, currencies *CurrencyConverter, logger *zap.Logger) *CheckoutRedirector {
	return &CheckoutRedirector{
		vatRate:    vatRate,
		currencies: currencies,
		logger:     logging.OrNop(logger),
	}
}

// Redirect builds the order summary and marketplace links for snap. Amounts
// are shown in currency (or the default display currency).
func (r *CheckoutRedirector) Redirect(snap models.CartSnapshot, platform string, customer models.CustomerInfo, currency string) (models.CheckoutRedirect, error) {
	p, ok := models.ParsePlatform(platform)
	if !ok {
		return models.CheckoutRedirect{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	if err := ValidateCustomer(customer); err != nil {
		return models.CheckoutRedirect{}, err
	}
	if snap.IsEmpty() {
		return models.CheckoutRedirect{}, ErrEmptyCart
	}

	summary := r.Summarize(snap.Total, currency)
	links := make([]models.MarketplaceLink, 0, len(snap.Items))
	for _, line := range snap.Items {
		links = append(links, marketplaceLink(line, p))
	}

	redirect := models.CheckoutRedirect{
		Platform:     p,
		PlatformName: p.DisplayName(),
		LineCount:    len(snap.Items),
		ItemCount:    snap.ItemCount,
		Summary:      summary,
		Links:        links,
		Message: fmt.Sprintf("Redirecting to %s for checkout with %d items totaling %s",
			p.DisplayName(), len(snap.Items), summary.Total.Formatted),
	}

	r.logger.Info("checkout redirect",
		zap.String("platform", string(p)),
		zap.Int("lines", redirect.LineCount),
		zap.Uint64("cart_version", snap.Version),
		zap.String("total", summary.Total.Amount),
		zap.String("currency", summary.Total.Currency),
	)
	return redirect, nil
}

// Summarize converts a canonical subtotal and adds VAT. Tax is rounded in the
// display currency so subtotal + tax always equals total.
func (r *CheckoutRedirector) Summarize(subtotal decimal.Decimal, currency string) models.OrderSummary {
	code := r.currencies.Resolve(currency)
	converted, _ := r.currencies.Convert(subtotal, code)
	converted = converted.Round(2)
	tax := converted.Mul(r.vatRate).Round(2)

	return models.OrderSummary{
		Subtotal: r.currencies.money(converted, code),
		Tax:      r.currencies.money(tax, code),
		Total:    r.currencies.money(converted.Add(tax), code),
	}
}

// ValidateCustomer requires the fields the marketplace needs to ship an order.
func ValidateCustomer(c models.CustomerInfo) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	if err := validate.Struct(c); err != nil {
		return InvalidFields(ErrInvalidCustomer, err)
	}
	return nil
}

func marketplaceLink(line models.CartLine, p models.Platform) models.MarketplaceLink {
	link := models.MarketplaceLink{
		ProductID: line.ID,
		Name:      line.Name,
		Quantity:  line.Quantity,
	}
	if affiliate := line.AffiliateURL(p); affiliate != "" {
		link.URL = affiliate
		link.Affiliate = true
		return link
	}
	link.URL = marketplaceSearchURLs[p] + url.QueryEscape(line.Name)
	return link
}
