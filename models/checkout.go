package models

import (
	"strings"
)

// Platform is an external marketplace that completes the purchase.
type Platform string

const (
	PlatformShopee Platform = "shopee"
	PlatformLazada Platform = "lazada"
)

// ParsePlatform normalizes a platform name. ok is false for unknown platforms.
func ParsePlatform(s string) (Platform, bool) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case PlatformShopee, PlatformLazada:
		return p, true
	}
	return "", false
}

// DisplayName is the marketplace name shown to users.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformShopee:
		return "Shopee"
	case PlatformLazada:
		return "Lazada"
	}
	return string(p)
}

// CustomerInfo is collected on the checkout form.
type CustomerInfo struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address" binding:"required"`
	Notes   string `json:"notes"`
}

// Money is an amount rendered in a display currency.
type Money struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// OrderSummary is the checkout totals block, in the display currency.
type OrderSummary struct {
	Subtotal Money `json:"subtotal"`
	Tax      Money `json:"tax"`
	Total    Money `json:"total"`
}

// MarketplaceLink points a cart line at the chosen marketplace.
type MarketplaceLink struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	URL       string `json:"url"`
	Affiliate bool   `json:"affiliate"`
}

// CheckoutRedirect is what the checkout screen hands off to the marketplace.
type CheckoutRedirect struct {
	Platform     Platform          `json:"platform"`
	PlatformName string            `json:"platform_name"`
	LineCount    int               `json:"line_count"`
	ItemCount    int               `json:"item_count"`
	Summary      OrderSummary      `json:"summary"`
	Links        []MarketplaceLink `json:"links"`
	Message      string            `json:"message"`
}
