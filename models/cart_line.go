package models

import (
	"github.com/shopspring/decimal"
)

// CartLine is one distinct product in a cart. ID equals the product id.
type CartLine struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Price              decimal.Decimal `json:"price"`
	ThumbnailURL       string          `json:"thumbnail_url"`
	AffiliateURLShopee string          `json:"affiliate_url_shopee,omitempty"`
	AffiliateURLLazada string          `json:"affiliate_url_lazada,omitempty"`
	Quantity           int             `json:"quantity"`
}

// LineTotal is price × quantity in the canonical currency.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// AffiliateURL returns the marketplace link copied from the product for platform.
func (l CartLine) AffiliateURL(platform Platform) string {
	switch platform {
	case PlatformShopee:
		return l.AffiliateURLShopee
	case PlatformLazada:
		return l.AffiliateURLLazada
	}
	return ""
}

// CartSnapshot is a consistent read of a cart taken at one version.
type CartSnapshot struct {
	Items     []CartLine      `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
	Version   uint64          `json:"version"`
}

// IsEmpty reports whether the snapshot has no lines.
func (s CartSnapshot) IsEmpty() bool {
	return len(s.Items) == 0
}
