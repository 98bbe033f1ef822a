package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups catalog products the way the catalog tabs do.
type Category string

const (
	CategoryFurniture Category = "furniture"
	CategoryDecor     Category = "decor"
	CategoryLighting  Category = "lighting"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryFurniture, CategoryDecor, CategoryLighting}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

var ErrInvalidProduct = errors.New("invalid product")

// Product is a catalog record. Prices are in the canonical currency (USD).
type Product struct {
	ID                 string          `json:"id" db:"id"`
	Name               string          `json:"name" db:"name"`
	Price              decimal.Decimal `json:"price" db:"price"`
	Category           Category        `json:"category" db:"category"`
	ThumbnailURL       string          `json:"thumbnail_url" db:"thumbnail_url"`
	AffiliateURLShopee string          `json:"affiliate_url_shopee,omitempty" db:"affiliate_url_shopee"`
	AffiliateURLLazada string          `json:"affiliate_url_lazada,omitempty" db:"affiliate_url_lazada"`
	Description        string          `json:"description,omitempty" db:"description"`
}

func (Product) TableName() string {
	return "products"
}

func (Product) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		category TEXT NOT NULL,
		thumbnail_url TEXT NOT NULL DEFAULT '',
		affiliate_url_shopee TEXT NOT NULL DEFAULT '',
		affiliate_url_lazada TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);`
}

// Validate checks the fields every consumer of a product relies on.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required for %s", ErrInvalidProduct, p.ID)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: negative price for %s", ErrInvalidProduct, p.ID)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q for %s", ErrInvalidProduct, p.Category, p.ID)
	}
	return nil
}
