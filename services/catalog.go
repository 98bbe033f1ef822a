package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/calvinlm/Arco-Prototype/models"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrFloorPlanNotFound = errors.New("floor plan not found")
	ErrUnknownCategory   = errors.New("unknown category")
)

// DefaultFloorPlanID is the plan the room builder falls back to.
const DefaultFloorPlanID = "1"

// CatalogProvider supplies the static product and floor plan records.
type CatalogProvider interface {
	Products(ctx context.Context) ([]models.Product, error)
	FloorPlans(ctx context.Context) ([]models.FloorPlan, error)
}

// Catalog is an immutable, indexed copy of a provider's records.
type Catalog struct {
	products     []models.Product
	productIndex map[string]int
	plans        []models.FloorPlan
	planIndex    map[string]int
}

// LoadCatalog reads every record from provider once, validating products and
// resolving thumbnails through media (which may be nil).
func LoadCatalog(ctx context.Context, provider CatalogProvider, media *ThumbnailResolver) (*Catalog, error) {
	products, err := provider.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	plans, err := provider.FloorPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load floor plans: %w", err)
	}

	c := &Catalog{
		productIndex: make(map[string]int, len(products)),
		planIndex:    make(map[string]int, len(plans)),
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.productIndex[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		p.ThumbnailURL = media.Resolve(p.ThumbnailURL)
		c.productIndex[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	for _, plan := range plans {
		if plan.ID == "" {
			return nil, fmt.Errorf("floor plan %q has no id", plan.Name)
		}
		if _, dup := c.planIndex[plan.ID]; dup {
			return nil, fmt.Errorf("duplicate floor plan id %q", plan.ID)
		}
		plan.ThumbnailURL = media.Resolve(plan.ThumbnailURL)
		c.planIndex[plan.ID] = len(c.plans)
		c.plans = append(c.plans, plan)
	}
	return c, nil
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []models.Product {
	return append([]models.Product(nil), c.products...)
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (models.Product, error) {
	i, ok := c.productIndex[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return c.products[i], nil
}

// Search filters by case-insensitive name substring and category. An empty
// category or "all" matches every category.
func (c *Catalog) Search(query, category string) ([]models.Product, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && category != "all" && !models.Category(category).Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	query = strings.ToLower(strings.TrimSpace(query))

	results := make([]models.Product, 0)
	for _, p := range c.products {
		if category != "" && category != "all" && string(p.Category) != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}

func (c *Catalog) FloorPlans() []models.FloorPlan {
	return append([]models.FloorPlan(nil), c.plans...)
}

func (c *Catalog) FloorPlan(id string) (models.FloorPlan, error) {
	i, ok := c.planIndex[id]
	if !ok {
		return models.FloorPlan{}, fmt.Errorf("%w: %s", ErrFloorPlanNotFound, id)
	}
	return c.plans[i], nil
}
