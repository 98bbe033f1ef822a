// Package fixtures holds the demo catalog and profile data shipped with the server.
package fixtures

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/calvinlm/Arco-Prototype/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

type productRecord struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	Price              string `yaml:"price"`
	Category           string `yaml:"category"`
	ThumbnailURL       string `yaml:"thumbnail_url"`
	AffiliateURLShopee string `yaml:"affiliate_url_shopee"`
	AffiliateURLLazada string `yaml:"affiliate_url_lazada"`
	Description        string `yaml:"description"`
}

type floorPlanRecord struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Size         int    `yaml:"size"`
	ThumbnailURL string `yaml:"thumbnail_url"`
	Price        string `yaml:"price"`
}

type designRecord struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	FloorPlan    string `yaml:"floor_plan"`
	ItemCount    int    `yaml:"item_count"`
	TotalValue   string `yaml:"total_value"`
	CreatedAt    string `yaml:"created_at"`
	ThumbnailURL string `yaml:"thumbnail_url"`
}

type orderRecord struct {
	ID       string `yaml:"id"`
	Date     string `yaml:"date"`
	Items    int    `yaml:"items"`
	Total    string `yaml:"total"`
	Status   string `yaml:"status"`
	Platform string `yaml:"platform"`
}

type document struct {
	Products     []productRecord   `yaml:"products"`
	FloorPlans   []floorPlanRecord `yaml:"floor_plans"`
	Profile      models.Profile    `yaml:"profile"`
	SavedDesigns []designRecord    `yaml:"saved_designs"`
	Orders       []orderRecord     `yaml:"orders"`
}

// Provider serves the fixture data. It implements services.CatalogProvider.
type Provider struct {
	products []models.Product
	plans    []models.FloorPlan
	profile  models.Profile
	designs  []models.SavedDesign
	orders   []models.OrderHistory
}

// Load parses the embedded catalog.
func Load() (*Provider, error) {
	return Parse(catalogYAML)
}

// Parse builds a provider from a YAML document with the catalog.yaml layout.
func Parse(data []byte) (*Provider, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	p := &Provider{profile: doc.Profile}
	for _, r := range doc.Products {
		price, err := parseAmount(r.Price, "product "+r.ID)
		if err != nil {
			return nil, err
		}
		p.products = append(p.products, models.Product{
			ID:                 r.ID,
			Name:               r.Name,
			Price:              price,
			Category:           models.Category(r.Category),
			ThumbnailURL:       r.ThumbnailURL,
			AffiliateURLShopee: r.AffiliateURLShopee,
			AffiliateURLLazada: r.AffiliateURLLazada,
			Description:        r.Description,
		})
	}

	for _, r := range doc.FloorPlans {
		plan := models.FloorPlan{
			ID:           r.ID,
			Name:         r.Name,
			Type:         r.Type,
			Size:         r.Size,
			ThumbnailURL: r.ThumbnailURL,
		}
		if r.Price != "" {
			price, err := parseAmount(r.Price, "floor plan "+r.ID)
			if err != nil {
				return nil, err
			}
			plan.Price = &price
		}
		p.plans = append(p.plans, plan)
	}

	for _, r := range doc.SavedDesigns {
		value, err := parseAmount(r.TotalValue, "design "+r.ID)
		if err != nil {
			return nil, err
		}
		p.designs = append(p.designs, models.SavedDesign{
			ID:           r.ID,
			Name:         r.Name,
			FloorPlan:    r.FloorPlan,
			ItemCount:    r.ItemCount,
			TotalValue:   value,
			CreatedAt:    r.CreatedAt,
			ThumbnailURL: r.ThumbnailURL,
		})
	}

	for _, r := range doc.Orders {
		total, err := parseAmount(r.Total, "order "+r.ID)
		if err != nil {
			return nil, err
		}
		platform, ok := models.ParsePlatform(r.Platform)
		if !ok {
			return nil, fmt.Errorf("order %s: unknown platform %q", r.ID, r.Platform)
		}
		p.orders = append(p.orders, models.OrderHistory{
			ID:       r.ID,
			Date:     r.Date,
			Items:    r.Items,
			Total:    total,
			Status:   models.OrderStatus(r.Status),
			Platform: platform,
		})
	}
	return p, nil
}

func (p *Provider) Products(context.Context) ([]models.Product, error) {
	return append([]models.Product(nil), p.products...), nil
}

func (p *Provider) FloorPlans(context.Context) ([]models.FloorPlan, error) {
	return append([]models.FloorPlan(nil), p.plans...), nil
}

// Profile is the demo user every new session starts with.
func (p *Provider) Profile() models.Profile {
	return p.profile
}

func (p *Provider) SavedDesigns() []models.SavedDesign {
	return append([]models.SavedDesign(nil), p.designs...)
}

func (p *Provider) Orders() []models.OrderHistory {
	return append([]models.OrderHistory(nil), p.orders...)
}

func parseAmount(s, what string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid amount %q: %w", what, s, err)
	}
	return d, nil
}
