package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/calvinlm/Arco-Prototype/logging"
	"github.com/calvinlm/Arco-Prototype/models"
)

type DB struct {
	*sql.DB
	logger *zap.Logger
}

// Connect establishes a connection to the PostgreSQL database
func Connect(ctx context.Context, databaseURL string, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, logger: logging.OrNop(logger)}, nil
}

// InitializeTables creates the catalog tables if they don't exist
func (db *DB) InitializeTables(ctx context.Context) error {
	tables := []interface {
		TableName() string
		CreateTableSQL() string
	}{
		models.Product{},
		models.FloorPlan{},
	}

	for _, table := range tables {
		db.logger.Info("creating table", zap.String("table", table.TableName()))
		if _, err := db.ExecContext(ctx, table.CreateTableSQL()); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.TableName(), err)
		}
	}
	return nil
}

const upsertProductSQL = `
	INSERT INTO products (id, name, price, category, thumbnail_url, affiliate_url_shopee, affiliate_url_lazada, description)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		price = EXCLUDED.price,
		category = EXCLUDED.category,
		thumbnail_url = EXCLUDED.thumbnail_url,
		affiliate_url_shopee = EXCLUDED.affiliate_url_shopee,
		affiliate_url_lazada = EXCLUDED.affiliate_url_lazada,
		description = EXCLUDED.description`

const upsertFloorPlanSQL = `
	INSERT INTO floor_plans (id, name, type, size, thumbnail_url, price)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		type = EXCLUDED.type,
		size = EXCLUDED.size,
		thumbnail_url = EXCLUDED.thumbnail_url,
		price = EXCLUDED.price`

// SeedCatalog upserts products and floor plans in one transaction.
func (db *DB) SeedCatalog(ctx context.Context, products []models.Product, plans []models.FloorPlan) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsertProductSQL,
			p.ID, p.Name, p.Price, string(p.Category), p.ThumbnailURL,
			p.AffiliateURLShopee, p.AffiliateURLLazada, p.Description,
		); err != nil {
			return fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
		}
	}

	for _, plan := range plans {
		price := decimal.NullDecimal{}
		if plan.Price != nil {
			price = decimal.NewNullDecimal(*plan.Price)
		}
		if _, err := tx.ExecContext(ctx, upsertFloorPlanSQL,
			plan.ID, plan.Name, plan.Type, plan.Size, plan.ThumbnailURL, price,
		); err != nil {
			return fmt.Errorf("failed to upsert floor plan %s: %w", plan.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	db.logger.Info("catalog seeded", zap.Int("products", len(products)), zap.Int("floor_plans", len(plans)))
	return nil
}

// Products reads the catalog products ordered by category, then id.
func (db *DB) Products(ctx context.Context) ([]models.Product, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, price, category, thumbnail_url, affiliate_url_shopee, affiliate_url_lazada, description
		FROM products
		ORDER BY category, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var category string
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &category, &p.ThumbnailURL,
			&p.AffiliateURLShopee, &p.AffiliateURLLazada, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Category = models.Category(category)
		products = append(products, p)
	}
	return products, rows.Err()
}

// FloorPlans reads every floor plan in id order.
func (db *DB) FloorPlans(ctx context.Context) ([]models.FloorPlan, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, type, size, thumbnail_url, price
		FROM floor_plans
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query floor plans: %w", err)
	}
	defer rows.Close()

	var plans []models.FloorPlan
	for rows.Next() {
		var plan models.FloorPlan
		var price decimal.NullDecimal
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Type, &plan.Size, &plan.ThumbnailURL, &price); err != nil {
			return nil, fmt.Errorf("failed to scan floor plan: %w", err)
		}
		if price.Valid {
			plan.Price = &price.Decimal
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
