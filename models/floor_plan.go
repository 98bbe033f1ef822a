package models

import (
	"github.com/shopspring/decimal"
)

// FloorPlan is a condo layout a room can be built on.
type FloorPlan struct {
	ID           string           `json:"id" db:"id"`
	Name         string           `json:"name" db:"name"`
	Type         string           `json:"type" db:"type"`
	Size         int              `json:"size" db:"size"` // square meters
	ThumbnailURL string           `json:"thumbnail_url" db:"thumbnail_url"`
	Price        *decimal.Decimal `json:"price,omitempty" db:"price"` // monthly, optional
}

func (FloorPlan) TableName() string {
	return "floor_plans"
}

func (FloorPlan) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS floor_plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		size INT NOT NULL,
		thumbnail_url TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
