package models

import (
	"github.com/shopspring/decimal"
)

// ViewMode is how the room viewport is shown.
type ViewMode string

const (
	ViewMode3D  ViewMode = "3d"
	ViewModeTop ViewMode = "top"
)

// Vector3 is a position or rotation in room space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlacedItem is one product instance placed in the room.
type PlacedItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Position  Vector3         `json:"position"`
	Rotation  Vector3         `json:"rotation"`
}

// RoomState is a read of the room builder.
type RoomState struct {
	Plan     FloorPlan    `json:"plan"`
	ViewMode ViewMode     `json:"view_mode"`
	Items    []PlacedItem `json:"items"`
	Selected string       `json:"selected,omitempty"`
}
