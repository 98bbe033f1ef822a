package models

import (
	"github.com/shopspring/decimal"
)

// Profile is the editable user profile shown on the profile screen.
type Profile struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Mobile    string `json:"mobile"`
	Address   string `json:"address"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// SavedDesign is a room design kept on the profile.
type SavedDesign struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	FloorPlan    string          `json:"floor_plan"`
	ItemCount    int             `json:"item_count"`
	TotalValue   decimal.Decimal `json:"total_value"`
	CreatedAt    string          `json:"created_at"`
	ThumbnailURL string          `json:"thumbnail_url"`
}

// OrderStatus tracks a past marketplace order.
type OrderStatus string

const (
	OrderCompleted  OrderStatus = "completed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
)

// OrderHistory is a past order placed through a marketplace.
type OrderHistory struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Items    int             `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Status   OrderStatus     `json:"status"`
	Platform Platform        `json:"platform"`
}
