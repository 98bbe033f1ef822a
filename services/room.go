package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calvinlm/Arco-Prototype/models"
)

var (
	ErrPlacedItemNotFound = errors.New("placed item not found")
	ErrInvalidViewMode    = errors.New("invalid view mode")
)

// roomHalfExtent bounds random placement to [-roomHalfExtent, roomHalfExtent) on x and z.
const roomHalfExtent = 5.0

// RoomBuilder is a session's room: one floor plan, a view mode and the items
// placed on it. Placing an item also puts the product in the cart.
type RoomBuilder struct {
	catalog *Catalog
	cart    *CartStore

	mu       sync.Mutex
	rng      *rand.Rand
	plan     models.FloorPlan
	viewMode models.ViewMode
	items    []models.PlacedItem
	selected string
}

// NewRoomBuilder starts on the default floor plan in 3D view. A nil rng is
// replaced with a time-seeded one.
func NewRoomBuilder(catalog *Catalog, cart *CartStore, rng *rand.Rand) *RoomBuilder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b := &RoomBuilder{
		catalog:  catalog,
		cart:     cart,
		rng:      rng,
		viewMode: models.ViewMode3D,
	}
	b.plan = b.lookupPlan(DefaultFloorPlanID)
	return b
}

// SelectPlan switches floor plans. Unknown ids fall back to the default plan.
func (b *RoomBuilder) SelectPlan(id string) models.FloorPlan {
	plan := b.lookupPlan(id)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.plan = plan
	return plan
}

func (b *RoomBuilder) SetViewMode(mode models.ViewMode) error {
	if mode != models.ViewMode3D && mode != models.ViewModeTop {
		return fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}
	b.mu.Lock()
	b.viewMode = mode
	b.mu.Unlock()
	return nil
}

// Place adds productID to the room at a random spot and to the cart.
func (b *RoomBuilder) Place(productID string) (models.PlacedItem, error) {
	if b.catalog == nil {
		return models.PlacedItem{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	p, err := b.catalog.Product(productID)
	if err != nil {
		return models.PlacedItem{}, err
	}

	b.mu.Lock()
	item := models.PlacedItem{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Position: models.Vector3{
			X: b.rng.Float64()*2*roomHalfExtent - roomHalfExtent,
			Z: b.rng.Float64()*2*roomHalfExtent - roomHalfExtent,
		},
		Rotation: models.Vector3{Y: b.rng.Float64() * 360},
	}
	b.items = append(b.items, item)
	b.mu.Unlock()

	b.cart.AddItem(p)
	return item, nil
}

// Remove takes a placed item out of the room. The cart is left as it is.
func (b *RoomBuilder) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, item := range b.items {
		if item.ID == id {
			b.items = append(b.items[:i:i], b.items[i+1:]...)
			if b.selected == id {
				b.selected = ""
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrPlacedItemNotFound, id)
}

// Select highlights a placed item.
func (b *RoomBuilder) Select(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, item := range b.items {
		if item.ID == id {
			b.selected = id
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrPlacedItemNotFound, id)
}

func (b *RoomBuilder) State() models.RoomState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return models.RoomState{
		Plan:     b.plan,
		ViewMode: b.viewMode,
		Items:    append([]models.PlacedItem{}, b.items...),
		Selected: b.selected,
	}
}

func (b *RoomBuilder) lookupPlan(id string) models.FloorPlan {
	if b.catalog == nil {
		return models.FloorPlan{}
	}
	if plan, err := b.catalog.FloorPlan(id); err == nil {
		return plan
	}
	plan, _ := b.catalog.FloorPlan(DefaultFloorPlanID)
	return plan
}
