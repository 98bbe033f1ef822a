package services

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/calvinlm/Arco-Prototype/models"
)

func product(id string, price int64) models.Product {
	return models.Product{
		ID:           id,
		Name:         "Product " + id,
		Price:        decimal.NewFromInt(price),
		Category:     models.CategoryFurniture,
		ThumbnailURL: "/" + id + ".jpg",
	}
}

func assertConsistent(t *testing.T, store *CartStore) {
	t.Helper()
	expected := decimal.Zero
	count := 0
	for _, line := range store.Items() {
		assert.GreaterOrEqual(t, line.Quantity, 1, "line %s", line.ID)
		expected = expected.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		count += line.Quantity
	}
	assert.True(t, expected.Equal(store.Total()), "total %s, want %s", store.Total(), expected)
	assert.Equal(t, count, store.ItemCount())
}

func TestCartStoreScenario(t *testing.T) {
	store := NewCartStore(zaptest.NewLogger(t))
	sofa := product("f1", 899)

	store.AddItem(sofa)
	assert.Equal(t, 1, store.ItemCount())
	assert.True(t, store.Total().Equal(decimal.NewFromInt(899)))

	store.AddItem(sofa)
	assert.Equal(t, 2, store.ItemCount())
	assert.True(t, store.Total().Equal(decimal.NewFromInt(1798)))
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	store.UpdateQuantity("f1", 5)
	assert.True(t, store.Total().Equal(decimal.NewFromInt(4495)))

	store.RemoveItem("f1")
	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.ItemCount())
	assert.True(t, store.Total().IsZero())
}

func TestCartStoreAddMergesById(t *testing.T) {
	store := NewCartStore(nil)
	for i := 0; i < 7; i++ {
		store.AddItem(product("d3", 199))
		assertConsistent(t, store)
	}

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "d3", items[0].ID)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCartStoreCopiesProductFields(t *testing.T) {
	store := NewCartStore(nil)
	p := product("l1", 159)
	p.AffiliateURLShopee = "https://shopee.ph/pendant"
	p.AffiliateURLLazada = "https://lazada.com.ph/pendant"

	store.AddItem(p)

	line := store.Items()[0]
	assert.Equal(t, p.Name, line.Name)
	assert.Equal(t, p.ThumbnailURL, line.ThumbnailURL)
	assert.Equal(t, p.AffiliateURLShopee, line.AffiliateURLShopee)
	assert.Equal(t, p.AffiliateURLLazada, line.AffiliateURLLazada)
}

func TestCartStoreKeepsInsertionOrder(t *testing.T) {
	store := NewCartStore(nil)
	for _, id := range []string{"f2", "d1", "l4", "f5"} {
		store.AddItem(product(id, 10))
	}
	store.AddItem(product("d1", 10))
	store.RemoveItem("l4")
	store.AddItem(product("l4", 10))

	var ids []string
	for _, line := range store.Items() {
		ids = append(ids, line.ID)
	}
	assert.Equal(t, []string{"f2", "d1", "f5", "l4"}, ids)
}

func TestCartStoreUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		quantity  int
		wantLines int
		wantCount int
	}{
		{"sets exact quantity", "f1", 4, 2, 5},
		{"zero removes the line", "f1", 0, 1, 1},
		{"negative removes the line", "f1", -3, 1, 1},
		{"unknown id is a no-op", "nope", 9, 2, 3},
		{"same quantity is a no-op", "f1", 2, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewCartStore(nil)
			store.AddItem(product("f1", 899))
			store.AddItem(product("f1", 899))
			store.AddItem(product("d4", 29))

			store.UpdateQuantity(tt.id, tt.quantity)

			assert.Len(t, store.Items(), tt.wantLines)
			assert.Equal(t, tt.wantCount, store.ItemCount())
			assertConsistent(t, store)
			if tt.quantity <= 0 && tt.id == "f1" {
				for _, line := range store.Items() {
					assert.NotEqual(t, "f1", line.ID)
				}
			}
		})
	}
}

func TestCartStoreRemoveUnknownAndTwice(t *testing.T) {
	store := NewCartStore(nil)
	store.AddItem(product("f3", 299))
	store.AddItem(product("d2", 45))
	before := store.Snapshot()

	store.RemoveItem("missing")
	assert.Equal(t, before, store.Snapshot())

	store.RemoveItem("d2")
	once := store.Snapshot()
	store.RemoveItem("d2")
	assert.Equal(t, once, store.Snapshot())
	assert.Equal(t, before.Version+1, once.Version)
}

func TestCartStoreClear(t *testing.T) {
	store := NewCartStore(nil)
	store.AddItem(product("f6", 799))
	store.AddItem(product("l2", 79))

	store.Clear()

	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.ItemCount())
	assert.True(t, store.Total().IsZero())

	version := store.Version()
	store.Clear()
	assert.Equal(t, version, store.Version(), "clearing an empty cart changes nothing")
}

func TestCartStoreCoercesBadProducts(t *testing.T) {
	store := NewCartStore(zaptest.NewLogger(t))

	store.AddItem(models.Product{Name: "no id", Price: decimal.NewFromInt(5)})
	assert.Empty(t, store.Items())

	store.AddItem(product("neg", -40))
	require.Len(t, store.Items(), 1)
	assert.True(t, store.Items()[0].Price.IsZero())
	assert.True(t, store.Total().IsZero())
}

func TestCartStoreFractionalPrices(t *testing.T) {
	store := NewCartStore(nil)
	store.AddItem(models.Product{ID: "x", Name: "x", Price: decimal.RequireFromString("0.10")})
	store.UpdateQuantity("x", 3)

	assert.Equal(t, "0.3", store.Total().String())
}

func TestCartStoreItemsAreCopies(t *testing.T) {
	store := NewCartStore(nil)
	store.AddItem(product("f4", 199))

	items := store.Items()
	items[0].Quantity = 100

	assert.Equal(t, 1, store.ItemCount())
}

func TestCartStoreNotifiesObservers(t *testing.T) {
	store := NewCartStore(nil)

	var first, second []models.CartSnapshot
	unsubscribe := store.Subscribe(func(s models.CartSnapshot) { first = append(first, s) })
	store.Subscribe(func(s models.CartSnapshot) { second = append(second, s) })

	store.AddItem(product("f1", 899))
	store.AddItem(product("f1", 899))
	store.RemoveItem("unknown")
	store.UpdateQuantity("f1", 5)

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, first[1].ItemCount)
	assert.True(t, first[2].Total.Equal(decimal.NewFromInt(4495)))
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{first[0].Version, first[1].Version, first[2].Version})

	unsubscribe()
	unsubscribe()
	store.Clear()
	assert.Len(t, first, 3)
	require.Len(t, second, 4)
	assert.True(t, second[3].IsEmpty())
}

func TestCartStoreObserversMayRead(t *testing.T) {
	store := NewCartStore(nil)

	var seen []int
	store.Subscribe(func(s models.CartSnapshot) {
		seen = append(seen, store.ItemCount())
	})

	store.AddItem(product("f2", 649))
	store.AddItem(product("f2", 649))

	assert.Equal(t, []int{1, 2}, seen)
}

func TestCartStoreConcurrentMutations(t *testing.T) {
	store := NewCartStore(nil)

	var mu sync.Mutex
	var versions []uint64
	store.Subscribe(func(s models.CartSnapshot) {
		mu.Lock()
		versions = append(versions, s.Version)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.AddItem(product("f1", 899))
			_ = store.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.ItemCount())
	assert.True(t, store.Total().Equal(decimal.NewFromInt(899*50)))
	require.Len(t, versions, 50)
	for i, v := range versions {
		assert.Equal(t, uint64(i+1), v, "notifications arrive in mutation order")
	}
}
