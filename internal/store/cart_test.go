package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/storage"
)

func panel() domain.Product {
	return domain.Product{
		ID:          "PROD-001",
		Name:        "Panneau Solaire 300W",
		Price:       300000,
		Stock:       10,
		IsAvailable: true,
	}
}

func battery() domain.Product {
	return domain.Product{
		ID:          "PROD-002",
		Name:        "Batterie Solaire 200Ah",
		Price:       175000,
		Stock:       4,
		IsAvailable: true,
	}
}

func setupCart(t *testing.T) *CartStore {
	t.Helper()
	return NewCartStore(storage.NewMemoryKV(), nil)
}

func TestCartStore_Add_AccumulatesQuantity(t *testing.T) {
	cart := setupCart(t)

	cart.Add(panel(), 2)
	cart.Add(panel(), 3)

	line, ok := cart.Item("PROD-001")
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)
	assert.Len(t, cart.Lines(), 1)
}

func TestCartStore_Add_IgnoresNonPositiveQuantity(t *testing.T) {
	cart := setupCart(t)

	cart.Add(panel(), 0)
	cart.Add(panel(), -2)

	assert.False(t, cart.Contains("PROD-001"))
	assert.Equal(t, 0, cart.TotalItems())
}

func TestCartStore_UpdateQuantity_SetsExactly(t *testing.T) {
	cart := setupCart(t)
	cart.Add(panel(), 5)

	cart.UpdateQuantity("PROD-001", 2)

	line, ok := cart.Item("PROD-001")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
}

func TestCartStore_UpdateQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		cart := setupCart(t)
		cart.Add(panel(), 3)

		cart.UpdateQuantity("PROD-001", quantity)

		assert.False(t, cart.Contains("PROD-001"), "quantity %d should remove the line", quantity)
	}
}

func TestCartStore_UpdateQuantity_UnknownProductIsNoOp(t *testing.T) {
	cart := setupCart(t)
	cart.Add(panel(), 2)

	cart.UpdateQuantity("PROD-999", 7)

	assert.Equal(t, 2, cart.TotalItems())
	assert.False(t, cart.Contains("PROD-999"))
}

func TestCartStore_Remove(t *testing.T) {
	cart := setupCart(t)
	cart.Add(panel(), 2)
	cart.Add(battery(), 1)

	cart.Remove("PROD-001")

	assert.False(t, cart.Contains("PROD-001"))
	assert.True(t, cart.Contains("PROD-002"))

	// Removing again is a no-op
	cart.Remove("PROD-001")
	assert.Equal(t, 1, cart.TotalItems())
}

func TestCartStore_Totals(t *testing.T) {
	cart := setupCart(t)
	cart.Add(panel(), 2)   // 2 x 300000
	cart.Add(battery(), 3) // 3 x 175000

	assert.Equal(t, 5, cart.TotalItems())
	assert.Equal(t, int64(2*300000+3*175000), cart.TotalPrice())

	cart.UpdateQuantity("PROD-002", 1)
	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, int64(2*300000+175000), cart.TotalPrice())

	cart.Remove("PROD-001")
	assert.Equal(t, int64(175000), cart.TotalPrice())
}

func TestCartStore_TotalPrice_TracksLiveCatalogPrice(t *testing.T) {
	cart := setupCart(t)
	cart.Add(panel(), 2)

	// The same product comes back from the catalog with a new price; the
	// cart total follows it until checkout freezes the lines.
	repriced := panel()
	repriced.Price = 350000
	cart.Add(repriced, 1)

	assert.Equal(t, int64(3*350000), cart.TotalPrice())
}

func TestCartStore_Clear(t *testing.T) {
	cart := setupCart(t)
	cart.Add(panel(), 2)
	cart.Add(battery(), 1)

	cart.Clear()

	assert.Equal(t, 0, cart.TotalItems())
	assert.Empty(t, cart.Lines())
}

func TestCartStore_BadgeLabel(t *testing.T) {
	cart := setupCart(t)
	assert.Equal(t, "0", cart.BadgeLabel())

	cart.Add(panel(), 99)
	assert.Equal(t, "99", cart.BadgeLabel())

	cart.Add(battery(), 1)
	assert.Equal(t, "99+", cart.BadgeLabel())
	assert.Equal(t, 100, cart.TotalItems(), "underlying count stays exact")
}

func TestCartStore_CanAdd(t *testing.T) {
	cart := setupCart(t)
	b := battery() // stock 4

	assert.True(t, cart.CanAdd(b, 4))
	assert.False(t, cart.CanAdd(b, 5))

	cart.Add(b, 3)
	assert.True(t, cart.CanAdd(b, 1))
	assert.False(t, cart.CanAdd(b, 2))

	unavailable := panel()
	unavailable.IsAvailable = false
	assert.False(t, cart.CanAdd(unavailable, 1))
}

func TestCartStore_PersistsAcrossRestart(t *testing.T) {
	kv := storage.NewMemoryKV()

	first := NewCartStore(kv, nil)
	first.Add(panel(), 2)
	first.Add(battery(), 1)

	second := NewCartStore(kv, nil)
	assert.Equal(t, 3, second.TotalItems())
	line, ok := second.Item("PROD-001")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "Panneau Solaire 300W", line.Product.Name)
}

func TestCartStore_SubscribeAndUnsubscribe(t *testing.T) {
	cart := setupCart(t)

	calls := 0
	unsubscribe := cart.Subscribe(func() { calls++ })

	cart.Add(panel(), 1)
	cart.UpdateQuantity("PROD-001", 3)
	assert.Equal(t, 2, calls)

	// Silent no-ops do not notify
	cart.UpdateQuantity("PROD-999", 3)
	cart.Remove("PROD-999")
	assert.Equal(t, 2, calls)

	unsubscribe()
	cart.Clear()
	assert.Equal(t, 2, calls)
}

func TestCartStore_LinesReturnsCopy(t *testing.T) {
	cart := setupCart(t)
	cart.Add(panel(), 2)

	lines := cart.Lines()
	lines[0].Quantity = 50

	line, _ := cart.Item("PROD-001")
	assert.Equal(t, 2, line.Quantity)
}
