package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekoratoriai/storefront/internal/business"
	"github.com/dekoratoriai/storefront/internal/catalog"
	"github.com/dekoratoriai/storefront/internal/identity"
	"github.com/dekoratoriai/storefront/internal/storage"
)

type pricing struct {
	business bool
	rate     int
}

func (p *pricing) IsBusinessMode() bool { return p.business }
func (p *pricing) DiscountRate() int    { return p.rate }

func product(id, price string) catalog.Product {
	p := catalog.Product{ID: id, Name: id, Title: id}
	if price != "" {
		d := decimal.RequireFromString(price)
		p.Price = &d
	}
	return p
}

func load(t *testing.T, kv storage.Store, p Pricing) *Cart {
	t.Helper()
	c, err := Load(context.Background(), kv, p)
	require.NoError(t, err)
	return c
}

func TestAdd_SameProductTwice(t *testing.T) {
	ctx := context.Background()
	c := load(t, storage.NewMemory(), &pricing{})

	require.NoError(t, c.Add(ctx, product("A", "19.99")))
	require.NoError(t, c.Add(ctx, product("A", "25")))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "19.99", items[0].Price.String())
	assert.Nil(t, items[0].BusinessDiscount)
}

func TestAdd_BusinessDiscount(t *testing.T) {
	ctx := context.Background()
	c := load(t, storage.NewMemory(), &pricing{business: true, rate: 5})

	require.NoError(t, c.Add(ctx, product("A", "100")))
	require.NoError(t, c.Add(ctx, product("B", "")))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "95", items[0].Price.String())
	require.NotNil(t, items[0].BusinessDiscount)
	assert.Equal(t, 5, *items[0].BusinessDiscount)
	assert.True(t, items[1].Price.IsZero(), "missing price counts as zero")
	assert.Equal(t, BusinessSlot, c.Slot())
}

func TestAdd_RejectsEmptyID(t *testing.T) {
	c := load(t, storage.NewMemory(), &pricing{})
	assert.ErrorIs(t, c.Add(context.Background(), catalog.Product{}), ErrInvalidProduct)
}

func TestTotalAndCount(t *testing.T) {
	ctx := context.Background()
	c := load(t, storage.NewMemory(), &pricing{})

	require.NoError(t, c.Add(ctx, product("A", "10.50")))
	require.NoError(t, c.Add(ctx, product("B", "3")))
	require.NoError(t, c.UpdateQuantity(ctx, "A", 3))
	require.NoError(t, c.Add(ctx, product("B", "3")))

	assert.Equal(t, "37.5", c.Total().String())
	assert.Equal(t, 5, c.Count())
}

func TestRemoveAndUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	c := load(t, storage.NewMemory(), &pricing{})
	require.NoError(t, c.Add(ctx, product("A", "1")))
	require.NoError(t, c.Add(ctx, product("B", "1")))
	require.NoError(t, c.Add(ctx, product("C", "1")))

	require.NoError(t, c.Remove(ctx, "missing"))
	assert.Len(t, c.Items(), 3)

	require.NoError(t, c.Remove(ctx, "A"))
	require.NoError(t, c.UpdateQuantity(ctx, "B", 0))
	require.NoError(t, c.UpdateQuantity(ctx, "C", 7))
	require.NoError(t, c.UpdateQuantity(ctx, "missing", 2))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "C", items[0].ID)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestMutationsPersist(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	c := load(t, kv, &pricing{})
	require.NoError(t, c.Add(ctx, product("A", "12")))

	raw, err := kv.Get(ctx, StandardSlot)
	require.NoError(t, err)
	var stored []Item
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "A", stored[0].ID)

	again := load(t, kv, &pricing{})
	assert.Equal(t, 1, again.Count())

	require.NoError(t, c.Clear(ctx))
	assert.Empty(t, c.Items())
	_, err = kv.Get(ctx, StandardSlot)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReload_SwitchesSlot(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	p := &pricing{rate: 5}
	c := load(t, kv, p)
	require.NoError(t, c.Add(ctx, product("A", "100")))

	p.business = true
	require.NoError(t, c.Reload(ctx))
	assert.Equal(t, BusinessSlot, c.Slot())
	assert.Empty(t, c.Items())

	require.NoError(t, c.Add(ctx, product("B", "200")))

	p.business = false
	require.NoError(t, c.Reload(ctx))
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].ID, "standard cart survives the round trip")
}

func TestLoad_CorruptSlotIsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(context.Background(), StandardSlot, []byte("[{")))

	assert.Empty(t, load(t, kv, &pricing{}).Items())
}

type failingStore struct{ storage.Store }

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestAdd_StorageFailureLeavesCartUnchanged(t *testing.T) {
	c := load(t, failingStore{storage.NewMemory()}, &pricing{})

	assert.Error(t, c.Add(context.Background(), product("A", "1")))
	assert.Empty(t, c.Items())
}

// A product added in standard mode keeps its price when added again after
// switching to business mode without reloading the cart.
func TestModeSwitchKeepsCapturedPrice(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	id := &identity.Identity{UID: "u1", Email: "jonas@imone.lt"}

	biz, err := business.Load(ctx, kv, id)
	require.NoError(t, err)
	require.NoError(t, biz.SetBusinessAccount(ctx, &business.Account{Email: id.Email, RegisteredAt: time.Now()}))

	c := load(t, kv, biz)
	require.NoError(t, c.Add(ctx, product("A", "100")))
	assert.Equal(t, "100", c.Items()[0].Price.String())

	require.NoError(t, biz.SwitchToBusinessMode(ctx))
	require.True(t, biz.IsBusinessMode())
	require.NoError(t, c.Add(ctx, product("A", "100")))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "100", items[0].Price.String())
	assert.Equal(t, "200", c.Total().String())
}
