package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shafe/handcraft/cart/internal/cache"
	"github.com/shafe/handcraft/cart/pkg/request"
	"github.com/shafe/handcraft/cart/pkg/response"
	commonErrors "github.com/shafe/handcraft/internal/errors"
)

var (
	seedUserMina   = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	seedUserRafi   = uuid.MustParse("22222222-2222-4222-8222-222222222222")
	seedTeapotID   = uuid.MustParse("44444444-4444-4444-8444-444444444444")
	seedTrayID     = uuid.MustParse("55555555-5555-4555-8555-555555555555")
	seedTeapotCost = decimal.RequireFromString("1250.50")
)

func testDesign() request.CustomDesign {
	return request.CustomDesign{
		Name:  "sunset mug",
		Price: decimal.NewFromInt(450),
		Image: "data:image/png;base64,iVBORw0KGgo=",
		Material: request.Selection{
			Name:       "stoneware",
			Multiplier: decimal.NewFromInt(1),
		},
		Size: request.Selection{
			Name:       "large",
			Multiplier: decimal.RequireFromString("1.5"),
		},
	}
}

func TestInsertCartItemMergesDuplicateProductLines(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	_, err := env.service.InsertCartItem(c, seedUserMina, request.InsertCartItem{
		ProductId: &seedTeapotID,
		Quantity:  2,
		Price:     seedTeapotCost,
	})
	require.NoError(t, err)

	cart, err := env.service.InsertCartItem(c, seedUserMina, request.InsertCartItem{
		ProductId: &seedTeapotID,
		Quantity:  3,
		Price:     seedTeapotCost,
	})
	require.NoError(t, err)

	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, int32(5), cart.CartItems[0].Quantity)
	assert.True(t, seedTeapotCost.Equal(cart.CartItems[0].Price))
}

func TestInsertCartItemPriceComesFromCatalog(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	// A tampered client price must not survive.
	cart, err := env.service.InsertCartItem(c, seedUserMina, request.InsertCartItem{
		ProductId: &seedTeapotID,
		Quantity:  1,
		Price:     decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	require.Len(t, cart.CartItems, 1)
	assert.True(t, seedTeapotCost.Equal(cart.CartItems[0].Price))
}

func TestInsertCartItemCustomDesignGetsOwnLine(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	design := testDesign()
	_, err := env.service.InsertCartItem(c, seedUserMina, request.InsertCartItem{
		Quantity:     1,
		Price:        design.Price,
		CustomDesign: &design,
	})
	require.NoError(t, err)

	cart, err := env.service.InsertCartItem(c, seedUserMina, request.InsertCartItem{
		Quantity:     1,
		Price:        design.Price,
		CustomDesign: &design,
	})
	require.NoError(t, err)

	require.Len(t, cart.CartItems, 2)
	for _, item := range cart.CartItems {
		assert.Nil(t, item.ProductID)
		require.NotNil(t, item.CustomDesign)
		assert.Equal(t, design.Name, item.CustomDesign.Name)
		assert.True(t, design.Price.Equal(item.Price))
	}
}

func TestInsertCartItemRejectsInvalidDesign(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	design := testDesign()
	design.Name = "   "
	_, err := env.service.InsertCartItem(c, seedUserMina, request.InsertCartItem{
		Quantity:     1,
		Price:        design.Price,
		CustomDesign: &design,
	})
	require.ErrorIs(t, err, commonErrors.ErrDesignNameBlank)

	cart, err := env.service.FindCartByUserId(c, seedUserMina)
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
}

func TestUpdateCartItemQuantityRemovesAtZero(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	cart, err := env.service.InsertCartItem(c, seedUserMina, request.InsertCartItem{
		ProductId: &seedTrayID,
		Quantity:  2,
		Price:     decimal.NewFromInt(980),
	})
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)

	cart, err = env.service.UpdateCartItemQuantity(c, seedUserMina, cart.CartItems[0].ID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
}

func TestUpdateCartItemQuantityUnknownItem(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	_, err := env.service.UpdateCartItemQuantity(c, seedUserMina, uuid.New(), 3)
	require.ErrorIs(t, err, commonErrors.ErrCartItemNotFound)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	_, err := env.service.InsertCartItem(c, seedUserMina, request.InsertCartItem{
		ProductId: &seedTeapotID,
		Quantity:  1,
		Price:     seedTeapotCost,
	})
	require.NoError(t, err)

	cart, err := env.service.FindCartByUserId(c, seedUserRafi)
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
}

func TestInsertWishlistItemIsIdempotent(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	_, err := env.service.InsertWishlistItem(c, seedUserMina, seedTrayID)
	require.NoError(t, err)

	wishlist, err := env.service.InsertWishlistItem(c, seedUserMina, seedTrayID)
	require.NoError(t, err)
	require.Len(t, wishlist.Products, 1)
	assert.Equal(t, seedTrayID, wishlist.Products[0].ID)
}

func TestFindWishlistByUserIdCachesAndInvalidates(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	_, err := env.service.InsertWishlistItem(c, seedUserMina, seedTeapotID)
	require.NoError(t, err)

	wishlist, err := env.service.FindWishlistByUserId(c, seedUserMina)
	require.NoError(t, err)
	require.Len(t, wishlist.Products, 1)

	cacheKey := cache.KeyWishlistByUser(seedUserMina)
	cached, err := env.cache.Get(c, cacheKey).Result()
	require.NoError(t, err)
	fromCache := response.Wishlist{}
	require.NoError(t, json.Unmarshal([]byte(cached), &fromCache))
	assert.Equal(t, wishlist.ID, fromCache.ID)

	// writes drop the cached copy so the next read sees the new item
	_, err = env.service.InsertWishlistItem(c, seedUserMina, seedTrayID)
	require.NoError(t, err)

	exists, err := env.cache.Exists(c, cacheKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)

	wishlist, err = env.service.FindWishlistByUserId(c, seedUserMina)
	require.NoError(t, err)
	assert.Len(t, wishlist.Products, 2)
}
