package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electronics-store/internal/model"
)

func TestCartAdd_ClampsToStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")
	p := env.createProduct(t, "hp-laser", "100.00", 5)

	qty, err := env.cart.Add(ctx, "sess-1", user.ID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)

	// Delta past available stock clamps at the stock ceiling.
	qty, err = env.cart.Add(ctx, "sess-1", user.ID, p.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, qty)

	// Negative delta clamps at zero and removes the row.
	qty, err = env.cart.Add(ctx, "sess-1", user.ID, p.ID, -20)
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
	assert.EqualValues(t, 0, env.countRows(t, &model.CartItem{}))
}

func TestCartAdd_UnknownOrPulledProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")

	_, err := env.cart.Add(ctx, "sess-1", user.ID, 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	p := env.createProduct(t, "hp-laser", "100.00", 5)
	env.setStock(t, p.ID, 5, false)

	_, err = env.cart.Add(ctx, "sess-1", user.ID, p.ID, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartView_ReclampsToCurrentStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")
	p := env.createProduct(t, "hp-laser", "100.00", 5)

	_, err := env.cart.Add(ctx, "sess-1", user.ID, p.ID, 3)
	require.NoError(t, err)

	// Stock shrank after the item went into the cart; the view never
	// trusts the stale quantity.
	env.setStock(t, p.ID, 1, true)

	view, err := env.cart.View(ctx, "sess-1", user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("100").Equal(view.Items[0].LineTotal))
	assert.True(t, decimal.RequireFromString("100").Equal(view.Total))
}

func TestCartView_DropsUnavailableLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")
	p1 := env.createProduct(t, "hp-laser", "100.00", 5)
	p2 := env.createProduct(t, "epson-ink", "50.00", 2)

	_, err := env.cart.Add(ctx, "sess-1", user.ID, p1.ID, 2)
	require.NoError(t, err)
	_, err = env.cart.Add(ctx, "sess-1", user.ID, p2.ID, 2)
	require.NoError(t, err)

	env.setStock(t, p2.ID, 0, false)

	view, err := env.cart.View(ctx, "sess-1", user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, p1.ID, view.Items[0].Product.ID)
	assert.True(t, decimal.RequireFromString("200").Equal(view.Total))
}

func TestCartView_EmptySession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")

	view, err := env.cart.View(ctx, "never-seen", user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}
