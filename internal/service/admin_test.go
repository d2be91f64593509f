package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electronics-store/internal/model"
)

func TestBulkConfirm(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")
	p := env.createProduct(t, "hp-laser", "100.00", 10)

	env.newCart(t, "sess-1", user.ID, map[uint]int{p.ID: 1})
	fresh, err := env.order.Checkout(ctx, user.ID, "sess-1", "secret1")
	require.NoError(t, err)

	env.newCart(t, "sess-2", user.ID, map[uint]int{p.ID: 1})
	delivered, err := env.order.Checkout(ctx, user.ID, "sess-2", "secret1")
	require.NoError(t, err)
	err = env.db.Model(&model.Order{}).Where("id = ?", delivered.OrderID).
		Update("status", model.OrderStatusDelivered).Error
	require.NoError(t, err)

	result, err := env.admin.BulkConfirm(ctx, []uint{fresh.OrderID, delivered.OrderID})
	require.NoError(t, err)
	assert.Equal(t, []uint{fresh.OrderID}, result.Updated)
	assert.Equal(t, []uint{delivered.OrderID}, result.Skipped)

	order, err := env.order.GetForUser(ctx, fresh.OrderID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, order.Status)
}

func TestBulkCancel_SharesRestitutionPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")
	p := env.createProduct(t, "hp-laser", "100.00", 10)

	env.newCart(t, "sess-1", user.ID, map[uint]int{p.ID: 3})
	first, err := env.order.Checkout(ctx, user.ID, "sess-1", "secret1")
	require.NoError(t, err)

	env.newCart(t, "sess-2", user.ID, map[uint]int{p.ID: 2})
	second, err := env.order.Checkout(ctx, user.ID, "sess-2", "secret1")
	require.NoError(t, err)

	require.Equal(t, 5, env.productByID(t, p.ID).Stock)

	result, err := env.admin.BulkCancel(ctx, []uint{first.OrderID, second.OrderID, 9999}, "supplier recall")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{first.OrderID, second.OrderID}, result.Updated)
	assert.Equal(t, []uint{9999}, result.Skipped)

	// Both orders' quantities are credited back.
	assert.Equal(t, 10, env.productByID(t, p.ID).Stock)

	order, err := env.order.GetForUser(ctx, first.OrderID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, order.Status)
	require.NotNil(t, order.CancellationReason)
	assert.Equal(t, "supplier recall", *order.CancellationReason)
}
