package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electronics-store/internal/dto"
)

func TestListProducts_SortByPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createProduct(t, "mid", "200.00", 3)
	env.createProduct(t, "cheap", "50.00", 3)
	env.createProduct(t, "dear", "900.00", 3)

	products, err := env.catalog.ListProducts(ctx, "", "price", false)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "cheap", products[0].Slug)
	assert.Equal(t, "dear", products[2].Slug)

	products, err = env.catalog.ListProducts(ctx, "", "-price", false)
	require.NoError(t, err)
	assert.Equal(t, "dear", products[0].Slug)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createProduct(t, "hp-laser", "100.00", 3)

	products, err := env.catalog.ListProducts(ctx, "laser-printers", "", false)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	_, err = env.catalog.ListProducts(ctx, "no-such-category", "", false)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestListProducts_InStockOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createProduct(t, "available", "100.00", 3)
	sold := env.createProduct(t, "sold-out", "100.00", 0)
	env.setStock(t, sold.ID, 0, false)

	products, err := env.catalog.ListProducts(ctx, "", "", true)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "available", products[0].Slug)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createProduct(t, "hp-laser", "100.00", 3)

	product, err := env.catalog.GetProduct(ctx, "hp-laser")
	require.NoError(t, err)
	require.NotNil(t, product.Category)
	assert.Equal(t, "laser-printers", product.Category.Slug)

	_, err = env.catalog.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateCategory_GeneratesSlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category, err := env.catalog.CreateCategory(ctx, &dto.CategoryRequest{Name: "Inkjet Printers"})
	require.NoError(t, err)
	assert.Equal(t, "inkjet-printers", category.Slug)
}

func TestDeleteCategory_BlockedWhileReferenced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createProduct(t, "hp-laser", "100.00", 3)

	err := env.catalog.DeleteCategory(ctx, "laser-printers")
	assert.ErrorIs(t, err, ErrCategoryInUse)

	empty, err := env.catalog.CreateCategory(ctx, &dto.CategoryRequest{Name: "Thermo"})
	require.NoError(t, err)
	assert.NoError(t, env.catalog.DeleteCategory(ctx, empty.Slug))
}

func TestUpdateProduct_StockAndFlagIndependent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "hp-laser", "100.00", 3)

	// Staff pulls the product from sale without touching counted stock.
	off := false
	updated, err := env.catalog.UpdateProduct(ctx, p.ID, &dto.ProductRequest{
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Price:      decimal.RequireFromString("120.00"),
		Year:       p.Year,
		Country:    p.Country,
		Model:      p.Model,
		InStock:    &off,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)
	assert.False(t, updated.InStock)
	assert.True(t, decimal.RequireFromString("120").Equal(updated.Price))
}
