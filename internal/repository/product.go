package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"electronics-store/internal/model"
)

// ProductSort maps the public sort keys to ORDER BY clauses. The zero
// value ("recency") is newest-first, matching the catalog default.
var ProductSort = map[string]string{
	"":            "created_at DESC",
	"-created_at": "created_at DESC",
	"price":       "price ASC",
	"-price":      "price DESC",
	"name":        "name ASC",
	"year":        "year ASC",
	"-year":       "year DESC",
}

type ProductRepository interface {
	List(ctx context.Context, categorySlug, sort string, inStockOnly bool) ([]*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindInStockByID(ctx context.Context, productID uint) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []uint) ([]*model.Product, error)
	// LockInStock loads the in-stock products among productIDs with row-level
	// write locks, ordered by id so concurrent checkouts over overlapping
	// carts acquire locks in the same order.
	LockInStock(ctx context.Context, tx *gorm.DB, productIDs []uint) ([]*model.Product, error)
	SetStock(ctx context.Context, tx *gorm.DB, productID uint, stock int, inStock bool) error
	RestoreStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) error
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) List(ctx context.Context, categorySlug, sort string, inStockOnly bool) ([]*model.Product, error) {
	order, ok := ProductSort[sort]
	if !ok {
		order = ProductSort[""]
	}

	q := r.db.WithContext(ctx).Preload("Category").Order(order)
	if categorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if inStockOnly {
		q = q.Where("products.in_stock = ?", true)
	}

	var products []*model.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindInStockByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND in_stock = ?", productID, true).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []uint) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) LockInStock(ctx context.Context, tx *gorm.DB, productIDs []uint) ([]*model.Product, error) {
	q := tx.WithContext(ctx)
	// sqlite has no FOR UPDATE; its single-writer transaction lock already
	// serializes the checkout path there.
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var products []*model.Product
	err := q.
		Where("id IN ? AND in_stock = ?", productIDs, true).
		Order("id ASC").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) SetStock(ctx context.Context, tx *gorm.DB, productID uint, stock int, inStock bool) error {
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock":    stock,
			"in_stock": inStock,
		}).Error
}

func (r *productRepoImpl) RestoreStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) error {
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock":    gorm.Expr("stock + ?", quantity),
			"in_stock": true,
		}).Error
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepoImpl) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error

	return count, err
}
