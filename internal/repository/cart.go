package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"electronics-store/internal/model"
)

type CartRepository interface {
	// GetOrCreate finds the cart bound to the session key, creating an empty
	// one on first use.
	GetOrCreate(ctx context.Context, sessionKey string, userID uint) (*model.Cart, error)
	FindBySessionKey(ctx context.Context, sessionKey string) (*model.Cart, error)
	GetItems(ctx context.Context, tx *gorm.DB, cartID uint) ([]*model.CartItem, error)
	GetItemQuantity(ctx context.Context, cartID, productID uint) (int, error)
	// SetItemQuantity stores the resulting quantity for a product; zero
	// removes the row instead.
	SetItemQuantity(ctx context.Context, cartID, productID uint, quantity int) error
	Clear(ctx context.Context, tx *gorm.DB, cartID uint) error
	DeleteBySessionKey(ctx context.Context, sessionKey string) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) GetOrCreate(ctx context.Context, sessionKey string, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).Where("session_key = ?", sessionKey).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = model.Cart{SessionKey: sessionKey, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) FindBySessionKey(ctx context.Context, sessionKey string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("session_key = ?", sessionKey).
		First(&cart).Error

	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) GetItems(ctx context.Context, tx *gorm.DB, cartID uint) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := tx.WithContext(ctx).Where("cart_id = ?", cartID).Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) GetItemQuantity(ctx context.Context, cartID, productID uint) (int, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return item.Quantity, nil
}

func (r *cartRepoImpl) SetItemQuantity(ctx context.Context, cartID, productID uint, quantity int) error {
	if quantity <= 0 {
		return r.db.WithContext(ctx).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Delete(&model.CartItem{}).Error
	}

	item := model.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": quantity,
		}),
	}).Create(&item).Error
}

func (r *cartRepoImpl) Clear(ctx context.Context, tx *gorm.DB, cartID uint) error {
	if err := tx.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		return err
	}

	return tx.WithContext(ctx).Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("updated_at", time.Now()).Error
}

func (r *cartRepoImpl) DeleteBySessionKey(ctx context.Context, sessionKey string) error {
	var cart model.Cart
	err := r.db.WithContext(ctx).Where("session_key = ?", sessionKey).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := r.db.WithContext(ctx).Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&cart).Error
}
