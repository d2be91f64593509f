package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"electronics-store/internal/dto"
	"electronics-store/internal/model"
	"electronics-store/internal/repository"
)

// OrderService is the transactional core of the store. Checkout debits
// stock, cancellation and deletion credit it back; each runs as one
// all-or-nothing transaction over row-locked product rows.
type OrderService interface {
	// Checkout converts the session's cart into a persisted order. The
	// password is re-checked first so a hijacked session cannot commit a
	// purchase on its own.
	Checkout(ctx context.Context, userID uint, sessionKey, password string) (*dto.CheckoutResult, error)
	// Cancel restores stock for every line and sets status cancelled.
	// Orders already cancelled or delivered are left untouched.
	Cancel(ctx context.Context, orderID uint, reason string) error
	// Delete removes a still-new order entirely, restoring its stock.
	Delete(ctx context.Context, orderID, requestingUserID uint) error
	ListForUser(ctx context.Context, userID uint) ([]*model.Order, error)
	GetForUser(ctx context.Context, orderID, userID uint) (*model.Order, error)
}

type orderServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	userRepo    repository.UserRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		userRepo:    userRepo,
	}
}

func (s *orderServiceImpl) Checkout(ctx context.Context, userID uint, sessionKey, password string) (*dto.CheckoutResult, error) {
	// Credential re-check happens before any lock is taken; no lock is ever
	// held across a user interaction.
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	cart, err := s.cartRepo.FindBySessionKey(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	requested := make(map[uint]int, len(cart.Items))
	productIDs := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		requested[item.ProductID] = item.Quantity
		productIDs = append(productIDs, item.ProductID)
	}

	var result *dto.CheckoutResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locks are acquired in product-id order inside LockInStock, so two
		// checkouts over overlapping carts cannot deadlock each other.
		products, err := s.productRepo.LockInStock(ctx, tx, productIDs)
		if err != nil {
			return fmt.Errorf("lock products: %w", err)
		}
		if len(products) == 0 {
			return ErrNoAvailableProducts
		}

		order := &model.Order{
			UserID:     userID,
			Status:     model.OrderStatusNew,
			TotalPrice: decimal.Zero,
		}

		var items []*model.OrderItem
		total := decimal.Zero
		for _, product := range products {
			quantity := requested[product.ID]
			if quantity > product.Stock {
				quantity = product.Stock
			}
			if quantity <= 0 {
				// The product sold out between add-to-cart and checkout.
				// The line is dropped, not reported.
				continue
			}

			items = append(items, &model.OrderItem{
				ProductID: product.ID,
				Quantity:  quantity,
				Price:     product.Price,
			})

			remaining := product.Stock - quantity
			if err := s.productRepo.SetStock(ctx, tx, product.ID, remaining, remaining > 0); err != nil {
				return fmt.Errorf("debit stock: %w", err)
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(quantity))))
		}

		if len(items) == 0 || total.IsZero() {
			return ErrNothingPurchasable
		}

		order.TotalPrice = total
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		for _, item := range items {
			item.OrderID = order.ID
		}
		if err := s.orderRepo.CreateItems(ctx, tx, items); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}

		if err := s.cartRepo.Clear(ctx, tx, cart.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		result = &dto.CheckoutResult{OrderID: order.ID, Total: total}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *orderServiceImpl) Cancel(ctx context.Context, orderID uint, reason string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.orderRepo.LockByID(ctx, tx, orderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("lock order: %w", err)
		}

		// The status guard is what makes restitution happen exactly once:
		// a second cancel sees zero rows updated and credits nothing.
		cancelled, err := s.orderRepo.MarkCancelled(ctx, tx, orderID, reason)
		if err != nil {
			return fmt.Errorf("mark cancelled: %w", err)
		}
		if !cancelled {
			return nil
		}

		return s.restoreStock(ctx, tx, orderID)
	})
}

func (s *orderServiceImpl) Delete(ctx context.Context, orderID, requestingUserID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("lock order: %w", err)
		}

		// Someone else's order looks like no order at all.
		if order.UserID != requestingUserID {
			return ErrOrderNotFound
		}
		if !order.Status.CanBeDeleted() {
			return ErrNotDeletable
		}

		if err := s.restoreStock(ctx, tx, orderID); err != nil {
			return err
		}

		if err := s.orderRepo.Delete(ctx, tx, orderID); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}

		return nil
	})
}

// restoreStock credits every line's quantity back to its product and puts
// the product back on sale.
func (s *orderServiceImpl) restoreStock(ctx context.Context, tx *gorm.DB, orderID uint) error {
	items, err := s.orderRepo.GetItems(ctx, tx, orderID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}

	for _, item := range items {
		if err := s.productRepo.RestoreStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("restore stock: %w", err)
		}
	}

	return nil
}

func (s *orderServiceImpl) ListForUser(ctx context.Context, userID uint) ([]*model.Order, error) {
	return s.orderRepo.ListForUser(ctx, userID)
}

func (s *orderServiceImpl) GetForUser(ctx context.Context, orderID, userID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return order, nil
}
