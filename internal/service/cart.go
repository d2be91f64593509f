package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"electronics-store/internal/dto"
	"electronics-store/internal/repository"
)

// CartService maintains the session-scoped purchase intent. It never locks
// anything: quantities are advisory and re-validated at checkout.
type CartService interface {
	// Add applies a signed delta to the product's quantity, clamped to
	// [0, stock], and returns the resulting quantity.
	Add(ctx context.Context, sessionKey string, userID, productID uint, delta int) (int, error)
	// View re-fetches every product and re-clamps quantities to current
	// stock, so a cart never shows more than can actually be bought.
	View(ctx context.Context, sessionKey string, userID uint) (*dto.CartView, error)
}

type cartServiceImpl struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartServiceImpl{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func clampQuantity(q, stock int) int {
	if q < 0 {
		return 0
	}
	if q > stock {
		return stock
	}
	return q
}

func (s *cartServiceImpl) Add(ctx context.Context, sessionKey string, userID, productID uint, delta int) (int, error) {
	product, err := s.productRepo.FindInStockByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, err
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, sessionKey, userID)
	if err != nil {
		return 0, err
	}

	current, err := s.cartRepo.GetItemQuantity(ctx, cart.ID, productID)
	if err != nil {
		return 0, err
	}

	quantity := clampQuantity(current+delta, product.Stock)
	if err := s.cartRepo.SetItemQuantity(ctx, cart.ID, productID, quantity); err != nil {
		return 0, err
	}

	return quantity, nil
}

func (s *cartServiceImpl) View(ctx context.Context, sessionKey string, userID uint) (*dto.CartView, error) {
	view := &dto.CartView{
		Items: []dto.CartLine{},
		Total: decimal.Zero,
	}

	cart, err := s.cartRepo.FindBySessionKey(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, err
	}

	for _, item := range cart.Items {
		product, err := s.productRepo.FindInStockByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Product vanished or was pulled from sale since it was
				// added; drop the stale line.
				continue
			}
			return nil, err
		}

		quantity := clampQuantity(item.Quantity, product.Stock)
		if quantity == 0 {
			continue
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
		view.Items = append(view.Items, dto.CartLine{
			Product:   product,
			Quantity:  quantity,
			LineTotal: lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}

	return view, nil
}
