package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"electronics-store/internal/repository"
)

// BulkResult reports how a staff bulk action went per order id.
type BulkResult struct {
	Updated []uint `json:"updated"`
	Skipped []uint `json:"skipped"`
}

// AdminService drives the staff back-office actions. Cancellation goes
// through the order ledger so stock restitution stays in one place.
type AdminService interface {
	BulkConfirm(ctx context.Context, orderIDs []uint) (*BulkResult, error)
	BulkCancel(ctx context.Context, orderIDs []uint, reason string) (*BulkResult, error)
}

type adminServiceImpl struct {
	db           *gorm.DB
	orderRepo    repository.OrderRepository
	orderService OrderService
}

func NewAdminService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	orderService OrderService,
) AdminService {
	return &adminServiceImpl{
		db:           db,
		orderRepo:    orderRepo,
		orderService: orderService,
	}
}

func (s *adminServiceImpl) BulkConfirm(ctx context.Context, orderIDs []uint) (*BulkResult, error) {
	result := &BulkResult{Updated: []uint{}, Skipped: []uint{}}

	for _, orderID := range orderIDs {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			confirmed, err := s.orderRepo.MarkConfirmed(ctx, tx, orderID)
			if err != nil {
				return err
			}
			if !confirmed {
				result.Skipped = append(result.Skipped, orderID)
				return nil
			}
			result.Updated = append(result.Updated, orderID)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("confirm order %d: %w", orderID, err)
		}
	}

	return result, nil
}

func (s *adminServiceImpl) BulkCancel(ctx context.Context, orderIDs []uint, reason string) (*BulkResult, error) {
	result := &BulkResult{Updated: []uint{}, Skipped: []uint{}}

	for _, orderID := range orderIDs {
		err := s.orderService.Cancel(ctx, orderID, reason)
		if err != nil {
			// Unknown ids are skipped, not fatal: bulk actions are
			// best-effort over whatever the staff selected.
			if errors.Is(err, ErrOrderNotFound) {
				result.Skipped = append(result.Skipped, orderID)
				continue
			}
			return nil, fmt.Errorf("cancel order %d: %w", orderID, err)
		}
		result.Updated = append(result.Updated, orderID)
	}

	return result, nil
}
