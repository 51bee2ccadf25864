package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryAdjuster adapts the repository for callers that mutate stock
// inside their own transaction, such as bid acceptance.
type InventoryAdjuster struct {
	repo *Repository
}

// NewInventoryAdjuster wraps the product repository for transactional stock
// adjustments.
func NewInventoryAdjuster(repo *Repository) *InventoryAdjuster {
	return &InventoryAdjuster{repo: repo}
}

// Decrement subtracts qty from available stock. It returns false when the
// row holds less than qty; nothing is written in that case.
func (a *InventoryAdjuster) Decrement(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (bool, error) {
	return a.repo.WithTx(tx).DecrementQuantity(ctx, productID, qty)
}

// Restore adds qty back to available stock.
func (a *InventoryAdjuster) Restore(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	return a.repo.WithTx(tx).RestoreQuantity(ctx, productID, qty)
}

// QuantityAvailable reads the current stock level within the transaction.
func (a *InventoryAdjuster) QuantityAvailable(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int, error) {
	return a.repo.WithTx(tx).GetQuantityAvailable(ctx, productID)
}
