package bids

import (
	"context"
	"time"

	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	"github.com/agritrade/agritrade-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the bid ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBid(ctx context.Context, bid *models.Bid) (*models.Bid, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	UpdateStatusConditional(ctx context.Context, bidID uuid.UUID, from, to enums.BidStatus, updates map[string]any) (bool, error)
	ListBids(ctx context.Context, filter ListBidsFilter, params pagination.Params) (*BidListResult, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bid repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateBid(ctx context.Context, bid *models.Bid) (*models.Bid, error) {
	if err := r.db.WithContext(ctx).Create(bid).Error; err != nil {
		return nil, err
	}
	return bid, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	if err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}

// UpdateStatusConditional writes the new status only when the row still holds
// the expected prior status. Racing deciders serialize on this guard.
func (r *repository) UpdateStatusConditional(ctx context.Context, bidID uuid.UUID, from, to enums.BidStatus, updates map[string]any) (bool, error) {
	values := map[string]any{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	for column, value := range updates {
		values[column] = value
	}

	res := r.db.WithContext(ctx).
		Model(&models.Bid{}).
		Where("id = ? AND status = ?", bidID, from).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListBids(ctx context.Context, filter ListBidsFilter, params pagination.Params) (*BidListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).Model(&models.Bid{})
	switch {
	case filter.ProductID != nil:
		qb = qb.Where("product_id = ?", *filter.ProductID)
	case filter.BuyerID != nil:
		qb = qb.Where("buyer_id = ?", *filter.BuyerID)
	case filter.VendorID != nil:
		qb = qb.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Status != nil {
		qb = qb.Where("status = ?", *filter.Status)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Bid
	err = qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	resultRows := rows
	nextCursor := ""
	if len(rows) > pageSize {
		resultRows = rows[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	dtos := make([]BidDTO, 0, len(resultRows))
	for i := range resultRows {
		dtos = append(dtos, *toBidDTO(&resultRows[i]))
	}

	return &BidListResult{
		Bids:       dtos,
		NextCursor: nextCursor,
	}, nil
}
