package product

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	"github.com/agritrade/agritrade-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorSummary exposes the minimal vendor data used by product read paths.
type VendorSummary struct {
	VendorID    uuid.UUID
	DisplayName string
	Locale      string
}

const vendorSummaryQuery = `
SELECT u.id AS vendor_id,
       u.display_name,
       u.locale
FROM users u
WHERE u.id = ? AND u.is_active = TRUE
`

// Repository wires together product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SoftDeleteProduct marks the product deleted so open bids keep a valid reference.
func (r *Repository) SoftDeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     enums.ProductStatusDeleted,
			"updated_at": time.Now().UTC(),
		}).Error
}

// DecrementQuantity atomically subtracts qty when enough inventory remains
// and the product is still active. Returns false without error when the
// guard fails.
func (r *Repository) DecrementQuantity(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	if qty <= 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET quantity_available = quantity_available - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ? AND quantity_available >= ?
	`, qty, productID, enums.ProductStatusActive, qty)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RestoreQuantity adds qty back onto the product inventory.
func (r *Repository) RestoreQuantity(ctx context.Context, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET quantity_available = quantity_available + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, productID).Error
}

// GetQuantityAvailable reads the current inventory level.
func (r *Repository) GetQuantityAvailable(ctx context.Context, productID uuid.UUID) (int, error) {
	var qty int
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Pluck("quantity_available", &qty).
		Error
	return qty, err
}

// GetProductDetail fetches a product together with its vendor summary.
func (r *Repository) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, *VendorSummary, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, nil, err
	}

	summary, err := r.fetchVendorSummary(ctx, product.VendorID)
	if err != nil {
		return &product, nil, err
	}
	return &product, summary, nil
}

// ListProductsByVendor lists the products owned by a vendor, newest first.
func (r *Repository) ListProductsByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Where("status <> ?", enums.ProductStatusDeleted).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

type productListQuery struct {
	Pagination pagination.Params
	Filters    ProductListFilters
	VendorID   *uuid.UUID
}

// ListProductSummaries runs the filtered browse query with cursor pagination.
func (r *Repository) ListProductSummaries(ctx context.Context, query productListQuery) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Table("products p").
		Select(strings.Join([]string{
			"p.id",
			"p.vendor_id",
			"p.title",
			"p.category",
			"p.unit",
			"p.retail_price_cents",
			"p.wholesale_price_cents",
			"p.wholesale_min_qty",
			"p.quantity_available",
			"p.created_at",
			"p.updated_at",
		}, ", ")).
		Joins("JOIN users u ON u.id = p.vendor_id").
		Where("p.status = ?", enums.ProductStatusActive).
		Where("u.is_active = ?", true)

	filter := query.Filters
	if filter.Category != nil {
		qb = qb.Where("p.category = ?", *filter.Category)
	}
	if filter.Unit != nil {
		qb = qb.Where("p.unit = ?", *filter.Unit)
	}
	if filter.PriceMinCents != nil {
		qb = qb.Where("COALESCE(p.retail_price_cents, p.wholesale_price_cents) >= ?", *filter.PriceMinCents)
	}
	if filter.PriceMaxCents != nil {
		qb = qb.Where("COALESCE(p.retail_price_cents, p.wholesale_price_cents) <= ?", *filter.PriceMaxCents)
	}
	if filter.InStockOnly {
		qb = qb.Where("p.quantity_available > 0")
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("LOWER(p.title) LIKE ?", pattern)
	}

	if query.VendorID != nil {
		qb = qb.Where("p.vendor_id = ?", *query.VendorID)
	}

	if cursor != nil {
		qb = qb.Where("(p.created_at < ?) OR (p.created_at = ? AND p.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("p.created_at DESC").Order("p.id DESC").Limit(limitWithBuffer)

	var records []productSummaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]ProductSummary, 0, len(resultRows))
	for _, record := range resultRows {
		summaries = append(summaries, record.toSummary())
	}

	return &ProductListResult{
		Products:   summaries,
		NextCursor: nextCursor,
	}, nil
}

type productSummaryRecord struct {
	ID                  uuid.UUID
	VendorID            uuid.UUID
	Title               string
	Category            string
	Unit                string
	RetailPriceCents    sql.NullInt64
	WholesalePriceCents sql.NullInt64
	WholesaleMinQty     sql.NullInt64
	QuantityAvailable   int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (r productSummaryRecord) toSummary() ProductSummary {
	return ProductSummary{
		ID:                  r.ID,
		VendorID:            r.VendorID,
		Title:               r.Title,
		Category:            r.Category,
		Unit:                r.Unit,
		RetailPriceCents:    nullIntPtr(r.RetailPriceCents),
		WholesalePriceCents: nullIntPtr(r.WholesalePriceCents),
		WholesaleMinQty:     nullIntPtr(r.WholesaleMinQty),
		QuantityAvailable:   r.QuantityAvailable,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func nullIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

func (r *Repository) fetchVendorSummary(ctx context.Context, vendorID uuid.UUID) (*VendorSummary, error) {
	type vendorRow struct {
		VendorID    uuid.UUID
		DisplayName string
		Locale      string
	}

	var row vendorRow
	if err := r.db.WithContext(ctx).Raw(vendorSummaryQuery, vendorID).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.VendorID == uuid.Nil {
		return nil, nil
	}
	return &VendorSummary{
		VendorID:    row.VendorID,
		DisplayName: row.DisplayName,
		Locale:      row.Locale,
	}, nil
}
