package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/agritrade/agritrade-backend/pkg/enums"
)

// Product represents the canonical vendor listing. Pricing is split into two
// independent tiers; at least one of them must be present on an active row.
type Product struct {
	ID                  uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	VendorID            uuid.UUID             `gorm:"column:vendor_id;type:uuid;not null;index"`
	Title               string                `gorm:"column:title;not null"`
	Description         *string               `gorm:"column:description"`
	Category            enums.ProductCategory `gorm:"column:category;type:product_category;not null"`
	Unit                enums.ProductUnit     `gorm:"column:unit;type:product_unit;not null"`
	Tags                pq.StringArray        `gorm:"column:tags;type:text[]"`
	RetailPriceCents    *int                  `gorm:"column:retail_price_cents"`
	WholesalePriceCents *int                  `gorm:"column:wholesale_price_cents"`
	WholesaleMinQty     *int                  `gorm:"column:wholesale_min_qty"`
	QuantityAvailable   int                   `gorm:"column:quantity_available;not null;default:0"`
	Status              enums.ProductStatus   `gorm:"column:status;type:product_status;not null;default:'active'"`
	ImageRef            *string               `gorm:"column:image_ref"`
	CreatedAt           time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// HasWholesaleTier reports whether B2B bids can price against the row.
func (p Product) HasWholesaleTier() bool {
	return p.WholesalePriceCents != nil
}

// HasRetailTier reports whether B2C bids can price against the row.
func (p Product) HasRetailTier() bool {
	return p.RetailPriceCents != nil
}
