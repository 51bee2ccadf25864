package product

import (
	"time"

	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	"github.com/agritrade/agritrade-backend/pkg/pagination"
	"github.com/google/uuid"
)

// ProductDTO is the full product representation returned to clients.
type ProductDTO struct {
	ID                  uuid.UUID             `json:"id"`
	VendorID            uuid.UUID             `json:"vendorId"`
	Title               string                `json:"title"`
	Description         *string               `json:"description,omitempty"`
	Category            enums.ProductCategory `json:"category"`
	Unit                enums.ProductUnit     `json:"unit"`
	Tags                []string              `json:"tags"`
	RetailPriceCents    *int                  `json:"retailPriceCents,omitempty"`
	WholesalePriceCents *int                  `json:"wholesalePriceCents,omitempty"`
	WholesaleMinQty     *int                  `json:"wholesaleMinQty,omitempty"`
	QuantityAvailable   int                   `json:"quantityAvailable"`
	Status              enums.ProductStatus   `json:"status"`
	ImageRef            *string               `json:"imageRef,omitempty"`
	Vendor              *VendorSummaryDTO     `json:"vendor,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
}

// VendorSummaryDTO is the minimal vendor block embedded in product reads.
type VendorSummaryDTO struct {
	VendorID    uuid.UUID `json:"vendorId"`
	DisplayName string    `json:"displayName"`
	Locale      string    `json:"locale"`
}

// ProductSummary is the compact row used by the browse endpoint.
type ProductSummary struct {
	ID                  uuid.UUID `json:"id"`
	VendorID            uuid.UUID `json:"vendorId"`
	Title               string    `json:"title"`
	Category            string    `json:"category"`
	Unit                string    `json:"unit"`
	RetailPriceCents    *int    `json:"retailPriceCents,omitempty"`
	WholesalePriceCents *int    `json:"wholesalePriceCents,omitempty"`
	WholesaleMinQty     *int    `json:"wholesaleMinQty,omitempty"`
	QuantityAvailable   int     `json:"quantityAvailable"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ProductListResult pairs a page of summaries with the next cursor.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	Category      *enums.ProductCategory `json:"category,omitempty"`
	Unit          *enums.ProductUnit     `json:"unit,omitempty"`
	PriceMinCents *int                   `json:"price_min_cents,omitempty"`
	PriceMaxCents *int                   `json:"price_max_cents,omitempty"`
	InStockOnly   bool                   `json:"in_stock_only,omitempty"`
	Query         string                 `json:"q,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate/filter the catalog.
type ListProductsInput struct {
	VendorID   *uuid.UUID
	Filters    ProductListFilters
	Pagination pagination.Params
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Title               string
	Description         *string
	Category            enums.ProductCategory
	Unit                enums.ProductUnit
	Tags                []string
	RetailPriceCents    *int
	WholesalePriceCents *int
	WholesaleMinQty     *int
	QuantityAvailable   int
	ImageRef            *string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Title               *string
	Description         *string
	Category            *enums.ProductCategory
	Unit                *enums.ProductUnit
	Tags                *[]string
	RetailPriceCents    *int
	WholesalePriceCents *int
	WholesaleMinQty     *int
	QuantityAvailable   *int
	ImageRef            *string
}

func toProductDTO(product *models.Product, vendor *VendorSummary) *ProductDTO {
	if product == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:                  product.ID,
		VendorID:            product.VendorID,
		Title:               product.Title,
		Description:         product.Description,
		Category:            product.Category,
		Unit:                product.Unit,
		Tags:                product.Tags,
		RetailPriceCents:    product.RetailPriceCents,
		WholesalePriceCents: product.WholesalePriceCents,
		WholesaleMinQty:     product.WholesaleMinQty,
		QuantityAvailable:   product.QuantityAvailable,
		Status:              product.Status,
		ImageRef:            product.ImageRef,
		CreatedAt:           product.CreatedAt,
		UpdatedAt:           product.UpdatedAt,
	}
	if vendor != nil {
		dto.Vendor = &VendorSummaryDTO{
			VendorID:    vendor.VendorID,
			DisplayName: vendor.DisplayName,
			Locale:      vendor.Locale,
		}
	}
	return dto
}
