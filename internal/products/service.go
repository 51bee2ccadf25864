package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agritrade/agritrade-backend/pkg/db"
	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	pkgerrors "github.com/agritrade/agritrade-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes catalog reads and vendor product management.
type Service interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]ProductDTO, error)
	CreateProduct(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, vendorID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, vendorID, productID uuid.UUID) error
}

type userLoader interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	users    userLoader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, users userLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, dbClient: dbClient, users: users}, nil
}

// GetProduct returns the product detail with its vendor summary.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, vendor, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product detail")
	}
	if product.Status == enums.ProductStatusDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return toProductDTO(product, vendor), nil
}

// ListProducts runs the public browse query.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	result, err := s.repo.ListProductSummaries(ctx, productListQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
		VendorID:   input.VendorID,
	})
	if err != nil {
		var typed *pkgerrors.Error
		if errors.As(err, &typed) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return result, nil
}

// ListVendorProducts returns all non-deleted products owned by the vendor.
func (s *service) ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]ProductDTO, error) {
	rows, err := s.repo.ListProductsByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list vendor products")
	}
	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *toProductDTO(&rows[i], nil))
	}
	return dtos, nil
}

// CreateProduct validates pricing tiers and inserts the listing.
func (s *service) CreateProduct(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if err := s.ensureVendor(ctx, vendorID); err != nil {
		return nil, err
	}
	if err := validatePricing(input.RetailPriceCents, input.WholesalePriceCents, input.WholesaleMinQty); err != nil {
		return nil, err
	}
	if input.QuantityAvailable < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_available cannot be negative")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	product := &models.Product{
		ID:                  uuid.New(),
		VendorID:            vendorID,
		Title:               input.Title,
		Description:         input.Description,
		Category:            input.Category,
		Unit:                input.Unit,
		Tags:                input.Tags,
		RetailPriceCents:    input.RetailPriceCents,
		WholesalePriceCents: input.WholesalePriceCents,
		WholesaleMinQty:     input.WholesaleMinQty,
		QuantityAvailable:   input.QuantityAvailable,
		Status:              enums.ProductStatusActive,
		ImageRef:            input.ImageRef,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return toProductDTO(created, nil), nil
}

// UpdateProduct applies partial updates after an ownership check.
func (s *service) UpdateProduct(ctx context.Context, vendorID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadOwnedProduct(ctx, vendorID, productID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
	if input.RetailPriceCents != nil {
		product.RetailPriceCents = input.RetailPriceCents
	}
	if input.WholesalePriceCents != nil {
		product.WholesalePriceCents = input.WholesalePriceCents
	}
	if input.WholesaleMinQty != nil {
		product.WholesaleMinQty = input.WholesaleMinQty
	}
	if input.QuantityAvailable != nil {
		if *input.QuantityAvailable < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_available cannot be negative")
		}
		product.QuantityAvailable = *input.QuantityAvailable
	}
	if input.ImageRef != nil {
		product.ImageRef = input.ImageRef
	}

	if err := validatePricing(product.RetailPriceCents, product.WholesalePriceCents, product.WholesaleMinQty); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return toProductDTO(updated, nil), nil
}

// DeleteProduct soft deletes so historical bids keep their product reference.
func (s *service) DeleteProduct(ctx context.Context, vendorID, productID uuid.UUID) error {
	if _, err := s.loadOwnedProduct(ctx, vendorID, productID); err != nil {
		return err
	}
	if err := s.repo.SoftDeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) loadOwnedProduct(ctx context.Context, vendorID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if product.Status == enums.ProductStatusDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if product.VendorID != vendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another vendor")
	}
	return product, nil
}

func (s *service) ensureVendor(ctx context.Context, vendorID uuid.UUID) error {
	user, err := s.users.FindActiveByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load vendor")
	}
	if user.Role != enums.UserRoleVendor {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only vendors can manage products")
	}
	return nil
}

func validatePricing(retail, wholesale, wholesaleMinQty *int) error {
	if retail == nil && wholesale == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one pricing tier is required")
	}
	if retail != nil && *retail <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "retail_price_cents must be positive")
	}
	if wholesale != nil {
		if *wholesale <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "wholesale_price_cents must be positive")
		}
		if wholesaleMinQty == nil || *wholesaleMinQty <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "wholesale tier requires wholesale_min_qty")
		}
	}
	return nil
}
