package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agritrade/agritrade-backend/api/responses"
	"github.com/agritrade/agritrade-backend/api/validators"
	productsvc "github.com/agritrade/agritrade-backend/internal/products"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	pkgerrors "github.com/agritrade/agritrade-backend/pkg/errors"
	"github.com/agritrade/agritrade-backend/pkg/logger"
	"github.com/agritrade/agritrade-backend/pkg/pagination"
)

type createProductRequest struct {
	Title               string   `json:"title" validate:"required"`
	Description         *string  `json:"description,omitempty"`
	Category            string   `json:"category" validate:"required"`
	Unit                string   `json:"unit" validate:"required"`
	Tags                []string `json:"tags,omitempty"`
	RetailPriceCents    *int     `json:"retailPriceCents,omitempty" validate:"omitempty,gt=0"`
	WholesalePriceCents *int     `json:"wholesalePriceCents,omitempty" validate:"omitempty,gt=0"`
	WholesaleMinQty     *int     `json:"wholesaleMinQty,omitempty" validate:"omitempty,gt=0"`
	QuantityAvailable   int      `json:"quantityAvailable" validate:"gte=0"`
	ImageRef            *string  `json:"imageRef,omitempty"`
}

type updateProductRequest struct {
	Title               *string   `json:"title,omitempty"`
	Description         *string   `json:"description,omitempty"`
	Category            *string   `json:"category,omitempty"`
	Unit                *string   `json:"unit,omitempty"`
	Tags                *[]string `json:"tags,omitempty"`
	RetailPriceCents    *int      `json:"retailPriceCents,omitempty" validate:"omitempty,gt=0"`
	WholesalePriceCents *int      `json:"wholesalePriceCents,omitempty" validate:"omitempty,gt=0"`
	WholesaleMinQty     *int      `json:"wholesaleMinQty,omitempty" validate:"omitempty,gt=0"`
	QuantityAvailable   *int      `json:"quantityAvailable,omitempty" validate:"omitempty,gte=0"`
	ImageRef            *string   `json:"imageRef,omitempty"`
}

// GetProduct returns a single active product with its vendor summary.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ListProducts returns the public catalog with filters and cursor pagination.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input := productsvc.ListProductsInput{}
		var err error

		if input.VendorID, err = validators.ParseQueryUUID(r, "vendorId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			input.Filters.Category = &category
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("unit")); raw != "" {
			unit, err := enums.ParseProductUnit(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit"))
				return
			}
			input.Filters.Unit = &unit
		}
		if min, err := validators.ParseQueryInt(r, "priceMin", 0, 0, 1<<30); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if min > 0 {
			input.Filters.PriceMinCents = &min
		}
		if max, err := validators.ParseQueryInt(r, "priceMax", 0, 0, 1<<30); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if max > 0 {
			input.Filters.PriceMaxCents = &max
		}
		if input.Filters.InStockOnly, err = validators.ParseQueryBool(r, "inStock"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Filters.Query = strings.TrimSpace(r.URL.Query().Get("q"))

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Pagination = pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// VendorCreateProduct creates a listing for the authenticated vendor.
func VendorCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		vendorID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), vendorID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// VendorUpdateProduct mutates a listing owned by the authenticated vendor.
func VendorUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		vendorID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), vendorID, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// VendorDeleteProduct soft-deletes a listing owned by the authenticated vendor.
func VendorDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		vendorID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), vendorID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// VendorListProducts returns every listing owned by the authenticated vendor.
func VendorListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		vendorID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListVendorProducts(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func (p createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	category, err := enums.ParseProductCategory(strings.TrimSpace(p.Category))
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	unit, err := enums.ParseProductUnit(strings.TrimSpace(p.Unit))
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit")
	}
	return productsvc.CreateProductInput{
		Title:               strings.TrimSpace(p.Title),
		Description:         p.Description,
		Category:            category,
		Unit:                unit,
		Tags:                p.Tags,
		RetailPriceCents:    p.RetailPriceCents,
		WholesalePriceCents: p.WholesalePriceCents,
		WholesaleMinQty:     p.WholesaleMinQty,
		QuantityAvailable:   p.QuantityAvailable,
		ImageRef:            p.ImageRef,
	}, nil
}

func (p updateProductRequest) toUpdateInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Title:               p.Title,
		Description:         p.Description,
		Tags:                p.Tags,
		RetailPriceCents:    p.RetailPriceCents,
		WholesalePriceCents: p.WholesalePriceCents,
		WholesaleMinQty:     p.WholesaleMinQty,
		QuantityAvailable:   p.QuantityAvailable,
		ImageRef:            p.ImageRef,
	}
	if p.Category != nil {
		category, err := enums.ParseProductCategory(strings.TrimSpace(*p.Category))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	if p.Unit != nil {
		unit, err := enums.ParseProductUnit(strings.TrimSpace(*p.Unit))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit")
		}
		input.Unit = &unit
	}
	return input, nil
}
