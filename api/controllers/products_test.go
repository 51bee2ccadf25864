package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	productsvc "github.com/agritrade/agritrade-backend/internal/products"
	"github.com/agritrade/agritrade-backend/pkg/enums"
)

type testProductService struct {
	getFn        func(ctx context.Context, productID uuid.UUID) (*productsvc.ProductDTO, error)
	listFn       func(ctx context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error)
	listVendorFn func(ctx context.Context, vendorID uuid.UUID) ([]productsvc.ProductDTO, error)
	createFn     func(ctx context.Context, vendorID uuid.UUID, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error)
	updateFn     func(ctx context.Context, vendorID, productID uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error)
	deleteFn     func(ctx context.Context, vendorID, productID uuid.UUID) error
}

func (s *testProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*productsvc.ProductDTO, error) {
	if s.getFn != nil {
		return s.getFn(ctx, productID)
	}
	return &productsvc.ProductDTO{}, nil
}

func (s *testProductService) ListProducts(ctx context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, input)
	}
	return &productsvc.ProductListResult{}, nil
}

func (s *testProductService) ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]productsvc.ProductDTO, error) {
	if s.listVendorFn != nil {
		return s.listVendorFn(ctx, vendorID)
	}
	return nil, nil
}

func (s *testProductService) CreateProduct(ctx context.Context, vendorID uuid.UUID, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, vendorID, input)
	}
	return &productsvc.ProductDTO{}, nil
}

func (s *testProductService) UpdateProduct(ctx context.Context, vendorID, productID uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, vendorID, productID, input)
	}
	return &productsvc.ProductDTO{}, nil
}

func (s *testProductService) DeleteProduct(ctx context.Context, vendorID, productID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, vendorID, productID)
	}
	return nil
}

func TestListProductsForwardsFilters(t *testing.T) {
	var captured productsvc.ListProductsInput
	svc := &testProductService{
		listFn: func(ctx context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error) {
			captured = input
			return &productsvc.ProductListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=grains&inStock=true&priceMin=1000&limit=20&q=rice", nil)
	resp := httptest.NewRecorder()
	ListProducts(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.Filters.Category == nil || *captured.Filters.Category != enums.ProductCategoryGrains {
		t.Fatalf("category filter not forwarded: %+v", captured.Filters)
	}
	if !captured.Filters.InStockOnly {
		t.Fatal("inStock filter not forwarded")
	}
	if captured.Filters.PriceMinCents == nil || *captured.Filters.PriceMinCents != 1000 {
		t.Fatalf("price filter not forwarded: %+v", captured.Filters)
	}
	if captured.Filters.Query != "rice" {
		t.Fatalf("query not forwarded: %q", captured.Filters.Query)
	}
	if captured.Pagination.Limit != 20 {
		t.Fatalf("limit not forwarded: %d", captured.Pagination.Limit)
	}
}

func TestListProductsRejectsUnknownCategory(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=gadgets", nil)
	resp := httptest.NewRecorder()
	ListProducts(&testProductService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestVendorCreateProductUsesTokenIdentity(t *testing.T) {
	vendorID := uuid.New()
	var capturedVendor uuid.UUID
	var captured productsvc.CreateProductInput
	svc := &testProductService{
		createFn: func(ctx context.Context, vid uuid.UUID, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
			capturedVendor = vid
			captured = input
			return &productsvc.ProductDTO{ID: uuid.New(), VendorID: vid}, nil
		},
	}

	body := `{"title":"Basmati Rice","category":"grains","unit":"quintal","retailPriceCents":5000,"quantityAvailable":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendor/products", strings.NewReader(body))
	req = authedRequest(req, vendorID, string(enums.UserRoleVendor))

	resp := httptest.NewRecorder()
	VendorCreateProduct(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if capturedVendor != vendorID {
		t.Fatalf("vendor id not taken from token context: %s", capturedVendor)
	}
	if captured.Title != "Basmati Rice" || captured.Unit != enums.ProductUnitQuintal {
		t.Fatalf("payload not forwarded: %+v", captured)
	}
}

func TestVendorCreateProductRejectsNegativePrice(t *testing.T) {
	body := `{"title":"Rice","category":"grains","unit":"quintal","retailPriceCents":-5,"quantityAvailable":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendor/products", strings.NewReader(body))
	req = authedRequest(req, uuid.New(), string(enums.UserRoleVendor))

	resp := httptest.NewRecorder()
	VendorCreateProduct(&testProductService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestVendorUpdateProductForwardsPatch(t *testing.T) {
	vendorID := uuid.New()
	productID := uuid.New()
	var captured productsvc.UpdateProductInput
	svc := &testProductService{
		updateFn: func(ctx context.Context, vid, pid uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
			if vid != vendorID || pid != productID {
				t.Fatalf("unexpected ids %s %s", vid, pid)
			}
			captured = input
			return &productsvc.ProductDTO{ID: pid}, nil
		},
	}

	body := `{"quantityAvailable":75}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/vendor/products/"+productID.String(), strings.NewReader(body))
	req = authedRequest(req, vendorID, string(enums.UserRoleVendor))
	req = addRouteParam(req, "productID", productID.String())

	resp := httptest.NewRecorder()
	VendorUpdateProduct(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.QuantityAvailable == nil || *captured.QuantityAvailable != 75 {
		t.Fatalf("quantity patch not forwarded: %+v", captured)
	}
}

func TestVendorDeleteProduct(t *testing.T) {
	vendorID := uuid.New()
	productID := uuid.New()
	called := false
	svc := &testProductService{
		deleteFn: func(ctx context.Context, vid, pid uuid.UUID) error {
			called = true
			if vid != vendorID || pid != productID {
				t.Fatalf("unexpected ids %s %s", vid, pid)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/vendor/products/"+productID.String(), nil)
	req = authedRequest(req, vendorID, string(enums.UserRoleVendor))
	req = addRouteParam(req, "productID", productID.String())

	resp := httptest.NewRecorder()
	VendorDeleteProduct(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}
