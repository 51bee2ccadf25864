package product

import (
	"fmt"
	"testing"

	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:products_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return db
}

func mustCreateTestVendor(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:          uuid.New(),
		Email:       fmt.Sprintf("at_test_%s@example.com", uuid.NewString()),
		DisplayName: "Repo Vendor",
		Role:        enums.UserRoleVendor,
		Locale:      "hi",
		IsActive:    true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	return user
}

func mustCreateTestBuyer(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:          uuid.New(),
		Email:       fmt.Sprintf("at_test_%s@example.com", uuid.NewString()),
		DisplayName: "Repo Buyer",
		Role:        enums.UserRoleBuyer,
		Locale:      "en",
		IsActive:    true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create buyer: %v", err)
	}
	return user
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, vendorID uuid.UUID, qty int) *models.Product {
	t.Helper()
	retail := 4000
	wholesale := 3200
	minQty := 25
	product := &models.Product{
		ID:                  uuid.New(),
		VendorID:            vendorID,
		Title:               "Basmati Rice",
		Category:            enums.ProductCategoryGrains,
		Unit:                enums.ProductUnitQuintal,
		Tags:                pq.StringArray{"organic", "rice"},
		RetailPriceCents:    &retail,
		WholesalePriceCents: &wholesale,
		WholesaleMinQty:     &minQty,
		QuantityAvailable:   qty,
		Status:              enums.ProductStatusActive,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
