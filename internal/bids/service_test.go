package bids

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/agritrade/agritrade-backend/internal/notifications"
	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	pkgerrors "github.com/agritrade/agritrade-backend/pkg/errors"
	"github.com/agritrade/agritrade-backend/pkg/events"
	"github.com/agritrade/agritrade-backend/pkg/logger"
	"github.com/agritrade/agritrade-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubBidRepo struct {
	bid              *models.Bid
	created          *models.Bid
	conditionalOK    bool
	conditionalCalls int
	lastUpdates      map[string]any
	listResult       *BidListResult
	createErr        error
}

func (s *stubBidRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubBidRepo) CreateBid(ctx context.Context, bid *models.Bid) (*models.Bid, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = bid
	return bid, nil
}

func (s *stubBidRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	if s.bid == nil || s.bid.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.bid
	return &copied, nil
}

func (s *stubBidRepo) UpdateStatusConditional(ctx context.Context, bidID uuid.UUID, from, to enums.BidStatus, updates map[string]any) (bool, error) {
	s.conditionalCalls++
	s.lastUpdates = updates
	if s.conditionalOK {
		s.bid.Status = to
	}
	return s.conditionalOK, nil
}

func (s *stubBidRepo) ListBids(ctx context.Context, filter ListBidsFilter, params pagination.Params) (*BidListResult, error) {
	if s.listResult != nil {
		return s.listResult, nil
	}
	return &BidListResult{}, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubProductReader struct {
	product *models.Product
}

func (s *stubProductReader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.product
	return &copied, nil
}

type stubInventory struct {
	decrementOK    bool
	decrementErr   error
	decrementCalls int
	decrementedQty int
	restoreCalls   int
	remaining      int
}

func (s *stubInventory) Decrement(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (bool, error) {
	s.decrementCalls++
	s.decrementedQty = qty
	return s.decrementOK, s.decrementErr
}

func (s *stubInventory) Restore(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	s.restoreCalls++
	return nil
}

func (s *stubInventory) QuantityAvailable(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int, error) {
	return s.remaining, nil
}

type stubNotifier struct {
	inputs []notifications.NotifyInput
	err    error
}

func (s *stubNotifier) Notify(ctx context.Context, input notifications.NotifyInput) error {
	s.inputs = append(s.inputs, input)
	return s.err
}

type stubEventPublisher struct {
	types []enums.BidEventType
	data  []events.BidEventData
	err   error
}

func (s *stubEventPublisher) PublishBidEvent(ctx context.Context, eventType enums.BidEventType, actor *events.ActorRef, data events.BidEventData) error {
	s.types = append(s.types, eventType)
	s.data = append(s.data, data)
	return s.err
}

type serviceFixture struct {
	svc       Service
	repo      *stubBidRepo
	products  *stubProductReader
	inventory *stubInventory
	notifier  *stubNotifier
	events    *stubEventPublisher
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	fixture := &serviceFixture{
		repo:      &stubBidRepo{conditionalOK: true},
		products:  &stubProductReader{},
		inventory: &stubInventory{decrementOK: true},
		notifier:  &stubNotifier{},
		events:    &stubEventPublisher{},
	}
	logg := logger.New(logger.Options{ServiceName: "bids-test", Output: io.Discard})
	svc, err := NewService(
		fixture.repo,
		stubTxRunner{},
		fixture.products,
		fixture.inventory,
		fixture.notifier,
		fixture.events,
		nil,
		logg,
		24*time.Hour,
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	fixture.svc = svc
	return fixture
}

func activeProduct(vendorID uuid.UUID) *models.Product {
	retail := 5000
	wholesale := 4500
	minQty := 25
	return &models.Product{
		ID:                  uuid.New(),
		VendorID:            vendorID,
		Title:               "Basmati Rice",
		Category:            enums.ProductCategoryGrains,
		Unit:                enums.ProductUnitQuintal,
		RetailPriceCents:    &retail,
		WholesalePriceCents: &wholesale,
		WholesaleMinQty:     &minQty,
		QuantityAvailable:   100,
		Status:              enums.ProductStatusActive,
	}
}

func pendingBid(product *models.Product, buyerID uuid.UUID) *models.Bid {
	return &models.Bid{
		ID:          uuid.New(),
		ProductID:   product.ID,
		VendorID:    product.VendorID,
		BuyerID:     buyerID,
		BuyerType:   enums.BuyerTypeB2B,
		AmountCents: 4500,
		Quantity:    50,
		TotalCents:  225000,
		Status:      enums.BidStatusPending,
		ExpiresAt:   time.Now().UTC().Add(12 * time.Hour),
	}
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) *pkgerrors.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s, got %s (%v)", want, typed.Code(), err)
	}
	return typed
}

func TestPlaceBidFreezesTotalAndNotifiesVendor(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	vendorID := uuid.New()
	buyerID := uuid.New()
	fixture.products.product = activeProduct(vendorID)

	dto, err := fixture.svc.PlaceBid(context.Background(), PlaceBidInput{
		BuyerID:     buyerID,
		ProductID:   fixture.products.product.ID,
		BuyerType:   enums.BuyerTypeB2B,
		AmountCents: 4500,
		Quantity:    50,
	})
	if err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}

	if dto.TotalCents != 225000 {
		t.Fatalf("expected total 225000, got %d", dto.TotalCents)
	}
	if dto.Status != enums.BidStatusPending {
		t.Fatalf("expected pending, got %s", dto.Status)
	}
	if dto.VendorID != vendorID {
		t.Fatalf("vendor id not frozen from product")
	}
	if dto.ExpiresAt.Before(time.Now().UTC().Add(23 * time.Hour)) {
		t.Fatalf("expiry not set from ttl: %s", dto.ExpiresAt)
	}
	if len(fixture.notifier.inputs) != 1 {
		t.Fatalf("expected one notification, got %d", len(fixture.notifier.inputs))
	}
	notify := fixture.notifier.inputs[0]
	if notify.UserID != vendorID || notify.Type != enums.NotificationTypeBidReceived {
		t.Fatalf("unexpected notification %+v", notify)
	}
	if len(fixture.events.types) != 1 || fixture.events.types[0] != enums.EventBidPlaced {
		t.Fatalf("expected bid.placed event, got %v", fixture.events.types)
	}
	if fixture.events.data[0].TotalCents != 225000 {
		t.Fatalf("event total mismatch: %d", fixture.events.data[0].TotalCents)
	}
}

func TestPlaceBidValidationOrder(t *testing.T) {
	t.Parallel()

	vendorID := uuid.New()
	buyerID := uuid.New()

	t.Run("missing product", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		_, err := fixture.svc.PlaceBid(context.Background(), PlaceBidInput{
			BuyerID: buyerID, ProductID: uuid.New(),
			BuyerType: enums.BuyerTypeB2C, AmountCents: 100, Quantity: 1,
		})
		assertCode(t, err, pkgerrors.CodeProductUnavailable)
	})

	t.Run("inactive product", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		fixture.products.product = activeProduct(vendorID)
		fixture.products.product.Status = enums.ProductStatusDeleted
		_, err := fixture.svc.PlaceBid(context.Background(), PlaceBidInput{
			BuyerID: buyerID, ProductID: fixture.products.product.ID,
			BuyerType: enums.BuyerTypeB2C, AmountCents: 100, Quantity: 1,
		})
		assertCode(t, err, pkgerrors.CodeProductUnavailable)
	})

	t.Run("b2b without wholesale tier", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		fixture.products.product = activeProduct(vendorID)
		fixture.products.product.WholesalePriceCents = nil
		_, err := fixture.svc.PlaceBid(context.Background(), PlaceBidInput{
			BuyerID: buyerID, ProductID: fixture.products.product.ID,
			BuyerType: enums.BuyerTypeB2B, AmountCents: 4500, Quantity: 50,
		})
		assertCode(t, err, pkgerrors.CodePricingTier)
	})

	t.Run("b2c without retail tier", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		fixture.products.product = activeProduct(vendorID)
		fixture.products.product.RetailPriceCents = nil
		_, err := fixture.svc.PlaceBid(context.Background(), PlaceBidInput{
			BuyerID: buyerID, ProductID: fixture.products.product.ID,
			BuyerType: enums.BuyerTypeB2C, AmountCents: 5000, Quantity: 2,
		})
		assertCode(t, err, pkgerrors.CodePricingTier)
	})

	t.Run("b2b below wholesale minimum", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		fixture.products.product = activeProduct(vendorID)
		_, err := fixture.svc.PlaceBid(context.Background(), PlaceBidInput{
			BuyerID: buyerID, ProductID: fixture.products.product.ID,
			BuyerType: enums.BuyerTypeB2B, AmountCents: 4500, Quantity: 10,
		})
		typed := assertCode(t, err, pkgerrors.CodeBelowMinQuantity)
		details, ok := typed.Details().(map[string]any)
		if !ok || details["minQuantity"] != 25 {
			t.Fatalf("expected minQuantity detail, got %v", typed.Details())
		}
	})

	t.Run("quantity above available", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		fixture.products.product = activeProduct(vendorID)
		fixture.products.product.QuantityAvailable = 30
		_, err := fixture.svc.PlaceBid(context.Background(), PlaceBidInput{
			BuyerID: buyerID, ProductID: fixture.products.product.ID,
			BuyerType: enums.BuyerTypeB2B, AmountCents: 4500, Quantity: 40,
		})
		typed := assertCode(t, err, pkgerrors.CodeInsufficientStock)
		details, ok := typed.Details().(map[string]any)
		if !ok || details["quantityAvailable"] != 30 {
			t.Fatalf("expected quantityAvailable detail, got %v", typed.Details())
		}
	})
}

func TestPlaceBidSurvivesNotificationFailure(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	fixture.products.product = activeProduct(uuid.New())
	fixture.notifier.err = errors.New("inbox down")
	fixture.events.err = errors.New("broker down")

	dto, err := fixture.svc.PlaceBid(context.Background(), PlaceBidInput{
		BuyerID: uuid.New(), ProductID: fixture.products.product.ID,
		BuyerType: enums.BuyerTypeB2C, AmountCents: 5000, Quantity: 2,
	})
	if err != nil {
		t.Fatalf("PlaceBid should not fail on side effects: %v", err)
	}
	if dto.Status != enums.BidStatusPending {
		t.Fatalf("expected pending, got %s", dto.Status)
	}
}

func TestAcceptBidDecrementsInventory(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	buyerID := uuid.New()
	fixture.products.product = product
	fixture.repo.bid = pendingBid(product, buyerID)

	dto, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
		ActorID:   product.VendorID,
		ActorRole: enums.UserRoleVendor,
		BidID:     fixture.repo.bid.ID,
		NewStatus: enums.BidStatusAccepted,
	})
	if err != nil {
		t.Fatalf("UpdateBidStatus: %v", err)
	}

	if dto.Status != enums.BidStatusAccepted {
		t.Fatalf("expected accepted, got %s", dto.Status)
	}
	if fixture.inventory.decrementCalls != 1 || fixture.inventory.decrementedQty != 50 {
		t.Fatalf("expected one decrement of 50, got %d calls of %d",
			fixture.inventory.decrementCalls, fixture.inventory.decrementedQty)
	}
	if len(fixture.notifier.inputs) != 1 {
		t.Fatalf("expected one notification, got %d", len(fixture.notifier.inputs))
	}
	notify := fixture.notifier.inputs[0]
	if notify.UserID != buyerID || notify.Type != enums.NotificationTypeBidAccepted {
		t.Fatalf("acceptance should notify the buyer, got %+v", notify)
	}
	if len(fixture.events.types) != 1 || fixture.events.types[0] != enums.EventBidAccepted {
		t.Fatalf("expected bid.accepted event, got %v", fixture.events.types)
	}
}

func TestAcceptBidInsufficientInventory(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	fixture.products.product = product
	fixture.repo.bid = pendingBid(product, uuid.New())
	fixture.inventory.decrementOK = false
	fixture.inventory.remaining = 40

	_, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
		ActorID:   product.VendorID,
		ActorRole: enums.UserRoleVendor,
		BidID:     fixture.repo.bid.ID,
		NewStatus: enums.BidStatusAccepted,
	})
	typed := assertCode(t, err, pkgerrors.CodeInsufficientStock)
	details, ok := typed.Details().(map[string]any)
	if !ok || details["quantityAvailable"] != 40 {
		t.Fatalf("expected remaining quantity in details, got %v", typed.Details())
	}
	if fixture.repo.conditionalCalls != 0 {
		t.Fatalf("status write should not run after failed decrement")
	}
	if len(fixture.notifier.inputs) != 0 || len(fixture.events.types) != 0 {
		t.Fatalf("no side effects on failed acceptance")
	}
}

func TestAcceptExpiredBid(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	fixture.products.product = product
	bid := pendingBid(product, uuid.New())
	bid.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	fixture.repo.bid = bid

	_, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
		ActorID:   product.VendorID,
		ActorRole: enums.UserRoleVendor,
		BidID:     bid.ID,
		NewStatus: enums.BidStatusAccepted,
	})
	assertCode(t, err, pkgerrors.CodeBidExpired)
	if fixture.inventory.decrementCalls != 0 {
		t.Fatalf("expired acceptance must not touch inventory")
	}
}

func TestRejectExpiredBidStillWorks(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	fixture.products.product = product
	bid := pendingBid(product, uuid.New())
	bid.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	fixture.repo.bid = bid

	dto, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
		ActorID:   product.VendorID,
		ActorRole: enums.UserRoleVendor,
		BidID:     bid.ID,
		NewStatus: enums.BidStatusRejected,
	})
	if err != nil {
		t.Fatalf("expiry only gates acceptance: %v", err)
	}
	if dto.Status != enums.BidStatusRejected {
		t.Fatalf("expected rejected, got %s", dto.Status)
	}
}

func TestBuyerCannotDecideOwnBid(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	buyerID := uuid.New()
	fixture.products.product = product
	fixture.repo.bid = pendingBid(product, buyerID)

	for _, status := range []enums.BidStatus{enums.BidStatusAccepted, enums.BidStatusRejected} {
		_, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
			ActorID:   buyerID,
			ActorRole: enums.UserRoleBuyer,
			BidID:     fixture.repo.bid.ID,
			NewStatus: status,
		})
		assertCode(t, err, pkgerrors.CodeForbidden)
	}
}

func TestStrangerGetsForbidden(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	fixture.products.product = product
	fixture.repo.bid = pendingBid(product, uuid.New())

	_, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
		ActorID:   uuid.New(),
		ActorRole: enums.UserRoleVendor,
		BidID:     fixture.repo.bid.ID,
		NewStatus: enums.BidStatusCancelled,
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestDecideAlreadyDecidedBid(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	fixture.products.product = product
	bid := pendingBid(product, uuid.New())
	bid.Status = enums.BidStatusRejected
	fixture.repo.bid = bid

	_, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
		ActorID:   product.VendorID,
		ActorRole: enums.UserRoleVendor,
		BidID:     bid.ID,
		NewStatus: enums.BidStatusAccepted,
	})
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestConcurrentDecisionLosesConditionalWrite(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	fixture.products.product = product
	fixture.repo.bid = pendingBid(product, uuid.New())
	fixture.repo.conditionalOK = false

	_, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
		ActorID:   product.VendorID,
		ActorRole: enums.UserRoleVendor,
		BidID:     fixture.repo.bid.ID,
		NewStatus: enums.BidStatusRejected,
	})
	assertCode(t, err, pkgerrors.CodeStateConflict)
	if len(fixture.notifier.inputs) != 0 || len(fixture.events.types) != 0 {
		t.Fatalf("losing decider must not emit side effects")
	}
}

func TestCancelAcceptedBidRestoresInventory(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	buyerID := uuid.New()
	fixture.products.product = product
	bid := pendingBid(product, buyerID)
	bid.Status = enums.BidStatusAccepted
	fixture.repo.bid = bid

	dto, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
		ActorID:   buyerID,
		ActorRole: enums.UserRoleBuyer,
		BidID:     bid.ID,
		NewStatus: enums.BidStatusCancelled,
	})
	if err != nil {
		t.Fatalf("UpdateBidStatus: %v", err)
	}
	if dto.Status != enums.BidStatusCancelled {
		t.Fatalf("expected cancelled, got %s", dto.Status)
	}
	if fixture.inventory.restoreCalls != 1 {
		t.Fatalf("expected inventory restore, got %d calls", fixture.inventory.restoreCalls)
	}
}

func TestCounterOfferVendorOnly(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	buyerID := uuid.New()
	fixture.products.product = product
	fixture.repo.bid = pendingBid(product, buyerID)

	_, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
		ActorID:      buyerID,
		ActorRole:    enums.UserRoleBuyer,
		BidID:        fixture.repo.bid.ID,
		NewStatus:    enums.BidStatusCancelled,
		CounterOffer: &CounterOffer{AmountCents: 4000, Quantity: 60},
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestRejectWithCounterOffer(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	fixture.products.product = product
	fixture.repo.bid = pendingBid(product, uuid.New())

	dto, err := fixture.svc.UpdateBidStatus(context.Background(), UpdateBidStatusInput{
		ActorID:      product.VendorID,
		ActorRole:    enums.UserRoleVendor,
		BidID:        fixture.repo.bid.ID,
		NewStatus:    enums.BidStatusRejected,
		CounterOffer: &CounterOffer{AmountCents: 4800, Quantity: 50},
	})
	if err != nil {
		t.Fatalf("UpdateBidStatus: %v", err)
	}
	if dto.CounterOffer == nil || dto.CounterOffer.AmountCents != 4800 {
		t.Fatalf("expected counter offer on dto, got %+v", dto.CounterOffer)
	}
	if fixture.repo.lastUpdates["counter_amount_cents"] != 4800 {
		t.Fatalf("counter fields missing from update: %v", fixture.repo.lastUpdates)
	}
}

func TestGetBidPartyOnly(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	product := activeProduct(uuid.New())
	buyerID := uuid.New()
	fixture.products.product = product
	fixture.repo.bid = pendingBid(product, buyerID)

	if _, err := fixture.svc.GetBid(context.Background(), fixture.repo.bid.ID, buyerID); err != nil {
		t.Fatalf("buyer should read own bid: %v", err)
	}
	if _, err := fixture.svc.GetBid(context.Background(), fixture.repo.bid.ID, product.VendorID); err != nil {
		t.Fatalf("vendor should read own bid: %v", err)
	}
	_, err := fixture.svc.GetBid(context.Background(), fixture.repo.bid.ID, uuid.New())
	assertCode(t, err, pkgerrors.CodeForbidden)

	_, err = fixture.svc.GetBid(context.Background(), uuid.New(), buyerID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListBidsAxisRules(t *testing.T) {
	t.Parallel()

	callerID := uuid.New()
	otherID := uuid.New()

	t.Run("no axis", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		_, err := fixture.svc.ListBids(context.Background(), ListBidsInput{CallerID: callerID})
		assertCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("two axes", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		_, err := fixture.svc.ListBids(context.Background(), ListBidsInput{
			CallerID: callerID,
			Filter:   ListBidsFilter{BuyerID: &callerID, VendorID: &callerID},
		})
		assertCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("other buyer's bids", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		_, err := fixture.svc.ListBids(context.Background(), ListBidsInput{
			CallerID: callerID,
			Filter:   ListBidsFilter{BuyerID: &otherID},
		})
		assertCode(t, err, pkgerrors.CodeForbidden)
	})

	t.Run("own buyer axis", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		if _, err := fixture.svc.ListBids(context.Background(), ListBidsInput{
			CallerID: callerID,
			Filter:   ListBidsFilter{BuyerID: &callerID},
		}); err != nil {
			t.Fatalf("ListBids: %v", err)
		}
	})

	t.Run("product axis requires its vendor", func(t *testing.T) {
		t.Parallel()
		fixture := newServiceFixture(t)
		product := activeProduct(otherID)
		fixture.products.product = product
		_, err := fixture.svc.ListBids(context.Background(), ListBidsInput{
			CallerID: callerID,
			Filter:   ListBidsFilter{ProductID: &product.ID},
		})
		assertCode(t, err, pkgerrors.CodeForbidden)

		if _, err := fixture.svc.ListBids(context.Background(), ListBidsInput{
			CallerID: otherID,
			Filter:   ListBidsFilter{ProductID: &product.ID},
		}); err != nil {
			t.Fatalf("vendor should list product bids: %v", err)
		}
	})
}
