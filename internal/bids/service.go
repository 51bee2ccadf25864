package bids

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agritrade/agritrade-backend/internal/notifications"
	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	pkgerrors "github.com/agritrade/agritrade-backend/pkg/errors"
	"github.com/agritrade/agritrade-backend/pkg/events"
	"github.com/agritrade/agritrade-backend/pkg/logger"
	"github.com/agritrade/agritrade-backend/pkg/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// InventoryAdjuster mutates product stock inside the caller's transaction.
type InventoryAdjuster interface {
	Decrement(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (bool, error)
	Restore(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error
	QuantityAvailable(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int, error)
}

type notifier interface {
	Notify(ctx context.Context, input notifications.NotifyInput) error
}

type eventPublisher interface {
	PublishBidEvent(ctx context.Context, eventType enums.BidEventType, actor *events.ActorRef, data events.BidEventData) error
}

// Service exposes the bid lifecycle operations.
type Service interface {
	PlaceBid(ctx context.Context, input PlaceBidInput) (*BidDTO, error)
	UpdateBidStatus(ctx context.Context, input UpdateBidStatusInput) (*BidDTO, error)
	GetBid(ctx context.Context, bidID, callerID uuid.UUID) (*BidDTO, error)
	ListBids(ctx context.Context, input ListBidsInput) (*BidListResult, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	products  productReader
	inventory InventoryAdjuster
	notifier  notifier
	events    eventPublisher
	metrics   *metrics.BidMetrics
	logg      *logger.Logger
	bidTTL    time.Duration
}

// NewService builds the bid service with the required dependencies.
func NewService(
	repo Repository,
	tx txRunner,
	products productReader,
	inventory InventoryAdjuster,
	notifier notifier,
	events eventPublisher,
	bidMetrics *metrics.BidMetrics,
	logg *logger.Logger,
	bidTTL time.Duration,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bid repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory adjuster required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if bidTTL <= 0 {
		bidTTL = 24 * time.Hour
	}
	return &service{
		repo:      repo,
		tx:        tx,
		products:  products,
		inventory: inventory,
		notifier:  notifier,
		events:    events,
		metrics:   bidMetrics,
		logg:      logg,
		bidTTL:    bidTTL,
	}, nil
}

// PlaceBid validates the offer against the product and records a pending bid.
func (s *service) PlaceBid(ctx context.Context, input PlaceBidInput) (*BidDTO, error) {
	bid, err := s.placeBid(ctx, input)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			s.metrics.IncRejected(string(typed.Code()))
		}
		return nil, err
	}
	s.metrics.IncPlaced()

	// Committed; everything below is best effort.
	s.notifyBid(ctx, bid.VendorID, enums.NotificationTypeBidReceived,
		"New bid received",
		fmt.Sprintf("A buyer offered %d x %d cents on your listing", bid.Quantity, bid.AmountCents),
		bid.ID)
	s.publishBidEvent(ctx, enums.EventBidPlaced, input.BuyerID, enums.UserRoleBuyer, bid)

	return toBidDTO(bid), nil
}

func (s *service) placeBid(ctx context.Context, input PlaceBidInput) (*models.Bid, error) {
	if input.BuyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if !input.BuyerType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer type must be B2B or B2C")
	}
	if input.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeProductUnavailable, "product is not accepting bids")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if product.Status != enums.ProductStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeProductUnavailable, "product is not accepting bids")
	}

	switch input.BuyerType {
	case enums.BuyerTypeB2B:
		if !product.HasWholesaleTier() {
			return nil, pkgerrors.New(pkgerrors.CodePricingTier, "product has no wholesale pricing")
		}
		if product.WholesaleMinQty != nil && input.Quantity < *product.WholesaleMinQty {
			return nil, pkgerrors.New(pkgerrors.CodeBelowMinQuantity,
				fmt.Sprintf("wholesale orders require at least %d units", *product.WholesaleMinQty)).
				WithDetails(map[string]any{"minQuantity": *product.WholesaleMinQty})
		}
	case enums.BuyerTypeB2C:
		if !product.HasRetailTier() {
			return nil, pkgerrors.New(pkgerrors.CodePricingTier, "product has no retail pricing")
		}
	}

	if input.Quantity > product.QuantityAvailable {
		return nil, insufficientInventoryError(product.QuantityAvailable)
	}

	now := time.Now().UTC()
	bid := &models.Bid{
		ID:               uuid.New(),
		ProductID:        product.ID,
		VendorID:         product.VendorID,
		BuyerID:          input.BuyerID,
		BuyerType:        input.BuyerType,
		AmountCents:      input.AmountCents,
		Quantity:         input.Quantity,
		TotalCents:       input.AmountCents * input.Quantity,
		Message:          input.Message,
		VoiceMessageRef:  input.VoiceMessageRef,
		DeliveryLocation: input.DeliveryLocation,
		Status:           enums.BidStatusPending,
		ExpiresAt:        now.Add(s.bidTTL),
	}

	created, err := s.repo.CreateBid(ctx, bid)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert bid")
	}
	return created, nil
}

// UpdateBidStatus drives the bid state machine. Acceptance and the inventory
// decrement commit or fail together.
func (s *service) UpdateBidStatus(ctx context.Context, input UpdateBidStatusInput) (*BidDTO, error) {
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.BidID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bid id required")
	}
	if !input.NewStatus.IsValid() || input.NewStatus == enums.BidStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target status")
	}
	if input.CounterOffer != nil && (input.CounterOffer.AmountCents <= 0 || input.CounterOffer.Quantity <= 0) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "counter offer amount and quantity must be positive")
	}

	var updated *models.Bid
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		bid, err := repo.FindByID(ctx, input.BidID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "bid not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load bid")
		}

		if !bid.IsParty(input.ActorID) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "caller is not a party to this bid")
		}
		if !TransitionAllowed(bid.Status, input.NewStatus) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("bid already decided: cannot move from %s to %s", bid.Status, input.NewStatus))
		}
		if !CanTransition(input.ActorID, input.ActorRole, *bid, bid.Status, input.NewStatus) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "caller may not perform this transition")
		}
		if input.CounterOffer != nil && input.ActorID != bid.VendorID {
			return pkgerrors.New(pkgerrors.CodeValidation, "only the vendor can attach a counter offer")
		}

		if input.NewStatus == enums.BidStatusAccepted {
			if time.Now().UTC().After(bid.ExpiresAt) {
				return pkgerrors.New(pkgerrors.CodeBidExpired, "bid has expired")
			}
			// Decrement first; it is the gate for the status write.
			ok, err := s.inventory.Decrement(ctx, tx, bid.ProductID, bid.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement inventory")
			}
			if !ok {
				remaining, qerr := s.inventory.QuantityAvailable(ctx, tx, bid.ProductID)
				if qerr != nil {
					remaining = 0
				}
				return insufficientInventoryError(remaining)
			}
		}

		if bid.Status == enums.BidStatusAccepted && input.NewStatus == enums.BidStatusCancelled {
			if err := s.inventory.Restore(ctx, tx, bid.ProductID, bid.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: restore inventory")
			}
		}

		updates := map[string]any{}
		if input.VendorMessage != nil {
			updates["vendor_message"] = *input.VendorMessage
			bid.VendorMessage = input.VendorMessage
		}
		if input.CounterOffer != nil {
			updates["counter_amount_cents"] = input.CounterOffer.AmountCents
			updates["counter_quantity"] = input.CounterOffer.Quantity
			updates["counter_message"] = input.CounterOffer.Message
			amount := input.CounterOffer.AmountCents
			qty := input.CounterOffer.Quantity
			bid.CounterAmountCents = &amount
			bid.CounterQuantity = &qty
			bid.CounterMessage = input.CounterOffer.Message
		}

		ok, err := repo.UpdateStatusConditional(ctx, bid.ID, bid.Status, input.NewStatus, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update bid status")
		}
		if !ok {
			// Another decider won between our read and write; rolling back
			// also undoes any decrement above.
			return pkgerrors.New(pkgerrors.CodeStateConflict, "bid already decided")
		}

		bid.Status = input.NewStatus
		bid.UpdatedAt = time.Now().UTC()
		updated = bid
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(updated.Status)
	s.notifyDecision(ctx, input.ActorID, updated)
	if eventType, ok := enums.BidEventForStatus(updated.Status); ok {
		s.publishBidEvent(ctx, eventType, input.ActorID, input.ActorRole, updated)
	}

	return toBidDTO(updated), nil
}

// GetBid returns the bid to its buyer or vendor only.
func (s *service) GetBid(ctx context.Context, bidID, callerID uuid.UUID) (*BidDTO, error) {
	if callerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	bid, err := s.repo.FindByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bid not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load bid")
	}
	if !bid.IsParty(callerID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "caller is not a party to this bid")
	}
	return toBidDTO(bid), nil
}

// ListBids queries one axis (product, buyer, or vendor), newest first.
func (s *service) ListBids(ctx context.Context, input ListBidsInput) (*BidListResult, error) {
	if input.CallerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	axes := 0
	if input.Filter.ProductID != nil {
		axes++
	}
	if input.Filter.BuyerID != nil {
		axes++
	}
	if input.Filter.VendorID != nil {
		axes++
	}
	if axes != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of productId, buyerId, vendorId is required")
	}
	if input.Filter.Status != nil && !input.Filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown bid status filter")
	}

	switch {
	case input.Filter.BuyerID != nil:
		if *input.Filter.BuyerID != input.CallerID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot list another buyer's bids")
		}
	case input.Filter.VendorID != nil:
		if *input.Filter.VendorID != input.CallerID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot list another vendor's bids")
		}
	case input.Filter.ProductID != nil:
		product, err := s.products.FindByID(ctx, *input.Filter.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		if product.VendorID != input.CallerID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the product's vendor can list its bids")
		}
	}

	result, err := s.repo.ListBids(ctx, input.Filter, input.Pagination)
	if err != nil {
		var typed *pkgerrors.Error
		if errors.As(err, &typed) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list bids")
	}
	return result, nil
}

func insufficientInventoryError(remaining int) error {
	if remaining < 0 {
		remaining = 0
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock,
		fmt.Sprintf("only %d available", remaining)).
		WithDetails(map[string]any{"quantityAvailable": remaining})
}

func (s *service) notifyDecision(ctx context.Context, actorID uuid.UUID, bid *models.Bid) {
	var ntype enums.NotificationType
	var title, message string
	switch bid.Status {
	case enums.BidStatusAccepted:
		ntype, title, message = enums.NotificationTypeBidAccepted, "Bid accepted", "Your bid was accepted by the vendor"
	case enums.BidStatusRejected:
		ntype, title, message = enums.NotificationTypeBidRejected, "Bid rejected", "Your bid was declined by the vendor"
	case enums.BidStatusCancelled:
		ntype, title, message = enums.NotificationTypeBidCancelled, "Bid cancelled", "The bid was cancelled"
	case enums.BidStatusCompleted:
		ntype, title, message = enums.NotificationTypeBidCompleted, "Bid completed", "The order for your bid was completed"
	default:
		return
	}
	s.notifyBid(ctx, bid.Counterparty(actorID), ntype, title, message, bid.ID)
}

func (s *service) notifyBid(ctx context.Context, userID uuid.UUID, ntype enums.NotificationType, title, message string, bidID uuid.UUID) {
	err := s.notifier.Notify(ctx, notifications.NotifyInput{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		BidID:   &bidID,
	})
	if err != nil {
		ctx = s.logg.WithBidID(ctx, bidID.String())
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"user_id": userID.String(),
			"error":   err.Error(),
		}), "bid notification failed")
	}
}

func (s *service) publishBidEvent(ctx context.Context, eventType enums.BidEventType, actorID uuid.UUID, role enums.UserRole, bid *models.Bid) {
	if s.events == nil {
		return
	}
	err := s.events.PublishBidEvent(ctx, eventType, &events.ActorRef{UserID: actorID, Role: string(role)}, events.BidEventData{
		BidID:       bid.ID,
		ProductID:   bid.ProductID,
		VendorID:    bid.VendorID,
		BuyerID:     bid.BuyerID,
		Status:      bid.Status,
		AmountCents: bid.AmountCents,
		Quantity:    bid.Quantity,
		TotalCents:  bid.TotalCents,
	})
	if err != nil {
		ctx = s.logg.WithBidID(ctx, bid.ID.String())
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"event_type": string(eventType),
			"error":      err.Error(),
		}), "bid event publish failed")
	}
}
