package bids

import (
	"time"

	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	"github.com/agritrade/agritrade-backend/pkg/pagination"
	"github.com/google/uuid"
)

// CounterOffer is the vendor's optional counter attached to a decision.
type CounterOffer struct {
	AmountCents int     `json:"amountCents" validate:"gt=0"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	Message     *string `json:"message,omitempty"`
}

// PlaceBidInput carries the validated payload for a new bid. BuyerID comes
// from the verified token, never from the request body.
type PlaceBidInput struct {
	BuyerID          uuid.UUID
	ProductID        uuid.UUID
	BuyerType        enums.BuyerType
	AmountCents      int
	Quantity         int
	Message          *string
	VoiceMessageRef  *string
	DeliveryLocation *string
}

// UpdateBidStatusInput carries a status transition request.
type UpdateBidStatusInput struct {
	ActorID       uuid.UUID
	ActorRole     enums.UserRole
	BidID         uuid.UUID
	NewStatus     enums.BidStatus
	VendorMessage *string
	CounterOffer  *CounterOffer
}

// ListBidsFilter selects exactly one query axis plus an optional status.
type ListBidsFilter struct {
	ProductID *uuid.UUID
	BuyerID   *uuid.UUID
	VendorID  *uuid.UUID
	Status    *enums.BidStatus
}

// ListBidsInput pairs the filter with the caller identity and pagination.
type ListBidsInput struct {
	CallerID   uuid.UUID
	Filter     ListBidsFilter
	Pagination pagination.Params
}

// BidDTO is the bid representation returned to clients.
type BidDTO struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"productId"`
	VendorID         uuid.UUID       `json:"vendorId"`
	BuyerID          uuid.UUID       `json:"buyerId"`
	BuyerType        enums.BuyerType `json:"buyerType"`
	AmountCents      int             `json:"amountCents"`
	Quantity         int             `json:"quantity"`
	TotalCents       int             `json:"totalCents"`
	Message          *string         `json:"message,omitempty"`
	VoiceMessageRef  *string         `json:"voiceMessageRef,omitempty"`
	DeliveryLocation *string         `json:"deliveryLocation,omitempty"`
	VendorMessage    *string         `json:"vendorMessage,omitempty"`
	CounterOffer     *CounterOffer   `json:"counterOffer,omitempty"`
	Status           enums.BidStatus `json:"status"`
	ExpiresAt        time.Time       `json:"expiresAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// BidListResult wraps a page of bids with the next cursor.
type BidListResult struct {
	Bids       []BidDTO `json:"bids"`
	NextCursor string   `json:"nextCursor,omitempty"`
}

func toBidDTO(bid *models.Bid) *BidDTO {
	if bid == nil {
		return nil
	}
	dto := &BidDTO{
		ID:               bid.ID,
		ProductID:        bid.ProductID,
		VendorID:         bid.VendorID,
		BuyerID:          bid.BuyerID,
		BuyerType:        bid.BuyerType,
		AmountCents:      bid.AmountCents,
		Quantity:         bid.Quantity,
		TotalCents:       bid.TotalCents,
		Message:          bid.Message,
		VoiceMessageRef:  bid.VoiceMessageRef,
		DeliveryLocation: bid.DeliveryLocation,
		VendorMessage:    bid.VendorMessage,
		Status:           bid.Status,
		ExpiresAt:        bid.ExpiresAt,
		CreatedAt:        bid.CreatedAt,
		UpdatedAt:        bid.UpdatedAt,
	}
	if bid.CounterAmountCents != nil && bid.CounterQuantity != nil {
		dto.CounterOffer = &CounterOffer{
			AmountCents: *bid.CounterAmountCents,
			Quantity:    *bid.CounterQuantity,
			Message:     bid.CounterMessage,
		}
	}
	return dto
}
