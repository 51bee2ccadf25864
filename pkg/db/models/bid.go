package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/agritrade/agritrade-backend/pkg/enums"
)

// Bid is an offer by a buyer to purchase a quantity of a product at a stated
// unit price. Rows are never deleted; terminal statuses close them out.
type Bid struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	// VendorID is frozen at bid time and not re-resolved if the product is
	// later reassigned.
	VendorID           uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null;index"`
	BuyerID            uuid.UUID       `gorm:"column:buyer_id;type:uuid;not null;index"`
	BuyerType          enums.BuyerType `gorm:"column:buyer_type;type:buyer_type;not null"`
	AmountCents        int             `gorm:"column:amount_cents;not null"`
	Quantity           int             `gorm:"column:quantity;not null"`
	TotalCents         int             `gorm:"column:total_cents;not null"`
	Message            *string         `gorm:"column:message"`
	VoiceMessageRef    *string         `gorm:"column:voice_message_ref"`
	DeliveryLocation   *string         `gorm:"column:delivery_location"`
	VendorMessage      *string         `gorm:"column:vendor_message"`
	CounterAmountCents *int            `gorm:"column:counter_amount_cents"`
	CounterQuantity    *int            `gorm:"column:counter_quantity"`
	CounterMessage     *string         `gorm:"column:counter_message"`
	Status             enums.BidStatus `gorm:"column:status;type:bid_status;not null;default:'pending'"`
	ExpiresAt          time.Time       `gorm:"column:expires_at;not null"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// IsParty reports whether the user participates in the bid as buyer or vendor.
func (b Bid) IsParty(userID uuid.UUID) bool {
	return b.BuyerID == userID || b.VendorID == userID
}

// Counterparty returns the opposite participant for the given actor.
func (b Bid) Counterparty(actorID uuid.UUID) uuid.UUID {
	if actorID == b.VendorID {
		return b.BuyerID
	}
	return b.VendorID
}
