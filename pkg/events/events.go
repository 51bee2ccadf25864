package events

import (
	"encoding/json"
	"time"

	"github.com/agritrade/agritrade-backend/pkg/enums"
	"github.com/google/uuid"
)

// ActorRef identifies who produced the event.
type ActorRef struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role,omitempty"`
}

// Envelope is the stable payload structure published on the bid events topic.
type Envelope struct {
	Version    int                `json:"version"`
	EventID    string             `json:"eventId"`
	EventType  enums.BidEventType `json:"eventType"`
	OccurredAt time.Time          `json:"occurredAt"`
	Actor      *ActorRef          `json:"actor,omitempty"`
	Data       json.RawMessage    `json:"data"`
}

// BidEventData is the data portion shared by all bid lifecycle events.
type BidEventData struct {
	BidID       uuid.UUID       `json:"bidId"`
	ProductID   uuid.UUID       `json:"productId"`
	VendorID    uuid.UUID       `json:"vendorId"`
	BuyerID     uuid.UUID       `json:"buyerId"`
	Status      enums.BidStatus `json:"status"`
	AmountCents int             `json:"amountCents"`
	Quantity    int             `json:"quantity"`
	TotalCents  int             `json:"totalCents"`
}
