package enums

// BidEventType is the canonical event_type attribute on published bid events.
type BidEventType string

const (
	EventBidPlaced    BidEventType = "bid.placed"
	EventBidAccepted  BidEventType = "bid.accepted"
	EventBidRejected  BidEventType = "bid.rejected"
	EventBidCancelled BidEventType = "bid.cancelled"
	EventBidCompleted BidEventType = "bid.completed"
)

var validBidEventTypes = []BidEventType{
	EventBidPlaced,
	EventBidAccepted,
	EventBidRejected,
	EventBidCancelled,
	EventBidCompleted,
}

func (t BidEventType) IsValid() bool {
	for _, candidate := range validBidEventTypes {
		if t == candidate {
			return true
		}
	}
	return false
}

// BidEventForStatus maps a decided bid status to its lifecycle event.
func BidEventForStatus(status BidStatus) (BidEventType, bool) {
	switch status {
	case BidStatusAccepted:
		return EventBidAccepted, true
	case BidStatusRejected:
		return EventBidRejected, true
	case BidStatusCancelled:
		return EventBidCancelled, true
	case BidStatusCompleted:
		return EventBidCompleted, true
	default:
		return "", false
	}
}

// AggregateType names the entity an event belongs to.
type AggregateType string

const (
	AggregateBid AggregateType = "bid"
)
