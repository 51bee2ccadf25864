package bids

import (
	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	"github.com/google/uuid"
)

// allowedTransitions is the bid state machine. Statuses absent from the map
// (rejected, completed, cancelled) are terminal.
var allowedTransitions = map[enums.BidStatus][]enums.BidStatus{
	enums.BidStatusPending: {
		enums.BidStatusAccepted,
		enums.BidStatusRejected,
		enums.BidStatusCancelled,
	},
	enums.BidStatusAccepted: {
		enums.BidStatusCompleted,
		enums.BidStatusCancelled,
	},
}

// TransitionAllowed reports whether the state machine permits from -> to.
func TransitionAllowed(from, to enums.BidStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransition reports whether the actor may drive the bid from -> to.
// Pure function; authorization only, machine legality is TransitionAllowed.
func CanTransition(actorID uuid.UUID, role enums.UserRole, bid models.Bid, from, to enums.BidStatus) bool {
	if !bid.IsParty(actorID) {
		return false
	}

	switch to {
	case enums.BidStatusAccepted, enums.BidStatusRejected:
		// Only the vendor decides a pending bid.
		return role == enums.UserRoleVendor && actorID == bid.VendorID
	case enums.BidStatusCompleted:
		// Only the vendor confirms fulfillment.
		return role == enums.UserRoleVendor && actorID == bid.VendorID
	case enums.BidStatusCancelled:
		// Either party may back out before completion.
		return true
	default:
		return false
	}
}
