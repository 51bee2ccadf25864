package enums

import "fmt"

// BidStatus tracks the lifecycle of a bid.
type BidStatus string

const (
	BidStatusPending   BidStatus = "pending"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusRejected  BidStatus = "rejected"
	BidStatusCompleted BidStatus = "completed"
	BidStatusCancelled BidStatus = "cancelled"
)

var validBidStatuses = []BidStatus{
	BidStatusPending,
	BidStatusAccepted,
	BidStatusRejected,
	BidStatusCompleted,
	BidStatusCancelled,
}

// String implements fmt.Stringer.
func (b BidStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BidStatus.
func (b BidStatus) IsValid() bool {
	for _, candidate := range validBidStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from the status.
func (b BidStatus) IsTerminal() bool {
	switch b {
	case BidStatusRejected, BidStatusCompleted, BidStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseBidStatus converts raw input into a BidStatus.
func ParseBidStatus(value string) (BidStatus, error) {
	for _, candidate := range validBidStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bid status %q", value)
}
