package enums

import "fmt"

// BuyerType selects which pricing tier applies to a bid.
type BuyerType string

const (
	BuyerTypeB2B BuyerType = "B2B"
	BuyerTypeB2C BuyerType = "B2C"
)

var validBuyerTypes = []BuyerType{
	BuyerTypeB2B,
	BuyerTypeB2C,
}

// IsValid reports whether the value is a known BuyerType.
func (b BuyerType) IsValid() bool {
	for _, candidate := range validBuyerTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBuyerType converts raw input into a BuyerType.
func ParseBuyerType(value string) (BuyerType, error) {
	for _, candidate := range validBuyerTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid buyer type %q", value)
}
