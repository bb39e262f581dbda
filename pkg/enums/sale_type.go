package enums

import "fmt"

// SaleType categorizes a vehicle transaction.
type SaleType string

const (
	SaleTypeNew     SaleType = "New"
	SaleTypeUsed    SaleType = "Used"
	SaleTypeTradeIn SaleType = "Trade-In"
)

var validSaleTypes = []SaleType{
	SaleTypeNew,
	SaleTypeUsed,
	SaleTypeTradeIn,
}

// String implements fmt.Stringer.
func (s SaleType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SaleType.
func (s SaleType) IsValid() bool {
	for _, candidate := range validSaleTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSaleType converts raw input into a SaleType.
func ParseSaleType(value string) (SaleType, error) {
	for _, candidate := range validSaleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale type %q", value)
}
