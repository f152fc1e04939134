package enums

import "fmt"

// BottleSize identifies the product variant size offered on the page.
type BottleSize string

const (
	BottleSize250 BottleSize = "250ml"
	BottleSize500 BottleSize = "500ml"
)

var validBottleSizes = []BottleSize{
	BottleSize250,
	BottleSize500,
}

// String implements fmt.Stringer.
func (b BottleSize) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BottleSize.
func (b BottleSize) IsValid() bool {
	for _, candidate := range validBottleSizes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBottleSize converts raw input into a BottleSize.
func ParseBottleSize(value string) (BottleSize, error) {
	for _, candidate := range validBottleSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bottle size %q", value)
}
