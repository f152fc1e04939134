package enums

// UpsellType tags the two offer shapes generated from cart contents.
type UpsellType string

const (
	UpsellTypePack  UpsellType = "pack"
	UpsellTypeCombo UpsellType = "combo"
)

var validUpsellTypes = []UpsellType{
	UpsellTypePack,
	UpsellTypeCombo,
}

// String implements fmt.Stringer.
func (u UpsellType) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UpsellType.
func (u UpsellType) IsValid() bool {
	for _, candidate := range validUpsellTypes {
		if candidate == u {
			return true
		}
	}
	return false
}
