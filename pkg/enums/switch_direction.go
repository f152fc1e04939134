package enums

// SwitchDirection labels the payment-method switch notice shown to the shopper.
type SwitchDirection string

const (
	SwitchDirectionSaving SwitchDirection = "saving"
	SwitchDirectionExtra  SwitchDirection = "extra"
)

// String implements fmt.Stringer.
func (s SwitchDirection) String() string {
	return string(s)
}
