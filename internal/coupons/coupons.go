package coupons

import (
	"strings"

	"github.com/ubnaturals/express-checkout/pkg/enums"
)

// Coupon is a single entry in the static coupon table. Discount is a
// percentage for percentage coupons and a flat amount for fixed ones.
type Coupon struct {
	Code        string           `json:"code"`
	Discount    int              `json:"discount"`
	Type        enums.CouponType `json:"type"`
	Description string           `json:"description,omitempty"`
}

// Table is a read-only coupon lookup.
type Table struct {
	coupons []Coupon
}

// NewTable builds a coupon table from the provided entries.
func NewTable(coupons []Coupon) *Table {
	return &Table{coupons: coupons}
}

// Default returns the coupon set offered on the product page.
func Default() *Table {
	return NewTable([]Coupon{
		{Code: "WELCOME10", Discount: 10, Type: enums.CouponTypePercentage, Description: "Welcome discount"},
		{Code: "SAVE500", Discount: 500, Type: enums.CouponTypeFixed, Description: "Flat ₹500 off"},
		{Code: "HEALTH20", Discount: 20, Type: enums.CouponTypePercentage, Description: "Health boost discount"},
		{Code: "FIRST15", Discount: 15, Type: enums.CouponTypePercentage, Description: "First order discount"},
	})
}

// Find looks up a coupon by code, case-insensitively.
func (t *Table) Find(code string) (Coupon, bool) {
	code = strings.TrimSpace(code)
	for _, coupon := range t.coupons {
		if strings.EqualFold(coupon.Code, code) {
			return coupon, true
		}
	}
	return Coupon{}, false
}
