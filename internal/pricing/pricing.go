package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/ubnaturals/express-checkout/internal/coupons"
	"github.com/ubnaturals/express-checkout/pkg/config"
	"github.com/ubnaturals/express-checkout/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// PricingResult is the full payable breakdown for display. Intermediate
// amounts stay unrounded; only GST is rounded, once, after the discount
// subtraction.
type PricingResult struct {
	Subtotal            int               `json:"subtotal"`
	Discounts           DiscountBreakdown `json:"discounts"`
	DiscountAmount      decimal.Decimal   `json:"discount_amount"`
	CouponDiscount      decimal.Decimal   `json:"coupon_discount"`
	TotalDiscountAmount decimal.Decimal   `json:"total_discount_amount"`
	ShippingFee         int               `json:"shipping_fee"`
	GST                 int64             `json:"gst"`
	FinalTotal          decimal.Decimal   `json:"final_total"`
	Savings             decimal.Decimal   `json:"savings"`
}

// CalculatePricing composes subtotal, tiered discounts, coupon, shipping and
// GST into the final total. Read-only over its inputs; safe to invoke
// repeatedly on the same snapshot.
func CalculatePricing(lines []Line, method enums.PaymentMethod, coupon *coupons.Coupon, cfg config.CheckoutConfig) PricingResult {
	subtotal := 0
	for _, line := range lines {
		subtotal += line.UnitPrice * line.Quantity
	}
	subtotalDec := decimal.NewFromInt(int64(subtotal))

	isPrepaid := method.IsPrepaid()
	discounts := CalculateDiscounts(lines, isPrepaid, cfg)

	discountAmount := subtotalDec.Mul(decimal.NewFromFloat(discounts.Total)).Div(oneHundred)

	couponDiscount := decimal.Zero
	if coupon != nil {
		if coupon.Type == enums.CouponTypePercentage {
			couponDiscount = subtotalDec.Mul(decimal.NewFromInt(int64(coupon.Discount))).Div(oneHundred)
		} else {
			// Fixed coupons are deliberately not capped at the subtotal.
			couponDiscount = decimal.NewFromInt(int64(coupon.Discount))
		}
	}

	totalDiscountAmount := discountAmount.Add(couponDiscount)

	shippingFee := 0
	if !isPrepaid {
		shippingFee = cfg.CODShippingFee
	}

	taxable := subtotalDec.Sub(totalDiscountAmount)
	gst := taxable.Mul(decimal.NewFromFloat(cfg.TaxRatePercent)).Div(oneHundred).Round(0).IntPart()

	finalTotal := subtotalDec.
		Sub(totalDiscountAmount).
		Add(decimal.NewFromInt(int64(shippingFee))).
		Add(decimal.NewFromInt(gst))

	savings := totalDiscountAmount
	if isPrepaid {
		savings = savings.Add(decimal.NewFromInt(int64(cfg.CODShippingFee)))
	}

	return PricingResult{
		Subtotal:            subtotal,
		Discounts:           discounts,
		DiscountAmount:      discountAmount,
		CouponDiscount:      couponDiscount,
		TotalDiscountAmount: totalDiscountAmount,
		ShippingFee:         shippingFee,
		GST:                 gst,
		FinalTotal:          finalTotal,
		Savings:             savings,
	}
}

// PrepaidSwitchDelta returns the rounded difference between the COD total and
// the prepaid total for the same cart snapshot, coupon excluded. Both
// discount passes use the same lines so the comparison is valid.
func PrepaidSwitchDelta(lines []Line, cfg config.CheckoutConfig) int64 {
	prepaid := CalculatePricing(lines, enums.PaymentMethodPrepaid, nil, cfg)
	cod := CalculatePricing(lines, enums.PaymentMethodCOD, nil, cfg)
	return cod.FinalTotal.Sub(prepaid.FinalTotal).Round(0).IntPart()
}
