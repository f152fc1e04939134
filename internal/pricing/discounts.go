package pricing

import "github.com/ubnaturals/express-checkout/pkg/config"

// Line is the minimal cart line view the pricing engine operates on.
type Line struct {
	UnitPrice int
	Quantity  int
}

// DiscountBreakdown carries the discount percentages applicable to a cart.
// Bulk is retained for breakdown display; it folded into the base tiers.
type DiscountBreakdown struct {
	Base    float64 `json:"base"`
	Loyalty float64 `json:"loyalty"`
	Bulk    float64 `json:"bulk"`
	Total   float64 `json:"total"`
}

// CalculateDiscounts computes the tiered discount percentages for the cart.
// COD halves the loyalty and bulk discounts; the base tier is unaffected.
func CalculateDiscounts(lines []Line, isPrepaid bool, cfg config.CheckoutConfig) DiscountBreakdown {
	totalUnits := 0
	for _, line := range lines {
		totalUnits += line.Quantity
	}

	base := cfg.BaseTierOne
	switch {
	case totalUnits >= 3:
		base = cfg.BaseTierThreePlus
	case totalUnits >= 2:
		base = cfg.BaseTierTwo
	}

	loyalty := cfg.LoyaltyPercent
	bulk := 0.0

	if !isPrepaid {
		loyalty *= 0.5
		bulk *= 0.5
	}

	return DiscountBreakdown{
		Base:    base,
		Loyalty: loyalty,
		Bulk:    bulk,
		Total:   base + loyalty + bulk,
	}
}
