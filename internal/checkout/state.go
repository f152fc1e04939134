package checkout

import (
	"context"

	"github.com/google/uuid"

	"github.com/ubnaturals/express-checkout/internal/coupons"
	"github.com/ubnaturals/express-checkout/internal/pricing"
	"github.com/ubnaturals/express-checkout/internal/upsell"
	"github.com/ubnaturals/express-checkout/pkg/enums"
)

// StateSnapshot is the full session view computed on read. Upsell offers and
// pricing are derived from the cart on every call, never stored.
type StateSnapshot struct {
	SessionID     string                `json:"session_id"`
	Loading       bool                  `json:"loading"`
	Editing       bool                  `json:"editing"`
	BottleSize    enums.BottleSize      `json:"bottle_size"`
	PaymentMethod enums.PaymentMethod   `json:"payment_method"`
	User          UserState             `json:"user"`
	LoyaltyLabel  string                `json:"loyalty_label"`
	CartItems     []CartItem            `json:"cart_items"`
	Upsells       []upsell.Offer        `json:"upsells"`
	Selected      []string              `json:"selected_upsells"`
	Applied       []string              `json:"applied_upsells"`
	Coupon        *coupons.Coupon       `json:"coupon,omitempty"`
	CouponError   string                `json:"coupon_error,omitempty"`
	Pricing       pricing.PricingResult `json:"pricing"`
}

// GetState computes the current snapshot for a session. Reads count as
// activity for expiry purposes.
func (s *Service) GetState(ctx context.Context, sessionID uuid.UUID) (*StateSnapshot, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	items := copyItems(sess.relevantItems())
	offers := upsell.Generate(s.cat, sess.bottleSize, sess.upsellRefs())
	result := pricing.CalculatePricing(pricingLines(items), sess.paymentMethod, sess.appliedCoupon, s.checkoutCfg)

	var coupon *coupons.Coupon
	if sess.appliedCoupon != nil {
		c := *sess.appliedCoupon
		coupon = &c
	}

	applied := sess.applied
	if sess.editing {
		applied = nil
	}

	// The label is cosmetic; the loyalty amount is identical either way.
	label := "Welcome"
	if sess.user.IsReturning {
		label = "Loyalty"
	}

	snapshot := &StateSnapshot{
		SessionID:     sess.id.String(),
		Loading:       sess.loading(),
		Editing:       sess.editing,
		BottleSize:    sess.bottleSize,
		PaymentMethod: sess.paymentMethod,
		User:          sess.user,
		LoyaltyLabel:  label,
		CartItems:     items,
		Upsells:       offers,
		Selected:      append([]string(nil), sess.selected...),
		Applied:       append([]string(nil), applied...),
		Coupon:        coupon,
		CouponError:   sess.couponError,
		Pricing:       result,
	}
	sess.touch(s.now())
	return snapshot, nil
}
