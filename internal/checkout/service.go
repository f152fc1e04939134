package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ubnaturals/express-checkout/internal/catalog"
	"github.com/ubnaturals/express-checkout/internal/coupons"
	"github.com/ubnaturals/express-checkout/internal/pricing"
	"github.com/ubnaturals/express-checkout/internal/upsell"
	"github.com/ubnaturals/express-checkout/pkg/config"
	"github.com/ubnaturals/express-checkout/pkg/enums"
	pkgerrors "github.com/ubnaturals/express-checkout/pkg/errors"
	"github.com/ubnaturals/express-checkout/pkg/logger"
	"github.com/ubnaturals/express-checkout/pkg/metrics"
)

// SwitchNotice is the informational message surfaced after a payment-method
// switch: the amount saved by going prepaid, or the extra cost of COD.
type SwitchNotice struct {
	Direction enums.SwitchDirection `json:"direction"`
	Amount    int64                 `json:"amount"`
}

// Service owns every checkout session and is the only component allowed to
// mutate cart state. Pricing and upsell generation read snapshots only.
type Service struct {
	cat         *catalog.Catalog
	couponTable *coupons.Table
	checkoutCfg config.CheckoutConfig
	sessionCfg  config.SessionConfig
	logg        *logger.Logger
	metrics     *metrics.CheckoutMetrics

	now           func() time.Time
	returningRoll func() bool

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

// ServiceParams collects the dependencies for NewService.
type ServiceParams struct {
	Catalog     *catalog.Catalog
	CouponTable *coupons.Table
	CheckoutCfg config.CheckoutConfig
	SessionCfg  config.SessionConfig
	Logger      *logger.Logger
	Metrics     *metrics.CheckoutMetrics

	// Now and ReturningRoll are injectable for tests.
	Now           func() time.Time
	ReturningRoll func() bool
}

// NewService builds the checkout session service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if params.CouponTable == nil {
		return nil, fmt.Errorf("coupon table required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	roll := params.ReturningRoll
	if roll == nil {
		roll = func() bool { return rand.Float64() > 0.5 }
	}
	return &Service{
		cat:           params.Catalog,
		couponTable:   params.CouponTable,
		checkoutCfg:   params.CheckoutCfg,
		sessionCfg:    params.SessionCfg,
		logg:          params.Logger,
		metrics:       params.Metrics,
		now:           now,
		returningRoll: roll,
		sessions:      make(map[uuid.UUID]*session),
	}, nil
}

// CreateSession seeds a new checkout session: the four 500ml products at
// quantity one, prepaid payment, no coupon.
func (s *Service) CreateSession(ctx context.Context) (uuid.UUID, error) {
	seed := s.cat.ProductsBySize(enums.BottleSize500)
	items := make([]CartItem, 0, len(seed))
	for _, product := range seed {
		items = append(items, CartItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: 1,
			Size:     product.Size,
			Category: product.Category,
			Image:    product.Image,
		})
	}

	sess := &session{
		id:            uuid.New(),
		inFlight:      make(chan struct{}, 1),
		cartItems:     items,
		tempCartItems: copyItems(items),
		bottleSize:    enums.BottleSize500,
		paymentMethod: enums.PaymentMethodPrepaid,
		user: UserState{
			IsReturning: s.returningRoll(),
			Name:        "Customer",
			Persona:     "customer",
		},
		lastTouched: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(count)
	s.metrics.IncSuccess("create_session")
	if s.logg != nil {
		s.logg.Info(s.logg.WithSessionID(ctx, sess.id.String()), "checkout.session.created")
	}
	return sess.id, nil
}

func (s *Service) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout session not found")
	}
	return sess, nil
}

// runGated executes apply behind the session's single in-flight slot after
// the configured simulated delay. A second mutation while one is pending is
// rejected, never interleaved or queued.
func (s *Service) runGated(sess *session, apply func() error) error {
	select {
	case sess.inFlight <- struct{}{}:
	default:
		return pkgerrors.New(pkgerrors.CodeConflict, "another update is already in progress")
	}
	defer func() { <-sess.inFlight }()

	if delay := s.checkoutCfg.SimulatedDelay; delay > 0 {
		time.Sleep(delay)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	err := apply()
	if err == nil {
		sess.touch(s.now())
	}
	return err
}

func (s *Service) track(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.ObserveDuration(operation, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(operation)
	} else {
		s.metrics.IncSuccess(operation)
	}
	return err
}

// ToggleUpsell selects or deselects a pack/combo offer and applies its cart
// effect. An offer already applied in normal mode is locked; toggling it is
// a no-op until deselected via editing or size switch.
func (s *Service) ToggleUpsell(ctx context.Context, sessionID uuid.UUID, upsellID string) error {
	return s.track("toggle_upsell", func() error {
		sess, err := s.lookup(sessionID)
		if err != nil {
			return err
		}

		sess.mu.Lock()
		locked := !sess.editing && sess.isApplied(upsellID)
		sess.mu.Unlock()
		if locked {
			return nil
		}

		return s.runGated(sess, func() error {
			offers := upsell.Generate(s.cat, sess.bottleSize, sess.upsellRefs())
			offer, ok := upsell.Find(offers, upsellID)
			if !ok {
				// Stale ID from a pre-mutation render; drop it silently.
				if s.logg != nil {
					s.logg.Warn(s.logg.WithSessionID(ctx, sessionID.String()), "checkout.upsell.stale_id")
				}
				return nil
			}

			if sess.isSelected(upsellID) {
				s.deselectOffer(sess, offer)
				sess.selected = removeString(sess.selected, upsellID)
				sess.applied = removeString(sess.applied, upsellID)
			} else {
				s.selectOffer(sess, offer)
				sess.selected = append(sess.selected, upsellID)
				if !sess.editing {
					sess.applied = append(sess.applied, upsellID)
				}
			}
			sess.resyncTemp()
			return nil
		})
	})
}

func (s *Service) selectOffer(sess *session, offer upsell.Offer) {
	items := sess.relevantItems()
	switch offer.Type {
	case enums.UpsellTypePack:
		items = setOrAddItem(items, offer.Pack.ProductID, sess.bottleSize, offer.Pack.Product, offer.Pack.Quantity)
	case enums.UpsellTypeCombo:
		for i, productID := range offer.Combo.ProductIDs {
			items = incrementOrAddItem(items, productID, sess.bottleSize, offer.Combo.Products[i])
		}
	}
	sess.setRelevantItems(items)
}

func (s *Service) deselectOffer(sess *session, offer upsell.Offer) {
	items := sess.relevantItems()
	switch offer.Type {
	case enums.UpsellTypePack:
		// Pack deselects revert to the pre-pack quantity of 1, never below.
		// The combo branch decrements with the same floor but still filters
		// zero-quantity items; keep both branches as they are.
		for i := range items {
			if items[i].ID == offer.Pack.ProductID && items[i].Size == sess.bottleSize {
				if items[i].Quantity == offer.Pack.Quantity {
					items[i].Quantity = 1
				} else if items[i].Quantity-1 > 1 {
					items[i].Quantity--
				} else {
					items[i].Quantity = 1
				}
				break
			}
		}
	case enums.UpsellTypeCombo:
		for i := range items {
			if containsID(offer.Combo.ProductIDs, items[i].ID) && items[i].Size == sess.bottleSize {
				if items[i].Quantity-1 > 1 {
					items[i].Quantity--
				} else {
					items[i].Quantity = 1
				}
			}
		}
		items = dropEmptyItems(items)
	}
	sess.setRelevantItems(items)
}

// StartEditing snapshots the live cart into the scratch copy and clears the
// selection highlights for a clean slate.
func (s *Service) StartEditing(ctx context.Context, sessionID uuid.UUID) error {
	return s.track("start_editing", func() error {
		sess, err := s.lookup(sessionID)
		if err != nil {
			return err
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		sess.tempCartItems = copyItems(sess.cartItems)
		sess.editing = true
		sess.selected = nil
		sess.touch(s.now())
		return nil
	})
}

// CancelEditing discards the scratch copy and returns to viewing.
func (s *Service) CancelEditing(ctx context.Context, sessionID uuid.UUID) error {
	return s.track("cancel_editing", func() error {
		sess, err := s.lookup(sessionID)
		if err != nil {
			return err
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		sess.tempCartItems = copyItems(sess.cartItems)
		sess.editing = false
		sess.touch(s.now())
		return nil
	})
}

// SaveChanges commits the scratch copy to the live cart.
func (s *Service) SaveChanges(ctx context.Context, sessionID uuid.UUID) error {
	return s.track("save_changes", func() error {
		sess, err := s.lookup(sessionID)
		if err != nil {
			return err
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		sess.cartItems = copyItems(sess.tempCartItems)
		sess.editing = false
		sess.selected = nil
		sess.touch(s.now())
		return nil
	})
}

// UpdateTempQuantity sets a scratch-copy item's quantity; zero or below
// removes the item. Valid only while editing.
func (s *Service) UpdateTempQuantity(ctx context.Context, sessionID uuid.UUID, itemID string, quantity int) error {
	return s.track("update_temp_quantity", func() error {
		sess, err := s.lookup(sessionID)
		if err != nil {
			return err
		}

		sess.mu.Lock()
		editing := sess.editing
		sess.mu.Unlock()
		if !editing {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is not in editing mode")
		}

		return s.runGated(sess, func() error {
			if quantity <= 0 {
				sess.tempCartItems = removeItem(sess.tempCartItems, itemID)
				return nil
			}
			for i := range sess.tempCartItems {
				if sess.tempCartItems[i].ID == itemID {
					sess.tempCartItems[i].Quantity = quantity
				}
			}
			return nil
		})
	})
}

// RemoveTempItem drops an item from the scratch copy. Valid only while
// editing; applies immediately, no simulated delay.
func (s *Service) RemoveTempItem(ctx context.Context, sessionID uuid.UUID, itemID string) error {
	return s.track("remove_temp_item", func() error {
		sess, err := s.lookup(sessionID)
		if err != nil {
			return err
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if !sess.editing {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is not in editing mode")
		}
		sess.tempCartItems = removeItem(sess.tempCartItems, itemID)
		sess.touch(s.now())
		return nil
	})
}

// ChangeBottleSize switches the active size. Every previously selected or
// applied upsell ID is size-specific and goes stale, so both sets clear
// unconditionally.
func (s *Service) ChangeBottleSize(ctx context.Context, sessionID uuid.UUID, size enums.BottleSize) error {
	return s.track("change_bottle_size", func() error {
		sess, err := s.lookup(sessionID)
		if err != nil {
			return err
		}
		if !size.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid bottle size")
		}
		return s.runGated(sess, func() error {
			sess.bottleSize = size
			sess.clearUpsellSelections()
			return nil
		})
	})
}

// ApplyCoupon validates the code against the static table. Unknown codes set
// the inline coupon error without consuming the delay slot; valid codes go
// through the gate. A second coupon requires removing the active one first.
func (s *Service) ApplyCoupon(ctx context.Context, sessionID uuid.UUID, code string) error {
	return s.track("apply_coupon", func() error {
		sess, err := s.lookup(sessionID)
		if err != nil {
			return err
		}

		sess.mu.Lock()
		active := sess.appliedCoupon != nil
		sess.mu.Unlock()
		if active {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "remove the active coupon first")
		}

		coupon, ok := s.couponTable.Find(code)
		if !ok {
			sess.mu.Lock()
			sess.couponError = "Invalid coupon code"
			sess.mu.Unlock()
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid coupon code")
		}

		return s.runGated(sess, func() error {
			if coupon.Type == enums.CouponTypeFixed {
				subtotal := 0
				for _, item := range sess.relevantItems() {
					subtotal += item.Price * item.Quantity
				}
				if coupon.Discount > subtotal && s.logg != nil {
					s.logg.Warn(s.logg.WithField(ctx, "coupon", coupon.Code), "checkout.coupon.exceeds_subtotal")
				}
			}
			sess.appliedCoupon = &coupon
			sess.couponError = ""
			return nil
		})
	})
}

// RemoveCoupon clears the applied coupon.
func (s *Service) RemoveCoupon(ctx context.Context, sessionID uuid.UUID) error {
	return s.track("remove_coupon", func() error {
		sess, err := s.lookup(sessionID)
		if err != nil {
			return err
		}
		return s.runGated(sess, func() error {
			sess.appliedCoupon = nil
			sess.couponError = ""
			return nil
		})
	})
}

// ChangePaymentMethod switches the payment method and, when the method
// actually changes, reports the prepaid-vs-COD delta for the current cart
// snapshot. Re-selecting the active method reaffirms it with no notice.
func (s *Service) ChangePaymentMethod(ctx context.Context, sessionID uuid.UUID, method enums.PaymentMethod) (*SwitchNotice, error) {
	var notice *SwitchNotice
	err := s.track("change_payment_method", func() error {
		sess, err := s.lookup(sessionID)
		if err != nil {
			return err
		}
		if !method.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		if method == sess.paymentMethod {
			sess.touch(s.now())
			return nil
		}

		delta := pricing.PrepaidSwitchDelta(pricingLines(sess.relevantItems()), s.checkoutCfg)
		sess.paymentMethod = method
		sess.touch(s.now())

		direction := enums.SwitchDirectionExtra
		if method.IsPrepaid() {
			direction = enums.SwitchDirectionSaving
		}
		notice = &SwitchNotice{Direction: direction, Amount: delta}
		return nil
	})
	return notice, err
}

// DeleteSession drops a session from memory.
func (s *Service) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	count := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(count)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "checkout session not found")
	}
	return nil
}

// SweepExpired removes sessions idle beyond the configured TTL and returns
// how many were dropped.
func (s *Service) SweepExpired(ctx context.Context) int {
	ttl := s.sessionCfg.TTL
	if ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.lastTouched.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			removed++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(count)
	if removed > 0 && s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "removed", removed), "checkout.sessions.swept")
	}
	return removed
}

// RunSweeper sweeps expired sessions on the configured interval until the
// context is canceled.
func (s *Service) RunSweeper(ctx context.Context) {
	interval := s.sessionCfg.SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepExpired(ctx)
		}
	}
}

func setOrAddItem(items []CartItem, productID string, size enums.BottleSize, product catalog.Product, quantity int) []CartItem {
	for i := range items {
		if items[i].ID == productID && items[i].Size == size {
			items[i].Quantity = quantity
			return items
		}
	}
	return append(items, CartItem{
		ID:       productID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: quantity,
		Size:     size,
		Category: product.Category,
		Image:    product.Image,
	})
}

func incrementOrAddItem(items []CartItem, productID string, size enums.BottleSize, product catalog.Product) []CartItem {
	for i := range items {
		if items[i].ID == productID && items[i].Size == size {
			items[i].Quantity++
			return items
		}
	}
	return append(items, CartItem{
		ID:       productID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: 1,
		Size:     size,
		Category: product.Category,
		Image:    product.Image,
	})
}

func removeItem(items []CartItem, itemID string) []CartItem {
	out := items[:0]
	for _, item := range items {
		if item.ID != itemID {
			out = append(out, item)
		}
	}
	return out
}

func dropEmptyItems(items []CartItem) []CartItem {
	out := items[:0]
	for _, item := range items {
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out
}

func containsID(ids [2]string, id string) bool {
	return ids[0] == id || ids[1] == id
}

func pricingLines(items []CartItem) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{UnitPrice: item.Price, Quantity: item.Quantity})
	}
	return lines
}
