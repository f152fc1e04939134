package checkout

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ubnaturals/express-checkout/internal/coupons"
	"github.com/ubnaturals/express-checkout/internal/upsell"
	"github.com/ubnaturals/express-checkout/pkg/enums"
)

// CartItem is a line in the shopper's cart. The ID encodes both product and
// size, so the same product in two sizes occupies two entries.
type CartItem struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Price    int              `json:"price"`
	Quantity int              `json:"quantity"`
	Size     enums.BottleSize `json:"size"`
	Category string           `json:"category"`
	Image    string           `json:"image,omitempty"`
}

// UserState carries the simulated shopper identity. IsReturning only picks
// the discount label; it never changes the computed amount.
type UserState struct {
	IsReturning bool   `json:"is_returning"`
	Name        string `json:"name"`
	Persona     string `json:"persona"`
}

// session is the in-memory state of one checkout. All fields are guarded by
// mu; inFlight is the single slot for simulated-delay mutations.
type session struct {
	id       uuid.UUID
	mu       sync.Mutex
	inFlight chan struct{}

	cartItems     []CartItem
	tempCartItems []CartItem
	selected      []string
	applied       []string
	bottleSize    enums.BottleSize
	editing       bool

	appliedCoupon *coupons.Coupon
	couponError   string

	paymentMethod enums.PaymentMethod
	user          UserState

	lastTouched time.Time
}

func (s *session) touch(now time.Time) {
	s.lastTouched = now
}

func (s *session) loading() bool {
	return len(s.inFlight) > 0
}

// relevantItems returns the list mutations and derived computations operate
// on: the scratch copy while editing, the live cart otherwise.
func (s *session) relevantItems() []CartItem {
	if s.editing {
		return s.tempCartItems
	}
	return s.cartItems
}

// setRelevantItems writes the mutated list back to whichever copy
// relevantItems returned.
func (s *session) setRelevantItems(items []CartItem) {
	if s.editing {
		s.tempCartItems = items
		return
	}
	s.cartItems = items
}

// resyncTemp refreshes the scratch copy from the live cart. Called after
// every live-cart mutation so the scratch copy never goes stale outside of
// editing mode.
func (s *session) resyncTemp() {
	if !s.editing {
		s.tempCartItems = copyItems(s.cartItems)
	}
}

func (s *session) isSelected(upsellID string) bool {
	return containsString(s.selected, upsellID)
}

// isApplied reports whether the upsell was confirmed in normal mode. While
// editing nothing reads as applied; the shopper gets a clean slate.
func (s *session) isApplied(upsellID string) bool {
	if s.editing {
		return false
	}
	return containsString(s.applied, upsellID)
}

func (s *session) clearUpsellSelections() {
	s.selected = nil
	s.applied = nil
}

func (s *session) upsellRefs() []upsell.CartRef {
	items := s.relevantItems()
	refs := make([]upsell.CartRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, upsell.CartRef{ID: item.ID, Quantity: item.Quantity})
	}
	return refs
}

func copyItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}

func containsString(list []string, value string) bool {
	for _, entry := range list {
		if entry == value {
			return true
		}
	}
	return false
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, entry := range list {
		if entry != value {
			out = append(out, entry)
		}
	}
	return out
}
