package upsell

import (
	"github.com/ubnaturals/express-checkout/internal/catalog"
	"github.com/ubnaturals/express-checkout/pkg/enums"
)

// Offer is a pack or combo derived from the current cart. The Type tag
// selects which detail variant is populated; consumers switch on it rather
// than probing fields.
type Offer struct {
	ID              string           `json:"id"`
	Type            enums.UpsellType `json:"type"`
	Title           string           `json:"title"`
	OriginalPrice   int              `json:"original_price"`
	DiscountedPrice int              `json:"discounted_price"`
	Savings         int              `json:"savings"`

	Pack  *PackDetails  `json:"pack,omitempty"`
	Combo *ComboDetails `json:"combo,omitempty"`
}

// PackDetails is the single-product bundled-quantity variant.
type PackDetails struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Product   catalog.Product `json:"product"`
}

// ComboDetails pairs two distinct products at a flat discount.
type ComboDetails struct {
	ProductIDs [2]string          `json:"product_ids"`
	Products   [2]catalog.Product `json:"products"`
}

// CartRef is the minimal cart line view the generator needs.
type CartRef struct {
	ID       string
	Quantity int
}
