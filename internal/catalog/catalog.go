package catalog

import (
	"strings"

	"github.com/ubnaturals/express-checkout/pkg/enums"
)

const sizeSuffix250 = "-250"

// Product is a single purchasable size variant. Catalog entries are
// immutable; callers always receive copies.
type Product struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Price    int              `json:"price"`
	Size     enums.BottleSize `json:"size"`
	Category string           `json:"category"`
	Image    string           `json:"image,omitempty"`
}

// Catalog resolves base product IDs to concrete size variants. Listing
// order follows construction order.
type Catalog struct {
	byID  map[string]Product
	order []string
}

// New builds a read-only catalog from the provided variants.
func New(products []Product) *Catalog {
	byID := make(map[string]Product, len(products))
	order := make([]string, 0, len(products))
	for _, p := range products {
		if _, seen := byID[p.ID]; !seen {
			order = append(order, p.ID)
		}
		byID[p.ID] = p
	}
	return &Catalog{byID: byID, order: order}
}

// BaseID strips the 250ml suffix from a variant ID. Stripping twice is the
// same as stripping once.
func BaseID(id string) string {
	return strings.TrimSuffix(id, sizeSuffix250)
}

// VariantID forms the variant ID for a base product in the given size.
func VariantID(baseID string, size enums.BottleSize) string {
	baseID = BaseID(baseID)
	if size == enums.BottleSize250 {
		return baseID + sizeSuffix250
	}
	return baseID
}

// Variant resolves a product (by base or variant ID) in the target size.
func (c *Catalog) Variant(id string, size enums.BottleSize) (Product, bool) {
	product, ok := c.byID[VariantID(id, size)]
	return product, ok
}

// Products returns all catalog variants in construction order.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ProductsBySize returns the variants of one size in construction order.
func (c *Catalog) ProductsBySize(size enums.BottleSize) []Product {
	var out []Product
	for _, id := range c.order {
		if p := c.byID[id]; p.Size == size {
			out = append(out, p)
		}
	}
	return out
}
