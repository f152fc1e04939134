package upsell

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ubnaturals/express-checkout/internal/catalog"
	"github.com/ubnaturals/express-checkout/pkg/enums"
)

const (
	packOfTwoFactor   = 0.8
	packOfThreeFactor = 0.7
	comboFactor       = 0.8

	packCutoffQty = 3
)

// Generate produces the full pack and combo offer set for the given bottle
// size and cart snapshot. Pure and deterministic: identical inputs yield
// identical offers with identical IDs, so selections survive re-renders.
// Cart entries whose product is missing from the catalog are skipped.
func Generate(cat *catalog.Catalog, size enums.BottleSize, items []CartRef) []Offer {
	quantities := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if _, seen := quantities[item.ID]; !seen {
			order = append(order, item.ID)
		}
		// Last write wins; duplicate IDs should not occur in a valid cart.
		quantities[item.ID] = item.Quantity
	}

	var packs []Offer
	seenBases := make(map[string]struct{}, len(order))
	baseOrder := make([]string, 0, len(order))

	for _, cartID := range order {
		baseID := catalog.BaseID(cartID)
		if _, seen := seenBases[baseID]; seen {
			continue
		}
		seenBases[baseID] = struct{}{}
		baseOrder = append(baseOrder, baseID)

		product, ok := cat.Variant(baseID, size)
		if !ok {
			continue
		}

		// Packs key off the quantity of the target-size variant already in
		// the cart; absent variants count as 1 so the offers still appear.
		targetID := catalog.VariantID(baseID, size)
		existingQty := quantities[targetID]
		if existingQty <= 0 {
			existingQty = 1
		}
		if existingQty > packCutoffQty {
			continue
		}

		packs = append(packs,
			makePack(targetID, size, product, 2, packOfTwoFactor),
			makePack(targetID, size, product, 3, packOfThreeFactor),
		)
	}

	var combos []Offer
	for i := 0; i < len(baseOrder); i++ {
		for j := i + 1; j < len(baseOrder); j++ {
			first, ok := cat.Variant(baseOrder[i], size)
			if !ok {
				continue
			}
			second, ok := cat.Variant(baseOrder[j], size)
			if !ok {
				continue
			}

			firstID := catalog.VariantID(baseOrder[i], size)
			secondID := catalog.VariantID(baseOrder[j], size)

			original := first.Price + second.Price
			discounted := roundedDiscount(original, comboFactor)

			combos = append(combos, Offer{
				ID:              fmt.Sprintf("combo-%s-%s-%s", firstID, secondID, size),
				Type:            enums.UpsellTypeCombo,
				Title:           fmt.Sprintf("Combo %d", len(combos)+1),
				OriginalPrice:   original,
				DiscountedPrice: discounted,
				Savings:         original - discounted,
				Combo: &ComboDetails{
					ProductIDs: [2]string{firstID, secondID},
					Products:   [2]catalog.Product{first, second},
				},
			})
		}
	}

	return append(packs, combos...)
}

func makePack(targetID string, size enums.BottleSize, product catalog.Product, quantity int, factor float64) Offer {
	original := product.Price * quantity
	discounted := roundedDiscount(original, factor)
	return Offer{
		ID:              fmt.Sprintf("pack-%s-%d-%s", targetID, quantity, size),
		Type:            enums.UpsellTypePack,
		Title:           fmt.Sprintf("Pack of %d", quantity),
		OriginalPrice:   original,
		DiscountedPrice: discounted,
		Savings:         original - discounted,
		Pack: &PackDetails{
			ProductID: targetID,
			Quantity:  quantity,
			Product:   product,
		},
	}
}

// roundedDiscount rounds once per offer, half away from zero, so rounding
// error never compounds across a running total.
func roundedDiscount(price int, factor float64) int {
	return int(decimal.NewFromInt(int64(price)).
		Mul(decimal.NewFromFloat(factor)).
		Round(0).
		IntPart())
}

// Find returns the offer with the given ID from a generated set.
func Find(offers []Offer, id string) (Offer, bool) {
	for _, offer := range offers {
		if offer.ID == id {
			return offer, true
		}
	}
	return Offer{}, false
}
