package catalog

import "github.com/ubnaturals/express-checkout/pkg/enums"

// Default returns the UB Naturals product line in both bottle sizes.
func Default() *Catalog {
	return New([]Product{
		{ID: "black-thunder", Name: "Black Thunder Active+", Price: 3299, Size: enums.BottleSize500, Category: "Performance", Image: "https://www.ubnaturals.com/wp-content/uploads/2022/02/1-2-520x520.webp"},
		{ID: "liver-kidney", Name: "Liver Kidney Revitalizer", Price: 1499, Size: enums.BottleSize500, Category: "Detox", Image: "https://www.ubnaturals.com/wp-content/uploads/2022/02/1-8-520x520.webp"},
		{ID: "liver-care", Name: "Liver Care Advance", Price: 1099, Size: enums.BottleSize500, Category: "Liver Health", Image: "https://www.ubnaturals.com/wp-content/uploads/2022/02/1-5-520x520.webp"},
		{ID: "immunity-lung", Name: "Immunity Lung Detox", Price: 1499, Size: enums.BottleSize500, Category: "Immunity", Image: "https://www.ubnaturals.com/wp-content/uploads/2022/02/1-7-520x520.webp"},

		{ID: "black-thunder-250", Name: "Black Thunder Active+", Price: 1799, Size: enums.BottleSize250, Category: "Performance", Image: "https://www.ubnaturals.com/wp-content/uploads/2022/02/1-2-520x520.webp"},
		{ID: "liver-kidney-250", Name: "Liver Kidney Revitalizer", Price: 799, Size: enums.BottleSize250, Category: "Detox", Image: "https://www.ubnaturals.com/wp-content/uploads/2022/02/1-8-520x520.webp"},
		{ID: "liver-care-250", Name: "Liver Care Advance", Price: 2199, Size: enums.BottleSize250, Category: "Liver Health", Image: "https://www.ubnaturals.com/wp-content/uploads/2022/02/1-5-520x520.webp"},
		{ID: "immunity-lung-250", Name: "Immunity Lung Detox", Price: 799, Size: enums.BottleSize250, Category: "Immunity", Image: "https://www.ubnaturals.com/wp-content/uploads/2022/02/1-7-520x520.webp"},
	})
}
