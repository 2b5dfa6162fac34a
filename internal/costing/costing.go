// Package costing computes the stored cost and profit figures for a
// repair ticket.  Both functions are pure: they read nothing but
// their arguments and an empty parts list simply contributes zero.
package costing

// UsedPart is one consumed spare part as priced on the ticket.  Price
// is the selling price snapshotted at submission time, not the part's
// current price.
type UsedPart struct {
	SparePartID string
	Quantity    int
	Price       float64
}

// PartCostLookup resolves a spare part's purchase price.  Unknown
// parts report ok == false and count as zero wholesale cost, matching
// how tickets referencing since-deleted parts are priced.
type PartCostLookup func(sparePartID string) (purchasePrice float64, ok bool)

// TotalCost is what the customer pays: labor plus the priced parts.
func TotalCost(laborCost float64, parts []UsedPart) float64 {
	partsCost := 0.0
	for _, p := range parts {
		partsCost += float64(p.Quantity) * p.Price
	}
	return laborCost + partsCost
}

// Profit is the ticket's stored margin: revenue minus the wholesale
// cost of the parts minus half the labor.  The 50% labor split is a
// fixed business constant; the other half of labor is margin.
func Profit(laborCost float64, parts []UsedPart, lookup PartCostLookup) float64 {
	total := TotalCost(laborCost, parts)
	purchaseCost := 0.0
	for _, p := range parts {
		if price, ok := lookup(p.SparePartID); ok {
			purchaseCost += float64(p.Quantity) * price
		}
	}
	return total - purchaseCost - laborCost*0.5
}
