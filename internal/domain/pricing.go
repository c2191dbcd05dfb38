package domain

// LineTotal prices quantity units of an item in minor currency units.
// With an enabled bundle of BuyQuantity b: floor(quantity/b) bundles at
// BundlePrice plus the remainder at BasePrice. Pure and deterministic; the
// cart recomputes it on every mutation.
func LineTotal(basePrice int64, bundle *BundleConfig, quantity int64) int64 {
	if quantity <= 0 {
		return 0
	}
	if bundle == nil || !bundle.Enabled || bundle.BuyQuantity < 2 {
		return basePrice * quantity
	}
	fullBundles := quantity / bundle.BuyQuantity
	remainder := quantity % bundle.BuyQuantity
	return fullBundles*bundle.BundlePrice + remainder*basePrice
}

// Total prices the line item at its current quantity.
func (li OrderLineItem) Total() int64 {
	return LineTotal(li.BasePrice, li.Bundle, li.Quantity)
}

// OrderTotal sums line totals over all items.
func OrderTotal(items []OrderLineItem) int64 {
	var total int64
	for _, li := range items {
		total += li.Total()
	}
	return total
}
