// Package stock translates order-items changes into per-menu-item inventory
// deltas. Computation is pure; applying the deltas is the caller's business.
package stock

import "github.com/satriapandu0417-art/cashier-epyepe/internal/domain"

// Adjustment is a signed stock change for one menu item. Positive deltas
// return stock, negative deltas consume it.
type Adjustment struct {
	MenuItemID string
	Delta      int64
}

// ForCreation consumes stock for every line of a brand-new order.
func ForCreation(items []domain.OrderLineItem) []Adjustment {
	adjustments := make([]Adjustment, 0, len(items))
	for _, li := range items {
		if li.Quantity == 0 {
			continue
		}
		adjustments = append(adjustments, Adjustment{MenuItemID: li.MenuItemID, Delta: -li.Quantity})
	}
	return adjustments
}

// ForEdit diffs the pre-edit items against the new ones: removed or decreased
// lines return stock, added or increased lines consume it. Zero deltas are
// skipped so unchanged items never trigger a write. oldItems must come from
// the pre-edit snapshot, not the optimistically updated order, or the delta
// double-counts.
func ForEdit(oldItems, newItems []domain.OrderLineItem) []Adjustment {
	oldQty := make(map[string]int64, len(oldItems))
	for _, li := range oldItems {
		oldQty[li.MenuItemID] += li.Quantity
	}
	newQty := make(map[string]int64, len(newItems))
	for _, li := range newItems {
		newQty[li.MenuItemID] += li.Quantity
	}

	var adjustments []Adjustment
	seen := make(map[string]bool, len(oldItems))

	// old items first, in their display order, then newly added ones
	for _, li := range oldItems {
		if seen[li.MenuItemID] {
			continue
		}
		seen[li.MenuItemID] = true

		delta := oldQty[li.MenuItemID] - newQty[li.MenuItemID]
		if delta == 0 {
			continue
		}
		adjustments = append(adjustments, Adjustment{MenuItemID: li.MenuItemID, Delta: delta})
	}

	for _, li := range newItems {
		if seen[li.MenuItemID] {
			continue
		}
		seen[li.MenuItemID] = true

		if newQty[li.MenuItemID] == 0 {
			continue
		}
		adjustments = append(adjustments, Adjustment{MenuItemID: li.MenuItemID, Delta: -newQty[li.MenuItemID]})
	}

	return adjustments
}
