package cart

import (
	"testing"
	"time"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
)

func espresso() domain.MenuItem {
	return domain.MenuItem{
		ID:        "espresso",
		Name:      "Espresso",
		BasePrice: 20000,
		Category:  domain.CategoryCoffee,
		Bundle:    &domain.BundleConfig{Enabled: true, BuyQuantity: 3, BundlePrice: 50000},
	}
}

func TestAddIncrementsExisting(t *testing.T) {
	d := New()
	d.Add(espresso())
	d.Add(espresso())

	items := d.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", items[0].Quantity)
	}
}

func TestAddSnapshotsMenuItem(t *testing.T) {
	item := espresso()
	d := New()
	d.Add(item)

	// mutating the menu item afterwards must not touch the snapshot
	item.BasePrice = 99999
	item.Bundle.BundlePrice = 1

	got := d.Items()[0]
	if got.BasePrice != 20000 || got.Bundle.BundlePrice != 50000 {
		t.Error("line item must snapshot the menu item at add time")
	}
}

func TestTotalReactsToMutations(t *testing.T) {
	d := New()
	d.Add(espresso())
	if d.Total() != 20000 {
		t.Errorf("total after add = %d, want 20000", d.Total())
	}

	if err := d.AdjustQuantity("espresso", 2); err != nil {
		t.Fatal(err)
	}
	if d.Total() != 50000 {
		t.Errorf("total at bundle quantity = %d, want 50000", d.Total())
	}
}

func TestAdjustQuantityFloorsAtOne(t *testing.T) {
	d := New()
	d.Add(espresso())
	if err := d.AdjustQuantity("espresso", -5); err != nil {
		t.Fatal(err)
	}
	if got := d.Items()[0].Quantity; got != 1 {
		t.Errorf("quantity = %d, want 1", got)
	}
}

func TestIncreaseResetsPrepared(t *testing.T) {
	order := &domain.Order{
		Items: []domain.OrderLineItem{
			{MenuItemID: "espresso", Name: "Espresso", BasePrice: 20000, Quantity: 2, IsPrepared: true},
		},
	}

	d := FromOrder(order)
	if err := d.AdjustQuantity("espresso", 1); err != nil {
		t.Fatal(err)
	}
	if d.Items()[0].IsPrepared {
		t.Error("increasing quantity must reset IsPrepared")
	}
}

func TestDecreaseKeepsPrepared(t *testing.T) {
	order := &domain.Order{
		Items: []domain.OrderLineItem{
			{MenuItemID: "espresso", Name: "Espresso", BasePrice: 20000, Quantity: 3, IsPrepared: true},
		},
	}

	d := FromOrder(order)
	if err := d.AdjustQuantity("espresso", -1); err != nil {
		t.Fatal(err)
	}
	if !d.Items()[0].IsPrepared {
		t.Error("decreasing quantity must not reset IsPrepared")
	}
}

func TestDecrementToZeroRemoves(t *testing.T) {
	d := New()
	d.Add(espresso())
	if err := d.Decrement("espresso"); err != nil {
		t.Fatal(err)
	}
	if !d.Empty() {
		t.Error("decrementing quantity 1 must remove the line")
	}
}

func TestDraftIsolation(t *testing.T) {
	original := &domain.Order{
		ID:           "order-1",
		CustomerName: "Sari",
		Items: []domain.OrderLineItem{
			{MenuItemID: "espresso", Name: "Espresso", BasePrice: 20000, Quantity: 2, IsPrepared: true},
		},
		Total:         40000,
		Status:        domain.StatusPreparing,
		PaymentStatus: domain.PaymentUnpaid,
		CreatedAt:     time.Now(),
	}

	d := FromOrder(original)
	d.Add(domain.MenuItem{ID: "croissant", Name: "Croissant", BasePrice: 25000, Category: domain.CategoryFood})
	if err := d.AdjustQuantity("espresso", 3); err != nil {
		t.Fatal(err)
	}
	d.Remove("croissant")
	d.SetOrderNote("extra hot")

	// discard the draft: the original must be untouched
	if len(original.Items) != 1 || original.Items[0].Quantity != 2 || !original.Items[0].IsPrepared {
		t.Error("draft mutations leaked into the original order's items")
	}
	if original.Total != 40000 || original.Status != domain.StatusPreparing || original.Note != "" {
		t.Error("draft mutations leaked into the original order")
	}
}

func TestCustomerNameDefaultsToGuest(t *testing.T) {
	d := New()
	if d.CustomerName() != "Guest" {
		t.Errorf("CustomerName = %q, want Guest", d.CustomerName())
	}

	d.SetCustomerName("Budi")
	if d.CustomerName() != "Budi" {
		t.Errorf("CustomerName = %q, want Budi", d.CustomerName())
	}
}

func TestSetItemNote(t *testing.T) {
	d := New()
	d.Add(espresso())
	if err := d.SetItemNote("espresso", "less sugar"); err != nil {
		t.Fatal(err)
	}
	if d.Items()[0].Note != "less sugar" {
		t.Error("item note not applied")
	}

	if err := d.SetItemNote("missing", "x"); err == nil {
		t.Error("noting a missing item must error")
	}
}
