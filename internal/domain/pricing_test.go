package domain

import "testing"

func TestLineTotalBundle(t *testing.T) {
	bundle := &BundleConfig{Enabled: true, BuyQuantity: 3, BundlePrice: 50000}

	cases := []struct {
		quantity int64
		want     int64
	}{
		{0, 0},
		{2, 40000},
		{3, 50000},
		{5, 90000},
		{6, 100000},
	}

	for _, tc := range cases {
		got := LineTotal(20000, bundle, tc.quantity)
		if got != tc.want {
			t.Errorf("LineTotal(20000, bundle, %d) = %d, want %d", tc.quantity, got, tc.want)
		}
	}
}

func TestLineTotalNoBundle(t *testing.T) {
	if got := LineTotal(25000, nil, 4); got != 100000 {
		t.Errorf("LineTotal without bundle = %d, want 100000", got)
	}
}

func TestLineTotalDisabledBundle(t *testing.T) {
	bundle := &BundleConfig{Enabled: false, BuyQuantity: 3, BundlePrice: 50000}
	if got := LineTotal(20000, bundle, 3); got != 60000 {
		t.Errorf("LineTotal with disabled bundle = %d, want 60000", got)
	}
}

func TestLineTotalNegativeQuantity(t *testing.T) {
	if got := LineTotal(20000, nil, -1); got != 0 {
		t.Errorf("LineTotal with negative quantity = %d, want 0", got)
	}
}

func TestOrderTotal(t *testing.T) {
	items := []OrderLineItem{
		{
			MenuItemID: "espresso",
			BasePrice:  20000,
			Bundle:     &BundleConfig{Enabled: true, BuyQuantity: 3, BundlePrice: 50000},
			Quantity:   5,
		},
		{MenuItemID: "croissant", BasePrice: 25000, Quantity: 4},
	}

	if got := OrderTotal(items); got != 190000 {
		t.Errorf("OrderTotal = %d, want 190000", got)
	}
}

func TestOrderTotalEmpty(t *testing.T) {
	if got := OrderTotal(nil); got != 0 {
		t.Errorf("OrderTotal(nil) = %d, want 0", got)
	}
}
