package domain

import "testing"

func threeItems(prepared int) []OrderLineItem {
	items := make([]OrderLineItem, 3)
	for i := range items {
		items[i] = OrderLineItem{MenuItemID: "item", Quantity: 1, IsPrepared: i < prepared}
	}
	return items
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name     string
		current  OrderStatus
		prepared int
		want     OrderStatus
	}{
		{"none prepared", StatusPending, 0, StatusPending},
		{"one prepared", StatusPending, 1, StatusPreparing},
		{"all prepared", StatusPreparing, 3, StatusCompleted},
		{"unprepare after completed", StatusCompleted, 2, StatusPreparing},
		{"cancelled is sticky", StatusCancelled, 3, StatusCancelled},
		{"picked up is sticky", StatusPickedUp, 1, StatusPickedUp},
	}

	for _, tc := range cases {
		got := DeriveStatus(tc.current, threeItems(tc.prepared))
		if got != tc.want {
			t.Errorf("%s: DeriveStatus = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDeriveStatusNoItems(t *testing.T) {
	if got := DeriveStatus(StatusPreparing, nil); got != StatusPending {
		t.Errorf("DeriveStatus with no items = %q, want Pending", got)
	}
}

func TestInitialStatusIgnoresPayment(t *testing.T) {
	// A brand-new fully-paid order still starts Pending; Paid is a payment
	// status, never a fulfillment status.
	if got := InitialStatus(); got != StatusPending {
		t.Errorf("InitialStatus = %q, want Pending", got)
	}
}

func TestEditBlocked(t *testing.T) {
	cases := []struct {
		status  OrderStatus
		payment PaymentStatus
		blocked bool
	}{
		{StatusPickedUp, PaymentPaid, true},
		{StatusCompleted, PaymentPaid, true},
		{StatusPickedUp, PaymentUnpaid, false},
		{StatusCompleted, PaymentUnpaid, false},
		{StatusPending, PaymentPaid, false},
	}

	for _, tc := range cases {
		o := Order{Status: tc.status, PaymentStatus: tc.payment}
		if o.EditBlocked() != tc.blocked {
			t.Errorf("EditBlocked(%s, %s) = %v, want %v", tc.status, tc.payment, !tc.blocked, tc.blocked)
		}
	}
}

func TestCanEdit(t *testing.T) {
	o := Order{Status: StatusCancelled, PaymentStatus: PaymentUnpaid}
	if o.CanEdit() {
		t.Error("cancelled order must not be editable")
	}

	o = Order{Status: StatusPickedUp, PaymentStatus: PaymentUnpaid}
	if !o.CanEdit() {
		t.Error("picked-up but unpaid order must be editable")
	}
}

func TestCheckTransition(t *testing.T) {
	completed := Order{Status: StatusCompleted}
	if err := completed.CheckTransition(StatusPickedUp); err != nil {
		t.Errorf("Completed -> Picked Up should be allowed: %v", err)
	}

	pending := Order{Status: StatusPending}
	if err := pending.CheckTransition(StatusPickedUp); err == nil {
		t.Error("Pending -> Picked Up must be rejected")
	}
	if err := pending.CheckTransition(StatusCancelled); err != nil {
		t.Errorf("Pending -> Cancelled should be allowed: %v", err)
	}

	pickedUp := Order{Status: StatusPickedUp}
	if err := pickedUp.CheckTransition(StatusCancelled); err == nil {
		t.Error("Picked Up -> Cancelled must be rejected")
	}

	cancelled := Order{Status: StatusCancelled}
	if err := cancelled.CheckTransition(StatusCancelled); err == nil {
		t.Error("cancelling twice must be rejected")
	}
}

func TestCanTogglePrepared(t *testing.T) {
	cancelled := Order{Status: StatusCancelled}
	if cancelled.CanTogglePrepared() {
		t.Error("cancelled orders must not accept preparation toggles")
	}

	pickedUp := Order{Status: StatusPickedUp}
	if !pickedUp.CanTogglePrepared() {
		t.Error("picked-up orders still accept toggles (status just stays put)")
	}
}
