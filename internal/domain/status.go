package domain

import "errors"

var (
	ErrOrderCancelled    = errors.New("order is cancelled")
	ErrEditBlocked       = errors.New("order is fulfilled and paid; editing is locked")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// DeriveStatus maps preparation progress to a fulfillment status: none
// prepared is Pending, all prepared is Completed, anything in between is
// Preparing. Cancelled and Picked Up are sticky; only explicit admin actions
// move out of them.
func DeriveStatus(current OrderStatus, items []OrderLineItem) OrderStatus {
	if current == StatusCancelled || current == StatusPickedUp {
		return current
	}

	prepared := 0
	for _, li := range items {
		if li.IsPrepared {
			prepared++
		}
	}

	switch {
	case len(items) == 0 || prepared == 0:
		return StatusPending
	case prepared == len(items):
		return StatusCompleted
	default:
		return StatusPreparing
	}
}

// InitialStatus seeds the fulfillment status of a new order. Payment status
// is a parallel axis, so an order created already paid still starts Pending.
func InitialStatus() OrderStatus {
	return StatusPending
}

// EditBlocked reports whether item/note edits are locked: fulfilled
// (Completed or Picked Up) and already paid.
func (o *Order) EditBlocked() bool {
	return (o.Status == StatusCompleted || o.Status == StatusPickedUp) &&
		o.PaymentStatus == PaymentPaid
}

// CanEdit reports whether the order accepts item/note edits.
func (o *Order) CanEdit() bool {
	return o.Status != StatusCancelled && !o.EditBlocked()
}

// CanTogglePrepared reports whether the per-item checklist is still active.
// Toggling on a Picked Up order is allowed but never changes its status.
func (o *Order) CanTogglePrepared() bool {
	return o.Status != StatusCancelled
}

func (o *Order) CanMarkPickedUp() bool {
	return o.Status == StatusCompleted
}

func (o *Order) CanCancel() bool {
	return o.Status != StatusCancelled && o.Status != StatusPickedUp
}

// CheckTransition validates an explicit admin status change. Automatic
// derivation from preparation flags goes through DeriveStatus instead.
func (o *Order) CheckTransition(to OrderStatus) error {
	switch to {
	case StatusPickedUp:
		if !o.CanMarkPickedUp() {
			return ErrInvalidTransition
		}
	case StatusCancelled:
		if !o.CanCancel() {
			return ErrInvalidTransition
		}
	default:
		return ErrInvalidTransition
	}
	return nil
}
