package repo

import "errors"

// ErrNotFound is returned when an order or menu item id no longer exists,
// e.g. it was deleted by another client. Callers treat it as a clean
// not-found signal, not a crash.
var ErrNotFound = errors.New("not found")
