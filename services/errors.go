package services

import "errors"

var (
	// Validation failures. Nothing is written when these are returned.
	ErrEmptyOrder          = errors.New("order must contain at least one line")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrUnknownItem         = errors.New("item not found in catalog")
	ErrInsufficientPayment = errors.New("amount given must be at least the amount due")
	ErrInvalidPrice        = errors.New("price must be a non-negative amount")

	// ErrOrderNotFound means the order id does not exist at all.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition is returned for a transition attempted from a
	// state that does not permit it. The order is left untouched.
	ErrInvalidTransition = errors.New("order is not in the required status")

	// ErrAlreadyTransitioned is the benign outcome of re-applying a
	// transition that already happened (a double-tapped button, a replayed
	// request). Callers should treat it as success; the original
	// timestamps are preserved.
	ErrAlreadyTransitioned = errors.New("order already transitioned")

	// ErrOrderCreationFailed is surfaced after the allocate+create
	// transaction has been retried and still failed. No partial state is
	// committed and the order number counter has not advanced.
	ErrOrderCreationFailed = errors.New("could not complete order, check connection")
)
