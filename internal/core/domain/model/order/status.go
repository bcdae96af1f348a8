package order

import (
	"fmt"

	"rms/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ────────────> Ready          (aggregate: all items ready)
//	Pending/Ready ──────> ReadyForBilling (explicit "bill as-is")
//	any non-terminal ───> Billed         (close)
//	Ready/ReadyForBilling > Pending      (reopen when new items are added)
//
// InKitchen is a declared but currently unreachable state. It stays a valid
// enum value so stored orders and future workflows that use it keep working.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: at least one item is still queued
	// for the kitchen, or the order was reopened by newly added items.
	StatusPending

	// StatusInKitchen is reserved for an explicit preparation-started step.
	// No current transition produces it.
	StatusInKitchen

	// StatusReady indicates every item of the order has been prepared.
	StatusReady

	// StatusReadyForBilling is the explicit human override to bill the order
	// regardless of item readiness.
	StatusReadyForBilling

	// StatusBilled is the terminal state. Billed orders accept no new items
	// and no further status changes outside the administrative override.
	StatusBilled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:         "Unknown",
		StatusPending:         "Pending",
		StatusInKitchen:       "InKitchen",
		StatusReady:           "Ready",
		StatusReadyForBilling: "ReadyForBilling",
		StatusBilled:          "Billed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:         "Pending",
		StatusInKitchen:       "InKitchen",
		StatusReady:           "Ready",
		StatusReadyForBilling: "ReadyForBilling",
		StatusBilled:          "Billed",
	}
}

// StatusFromString parses a status name as used in the API and storage.
// Returns an error for unknown names, including "Unknown" itself.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", name),
	)
}

// Validate checks if the Status value is one of the declared statuses.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsBilled reports whether this is the terminal Billed state.
func (s Status) IsBilled() bool {
	return s == StatusBilled
}

// AggregateReady returns the status after the all-items-ready aggregate
// transition, and whether the transition applies from the current status.
//
// The transition fires only from Pending or InKitchen: an explicit
// ReadyForBilling marker or a Billed order is never overwritten by kitchen
// progress, and an already-Ready order cannot become Ready a second time.
func (s Status) AggregateReady() (Status, bool) {
	if s == StatusPending || s == StatusInKitchen {
		return StatusReady, true
	}
	return s, false
}

// Reopen returns the status after new items are added, and whether reopening
// is allowed. Billed orders are immutable to new items.
func (s Status) Reopen() (Status, error) {
	if s.IsBilled() {
		return s, errs.NewConflictError("status", "billed orders cannot accept new items")
	}
	return StatusPending, nil
}
