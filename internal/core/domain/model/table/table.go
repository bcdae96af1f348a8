// Package table models the physical seating unit an order is attached to.
//
// Table management (creation, seating plans, reservations) belongs to an
// external service; the order engine only reads tables and frees them when
// an order closes.
package table

import (
	"errors"
	"fmt"

	"rms/internal/pkg/errs"
)

// ErrTableIsNotConstructed is returned when a Table instance was not created
// through RestoreTable.
var ErrTableIsNotConstructed = errors.New("Table must be created via RestoreTable")

// Status represents table occupancy.
type Status int

const (
	// StatusUnknown represents an invalid or undefined table status.
	StatusUnknown Status = iota

	// StatusAvailable means the table has no active order.
	StatusAvailable

	// StatusOccupied means the table is seated. Occupancy is set by the
	// external table service; the order engine only ever frees tables.
	StatusOccupied
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusAvailable: "Available",
		StatusOccupied:  "Occupied",
	}
}

// StatusFromString parses a table status name as used in storage.
func StatusFromString(name string) (Status, error) {
	switch name {
	case "Available":
		return StatusAvailable, nil
	case "Occupied":
		return StatusOccupied, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"tableStatus",
			fmt.Errorf("%q is not a valid table status", name),
		)
	}
}

// Validate checks if the Status value is Available or Occupied.
func (s Status) Validate() error {
	if s != StatusAvailable && s != StatusOccupied {
		return errs.NewValueIsInvalidErrorWithCause(
			"tableStatus",
			fmt.Errorf("%d is not a valid table status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the table status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Table is a physical seating unit. The order engine treats it as an almost
// read-only collaborator: the only mutation it performs is Free on close.
type Table struct {
	id     int64
	name   string
	seats  int
	status Status

	isConstructed bool
}

// RestoreTable reconstructs a table from persistence.
func RestoreTable(id int64, name string, seats int, status Status) (*Table, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidError("table id")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("table name")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Table{
		id:            id,
		name:          name,
		seats:         seats,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Table instance was properly constructed.
func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

// ID returns the table's persistent identity.
func (t *Table) ID() int64 {
	return t.id
}

// Name returns the display name shown on tickets and kitchen displays.
func (t *Table) Name() string {
	return t.name
}

// Seats returns the seating capacity.
func (t *Table) Seats() int {
	return t.seats
}

// Status returns the current occupancy state.
func (t *Table) Status() Status {
	return t.status
}

// Free marks the table Available. Called when the owning order closes;
// idempotent for tables that are already free.
func (t *Table) Free() {
	t.status = StatusAvailable
}
