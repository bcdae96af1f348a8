// Package menu holds the read model for the external menu catalog.
//
// The catalog is owned by another service; the order engine only validates
// menu item references on write and resolves display names on read, so a
// plain read-only struct is enough here — there is no aggregate to guard.
package menu

import "github.com/shopspring/decimal"

// Item is a catalog entry as seen by the order engine.
type Item struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}
