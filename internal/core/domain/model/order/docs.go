// Package order contains the Order aggregate root and its OrderItem entity.
//
// An Order is one kitchen ticket tied to exactly one table. It owns its
// items and all status transitions: the aggregate-ready rule (all items
// ready implies the order becomes Ready) is evaluated inside the aggregate,
// so callers that serialize access per order — e.g. by locking the order row
// for the duration of a transaction — get the all-ready transition exactly
// once, with no lost updates between concurrently completing items.
package order
