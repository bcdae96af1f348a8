package queries

import (
	"errors"

	"rms/internal/pkg/guard"
)

var ErrGetLiveOrdersQueryIsNotConstructed = errors.New(
	"GetLiveOrdersQuery must be created via NewGetLiveOrdersQuery constructor",
)

// GetLiveOrdersQuery retrieves the orders currently in play, i.e. every
// order that is not yet billed. Kitchen displays poll this to reconcile
// missed push events.
type GetLiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetLiveOrdersQuery creates a query to retrieve the live orders.
func NewGetLiveOrdersQuery() GetLiveOrdersQuery {
	return GetLiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetLiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetLiveOrdersQueryIsNotConstructed)
}
