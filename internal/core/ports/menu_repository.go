package ports

import (
	"context"

	"rms/internal/core/domain/model/menu"
)

// MenuRepository defines read access to the external menu catalog.
type MenuRepository interface {
	// GetByIDs retrieves the catalog entries for the given ids. Unknown ids
	// are simply absent from the result; callers compare lengths to detect
	// invalid references.
	GetByIDs(ctx context.Context, ids []int64) ([]menu.Item, error)
}
