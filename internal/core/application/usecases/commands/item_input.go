package commands

import (
	"context"
	"fmt"

	"rms/internal/core/domain/model/kernel"
	"rms/internal/core/domain/model/order"
	"rms/internal/core/ports"
	"rms/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ItemInput describes one requested order line as supplied by the caller.
// The unit price is captured here and stays with the line; later catalog
// price changes do not affect it.
type ItemInput struct {
	MenuItemID int64
	UnitPrice  decimal.Decimal
	Quantity   int
}

// buildItems converts raw line inputs into queued domain items, validating
// each line.
func buildItems(inputs []ItemInput) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(inputs))
	for _, in := range inputs {
		price, err := kernel.NewMoney(in.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(in.MenuItemID, price, in.Quantity)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}
	return items, nil
}

// verifyMenuItems checks that every referenced menu item exists in the
// catalog. Duplicate references to the same menu item are allowed.
func verifyMenuItems(ctx context.Context, repo ports.MenuRepository, items []*order.Item) error {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.MenuItemID()]; ok {
			continue
		}
		seen[item.MenuItemID()] = struct{}{}
		ids = append(ids, item.MenuItemID())
	}

	if len(ids) == 0 {
		return nil
	}

	found, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return errs.NewValueIsInvalidErrorWithCause(
			"menuItemId",
			fmt.Errorf("%d of %d referenced menu items exist", len(found), len(ids)),
		)
	}
	return nil
}
