package commands_test

import (
	"errors"
	"testing"

	"rms/internal/core/application/usecases/commands"
	"rms/internal/core/domain/model/menu"
	"rms/internal/core/domain/model/order"
	"rms/internal/core/domain/model/table"
	"rms/internal/core/ports"
	"rms/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func occupiedTable(t *testing.T, id int64) *table.Table {
	t.Helper()
	tbl, err := table.RestoreTable(id, "T12", 4, table.StatusOccupied)
	require.NoError(t, err)
	return tbl
}

func catalogFor(inputs []commands.ItemInput) []menu.Item {
	seen := map[int64]struct{}{}
	var items []menu.Item
	for _, in := range inputs {
		if _, ok := seen[in.MenuItemID]; ok {
			continue
		}
		seen[in.MenuItemID] = struct{}{}
		items = append(items, menu.Item{ID: in.MenuItemID, Name: "dish", Price: in.UnitPrice})
	}
	return items
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	inputs := validItemInputs()
	cmd, _ := commands.NewCreateOrderCommand(12, decimal.Zero, decimal.NewFromInt(5), inputs)

	orderRepo := new(MockOrderRepository)
	tableRepo := new(MockTableRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TableRepository").Return(tableRepo).Once(),
		tableRepo.On("Get", mock.Anything, int64(12)).Return(occupiedTable(t, 12), nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("GetByIDs", mock.Anything, []int64{3, 7}).Return(catalogFor(inputs), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				require.NoError(t, args.Get(1).(*order.Order).AssignID(42))
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	orderID, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ports.EventOrderCreated, events[0].Type)
	assert.Equal(t, int64(42), events[0].OrderID)
	assert.Equal(t, order.StatusPending.String(), events[0].Status)

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_EmptyOrder(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(12, decimal.Zero, decimal.NewFromInt(5), nil)

	orderRepo := new(MockOrderRepository)
	tableRepo := new(MockTableRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TableRepository").Return(tableRepo).Once(),
		tableRepo.On("Get", mock.Anything, int64(12)).Return(occupiedTable(t, 12), nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				require.NoError(t, args.Get(1).(*order.Order).AssignID(43))
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	orderID, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(43), orderID)

	// no lines means no catalog lookup
	menuRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
	require.Len(t, notifier.Events(), 1)
	assert.Equal(t, ports.EventOrderCreated, notifier.Events()[0].Type)
}

func TestCreateOrderCommandHandler_Handle_UnknownTable(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(99, decimal.Zero, decimal.Zero, validItemInputs())

	tableRepo := new(MockTableRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TableRepository").Return(tableRepo).Once(),
		tableRepo.On("Get", mock.Anything, int64(99)).
			Return(nil, errs.NewObjectNotFoundError("tableId", int64(99))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Empty(t, notifier.Events())
}

func TestCreateOrderCommandHandler_Handle_UnknownMenuItem(t *testing.T) {
	ctx := t.Context()
	inputs := validItemInputs()
	cmd, _ := commands.NewCreateOrderCommand(12, decimal.Zero, decimal.Zero, inputs)

	tableRepo := new(MockTableRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TableRepository").Return(tableRepo).Once(),
		tableRepo.On("Get", mock.Anything, int64(12)).Return(occupiedTable(t, 12), nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		// catalog only resolves one of the two referenced menu items
		menuRepo.On("GetByIDs", mock.Anything, []int64{3, 7}).
			Return(catalogFor(inputs[:1]), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Empty(t, notifier.Events())
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockIntakeUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(RecordingNotifier))
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	inputs := validItemInputs()
	cmd, _ := commands.NewCreateOrderCommand(12, decimal.Zero, decimal.Zero, inputs)

	orderRepo := new(MockOrderRepository)
	tableRepo := new(MockTableRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TableRepository").Return(tableRepo).Once(),
		tableRepo.On("Get", mock.Anything, int64(12)).Return(occupiedTable(t, 12), nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("GetByIDs", mock.Anything, []int64{3, 7}).Return(catalogFor(inputs), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Empty(t, notifier.Events())
}
