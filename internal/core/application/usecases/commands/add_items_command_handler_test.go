package commands_test

import (
	"testing"

	"rms/internal/core/application/usecases/commands"
	"rms/internal/core/domain/model/kernel"
	"rms/internal/core/domain/model/order"
	"rms/internal/core/ports"
	"rms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoredOrderInStatus(t *testing.T, orderID int64, status order.Status) *order.Order {
	t.Helper()
	aggregate := inKitchenOrder(t, orderID, 2)
	require.NoError(t, aggregate.SetStatus(status))
	return aggregate
}

func TestNewAddItemsCommand_NoItems(t *testing.T) {
	_, err := commands.NewAddItemsCommand(10, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestAddItemsCommandHandler_Handle_ReopensReadyOrder(t *testing.T) {
	ctx := t.Context()
	inputs := validItemInputs()
	cmd, _ := commands.NewAddItemsCommand(10, inputs)
	aggregate := restoredOrderInStatus(t, 10, order.StatusReady)

	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("GetByIDs", mock.Anything, []int64{3, 7}).Return(catalogFor(inputs), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, int64(10)).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewAddItemsCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusPending, aggregate.Status())
	assert.Len(t, aggregate.Items(), 4)
	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ports.EventOrderStatus, events[0].Type)
	assert.Equal(t, order.StatusPending.String(), events[0].Status)
}

func TestAddItemsCommandHandler_Handle_BilledOrderConflicts(t *testing.T) {
	ctx := t.Context()
	inputs := validItemInputs()
	cmd, _ := commands.NewAddItemsCommand(10, inputs)
	aggregate := restoredOrderInStatus(t, 10, order.StatusBilled)

	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("GetByIDs", mock.Anything, []int64{3, 7}).Return(catalogFor(inputs), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, int64(10)).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewAddItemsCommandHandler(factory, notifier)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Len(t, aggregate.Items(), 2)
	assert.Empty(t, notifier.Events())
}

func TestAddItemsCommandHandler_Handle_KeepsUnitPrice(t *testing.T) {
	ctx := t.Context()
	inputs := validItemInputs()[:1]
	cmd, _ := commands.NewAddItemsCommand(10, inputs)
	aggregate := inKitchenOrder(t, 10, 1)

	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("GetByIDs", mock.Anything, []int64{3}).Return(catalogFor(inputs), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, int64(10)).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemsCommandHandler(factory, new(RecordingNotifier))
	require.NoError(t, h.Handle(ctx, cmd))

	appended := aggregate.Items()[1]
	wantPrice, err := kernel.NewMoney(inputs[0].UnitPrice)
	require.NoError(t, err)
	assert.True(t, appended.UnitPrice().IsEqual(wantPrice))
	assert.Equal(t, order.ItemStatusQueued, appended.Status())
}
