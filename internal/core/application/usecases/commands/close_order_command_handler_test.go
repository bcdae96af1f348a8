package commands_test

import (
	"testing"

	"rms/internal/core/application/usecases/commands"
	"rms/internal/core/domain/model/bill"
	"rms/internal/core/domain/model/order"
	"rms/internal/core/domain/model/table"
	"rms/internal/core/ports"
	"rms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCloseOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCloseOrderCommand(10)
	aggregate := restoredOrderInStatus(t, 10, order.StatusReadyForBilling)
	tbl := occupiedTable(t, aggregate.TableID())

	orderRepo := new(MockOrderRepository)
	tableRepo := new(MockTableRepository)
	billRepo := new(MockBillRepository)
	uow := new(MockBillingUoW)

	var createdBill *bill.Bill
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, int64(10)).Return(aggregate, nil).Once(),
		uow.On("BillRepository").Return(billRepo).Once(),
		billRepo.On("GetByOrderID", mock.Anything, int64(10)).
			Return(nil, errs.NewObjectNotFoundError("orderId", int64(10))).Once(),
		billRepo.On("Add", mock.Anything, mock.AnythingOfType("*bill.Bill")).
			Run(func(args mock.Arguments) {
				createdBill = args.Get(1).(*bill.Bill)
			}).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("TableRepository").Return(tableRepo).Once(),
		tableRepo.On("Get", mock.Anything, aggregate.TableID()).Return(tbl, nil).Once(),
		tableRepo.On("Update", mock.Anything, tbl).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewCloseOrderCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusBilled, aggregate.Status())
	assert.Equal(t, table.StatusAvailable, tbl.Status())
	require.NotNil(t, createdBill)
	// two items at 9.90 each, no discount, no tax
	assert.Equal(t, "19.80", createdBill.Total().String())

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ports.EventOrderClosed, events[0].Type)
	assert.Equal(t, order.StatusBilled.String(), events[0].Status)
}

func TestCloseOrderCommandHandler_Handle_RepeatedCloseKeepsBill(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCloseOrderCommand(10)
	aggregate := restoredOrderInStatus(t, 10, order.StatusBilled)

	existing, err := bill.NewBill(aggregate)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	tableRepo := new(MockTableRepository)
	billRepo := new(MockBillRepository)
	uow := new(MockBillingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, int64(10)).Return(aggregate, nil).Once(),
		uow.On("BillRepository").Return(billRepo).Once(),
		billRepo.On("GetByOrderID", mock.Anything, int64(10)).Return(existing, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("TableRepository").Return(tableRepo).Once(),
		tableRepo.On("Get", mock.Anything, aggregate.TableID()).
			Return(nil, errs.NewObjectNotFoundError("tableId", aggregate.TableID())).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewCloseOrderCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	// no second bill was written
	billRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	assert.Equal(t, order.StatusBilled, aggregate.Status())
}

func TestCloseOrderCommandHandler_Handle_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCloseOrderCommand(404)

	orderRepo := new(MockOrderRepository)
	uow := new(MockBillingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, int64(404)).
			Return(nil, errs.NewObjectNotFoundError("orderId", int64(404))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewCloseOrderCommandHandler(factory, notifier)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, notifier.Events())
}
