package commands_test

import (
	"context"
	"sync"
	"testing"

	"rms/internal/core/application/usecases/commands"
	"rms/internal/core/domain/model/kernel"
	"rms/internal/core/domain/model/order"
	"rms/internal/core/ports"
	"rms/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// inKitchenOrder restores an order with the given number of queued items,
// item ids 1..n.
func inKitchenOrder(t *testing.T, orderID int64, itemCount int) *order.Order {
	t.Helper()

	price, err := kernel.NewMoney(decimal.NewFromFloat(9.90))
	require.NoError(t, err)

	items := make([]*order.Item, 0, itemCount)
	for i := 1; i <= itemCount; i++ {
		item, restoreErr := order.RestoreItem(int64(i), int64(100+i), price, 1, order.ItemStatusQueued)
		require.NoError(t, restoreErr)
		items = append(items, item)
	}

	aggregate, err := order.RestoreOrder(
		orderID, 5, order.StatusInKitchen, kernel.ZeroMoney(), kernel.ZeroPercent(), testCreatedAt, items,
	)
	require.NoError(t, err)
	return aggregate
}

func TestMarkItemReadyCommandHandler_Handle_ItemReady(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewMarkItemReadyCommand(1)
	aggregate := inKitchenOrder(t, 10, 3)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("FindOrderIDByItem", mock.Anything, int64(1)).Return(int64(10), nil).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(10)).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewMarkItemReadyCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	// two items still queued, so the order stays in the kitchen
	assert.Equal(t, order.StatusInKitchen, aggregate.Status())
	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ports.EventItemReady, events[0].Type)
	assert.Equal(t, int64(10), events[0].OrderID)
	assert.Equal(t, int64(1), events[0].ItemID)
	repo.AssertExpectations(t)
}

func TestMarkItemReadyCommandHandler_Handle_LastItemPromotesOrder(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewMarkItemReadyCommand(1)
	aggregate := inKitchenOrder(t, 10, 1)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("FindOrderIDByItem", mock.Anything, int64(1)).Return(int64(10), nil).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(10)).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewMarkItemReadyCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusReady, aggregate.Status())
	events := notifier.Events()
	require.Len(t, events, 2)
	assert.Equal(t, ports.EventItemReady, events[0].Type)
	assert.Equal(t, ports.EventOrderReady, events[1].Type)
	assert.Equal(t, order.StatusReady.String(), events[1].Status)
}

func TestMarkItemReadyCommandHandler_Handle_UnknownItem(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewMarkItemReadyCommand(404)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("FindOrderIDByItem", mock.Anything, int64(404)).
			Return(int64(0), errs.NewObjectNotFoundError("orderItemId", int64(404))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	h := commands.NewMarkItemReadyCommandHandler(factory, notifier)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, notifier.Events())
}

// lockingOrderStore emulates the database row lock taken by GetForUpdate:
// the order is handed out under a mutex that is held until the unit of work
// commits or rolls back.
type lockingOrderStore struct {
	mu        sync.Mutex
	aggregate *order.Order
}

type lockingOrderUoW struct {
	store  *lockingOrderStore
	locked bool
}

func (u *lockingOrderUoW) Begin(_ context.Context) error { return nil }

func (u *lockingOrderUoW) Commit(_ context.Context) error {
	u.release()
	return nil
}

func (u *lockingOrderUoW) Rollback(_ context.Context) error {
	u.release()
	return nil
}

func (u *lockingOrderUoW) release() {
	if u.locked {
		u.locked = false
		u.store.mu.Unlock()
	}
}

func (u *lockingOrderUoW) OrderRepository() ports.OrderRepository { return u }

func (u *lockingOrderUoW) Add(_ context.Context, _ *order.Order) error    { return nil }
func (u *lockingOrderUoW) Update(_ context.Context, _ *order.Order) error { return nil }

func (u *lockingOrderUoW) Get(_ context.Context, _ int64) (*order.Order, error) {
	return u.store.aggregate, nil
}

func (u *lockingOrderUoW) GetForUpdate(_ context.Context, _ int64) (*order.Order, error) {
	u.store.mu.Lock()
	u.locked = true
	return u.store.aggregate, nil
}

func (u *lockingOrderUoW) FindOrderIDByItem(_ context.Context, _ int64) (int64, error) {
	return u.store.aggregate.ID(), nil
}

type lockingOrderUoWFactory struct{ store *lockingOrderStore }

func (f *lockingOrderUoWFactory) Create() commands.OrderUoW {
	return &lockingOrderUoW{store: f.store}
}

// Ten kitchen stations report the ten items of one order concurrently.
// Exactly one of them must observe the last-item condition and publish the
// order-ready event.
func TestMarkItemReadyCommandHandler_Handle_ConcurrentLastItem(t *testing.T) {
	const itemCount = 10

	ctx := context.Background()
	store := &lockingOrderStore{aggregate: inKitchenOrder(t, 10, itemCount)}
	notifier := new(RecordingNotifier)
	h := commands.NewMarkItemReadyCommandHandler(&lockingOrderUoWFactory{store: store}, notifier)

	var wg sync.WaitGroup
	for i := 1; i <= itemCount; i++ {
		wg.Add(1)
		go func(itemID int64) {
			defer wg.Done()
			cmd, err := commands.NewMarkItemReadyCommand(itemID)
			require.NoError(t, err)
			require.NoError(t, h.Handle(ctx, cmd))
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, order.StatusReady, store.aggregate.Status())
	assert.Equal(t, itemCount, notifier.CountByType(ports.EventItemReady))
	assert.Equal(t, 1, notifier.CountByType(ports.EventOrderReady))
}
