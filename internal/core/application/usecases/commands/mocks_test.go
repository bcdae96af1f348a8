package commands_test

import (
	"context"
	"sync"
	"time"

	"rms/internal/core/application/usecases/commands"
	"rms/internal/core/domain/model/audit"
	"rms/internal/core/domain/model/bill"
	"rms/internal/core/domain/model/menu"
	"rms/internal/core/domain/model/order"
	"rms/internal/core/domain/model/table"
	"rms/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testCreatedAt = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOrderIDByItem(ctx context.Context, itemID int64) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTableRepository struct{ mock.Mock }

func (m *MockTableRepository) Get(ctx context.Context, id int64) (*table.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *MockTableRepository) Update(ctx context.Context, t *table.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockMenuRepository struct{ mock.Mock }

func (m *MockMenuRepository) GetByIDs(ctx context.Context, ids []int64) ([]menu.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.Item), args.Error(1)
}

type MockBillRepository struct{ mock.Mock }

func (m *MockBillRepository) Add(ctx context.Context, b *bill.Bill) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBillRepository) GetByOrderID(ctx context.Context, orderID int64) (*bill.Bill, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bill.Bill), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Add(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ mockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockIntakeUoW struct{ mockTx }

func (m *MockIntakeUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockIntakeUoW) MenuRepository() ports.MenuRepository {
	args := m.Called()
	return args.Get(0).(ports.MenuRepository)
}

func (m *MockIntakeUoW) TableRepository() ports.TableRepository {
	args := m.Called()
	return args.Get(0).(ports.TableRepository)
}

type MockIntakeUoWFactory struct{ mock.Mock }

func (m *MockIntakeUoWFactory) Create() commands.IntakeUoW {
	args := m.Called()
	return args.Get(0).(commands.IntakeUoW)
}

type MockBillingUoW struct{ mockTx }

func (m *MockBillingUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockBillingUoW) TableRepository() ports.TableRepository {
	args := m.Called()
	return args.Get(0).(ports.TableRepository)
}

func (m *MockBillingUoW) BillRepository() ports.BillRepository {
	args := m.Called()
	return args.Get(0).(ports.BillRepository)
}

type MockBillingUoWFactory struct{ mock.Mock }

func (m *MockBillingUoWFactory) Create() commands.BillingUoW {
	args := m.Called()
	return args.Get(0).(commands.BillingUoW)
}

type MockOverrideUoW struct{ mockTx }

func (m *MockOverrideUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOverrideUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockOverrideUoWFactory struct{ mock.Mock }

func (m *MockOverrideUoWFactory) Create() commands.OverrideUoW {
	args := m.Called()
	return args.Get(0).(commands.OverrideUoW)
}

// RecordingNotifier captures published events for assertions. Safe for
// concurrent use.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []ports.Event
}

func (n *RecordingNotifier) Publish(event ports.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *RecordingNotifier) Events() []ports.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]ports.Event, len(n.events))
	copy(out, n.events)
	return out
}

func (n *RecordingNotifier) CountByType(eventType string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, e := range n.events {
		if e.Type == eventType {
			count++
		}
	}
	return count
}
